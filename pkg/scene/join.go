package scene

// Join is the result of matching n data positions against the live nodes
// of one class under a parent.
type Join struct {
	// Nodes holds the node for each datum, indexed by position.
	Nodes []*Node
	// Enter holds nodes created for positions that had no node.
	Enter []*Node
	// Update holds reused nodes, in position order.
	Update []*Node
	// Exit holds nodes whose position no longer exists. They are flagged
	// exiting and are never matched again; the caller decides how they
	// leave, typically with a transition ending in Remove.
	Exit []*Node
}

// JoinByIndex keys the live children of parent tagged class by their order
// and matches them to positions 0..n-1. Missing positions are created with
// enter, tagged class and appended to parent.
//
// Nodes already exiting are skipped, so a datum that reappears at a
// position whose old node is still fading out gets a new node.
func JoinByIndex(parent *Node, class string, n int, enter func(i int) *Node) Join {
	existing := parent.Select(class)
	j := Join{Nodes: make([]*Node, max(n, 0))}
	for i := range j.Nodes {
		if i < len(existing) {
			j.Nodes[i] = existing[i]
			j.Update = append(j.Update, existing[i])
			continue
		}
		node := enter(i)
		node.Class = class
		parent.Append(node)
		j.Nodes[i] = node
		j.Enter = append(j.Enter, node)
	}
	for i := len(j.Nodes); i < len(existing); i++ {
		existing[i].exiting = true
		j.Exit = append(j.Exit, existing[i])
	}
	return j
}
