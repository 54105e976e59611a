package structure

// Edge is a weighted, directed edge to the node at index To.
type Edge struct {
	To     int
	Weight float64
}

// GraphNode is a copied view of one graph node.
type GraphNode[T any] struct {
	Data     T
	Outgoing []Edge
}

type graphNode[T any] struct {
	data     T
	outgoing []Edge
}

// Graph is a directed graph with index-addressed nodes. Removed nodes leave
// a free slot that the next AddNode reuses, so indices of other nodes stay
// stable.
//
// Graph has no renderer; it publishes ChangeGraph events like the other
// containers so one can be attached later.
type Graph[T any] struct {
	Observable[Change[T]]
	nodes []*graphNode[T]
}

// NewGraph returns an empty graph.
func NewGraph[T any]() *Graph[T] {
	return &Graph[T]{}
}

// Name returns "Graph".
func (g *Graph[T]) Name() string { return KindGraph.String() }

// AddNode stores data in the first free slot and returns its index.
func (g *Graph[T]) AddNode(data T) int {
	node := &graphNode[T]{data: data}
	idx := 0
	for idx < len(g.nodes) && g.nodes[idx] != nil {
		idx++
	}
	if idx == len(g.nodes) {
		g.nodes = append(g.nodes, node)
	} else {
		g.nodes[idx] = node
	}
	g.notifyChange(Change[T]{Kind: ChangeGraph, Value: data, Ok: true})
	return idx
}

// RemoveNode frees the slot at index and drops every edge pointing to it.
// It notifies even when the index held no node.
func (g *Graph[T]) RemoveNode(index int) {
	var data T
	ok := g.IsValidNode(index)
	if ok {
		data = g.nodes[index].data
		for there, node := range g.nodes {
			if there == index || node == nil {
				continue
			}
			kept := node.outgoing[:0]
			for _, e := range node.outgoing {
				if e.To != index {
					kept = append(kept, e)
				}
			}
			node.outgoing = kept
		}
		g.nodes[index] = nil
	}
	g.notifyChange(Change[T]{Kind: ChangeGraph, Value: data, Ok: ok})
}

// AddEdge adds an edge from -> to. It returns false, without notifying, if
// either endpoint is not a valid node.
func (g *Graph[T]) AddEdge(from, to int, weight float64) bool {
	if !g.IsValidNode(from) || !g.IsValidNode(to) {
		return false
	}
	g.nodes[from].outgoing = append(g.nodes[from].outgoing, Edge{To: to, Weight: weight})
	g.notifyChange(Change[T]{Kind: ChangeGraph, Value: g.nodes[from].data, Ok: true})
	return true
}

// RemoveEdge removes every edge from -> to. It returns false if either
// endpoint is invalid or no such edge existed.
func (g *Graph[T]) RemoveEdge(from, to int) bool {
	if !g.IsValidNode(from) || !g.IsValidNode(to) {
		return false
	}
	node := g.nodes[from]
	kept := node.outgoing[:0]
	for _, e := range node.outgoing {
		if e.To != to {
			kept = append(kept, e)
		}
	}
	removed := len(kept) != len(node.outgoing)
	node.outgoing = kept
	if removed {
		g.notifyChange(Change[T]{Kind: ChangeGraph, Value: node.data, Ok: true})
	}
	return removed
}

// Edges returns a copy of the outgoing edges of index.
func (g *Graph[T]) Edges(index int) []Edge {
	if !g.IsValidNode(index) {
		return []Edge{}
	}
	return cloneItems(g.nodes[index].outgoing)
}

// IsValidNode reports whether index holds a node.
func (g *Graph[T]) IsValidNode(index int) bool {
	return index >= 0 && index < len(g.nodes) && g.nodes[index] != nil
}

// Size returns the number of live nodes.
func (g *Graph[T]) Size() int {
	n := 0
	for _, node := range g.nodes {
		if node != nil {
			n++
		}
	}
	return n
}

// Clear removes every node and notifies observers.
func (g *Graph[T]) Clear() {
	g.nodes = nil
	var zero T
	g.notifyChange(Change[T]{Kind: ChangeGraph, Value: zero, Ok: true})
}

// Snapshot returns a deep copy of the node slots; free slots are nil.
func (g *Graph[T]) Snapshot() []*GraphNode[T] {
	out := make([]*GraphNode[T], len(g.nodes))
	for i, node := range g.nodes {
		if node == nil {
			continue
		}
		out[i] = &GraphNode[T]{Data: node.data, Outgoing: cloneItems(node.outgoing)}
	}
	return out
}
