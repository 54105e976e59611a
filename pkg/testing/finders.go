package testing

import (
	"fmt"
	"strings"

	"github.com/go-drift/visualds/pkg/scene"
)

// Finder locates nodes in a scene.
type Finder interface {
	// Evaluate returns all matching nodes under root (depth-first pre-order).
	Evaluate(root *scene.Node) []*scene.Node
	// Description returns a human-readable description for error messages.
	Description() string
}

// FinderResult wraps finder results with convenient accessors.
type FinderResult struct {
	nodes  []*scene.Node
	finder Finder
}

func (r FinderResult) description() string {
	if r.finder == nil {
		return "unknown"
	}
	return r.finder.Description()
}

// First returns the first match. Panics if no matches.
func (r FinderResult) First() *scene.Node {
	if len(r.nodes) == 0 {
		panic(fmt.Sprintf("Finder found no nodes: %s", r.description()))
	}
	return r.nodes[0]
}

// FirstOrNil returns the first match, or nil if none.
func (r FinderResult) FirstOrNil() *scene.Node {
	if len(r.nodes) == 0 {
		return nil
	}
	return r.nodes[0]
}

// At returns the match at index. Panics if out of range.
func (r FinderResult) At(index int) *scene.Node {
	if index < 0 || index >= len(r.nodes) {
		panic(fmt.Sprintf("Finder index %d out of range (found %d): %s", index, len(r.nodes), r.description()))
	}
	return r.nodes[index]
}

// All returns all matches in traversal order.
func (r FinderResult) All() []*scene.Node {
	return r.nodes
}

// Count returns the number of matches.
func (r FinderResult) Count() int {
	return len(r.nodes)
}

// Exists returns true if at least one match was found.
func (r FinderResult) Exists() bool {
	return len(r.nodes) > 0
}

// Texts returns the text of every match.
func (r FinderResult) Texts() []string {
	out := make([]string, len(r.nodes))
	for i, n := range r.nodes {
		out[i] = n.Text
	}
	return out
}

type predicateFinder struct {
	fn   func(*scene.Node) bool
	desc string
}

func (f *predicateFinder) Evaluate(root *scene.Node) []*scene.Node {
	var results []*scene.Node
	root.Walk(func(n *scene.Node) bool {
		if f.fn(n) {
			results = append(results, n)
		}
		return true
	})
	return results
}

func (f *predicateFinder) Description() string {
	return f.desc
}

// ByPredicate returns a finder that matches nodes satisfying fn.
func ByPredicate(fn func(*scene.Node) bool) Finder {
	return &predicateFinder{fn: fn, desc: "ByPredicate(...)"}
}

// ByKind matches nodes drawing the given primitive.
func ByKind(kind scene.Kind) Finder {
	return &predicateFinder{
		fn:   func(n *scene.Node) bool { return n.Kind() == kind },
		desc: fmt.Sprintf("ByKind(%s)", kind),
	}
}

// ByClass matches nodes tagged class, including exiting ones.
func ByClass(class string) Finder {
	return &predicateFinder{
		fn:   func(n *scene.Node) bool { return n.Class == class },
		desc: fmt.Sprintf("ByClass(%q)", class),
	}
}

// ByText matches text nodes with exact content.
func ByText(text string) Finder {
	return &predicateFinder{
		fn:   func(n *scene.Node) bool { return n.Kind() == scene.KindText && n.Text == text },
		desc: fmt.Sprintf("ByText(%q)", text),
	}
}

// ByTextContaining matches text nodes containing substring.
func ByTextContaining(substring string) Finder {
	return &predicateFinder{
		fn:   func(n *scene.Node) bool { return n.Kind() == scene.KindText && strings.Contains(n.Text, substring) },
		desc: fmt.Sprintf("ByTextContaining(%q)", substring),
	}
}

// liveFinder drops exiting nodes and nodes under an exiting ancestor.
type liveFinder struct {
	of Finder
}

func (f *liveFinder) Evaluate(root *scene.Node) []*scene.Node {
	var results []*scene.Node
	for _, n := range f.of.Evaluate(root) {
		if !exiting(n) {
			results = append(results, n)
		}
	}
	return results
}

func (f *liveFinder) Description() string {
	return fmt.Sprintf("Live(%s)", f.of.Description())
}

// Live restricts a finder to nodes that are not leaving the scene.
func Live(of Finder) Finder {
	return &liveFinder{of: of}
}

func exiting(n *scene.Node) bool {
	for ; n != nil; n = n.Parent() {
		if n.Exiting() {
			return true
		}
	}
	return false
}

// descendantFinder finds nodes matching 'matching' that are descendants
// of nodes matching 'of'.
type descendantFinder struct {
	of       Finder
	matching Finder
}

func (f *descendantFinder) Evaluate(root *scene.Node) []*scene.Node {
	var results []*scene.Node
	seen := make(map[*scene.Node]bool)
	for _, ancestor := range f.of.Evaluate(root) {
		// Search within each ancestor's subtree, skipping the ancestor itself
		for _, child := range ancestor.Children() {
			for _, match := range f.matching.Evaluate(child) {
				if !seen[match] {
					seen[match] = true
					results = append(results, match)
				}
			}
		}
	}
	return results
}

func (f *descendantFinder) Description() string {
	return fmt.Sprintf("Descendant(of: %s, matching: %s)", f.of.Description(), f.matching.Description())
}

// Descendant returns a finder that matches nodes satisfying 'matching'
// that are descendants of nodes matching 'of'.
func Descendant(of, matching Finder) Finder {
	return &descendantFinder{of: of, matching: matching}
}
