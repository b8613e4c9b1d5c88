package textscale

import "math"

// DefaultBaselineSize replaces a font size that cannot be resolved when a
// baseline is captured.
const DefaultBaselineSize = 14.0

// Selector matches every descendant of Root in document order, skipping
// Exclude and its whole subtree.
type Selector struct {
	Root    *Node
	Exclude *Node
}

// Match returns the matched nodes. A nil Root matches nothing.
func (sel Selector) Match() []*Node {
	if sel.Root == nil {
		return nil
	}
	var out []*Node
	sel.Root.Walk(func(n *Node) bool {
		if n == sel.Exclude {
			return false
		}
		out = append(out, n)
		return true
	})
	return out
}

// Baseline is the font size of each matched node before any scaling,
// index-aligned with Nodes. It is only ever replaced wholesale by a new
// Snapshot.
type Baseline struct {
	Nodes []*Node
	Sizes []float64
}

// Len returns the number of captured nodes.
func (b Baseline) Len() int {
	return len(b.Sizes)
}

// Snapshot captures the computed font size of every node matched by sel.
func Snapshot(sel Selector) Baseline {
	nodes := sel.Match()
	sizes := make([]float64, len(nodes))
	for i, n := range nodes {
		size := n.ComputedFontSize()
		if math.IsNaN(size) {
			size = DefaultBaselineSize
		}
		sizes[i] = size
	}
	return Baseline{Nodes: nodes, Sizes: sizes}
}
