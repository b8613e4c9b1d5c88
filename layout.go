package textscale

import "math"

// layoutTree sizes text nodes from their computed font size and positions the
// children of LayoutColumn/LayoutRow containers. Children are laid out before
// their parent so container sizes include them.
func layoutTree(n *Node, fonts *FontCache) {
	for _, child := range n.children {
		layoutTree(child, fonts)
	}

	switch {
	case n.Type == NodeTypeText:
		measureText(n, fonts)
	case n.Layout == LayoutColumn:
		layoutColumn(n)
	case n.Layout == LayoutRow:
		layoutRow(n)
	}
}

// measureText refreshes a text node's Width/Height when its content or size
// changed since the last measurement.
func measureText(n *Node, fonts *FontCache) {
	size := n.ComputedFontSize()
	if math.IsNaN(size) {
		size = DefaultBaselineSize
	}
	if size == n.measuredSize && n.Content == n.measuredContent {
		return
	}
	n.measuredSize = size
	n.measuredContent = n.Content
	if fonts == nil {
		n.Width, n.Height = 0, size*lineHeightFactor
		return
	}
	n.Width, n.Height = fonts.Measure(n.Content, size)
}

func layoutColumn(n *Node) {
	y := n.Padding
	var maxW float64
	placed := 0
	for _, child := range n.children {
		if !child.Visible {
			continue
		}
		if placed > 0 {
			y += n.Gap
		}
		placed++
		if child.X != n.Padding || child.Y != y {
			child.SetPosition(n.Padding, y)
		}
		y += child.Height
		maxW = math.Max(maxW, child.Width)
	}
	n.Width = maxW + 2*n.Padding
	n.Height = y + n.Padding
}

func layoutRow(n *Node) {
	var maxH float64
	for _, child := range n.children {
		if child.Visible {
			maxH = math.Max(maxH, child.Height)
		}
	}
	x := n.Padding
	placed := 0
	for _, child := range n.children {
		if !child.Visible {
			continue
		}
		if placed > 0 {
			x += n.Gap
		}
		placed++
		y := n.Padding + (maxH-child.Height)/2
		if child.X != x || child.Y != y {
			child.SetPosition(x, y)
		}
		x += child.Width
	}
	n.Width = x + n.Padding
	n.Height = maxH + 2*n.Padding
}
