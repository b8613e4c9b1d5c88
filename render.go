package textscale

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Draw renders the tree in painter order onto screen. World positions come
// from the last Update.
func (s *Scene) Draw(screen *ebiten.Image) {
	if s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor.toRGBA())
	}
	s.drawNode(screen, s.root)
}

func (s *Scene) drawNode(screen *ebiten.Image, n *Node) {
	if !n.Visible || n.worldAlpha <= 0 {
		return
	}

	switch n.Type {
	case NodeTypeRect:
		c := n.Color
		c.A *= n.worldAlpha
		vector.DrawFilledRect(screen, float32(n.worldX), float32(n.worldY),
			float32(n.Width), float32(n.Height), c.toRGBA(), false)
	case NodeTypeText:
		s.drawText(screen, n)
	}

	for _, child := range n.children {
		s.drawNode(screen, child)
	}
}

func (s *Scene) drawText(screen *ebiten.Image, n *Node) {
	if n.Content == "" {
		return
	}
	size := n.ComputedFontSize()
	if math.IsNaN(size) {
		size = DefaultBaselineSize
	}
	face, err := s.fonts.Face(size)
	if err != nil {
		s.warnf("%v", err)
		return
	}
	c := n.TextColor()
	op := &text.DrawOptions{}
	op.GeoM.Translate(n.worldX, n.worldY)
	op.ColorScale.ScaleWithColor(c.toRGBA())
	op.ColorScale.ScaleAlpha(float32(n.worldAlpha))
	op.LineSpacing = size * lineHeightFactor
	text.Draw(screen, n.Content, face, op)
}
