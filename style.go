package textscale

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// DefaultFontSize is the font size in pixels of a tree root that declares none.
const DefaultFontSize = 16.0

// defaultTextColor is the computed color of a tree root that declares none.
const defaultTextColor = "rgb(0, 0, 0)"

// Style holds a node's declared text properties. Empty fields inherit from
// the parent.
//
// FontSize accepts "Npx", "Nem", "Nrem", "N%", "inherit" and "medium".
// Color accepts "#rgb", "#rrggbb", "rgb(r, g, b)" and a few keywords.
type Style struct {
	FontSize string
	Color    string
}

// SetFontSizeOverride sets an inline font size in pixels that takes
// precedence over the declared style, like an element's style attribute.
// Values <= 0 clear the override.
func (n *Node) SetFontSizeOverride(px int) {
	if px < 0 {
		px = 0
	}
	n.fontOverride = px
}

// FontSizeOverride returns the inline font size in pixels, or 0 when unset.
func (n *Node) FontSizeOverride() int {
	return n.fontOverride
}

// ComputedFontSize resolves the node's font size in pixels from its override,
// its declared style and its ancestors. It returns NaN when a declaration on
// the path cannot be parsed.
func (n *Node) ComputedFontSize() float64 {
	if n.fontOverride > 0 {
		return float64(n.fontOverride)
	}
	parent := DefaultFontSize
	if n.Parent != nil {
		parent = n.Parent.ComputedFontSize()
	}
	return resolveFontSize(n.Style.FontSize, parent, n)
}

func resolveFontSize(decl string, parent float64, n *Node) float64 {
	decl = strings.ToLower(strings.TrimSpace(decl))
	switch decl {
	case "", "inherit":
		return parent
	case "medium", "initial":
		return DefaultFontSize
	}

	var unit string
	for _, u := range [...]string{"rem", "px", "em", "%"} {
		if strings.HasSuffix(decl, u) {
			unit = u
			break
		}
	}
	if unit == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(decl, unit)), 64)
	if err != nil || v < 0 || math.IsInf(v, 0) {
		return math.NaN()
	}

	switch unit {
	case "px":
		return v
	case "em":
		return v * parent
	case "%":
		return v / 100 * parent
	default: // rem
		root := n.TreeRoot()
		if root == n {
			return v * DefaultFontSize
		}
		return v * root.ComputedFontSize()
	}
}

// ComputedColor resolves the node's text color in "rgb(r, g, b)" form,
// inheriting from ancestors. Unparsable declarations are ignored.
func (n *Node) ComputedColor() string {
	for p := n; p != nil; p = p.Parent {
		if c, err := parseColor(p.Style.Color); err == nil {
			return formatColor(c)
		}
	}
	return defaultTextColor
}

// TextColor returns the computed text color as a Color.
func (n *Node) TextColor() Color {
	c, err := ParseColor(n.ComputedColor())
	if err != nil {
		return ColorBlack
	}
	return c
}

// ParseColor parses a style color string.
func ParseColor(s string) (Color, error) {
	c, err := parseColor(s)
	if err != nil {
		return Color{}, err
	}
	return Color{R: c.R, G: c.G, B: c.B, A: 1}, nil
}

var namedColors = map[string]string{
	"black": "#000000",
	"white": "#ffffff",
	"red":   "#ff0000",
	"green": "#008000",
	"blue":  "#0000ff",
	"gray":  "#808080",
	"grey":  "#808080",
}

func parseColor(s string) (colorful.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return colorful.Color{}, fmt.Errorf("textscale: empty color")
	}
	if hex, ok := namedColors[s]; ok {
		s = hex
	}
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return colorful.Color{}, fmt.Errorf("textscale: bad color %q: %w", s, err)
		}
		return c, nil
	}
	if strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")") {
		parts := strings.Split(s[len("rgb("):len(s)-1], ",")
		if len(parts) != 3 {
			return colorful.Color{}, fmt.Errorf("textscale: bad color %q", s)
		}
		var ch [3]float64
		for i, p := range parts {
			v, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil || v < 0 || v > 255 {
				return colorful.Color{}, fmt.Errorf("textscale: bad color %q", s)
			}
			ch[i] = float64(v) / 255
		}
		return colorful.Color{R: ch[0], G: ch[1], B: ch[2]}, nil
	}
	return colorful.Color{}, fmt.Errorf("textscale: bad color %q", s)
}

func formatColor(c colorful.Color) string {
	r, g, b := c.Clamped().RGB255()
	return fmt.Sprintf("rgb(%d, %d, %d)", r, g, b)
}
