package textscale

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// ColorBlack is the fallback text color of a tree root with no declared color.
var ColorBlack = Color{0, 0, 0, 1}

// toRGBA converts to a premultiplied color.RGBA for ebiten APIs.
func (c Color) toRGBA() color.RGBA {
	a := clamp01(c.A)
	return color.RGBA{
		R: uint8(clamp01(c.R)*a*255 + 0.5),
		G: uint8(clamp01(c.G)*a*255 + 0.5),
		B: uint8(clamp01(c.B)*a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// NodeType distinguishes rendering behavior for a Node.
type NodeType uint8

const (
	NodeTypeContainer NodeType = iota // group node with no visual output
	NodeTypeRect                      // solid color rectangle of Width x Height
	NodeTypeText                      // text drawn at the node's computed font size
)

// LayoutKind selects how a container positions its children.
type LayoutKind uint8

const (
	LayoutNone   LayoutKind = iota // children keep their own X/Y
	LayoutColumn                   // children stacked top to bottom
	LayoutRow                      // children placed left to right, centered vertically
)

// EventType identifies a kind of pointer event.
type EventType uint8

const (
	EventPointerDown   EventType = iota // a mouse button or touch went down
	EventPointerUp                      // the pointer was released
	EventPointerMove                    // the pointer moved (hovering or pressed)
	EventPointerCancel                  // the pointer's interaction ended without a release
)

func (e EventType) String() string {
	switch e {
	case EventPointerDown:
		return "down"
	case EventPointerUp:
		return "up"
	case EventPointerMove:
		return "move"
	case EventPointerCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// CursorShape is the process-wide mouse cursor appearance.
type CursorShape uint8

const (
	CursorDefault  CursorShape = iota // platform default arrow
	CursorGrabbing                    // shown while a drag gesture holds the mouse
	CursorPointer                     // hand over interactive regions
)

// ebitenShape maps a CursorShape onto Ebitengine's cursor shapes. Ebitengine
// has no dedicated grabbing hand, so the move cursor stands in for it.
func (c CursorShape) ebitenShape() ebiten.CursorShapeType {
	switch c {
	case CursorGrabbing:
		return ebiten.CursorShapeMove
	case CursorPointer:
		return ebiten.CursorShapePointer
	default:
		return ebiten.CursorShapeDefault
	}
}
