package textscale

import (
	"github.com/tanema/gween/ease"
)

const (
	widgetHeight  = 44.0
	widgetPadding = 12.0
	trackGap      = 8.0  // space around the stick while dragging
	chipRise      = 30.0 // how far the readout chip slides above the control
	fadeSeconds   = 0.15
)

var (
	widgetBackground = Color{R: 0.5, G: 0.5, B: 0.5, A: 0.15}
	stickIdleColor   = Color{R: 0.6, G: 0.6, B: 0.6, A: 1}
)

// Widget is the presentational shell of the control: a box showing a "T"
// handle while idle, and a readout chip plus a small-T / stick / big-T track
// while dragging. It only reads Display values.
type Widget struct {
	// Root holds the whole widget; add it to the scene.
	Root *Node
	// Control is the outer control region.
	Control *Node
	// Capture is the track that receives touch moves.
	Capture *Node

	handle *Node
	chip   *Node
	stick  *Node

	shown bool
	fade  *TweenGroup
	gap   *TweenGroup
	slide *TweenGroup
}

// NewWidget builds the widget nodes for cfg. Its text sizes are fixed in
// pixels so page scaling never reaches them.
func NewWidget(cfg Config) *Widget {
	root := NewContainer("textscale")
	root.Class = cfg.ClassName
	root.Interactable = true

	control := NewRect("control", cfg.StickSize+2*widgetPadding+48, widgetHeight, widgetBackground)
	control.Interactable = true
	control.Style.FontSize = "16px"

	handle := NewText("handle", "T", "20px")

	capture := NewContainer("capture")
	capture.Layout = LayoutRow
	capture.Interactable = true
	capture.Alpha = 0

	stick := NewRect("stick", cfg.StickSize, 2, stickIdleColor)
	capture.AddChild(NewText("small-t", "T", "12px"))
	capture.AddChild(stick)
	capture.AddChild(NewText("big-t", "T", "24px"))

	chip := NewText("readout", "", "14px")
	chip.Visible = false

	control.AddChild(handle)
	control.AddChild(capture)
	control.AddChild(chip)
	root.AddChild(control)

	w := &Widget{
		Root:    root,
		Control: control,
		Capture: capture,
		handle:  handle,
		chip:    chip,
		stick:   stick,
	}
	root.OnUpdate = w.update
	return w
}

// Anchors returns the anchors for mounting a controller over content.
func (w *Widget) Anchors(content *Node) Anchors {
	return Anchors{Content: content, Control: w.Control, Capture: w.Capture}
}

// Bind keeps the widget in sync with c.
func (w *Widget) Bind(c *Controller) {
	c.OnChange(w.Sync)
	w.Sync(c.Display())
}

// Sync updates the widget from a display snapshot.
func (w *Widget) Sync(d Display) {
	w.chip.Content = d.Label()
	w.handle.Visible = !d.Visible
	w.chip.Visible = d.Visible

	w.stick.Color = stickIdleColor
	if d.Visible {
		if c, err := ParseColor(d.Color); err == nil {
			w.stick.Color = c
		}
	}

	if d.Visible == w.shown {
		return
	}
	w.shown = d.Visible

	alpha, gap, chipY := 0.0, 0.0, 0.0
	if d.Visible {
		alpha, gap, chipY = 1, trackGap, -chipRise
	}
	w.fade = TweenAlpha(w.Capture, alpha, fadeSeconds, ease.OutQuad)
	w.gap = TweenGap(w.Capture, gap, fadeSeconds, ease.OutQuad)
	w.slide = TweenPosition(w.chip, w.chip.X, chipY, fadeSeconds, ease.OutQuad)
}

// update advances the tweens and centers the parts inside the control.
func (w *Widget) update(dt float64) {
	w.fade.Update(float32(dt))
	w.gap.Update(float32(dt))
	w.slide.Update(float32(dt))

	cw, ch := w.Control.Width, w.Control.Height
	w.handle.SetPosition((cw-w.handle.Width)/2, (ch-w.handle.Height)/2)
	w.Capture.SetPosition((cw-w.Capture.Width)/2, (ch-w.Capture.Height)/2)
	w.Capture.HitShape = HitRect{Width: w.Capture.Width, Height: w.Capture.Height}
	w.chip.X = (cw - w.chip.Width) / 2
	w.chip.MarkDirty()
}
