package textscale

import "fmt"

// Anchors are the nodes a Controller is mounted against.
type Anchors struct {
	// Content is the root whose descendants are scaled.
	Content *Node
	// Control is the outer control region. Pointer downs inside it start a
	// gesture, and its subtree is never scaled.
	Control *Node
	// Capture is the inner gesture-capture region. Touch moves only count
	// while the touch targets it.
	Capture *Node
	// MetricsRoot supplies the reference font size and text color. Defaults
	// to the tree root above Content.
	MetricsRoot *Node
}

// Controller ties the gesture tracker, the baseline and the scale applier to
// a scene for the lifetime of a mount.
type Controller struct {
	scene   *Scene
	cfg     Config
	anchors Anchors
	root    *Node

	baseline Baseline
	tracker  GestureTracker
	state    ScaleState
	metrics  Metrics
	readout  int

	handles       []CallbackHandle
	restoreCursor func()
	restoreHover  func()
	listeners     []func(Display)
	closed        bool
}

// Mount snapshots the baseline under anchors.Content, applies the unscaled
// pass and starts listening for gestures on s. Missing anchors and invalid
// config fail before anything is registered.
func Mount(s *Scene, anchors Anchors, cfg Config) (*Controller, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: scene", ErrNilAnchor)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch {
	case anchors.Content == nil:
		return nil, fmt.Errorf("%w: content", ErrNilAnchor)
	case anchors.Control == nil:
		return nil, fmt.Errorf("%w: control", ErrNilAnchor)
	case anchors.Capture == nil:
		return nil, fmt.Errorf("%w: capture", ErrNilAnchor)
	}

	root := anchors.MetricsRoot
	if root == nil {
		root = anchors.Content.TreeRoot()
	}

	c := &Controller{
		scene:   s,
		cfg:     cfg,
		anchors: anchors,
		root:    root,
		metrics: NewMetrics(0, cfg.ScaleRange),
	}
	c.baseline = Snapshot(Selector{Root: anchors.Content, Exclude: anchors.Control})
	c.apply()

	c.handles = append(c.handles,
		s.OnPointerDown(c.handleDown),
		s.OnPointerMove(c.handleMove),
		s.OnPointerUp(c.handleEnd),
		s.OnPointerCancel(c.handleEnd),
	)
	s.debugf("mounted: %d nodes, root %vpx, range %v", c.baseline.Len(), c.state.RootFontSize, cfg.ScaleRange)
	return c, nil
}

// Close removes every listener, drops any active gesture and restores the
// cursor. Scaled sizes and the accumulator stay as they are, even for a
// press that has not moved yet. Safe to call more than once.
func (c *Controller) Close() {
	if c.closed {
		return
	}
	c.closed = true
	for _, h := range c.handles {
		h.Remove()
	}
	c.handles = nil
	c.tracker.Abandon()
	c.releaseHover()
	c.releaseCursor()
	c.listeners = nil
}

// Display returns what the presentational shell should show.
func (c *Controller) Display() Display {
	return Display{
		Readout: c.readout,
		Visible: c.tracker.Visible(),
		Color:   c.state.RootTextColor,
	}
}

// OnChange registers fn to receive the display after every transition and
// application pass.
func (c *Controller) OnChange(fn func(Display)) {
	c.listeners = append(c.listeners, fn)
}

// State returns the scale state.
func (c *Controller) State() ScaleState {
	return c.state
}

// Metrics returns the constants derived from the last root observation.
func (c *Controller) Metrics() Metrics {
	return c.metrics
}

// Baseline returns the sizes captured at mount.
func (c *Controller) Baseline() Baseline {
	return c.baseline
}

// Phase returns the gesture state.
func (c *Controller) Phase() GesturePhase {
	return c.tracker.Phase()
}

// --- Event handlers ---

func (c *Controller) handleDown(ctx PointerContext) {
	if !c.anchors.Control.Contains(ctx.Node) {
		return
	}
	if !c.tracker.Begin(ctx.PointerID, ctx.GlobalX) {
		return
	}
	if !ctx.IsTouch() {
		c.releaseHover()
		c.restoreCursor = c.scene.overrideCursor(CursorGrabbing)
	}
	c.scene.debugf("gesture begin: pointer %d at x=%v", ctx.PointerID, ctx.GlobalX)
	c.notify()
}

func (c *Controller) handleMove(ctx PointerContext) {
	sess, ok := c.tracker.Session()
	if !ok {
		c.hover(ctx)
		return
	}
	if sess.PointerID != ctx.PointerID {
		return
	}
	if ctx.IsTouch() && !c.anchors.Capture.Contains(ctx.Node) {
		return
	}
	if !c.metrics.Valid() {
		c.scene.warnf("warning: move ignored, root font size %v is not usable", c.metrics.RootFontSize)
		return
	}
	if c.tracker.Move(ctx.PointerID, ctx.GlobalX, c.metrics, c.readout) {
		c.apply()
	}
}

func (c *Controller) handleEnd(ctx PointerContext) {
	ended, reset := c.tracker.End(ctx.PointerID)
	if !ended {
		return
	}
	c.releaseCursor()
	c.scene.debugf("gesture %s: pointer %d, reset=%v", ctx.Event, ctx.PointerID, reset)
	if reset {
		c.apply()
		return
	}
	c.notify()
}

// hover shows the pointer cursor while the mouse is over the control and no
// gesture is running.
func (c *Controller) hover(ctx PointerContext) {
	if ctx.IsTouch() {
		return
	}
	over := c.anchors.Control.Contains(ctx.Node)
	switch {
	case over && c.restoreHover == nil:
		c.restoreHover = c.scene.overrideCursor(CursorPointer)
	case !over:
		c.releaseHover()
	}
}

func (c *Controller) releaseHover() {
	if c.restoreHover != nil {
		c.restoreHover()
		c.restoreHover = nil
	}
}

func (c *Controller) releaseCursor() {
	if c.restoreCursor != nil {
		c.restoreCursor()
		c.restoreCursor = nil
	}
}

// apply runs an application pass for the current accumulator. When the pass
// observes a new root font size the metrics are re-derived and the pass runs
// once more with them, so the ceiling and the readout agree.
func (c *Controller) apply() {
	entry := c.tracker.EntryCount()
	c.state.EntryCount = entry
	c.readout = applyPass(entry, c.baseline, c.metrics, &c.state, c.root, c.scene.warnf)
	if c.state.RootFontSize != c.metrics.RootFontSize {
		c.metrics = NewMetrics(c.state.RootFontSize, c.cfg.ScaleRange)
		c.readout = applyPass(entry, c.baseline, c.metrics, &c.state, c.root, c.scene.warnf)
	}
	c.notify()
}

func (c *Controller) notify() {
	if len(c.listeners) == 0 {
		return
	}
	d := c.Display()
	for _, fn := range c.listeners {
		fn(d)
	}
}
