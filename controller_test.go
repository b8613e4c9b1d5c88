package textscale

import (
	"bytes"
	"errors"
	"log"
	"math"
	"strings"
	"testing"
)

type testPage struct {
	scene   *Scene
	cursor  *stubCursor
	widget  *Widget
	ctrl    *Controller
	content *Node
	h1      *Node // 2em
	p       *Node // inherits 16px
	small   *Node // 14px
}

// Screen points on the mounted widget, which sits at (0, 300).
const (
	captureX, captureY = 66.0, 322.0 // center of the control, inside the capture track
	cornerX, cornerY   = 4.0, 304.0  // inside the control, outside the capture track
)

func newTestPage(t *testing.T) *testPage {
	t.Helper()
	s, cur := newTestScene()

	content := NewContainer("main")
	content.Layout = LayoutColumn
	h1 := NewText("h1", "Title", "2em")
	p := NewText("p", "Body", "")
	small := NewText("small", "Fine print", "14px")
	content.AddChild(h1)
	content.AddChild(p)
	content.AddChild(small)
	s.Root().AddChild(content)

	cfg := DefaultConfig()
	w := NewWidget(cfg)
	w.Root.SetPosition(0, 300)
	s.Root().AddChild(w.Root)

	c, err := Mount(s, w.Anchors(content), cfg)
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}
	w.Bind(c)

	// Let layout and the widget position the capture track.
	s.Update()
	s.Update()

	return &testPage{scene: s, cursor: cur, widget: w, ctrl: c, content: content, h1: h1, p: p, small: small}
}

func (tp *testPage) sizes() [3]int {
	return [3]int{tp.h1.FontSizeOverride(), tp.p.FontSizeOverride(), tp.small.FontSizeOverride()}
}

// --- Mount ---

func TestMountBaseline(t *testing.T) {
	tp := newTestPage(t)

	b := tp.ctrl.Baseline()
	if b.Len() != 3 {
		t.Fatalf("baseline has %d nodes, want 3", b.Len())
	}
	want := []float64{32, 16, 14}
	for i, w := range want {
		if b.Sizes[i] != w {
			t.Errorf("baseline[%d] = %v, want %v", i, b.Sizes[i], w)
		}
	}
	if got := tp.sizes(); got != [3]int{32, 16, 14} {
		t.Errorf("sizes after mount = %v, want [32 16 14]", got)
	}

	m := tp.ctrl.Metrics()
	if m.RootFontSize != 16 || m.MinValue != -6 || m.MaxValue != 24 || m.MaxAbsoluteSize != 46 {
		t.Errorf("Metrics = %+v", m)
	}
	d := tp.ctrl.Display()
	if d.Readout != 16 || d.Visible || d.Color != "rgb(0, 0, 0)" {
		t.Errorf("Display = %+v", d)
	}
	if tp.widget.chip.Content != "16px" {
		t.Errorf("chip = %q, want 16px", tp.widget.chip.Content)
	}
}

func TestMountErrors(t *testing.T) {
	s, _ := newTestScene()
	content := NewContainer("main")
	control := NewContainer("control")
	capture := NewContainer("capture")
	full := Anchors{Content: content, Control: control, Capture: capture}

	tests := []struct {
		name    string
		scene   *Scene
		anchors Anchors
		cfg     Config
		want    error
	}{
		{"nil scene", nil, full, DefaultConfig(), ErrNilAnchor},
		{"nil content", s, Anchors{Control: control, Capture: capture}, DefaultConfig(), ErrNilAnchor},
		{"nil control", s, Anchors{Content: content, Capture: capture}, DefaultConfig(), ErrNilAnchor},
		{"nil capture", s, Anchors{Content: content, Control: control}, DefaultConfig(), ErrNilAnchor},
		{"bad range", s, full, Config{ScaleRange: 0}, ErrInvalidScaleRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Mount(tt.scene, tt.anchors, tt.cfg)
			if !errors.Is(err, tt.want) {
				t.Errorf("Mount error = %v, want %v", err, tt.want)
			}
			if c != nil {
				t.Error("failed Mount should return nil")
			}
		})
	}
	if got := s.handlers.count(); got != 0 {
		t.Errorf("failed mounts registered %d handlers", got)
	}
}

func TestMountExcludesControlInsideContent(t *testing.T) {
	s, _ := newTestScene()
	content := NewContainer("main")
	content.Interactable = true
	p := NewText("p", "Body", "")
	content.AddChild(p)
	s.Root().AddChild(content)

	w := NewWidget(DefaultConfig())
	content.AddChild(w.Root)

	c, err := Mount(s, w.Anchors(content), DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	for _, n := range c.Baseline().Nodes {
		if w.Control.Contains(n) {
			t.Errorf("baseline includes control node %q", n.Name)
		}
	}

	s.Update()
	s.Update()
	wx, wy := w.Control.LocalToWorld(w.Control.Width/2, w.Control.Height/2)
	s.InjectDrag(wx, wy, wx+100, wy, 2)
	drain(s)

	if p.FontSizeOverride() != 40 {
		t.Errorf("p = %d, want 40", p.FontSizeOverride())
	}
	if got := w.handle.ComputedFontSize(); got != 20 {
		t.Errorf("handle = %v, want 20 (control is never scaled)", got)
	}
}

// --- Mouse gestures ---

func TestMouseDragScales(t *testing.T) {
	tp := newTestPage(t)
	s := tp.scene

	s.InjectPress(captureX, captureY)
	s.InjectMove(captureX+100, captureY)
	drain(s)

	if tp.ctrl.Phase() != PhaseDragging {
		t.Fatalf("Phase = %v, want dragging", tp.ctrl.Phase())
	}
	if tp.cursor.current() != CursorGrabbing {
		t.Errorf("cursor = %v, want grabbing", tp.cursor.current())
	}
	if got := tp.ctrl.State().EntryCount; math.Abs(got-15) > epsilon {
		t.Errorf("EntryCount = %v, want 15", got)
	}
	if got := tp.sizes(); got != [3]int{46, 40, 35} {
		t.Errorf("sizes = %v, want [46 40 35]", got)
	}
	d := tp.ctrl.Display()
	if d.Readout != 40 || !d.Visible {
		t.Errorf("Display = %+v, want readout 40 and visible", d)
	}
	if tp.widget.chip.Content != "40px" || !tp.widget.chip.Visible {
		t.Errorf("chip = %q visible=%v", tp.widget.chip.Content, tp.widget.chip.Visible)
	}

	s.InjectRelease(captureX+100, captureY)
	drain(s)

	if tp.ctrl.Phase() != PhaseIdle {
		t.Error("release should end the gesture")
	}
	if tp.cursor.current() != CursorDefault {
		t.Errorf("cursor = %v, want default after release", tp.cursor.current())
	}
	if d := tp.ctrl.Display(); d.Visible || d.Readout != 40 {
		t.Errorf("Display after release = %+v, want readout 40 hidden", d)
	}
	if got := tp.sizes(); got != [3]int{46, 40, 35} {
		t.Errorf("sizes after release = %v, want [46 40 35]", got)
	}
}

func TestMouseDragSaturates(t *testing.T) {
	tp := newTestPage(t)
	tp.scene.InjectDrag(captureX, captureY, captureX+1000, captureY, 5)
	drain(tp.scene)

	if got := tp.ctrl.State().EntryCount; got != 24 {
		t.Errorf("EntryCount = %v, want 24", got)
	}
	if d := tp.ctrl.Display(); d.Readout != 46 {
		t.Errorf("Readout = %d, want 46", d.Readout)
	}
	if got := tp.sizes(); got != [3]int{46, 46, 46} {
		t.Errorf("sizes = %v, want [46 46 46]", got)
	}
}

func TestDragLeftShrinks(t *testing.T) {
	tp := newTestPage(t)
	tp.scene.InjectDrag(captureX, captureY, captureX-100, captureY, 2)
	drain(tp.scene)

	// One step is bounded by the soft floor at -16/5.
	if got := tp.ctrl.State().EntryCount; math.Abs(got+3.2) > epsilon {
		t.Errorf("EntryCount = %v, want -3.2", got)
	}
	if got := tp.sizes(); got != [3]int{22, 11, 10} {
		t.Errorf("sizes = %v, want [22 11 10]", got)
	}
	if d := tp.ctrl.Display(); d.Readout != 11 {
		t.Errorf("Readout = %d, want 11", d.Readout)
	}
}

func TestTapResets(t *testing.T) {
	tp := newTestPage(t)
	s := tp.scene

	s.InjectDrag(captureX, captureY, captureX+100, captureY, 3)
	drain(s)
	if got := tp.sizes(); got == [3]int{32, 16, 14} {
		t.Fatal("drag should have scaled the page")
	}

	s.InjectClick(captureX, captureY)
	drain(s)

	if got := tp.ctrl.State().EntryCount; got != 0 {
		t.Errorf("EntryCount = %v, want 0 after tap", got)
	}
	if got := tp.sizes(); got != [3]int{32, 16, 14} {
		t.Errorf("sizes = %v, want baseline [32 16 14]", got)
	}
	if d := tp.ctrl.Display(); d.Readout != 16 {
		t.Errorf("Readout = %d, want 16", d.Readout)
	}
}

func TestPressOutsideControlIgnored(t *testing.T) {
	tp := newTestPage(t)
	tp.scene.InjectDrag(400, 100, 500, 100, 3)
	drain(tp.scene)

	if tp.ctrl.Phase() != PhaseIdle || tp.ctrl.State().EntryCount != 0 {
		t.Error("a press outside the control should not start a gesture")
	}
	if len(tp.cursor.shapes) != 0 {
		t.Errorf("cursor changed: %v", tp.cursor.shapes)
	}
}

func TestHoverShowsPointerCursor(t *testing.T) {
	tp := newTestPage(t)
	s := tp.scene

	s.InjectHover(cornerX, cornerY)
	drain(s)
	if tp.cursor.current() != CursorPointer {
		t.Fatalf("cursor = %v, want pointer over the control", tp.cursor.current())
	}

	s.InjectHover(captureX, captureY)
	drain(s)
	if got := len(tp.cursor.shapes); got != 1 {
		t.Errorf("moving within the control set the cursor %d times, want 1", got)
	}

	s.InjectHover(400, 100)
	drain(s)
	if tp.cursor.current() != CursorDefault {
		t.Errorf("cursor = %v, want default after leaving the control", tp.cursor.current())
	}

	s.InjectHover(captureX, captureY)
	s.InjectPress(captureX, captureY)
	drain(s)
	if tp.cursor.current() != CursorGrabbing {
		t.Errorf("cursor = %v, want grabbing once pressed", tp.cursor.current())
	}

	tp.ctrl.Close()
	if tp.cursor.current() != CursorDefault {
		t.Errorf("cursor = %v, want default after Close", tp.cursor.current())
	}
}

func TestMouseMoveOutsideControlCounts(t *testing.T) {
	tp := newTestPage(t)
	s := tp.scene

	s.InjectPress(captureX, captureY)
	s.InjectMove(captureX+50, 50) // far above the widget
	s.InjectMove(captureX+100, 50)
	s.InjectRelease(captureX+100, 50)
	drain(s)

	if got := tp.ctrl.State().EntryCount; math.Abs(got-15) > epsilon {
		t.Errorf("EntryCount = %v, want 15", got)
	}
}

func TestCancelEndsGesture(t *testing.T) {
	tp := newTestPage(t)
	s := tp.scene

	s.InjectPress(captureX, captureY)
	s.InjectMove(captureX+100, captureY)
	s.InjectCancel()
	drain(s)

	if tp.ctrl.Phase() != PhaseIdle {
		t.Error("cancel should end the gesture")
	}
	if tp.cursor.current() != CursorDefault {
		t.Errorf("cursor = %v, want default after cancel", tp.cursor.current())
	}
	if got := tp.sizes(); got != [3]int{46, 40, 35} {
		t.Errorf("cancel should keep the scale, sizes = %v", got)
	}
}

// --- Touch gestures ---

func TestTouchDragOnCapture(t *testing.T) {
	tp := newTestPage(t)
	s := tp.scene

	s.InjectTouch(1, captureX, captureY)
	s.InjectTouch(1, captureX+100, captureY)
	drain(s)

	if got := tp.sizes(); got != [3]int{46, 40, 35} {
		t.Errorf("sizes = %v, want [46 40 35]", got)
	}

	s.InjectTouchEnd(1, captureX+100, captureY)
	drain(s)

	if tp.ctrl.Phase() != PhaseIdle {
		t.Error("touch end should end the gesture")
	}
	if len(tp.cursor.shapes) != 0 {
		t.Errorf("touch gestures should not touch the cursor: %v", tp.cursor.shapes)
	}
}

func TestTouchOutsideCaptureDoesNotScale(t *testing.T) {
	tp := newTestPage(t)
	s := tp.scene

	s.InjectTouch(1, cornerX, cornerY)
	drain(s)
	if tp.ctrl.Phase() != PhaseDragging {
		t.Fatal("touch on the control should start a gesture")
	}

	s.InjectTouch(1, cornerX+100, cornerY)
	drain(s)
	if got := tp.ctrl.State().EntryCount; got != 0 {
		t.Errorf("EntryCount = %v, want 0 for moves outside the capture track", got)
	}

	s.InjectTouchEnd(1, cornerX+100, cornerY)
	drain(s)
	if tp.ctrl.Phase() != PhaseIdle {
		t.Error("touch end should end the gesture")
	}
}

func TestSecondPointerIgnored(t *testing.T) {
	tp := newTestPage(t)
	s := tp.scene

	s.InjectPress(captureX, captureY)
	s.InjectTouch(2, captureX, captureY)
	s.InjectTouch(2, captureX+200, captureY)
	s.InjectTouchEnd(2, captureX+200, captureY)
	drain(s)

	if tp.ctrl.Phase() != PhaseDragging {
		t.Error("the mouse session should survive the other pointer")
	}
	if got := tp.ctrl.State().EntryCount; got != 0 {
		t.Errorf("EntryCount = %v, want 0", got)
	}
	sess, _ := tp.ctrl.tracker.Session()
	if sess.PointerID != 0 {
		t.Errorf("session pointer = %d, want 0", sess.PointerID)
	}
}

// --- Root observation ---

func TestRootFontSizeChangeRederivesMetrics(t *testing.T) {
	tp := newTestPage(t)
	tp.scene.Root().Style.FontSize = "20px"

	tp.scene.InjectDrag(captureX, captureY, captureX+100, captureY, 2)
	drain(tp.scene)

	m := tp.ctrl.Metrics()
	if m.RootFontSize != 20 || m.MaxAbsoluteSize != 50 {
		t.Errorf("Metrics = %+v, want root 20 and ceiling 50", m)
	}
	if d := tp.ctrl.Display(); d.Readout != 50 {
		t.Errorf("Readout = %d, want 50", d.Readout)
	}
	if got := tp.h1.FontSizeOverride(); got != 50 {
		t.Errorf("h1 = %d, want 50 under the new ceiling", got)
	}
}

func TestUnresolvableRootBlocksMoves(t *testing.T) {
	s, _ := newTestScene()
	var buf bytes.Buffer
	s.SetLogger(log.New(&buf, "", 0))
	s.Root().Style.FontSize = "bogus"

	content := NewContainer("main")
	p := NewText("p", "Body", "12px")
	content.AddChild(p)
	s.Root().AddChild(content)
	w := NewWidget(DefaultConfig())
	s.Root().AddChild(w.Root)

	c, err := Mount(s, w.Anchors(content), DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	s.Update()
	s.Update()

	wx, wy := w.Control.LocalToWorld(w.Control.Width/2, w.Control.Height/2)
	s.InjectPress(wx, wy)
	s.InjectMove(wx+100, wy)
	drain(s)

	if c.State().EntryCount != 0 {
		t.Errorf("EntryCount = %v, want 0", c.State().EntryCount)
	}
	if p.FontSizeOverride() != 12 {
		t.Errorf("p = %d, want 12", p.FontSizeOverride())
	}
	if !strings.Contains(buf.String(), "not usable") {
		t.Errorf("expected a warning, log = %q", buf.String())
	}
}

// --- Lifecycle ---

func TestCloseReleasesEverything(t *testing.T) {
	tp := newTestPage(t)
	s := tp.scene
	if got := s.handlers.count(); got != 4 {
		t.Fatalf("handlers = %d, want 4", got)
	}

	s.InjectPress(captureX, captureY)
	drain(s)
	if tp.cursor.current() != CursorGrabbing {
		t.Fatal("press should grab the cursor")
	}

	tp.ctrl.Close()
	tp.ctrl.Close()

	if got := s.handlers.count(); got != 0 {
		t.Errorf("handlers after Close = %d, want 0", got)
	}
	if tp.cursor.current() != CursorDefault {
		t.Errorf("cursor = %v, want default after Close", tp.cursor.current())
	}
	if tp.ctrl.Phase() != PhaseIdle {
		t.Error("Close should end the gesture")
	}

	s.InjectMove(captureX+100, captureY)
	s.InjectRelease(captureX+100, captureY)
	drain(s)
	if got := tp.sizes(); got != [3]int{32, 16, 14} {
		t.Errorf("sizes changed after Close: %v", got)
	}
}

func TestCloseDuringUnmovedPressKeepsScale(t *testing.T) {
	tp := newTestPage(t)
	s := tp.scene
	s.InjectDrag(captureX, captureY, captureX+100, captureY, 2)
	drain(s)

	var notified int
	tp.ctrl.OnChange(func(Display) { notified++ })

	// A press that never moves would be a tap on release; closing first
	// must not turn it into a reset.
	s.InjectPress(captureX, captureY)
	drain(s)
	notified = 0
	tp.ctrl.Close()

	if got := tp.ctrl.tracker.EntryCount(); math.Abs(got-15) > epsilon {
		t.Errorf("tracker EntryCount = %v, want 15", got)
	}
	if got := tp.ctrl.State().EntryCount; math.Abs(got-15) > epsilon {
		t.Errorf("State().EntryCount = %v, want 15", got)
	}
	if got := tp.sizes(); got != [3]int{46, 40, 35} {
		t.Errorf("sizes = %v, want [46 40 35]", got)
	}
	if d := tp.ctrl.Display(); d.Visible || d.Readout != 40 {
		t.Errorf("Display = %+v, want readout 40 hidden", d)
	}
	if notified != 0 {
		t.Errorf("Close notified %d times, want 0", notified)
	}
}

func TestOnChange(t *testing.T) {
	tp := newTestPage(t)
	var got []Display
	tp.ctrl.OnChange(func(d Display) { got = append(got, d) })

	tp.scene.InjectDrag(captureX, captureY, captureX+100, captureY, 2)
	drain(tp.scene)

	// begin, move, end
	if len(got) != 3 {
		t.Fatalf("got %d notifications, want 3: %+v", len(got), got)
	}
	if !got[0].Visible || got[0].Readout != 16 {
		t.Errorf("begin = %+v", got[0])
	}
	if !got[1].Visible || got[1].Readout != 40 {
		t.Errorf("move = %+v", got[1])
	}
	if got[2].Visible || got[2].Readout != 40 {
		t.Errorf("end = %+v", got[2])
	}
}

func TestGestureScript(t *testing.T) {
	tp := newTestPage(t)
	r, err := LoadTestScript([]byte(`{"steps": [
		{"action": "drag", "fromX": 66, "fromY": 322, "toX": 166, "toY": 322, "frames": 4},
		{"action": "wait", "frames": 2},
		{"action": "click", "x": 66, "y": 322}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	tp.scene.SetTestRunner(r)

	var peak int
	tp.ctrl.OnChange(func(d Display) {
		if d.Readout > peak {
			peak = d.Readout
		}
	})
	for i := 0; i < 50 && !r.Done(); i++ {
		tp.scene.Update()
	}
	if !r.Done() {
		t.Fatal("script should finish")
	}
	drain(tp.scene)

	if peak != 40 {
		t.Errorf("peak readout = %d, want 40", peak)
	}
	if got := tp.sizes(); got != [3]int{32, 16, 14} {
		t.Errorf("sizes = %v, want baseline after the final tap", got)
	}
}
