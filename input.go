package textscale

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// --- Constants ---

const maxPointers = 10 // pointer 0 = mouse, 1-9 = touch

// --- Built-in HitShape types ---

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// --- Input source ---

// InputSource supplies raw device state once per frame. The default source
// reads Ebitengine; tests and headless hosts can substitute their own.
type InputSource interface {
	CursorPosition() (x, y int)
	MouseButtonPressed(b MouseButton) bool
	AppendTouchIDs(ids []ebiten.TouchID) []ebiten.TouchID
	TouchPosition(id ebiten.TouchID) (x, y int)
	Focused() bool
}

type ebitenInput struct{}

func (ebitenInput) CursorPosition() (int, int) { return ebiten.CursorPosition() }

func (ebitenInput) MouseButtonPressed(b MouseButton) bool {
	switch b {
	case MouseButtonRight:
		return ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	case MouseButtonMiddle:
		return ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)
	default:
		return ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	}
}

func (ebitenInput) AppendTouchIDs(ids []ebiten.TouchID) []ebiten.TouchID {
	return ebiten.AppendTouchIDs(ids)
}

func (ebitenInput) TouchPosition(id ebiten.TouchID) (int, int) { return ebiten.TouchPosition(id) }

func (ebitenInput) Focused() bool { return ebiten.IsFocused() }

// --- Per-pointer state ---

type pointerState struct {
	down    bool
	lastX   float64
	lastY   float64
	hitNode *Node       // node under the pointer at press time
	button  MouseButton // button captured at press time
}

// --- Handler registry ---

type pointerHandler struct {
	id uint32
	fn func(PointerContext)
}

type handlerRegistry struct {
	byEvent [EventPointerCancel + 1][]pointerHandler
	nextID  uint32
}

func (r *handlerRegistry) count() int {
	var n int
	for _, hs := range r.byEvent {
		n += len(hs)
	}
	return n
}

// CallbackHandle allows removing a registered scene-level callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires. Removing twice is a
// no-op.
func (h CallbackHandle) Remove() {
	if h.reg == nil || int(h.event) >= len(h.reg.byEvent) {
		return
	}
	s := h.reg.byEvent[h.event]
	for i := range s {
		if s[i].id == h.id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = pointerHandler{}
			h.reg.byEvent[h.event] = s[:len(s)-1]
			return
		}
	}
}

// --- Scene-level event registration ---

// On registers a scene-level callback for the given event type.
func (s *Scene) On(event EventType, fn func(PointerContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.byEvent[event] = append(s.handlers.byEvent[event], pointerHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: event}
}

// OnPointerDown registers a scene-level callback for pointer down events.
func (s *Scene) OnPointerDown(fn func(PointerContext)) CallbackHandle {
	return s.On(EventPointerDown, fn)
}

// OnPointerUp registers a scene-level callback for pointer up events.
func (s *Scene) OnPointerUp(fn func(PointerContext)) CallbackHandle {
	return s.On(EventPointerUp, fn)
}

// OnPointerMove registers a scene-level callback for pointer move events.
func (s *Scene) OnPointerMove(fn func(PointerContext)) CallbackHandle {
	return s.On(EventPointerMove, fn)
}

// OnPointerCancel registers a scene-level callback fired when a pressed
// pointer is abandoned without a release (focus loss, vanished touch).
func (s *Scene) OnPointerCancel(fn func(PointerContext)) CallbackHandle {
	return s.On(EventPointerCancel, fn)
}

// --- Hit testing ---

// nodeContainsLocal tests whether (lx, ly) falls inside a node's hit region.
// Uses HitShape if set; otherwise the node's Width/Height.
// Containers with no HitShape are not hit-testable.
func nodeContainsLocal(n *Node, lx, ly float64) bool {
	if n.HitShape != nil {
		return n.HitShape.Contains(lx, ly)
	}
	if n.Type == NodeTypeContainer || (n.Width == 0 && n.Height == 0) {
		return false
	}
	return lx >= 0 && lx <= n.Width && ly >= 0 && ly <= n.Height
}

// collectInteractable walks the tree in painter order, appending interactable
// nodes to buf. Skips Visible=false or Interactable=false subtrees.
func collectInteractable(n *Node, buf []*Node) []*Node {
	if !n.Visible || !n.Interactable {
		return buf
	}
	if n.HitShape != nil || n.Type != NodeTypeContainer {
		buf = append(buf, n)
	}
	for _, child := range n.children {
		buf = collectInteractable(child, buf)
	}
	return buf
}

// hitTest finds the topmost interactable node at (worldX, worldY).
// Returns nil if nothing is hit.
func (s *Scene) hitTest(worldX, worldY float64) *Node {
	s.hitBuf = collectInteractable(s.root, s.hitBuf[:0])

	// Reverse painter order: topmost visual node first.
	for i := len(s.hitBuf) - 1; i >= 0; i-- {
		n := s.hitBuf[i]
		lx, ly := n.WorldToLocal(worldX, worldY)
		if nodeContainsLocal(n, lx, ly) {
			return n
		}
	}
	return nil
}

// --- Input processing ---

// processInput is called from Scene.Update to handle all mouse and touch
// input. Injected events take priority over the device for the frame.
func (s *Scene) processInput() {
	if s.processInjectedInput() {
		return
	}
	if s.input == nil {
		return
	}
	if !s.input.Focused() {
		s.cancelPointers()
		return
	}
	s.processMousePointer()
	s.processTouchPointers()
}

// processMousePointer handles mouse input (pointer 0).
func (s *Scene) processMousePointer() {
	mx, my := s.input.CursorPosition()

	var pressed bool
	var button MouseButton
	for _, b := range [...]MouseButton{MouseButtonLeft, MouseButtonRight, MouseButtonMiddle} {
		if s.input.MouseButtonPressed(b) {
			pressed = true
			button = b
			break
		}
	}
	s.processPointer(0, float64(mx), float64(my), pressed, button)
}

// processTouchPointers handles touch input (pointers 1-9).
func (s *Scene) processTouchPointers() {
	touchIDs := s.input.AppendTouchIDs(s.prevTouchIDs[:0])
	s.prevTouchIDs = touchIDs

	var activeSlots [maxPointers]bool
	for _, tid := range touchIDs {
		slot := s.touchSlot(tid)
		if slot < 0 {
			continue
		}
		activeSlots[slot] = true

		tx, ty := s.input.TouchPosition(tid)
		s.processPointer(slot, float64(tx), float64(ty), true, MouseButtonLeft)
	}

	// A touch that disappeared is a release at its last position.
	for i := 1; i < maxPointers; i++ {
		if s.touchUsed[i] && !activeSlots[i] {
			ps := &s.pointers[i]
			if ps.down {
				s.processPointer(i, ps.lastX, ps.lastY, false, MouseButtonLeft)
			}
			s.touchUsed[i] = false
			s.touchMap[i] = 0
		}
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9).
// Returns the existing slot or allocates a new one. Returns -1 if full.
func (s *Scene) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if s.touchUsed[i] && s.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !s.touchUsed[i] {
			s.touchUsed[i] = true
			s.touchMap[i] = tid
			return i
		}
	}
	return -1
}

// processPointer runs the pointer state machine for a single pointer.
// Touches keep targeting the node they went down on; the mouse targets
// whatever is under it.
func (s *Scene) processPointer(pointerID int, wx, wy float64, pressed bool, button MouseButton) {
	ps := &s.pointers[pointerID]

	var target *Node
	if ps.down && pointerID > 0 {
		target = ps.hitNode
	} else {
		target = s.hitTest(wx, wy)
	}

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.button = button
		ps.lastX = wx
		ps.lastY = wy
		ps.hitNode = target
		s.fire(EventPointerDown, target, pointerID, wx, wy, button)

	case !pressed && ps.down:
		if wx != ps.lastX || wy != ps.lastY {
			s.fire(EventPointerMove, target, pointerID, wx, wy, ps.button)
		}
		s.fire(EventPointerUp, target, pointerID, wx, wy, ps.button)
		*ps = pointerState{lastX: wx, lastY: wy}

	default:
		if wx != ps.lastX || wy != ps.lastY {
			b := button
			if ps.down {
				b = ps.button
			}
			s.fire(EventPointerMove, target, pointerID, wx, wy, b)
			ps.lastX = wx
			ps.lastY = wy
		}
	}
}

// cancelPointers abandons every pressed pointer, firing EventPointerCancel.
func (s *Scene) cancelPointers() {
	for i := range s.pointers {
		ps := &s.pointers[i]
		if !ps.down {
			continue
		}
		s.fire(EventPointerCancel, ps.hitNode, i, ps.lastX, ps.lastY, ps.button)
		*ps = pointerState{lastX: ps.lastX, lastY: ps.lastY}
	}
}

// --- Event dispatch ---

func (s *Scene) fire(event EventType, node *Node, pointerID int, wx, wy float64, button MouseButton) {
	var lx, ly float64
	if node != nil {
		lx, ly = node.WorldToLocal(wx, wy)
	}
	ctx := PointerContext{
		Node: node, Event: event,
		GlobalX: wx, GlobalY: wy, LocalX: lx, LocalY: ly,
		Button: button, PointerID: pointerID,
	}
	// Handlers may remove themselves; iterate over a stable copy.
	hs := append(s.dispatchBuf[:0], s.handlers.byEvent[event]...)
	s.dispatchBuf = hs
	for _, h := range hs {
		h.fn(ctx)
	}
}
