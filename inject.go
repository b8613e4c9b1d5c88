package textscale

// syntheticPointerEvent represents a single injected pointer event in screen
// coordinates.
type syntheticPointerEvent struct {
	pointerID        int
	screenX, screenY float64
	pressed          bool
	cancel           bool
}

// InjectPress queues a mouse press at the given screen coordinates
// (left button). The event is consumed on the next frame's input pass.
func (s *Scene) InjectPress(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{screenX: x, screenY: y, pressed: true})
}

// InjectMove queues a mouse move with the button held down. Use this between
// InjectPress and InjectRelease to simulate a drag.
func (s *Scene) InjectMove(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{screenX: x, screenY: y, pressed: true})
}

// InjectHover queues a mouse move with no button held.
func (s *Scene) InjectHover(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{screenX: x, screenY: y})
}

// InjectRelease queues a mouse release at the given screen coordinates.
func (s *Scene) InjectRelease(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{screenX: x, screenY: y})
}

// InjectClick queues a press followed by a release at the same screen
// coordinates. Consumes two frames.
func (s *Scene) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectDrag queues a full mouse drag: press at (fromX, fromY), linearly
// interpolated moves over frames-2 intermediate frames, and release at
// (toX, toY). Minimum frames is 2 (press + release).
func (s *Scene) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	s.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		s.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	s.InjectRelease(toX, toY)
}

// InjectTouch queues a touch contact for slot (1-9) at the given position.
// The first event for a slot is a touch start, later ones are moves.
func (s *Scene) InjectTouch(slot int, x, y float64) {
	if slot < 1 || slot >= maxPointers {
		return
	}
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{pointerID: slot, screenX: x, screenY: y, pressed: true})
}

// InjectTouchEnd queues the lift of the touch in slot at the given position.
func (s *Scene) InjectTouchEnd(slot int, x, y float64) {
	if slot < 1 || slot >= maxPointers {
		return
	}
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{pointerID: slot, screenX: x, screenY: y})
}

// InjectCancel queues the abandonment of every pressed pointer, as happens
// when the window loses focus mid-gesture.
func (s *Scene) InjectCancel() {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{cancel: true})
}

// PendingInjections returns the number of queued synthetic events.
func (s *Scene) PendingInjections() int {
	return len(s.injectQueue)
}

// processInjectedInput pops one event from the inject queue and feeds it
// through the pointer state machine. Returns true if an event was consumed
// (device input is skipped for that frame).
func (s *Scene) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	if evt.cancel {
		s.cancelPointers()
		return true
	}
	s.processPointer(evt.pointerID, evt.screenX, evt.screenY, evt.pressed, MouseButtonLeft)
	return true
}
