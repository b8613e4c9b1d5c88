package textscale

// GesturePhase is the state of a GestureTracker.
type GesturePhase uint8

const (
	PhaseIdle     GesturePhase = iota // no pointer is driving the control
	PhaseDragging                     // a session is active
)

func (p GesturePhase) String() string {
	if p == PhaseDragging {
		return "dragging"
	}
	return "idle"
}

// GestureSession exists only while a drag is active.
type GestureSession struct {
	PointerID int
	StartX    float64
	HasMoved  bool
}

// GestureTracker is the drag state machine. It owns the accumulator, and its
// Begin, Move and End transitions are the only places the accumulator or
// the visibility flag change.
type GestureTracker struct {
	phase      GesturePhase
	session    GestureSession
	entryCount float64
	visible    bool
}

// Phase returns the current state.
func (t *GestureTracker) Phase() GesturePhase {
	return t.phase
}

// Session returns the active session and whether one exists.
func (t *GestureTracker) Session() (GestureSession, bool) {
	return t.session, t.phase == PhaseDragging
}

// EntryCount returns the accumulator.
func (t *GestureTracker) EntryCount() float64 {
	return t.entryCount
}

// Visible reports whether the readout should be shown.
func (t *GestureTracker) Visible() bool {
	return t.visible
}

// Begin moves Idle to Dragging for pointerID at horizontal coordinate x.
// It returns false (and changes nothing) when a session is already active.
func (t *GestureTracker) Begin(pointerID int, x float64) bool {
	if t.phase == PhaseDragging {
		return false
	}
	t.phase = PhaseDragging
	t.session = GestureSession{PointerID: pointerID, StartX: x}
	t.visible = true
	return true
}

// Move feeds the displacement since the last accepted position into the
// accumulator. It is accepted only during a session of the same pointer,
// with valid metrics, and while readout has not passed MaxAbsoluteSize.
func (t *GestureTracker) Move(pointerID int, x float64, m Metrics, readout int) bool {
	if t.phase != PhaseDragging || t.session.PointerID != pointerID {
		return false
	}
	if !m.Valid() || float64(readout) > m.MaxAbsoluteSize {
		return false
	}
	delta := x - t.session.StartX
	t.entryCount = m.Accumulate(t.entryCount, delta*MoveSensitivity)
	t.session.StartX = x
	t.session.HasMoved = true
	return true
}

// End moves Dragging to Idle for pointerID. A session that never moved is a
// tap, and a tap resets the accumulator to zero; reset reports that case.
// ended is false when there was no matching session.
func (t *GestureTracker) End(pointerID int) (ended, reset bool) {
	if t.phase != PhaseDragging || t.session.PointerID != pointerID {
		return false, false
	}
	t.visible = false
	if !t.session.HasMoved {
		t.entryCount = 0
		reset = true
	}
	t.phase = PhaseIdle
	t.session = GestureSession{}
	return true, reset
}

// Abandon drops any session without treating it as a tap. The accumulator
// keeps its value.
func (t *GestureTracker) Abandon() {
	t.phase = PhaseIdle
	t.session = GestureSession{}
	t.visible = false
}
