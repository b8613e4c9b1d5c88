package textscale

import "github.com/hajimehoshi/ebiten/v2"

// CursorSetter changes the process-wide cursor appearance.
type CursorSetter interface {
	SetCursorShape(shape CursorShape)
}

type ebitenCursor struct{}

func (ebitenCursor) SetCursorShape(shape CursorShape) {
	ebiten.SetCursorShape(shape.ebitenShape())
}

// overrideCursor switches the cursor to shape and returns the function that
// restores the default. The restore function is safe to call more than once.
func (s *Scene) overrideCursor(shape CursorShape) (restore func()) {
	if s.cursor == nil {
		return func() {}
	}
	s.cursor.SetCursorShape(shape)
	restored := false
	return func() {
		if restored {
			return
		}
		restored = true
		s.cursor.SetCursorShape(CursorDefault)
	}
}
