package textscale

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// scriptStep represents a single action in a gesture script.
type scriptStep struct {
	Action  string
	Pointer int
	X, Y    float64
	FromX   float64
	FromY   float64
	ToX     float64
	ToY     float64
	Frames  int
}

var scriptActions = map[string]bool{
	"press": true, "move": true, "release": true, "click": true, "drag": true,
	"touch": true, "touchend": true, "cancel": true, "wait": true,
}

// TestRunner replays a gesture script through the scene's injection queue,
// one step per frame once earlier injections have drained. Attach it with
// SetTestRunner.
//
// Script format:
//
//	{"steps": [
//	  {"action": "drag", "fromX": 40, "fromY": 20, "toX": 140, "toY": 20, "frames": 6},
//	  {"action": "wait", "frames": 3},
//	  {"action": "touch", "pointer": 1, "x": 50, "y": 20},
//	  {"action": "touchend", "pointer": 1, "x": 50, "y": 20}
//	]}
type TestRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON gesture script.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	if !gjson.ValidBytes(jsonData) {
		return nil, fmt.Errorf("parse test script: invalid JSON")
	}
	steps := gjson.GetBytes(jsonData, "steps")
	if !steps.IsArray() || len(steps.Array()) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}

	var out []scriptStep
	var parseErr error
	steps.ForEach(func(i, v gjson.Result) bool {
		st := scriptStep{
			Action:  v.Get("action").String(),
			Pointer: int(v.Get("pointer").Int()),
			X:       v.Get("x").Float(),
			Y:       v.Get("y").Float(),
			FromX:   v.Get("fromX").Float(),
			FromY:   v.Get("fromY").Float(),
			ToX:     v.Get("toX").Float(),
			ToY:     v.Get("toY").Float(),
			Frames:  int(v.Get("frames").Int()),
		}
		if !scriptActions[st.Action] {
			parseErr = fmt.Errorf("parse test script: step %d: unknown action %q", i.Int(), st.Action)
			return false
		}
		out = append(out, st)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return &TestRunner{steps: out}, nil
}

// SetTestRunner attaches a TestRunner to the scene. The runner's step method
// is called from Scene.Update before input is processed each frame.
func (s *Scene) SetTestRunner(runner *TestRunner) {
	s.testRunner = runner
}

// Done reports whether all steps in the script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame. Called from Scene.Update.
func (r *TestRunner) step(s *Scene) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(s.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		if r.waitCount == 0 && r.cursor >= len(r.steps) {
			r.done = true
		}
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "press":
		s.InjectPress(st.X, st.Y)
	case "move":
		s.InjectMove(st.X, st.Y)
	case "release":
		s.InjectRelease(st.X, st.Y)
	case "click":
		s.InjectClick(st.X, st.Y)
	case "drag":
		s.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "touch":
		s.InjectTouch(st.Pointer, st.X, st.Y)
	case "touchend":
		s.InjectTouchEnd(st.Pointer, st.X, st.Y)
	case "cancel":
		s.InjectCancel()
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}
