package textscale

import "testing"

func TestLoadTestScript(t *testing.T) {
	script := []byte(`{"steps": [
		{"action": "press", "x": 10, "y": 20},
		{"action": "drag", "fromX": 1, "fromY": 2, "toX": 3, "toY": 4, "frames": 5},
		{"action": "touch", "pointer": 2, "x": 7, "y": 8},
		{"action": "wait", "frames": 3}
	]}`)
	r, err := LoadTestScript(script)
	if err != nil {
		t.Fatalf("LoadTestScript: %v", err)
	}
	if len(r.steps) != 4 {
		t.Fatalf("steps = %d, want 4", len(r.steps))
	}

	want := []scriptStep{
		{Action: "press", X: 10, Y: 20},
		{Action: "drag", FromX: 1, FromY: 2, ToX: 3, ToY: 4, Frames: 5},
		{Action: "touch", Pointer: 2, X: 7, Y: 8},
		{Action: "wait", Frames: 3},
	}
	for i, w := range want {
		if r.steps[i] != w {
			t.Errorf("step %d = %+v, want %+v", i, r.steps[i], w)
		}
	}
}

func TestLoadTestScriptErrors(t *testing.T) {
	tests := []struct {
		name   string
		script string
	}{
		{"invalid json", `{"steps": [`},
		{"no steps", `{}`},
		{"empty steps", `{"steps": []}`},
		{"unknown action", `{"steps": [{"action": "jump"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadTestScript([]byte(tt.script)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestRunnerStepClick(t *testing.T) {
	s, _ := newTestScene()
	addBox(s.Root(), "box", 10, 10)
	events := recordAll(s)

	r, err := LoadTestScript([]byte(`{"steps": [{"action": "click", "x": 20, "y": 20}]}`))
	if err != nil {
		t.Fatal(err)
	}
	s.SetTestRunner(r)

	for i := 0; i < 10 && !r.Done(); i++ {
		s.Update()
	}
	if !r.Done() {
		t.Fatal("runner should finish")
	}
	drain(s)
	assertEvents(t, *events, EventPointerDown, EventPointerUp)
}

func TestRunnerWait(t *testing.T) {
	s, _ := newTestScene()
	r, err := LoadTestScript([]byte(`{"steps": [{"action": "wait", "frames": 3}]}`))
	if err != nil {
		t.Fatal(err)
	}
	s.SetTestRunner(r)

	frames := 0
	for !r.Done() && frames < 20 {
		s.Update()
		frames++
	}
	if frames != 3 {
		t.Errorf("wait took %d frames, want 3", frames)
	}
}

func TestRunnerWaitsForInjectQueue(t *testing.T) {
	s, _ := newTestScene()
	r, err := LoadTestScript([]byte(`{"steps": [
		{"action": "drag", "fromX": 0, "fromY": 0, "toX": 10, "toY": 0, "frames": 4},
		{"action": "cancel"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	s.SetTestRunner(r)

	// Frame 1 queues the drag and consumes its first event.
	s.Update()
	if r.cursor != 1 {
		t.Fatalf("cursor = %d, want 1", r.cursor)
	}
	s.Update()
	s.Update()
	if r.cursor != 1 {
		t.Errorf("runner advanced with %d injections pending", s.PendingInjections())
	}
	for i := 0; i < 10 && !r.Done(); i++ {
		s.Update()
	}
	if !r.Done() {
		t.Error("runner should finish")
	}
}
