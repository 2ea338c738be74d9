package xrinput

import (
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Button int     `json:"button,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

var errNoSteps = errors.New("no steps")

// TestRunner sequences synthetic input on a ScriptedPointer across frames.
// Attach to a Scene via SetTestRunner.
type TestRunner struct {
	pointer   *ScriptedPointer
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script that drives p.
//
//	{"steps": [{"action": "click", "x": 100, "y": 100}, {"action": "wait", "frames": 5}]}
//
// Actions are click, press, move, hover, release, drag and wait.
func LoadTestScript(jsonData []byte, p *ScriptedPointer) (*TestRunner, error) {
	var script testScript
	if err := jsoniter.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: %w", errNoSteps)
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "click", "press", "move", "hover", "release", "drag", "wait":
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
		if st.Button < 0 || st.Button >= buttonCount {
			return nil, fmt.Errorf("parse test script: step %d: button %d out of range", i, st.Button)
		}
	}
	return &TestRunner{pointer: p, steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the scene. The runner's step method
// is called from Scene.Update before input processing each frame.
func (s *Scene) SetTestRunner(runner *TestRunner) {
	s.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one frame. Called from Scene.Update.
func (r *TestRunner) step(*Scene) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if r.pointer.Pending() > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	p := r.pointer
	b := Button(st.Button)
	switch st.Action {
	case "click":
		p.InjectButton(b, st.X, st.Y, true)
		p.InjectButton(b, st.X, st.Y, false)
	case "press", "move":
		p.InjectButton(b, st.X, st.Y, true)
	case "hover":
		p.InjectHover(st.X, st.Y)
	case "release":
		p.InjectButton(b, st.X, st.Y, false)
	case "drag":
		p.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && p.Pending() == 0 {
		r.done = true
	}
}
