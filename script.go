package sinew

import (
	"encoding/json"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween/ease"
)

// scriptStep represents a single action in a weight script.
type scriptStep struct {
	Action  string     `json:"action"`
	Group   string     `json:"group,omitempty"`
	Node    string     `json:"node,omitempty"`
	Value   float64    `json:"value,omitempty"`
	Seconds float32    `json:"seconds,omitempty"`
	Ease    string     `json:"ease,omitempty"`
	To      [3]float64 `json:"to,omitempty"`
	Frames  int        `json:"frames,omitempty"`
}

// script is the top-level JSON structure for a weight script.
type script struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner replays group weight changes and target moves across ticks
// for automated scenario playback. Attach to a System via SetScript.
//
// Actions:
//
//	{"action": "weight", "group": "aim", "value": 1}
//	{"action": "fade", "group": "aim", "value": 0, "seconds": 0.5, "ease": "in_out_sine"}
//	{"action": "move", "node": "target", "to": [1, 2, 0]}
//	{"action": "wait", "frames": 10}
type ScriptRunner struct {
	steps     []scriptStep
	root      *Node
	cursor    int
	waitCount int
	done      bool
}

var easeFuncs = map[string]ease.TweenFunc{
	"":             ease.Linear,
	"linear":       ease.Linear,
	"in_quad":      ease.InQuad,
	"out_quad":     ease.OutQuad,
	"in_out_quad":  ease.InOutQuad,
	"in_cubic":     ease.InCubic,
	"out_cubic":    ease.OutCubic,
	"in_out_cubic": ease.InOutCubic,
	"in_sine":      ease.InSine,
	"out_sine":     ease.OutSine,
	"in_out_sine":  ease.InOutSine,
}

// LoadScript parses a JSON script. Node names in "move" steps are resolved
// under root when the step runs.
func LoadScript(jsonData []byte, root *Node) (*ScriptRunner, error) {
	var sc script
	if err := json.Unmarshal(jsonData, &sc); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range sc.Steps {
		switch st.Action {
		case "weight", "fade":
			if st.Group == "" {
				return nil, fmt.Errorf("parse script: step %d: %s needs a group", i, st.Action)
			}
			if _, ok := easeFuncs[st.Ease]; !ok {
				return nil, fmt.Errorf("parse script: step %d: unknown ease %q", i, st.Ease)
			}
		case "move":
			if st.Node == "" {
				return nil, fmt.Errorf("parse script: step %d: move needs a node", i)
			}
			if root == nil {
				return nil, fmt.Errorf("parse script: step %d: move needs a root node", i)
			}
		case "wait":
		default:
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: sc.Steps, root: root}, nil
}

// SetScript attaches a ScriptRunner to the system. The runner advances one
// step per UpdateWeights call.
func (s *System) SetScript(runner *ScriptRunner) {
	s.script = runner
}

// Done reports whether all steps in the script have been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame. Unknown groups and nodes are
// skipped with a warning.
func (r *ScriptRunner) step(s *System) {
	if r.done {
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

	switch st.Action {
	case "weight":
		if g := s.Group(st.Group); g != nil {
			g.FadeTo(st.Value, 0, nil)
		} else {
			debugWarnf("script: unknown group %q", st.Group)
		}
	case "fade":
		if g := s.Group(st.Group); g != nil {
			g.FadeTo(st.Value, st.Seconds, easeFuncs[st.Ease])
		} else {
			debugWarnf("script: unknown group %q", st.Group)
		}
	case "move":
		if n := r.root.FindChild(st.Node); n != nil {
			n.SetPosition(mgl64.Vec3(st.To))
		} else {
			debugWarnf("script: unknown node %q", st.Node)
		}
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 {
		r.done = true
	}
}
