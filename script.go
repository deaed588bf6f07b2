package canopy

import (
	"fmt"

	"github.com/goccy/go-json"
)

// scriptStep is a single action in an interaction script.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	ID     int64   `json:"id,omitempty"`
	Level  int     `json:"level,omitempty"`
	DX     float64 `json:"dx,omitempty"`
	DY     float64 `json:"dy,omitempty"`
	Mode   string  `json:"mode,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// script is the top-level JSON structure of an interaction script.
type script struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner replays engine input one step per frame, for demos and
// automated visual checks. Call Step once per tick before Engine.Update.
//
// Supported actions: activate (id, level), drag (dx, dy), wheel (dx, dy,
// mode: pixel|line|page), zoom_in, zoom_out, recenter, resize (width,
// height), wait (frames) and screenshot (label).
type ScriptRunner struct {
	// OnScreenshot is called for screenshot steps. Hosts that can capture
	// their surface set it; otherwise screenshot steps are skipped.
	OnScreenshot func(label string)

	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON interaction script.
func LoadScript(data []byte) (*ScriptRunner, error) {
	var s script
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range s.Steps {
		if !knownAction(st.Action) {
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: s.Steps}, nil
}

func knownAction(a string) bool {
	switch a {
	case "activate", "drag", "wheel", "zoom_in", "zoom_out", "recenter", "resize", "wait", "screenshot":
		return true
	}
	return false
}

// Done reports whether every step has run.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Step runs at most one step against e. Wait steps hold the cursor for the
// requested number of frames.
func (r *ScriptRunner) Step(e *Engine) {
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

	cam := e.Camera()
	switch st.Action {
	case "activate":
		e.Activate(st.ID, st.Level)
	case "drag":
		cam.Drag(st.DX, st.DY)
	case "wheel":
		cam.Wheel(st.DX, st.DY, parseWheelMode(st.Mode))
	case "zoom_in":
		cam.ZoomIn()
	case "zoom_out":
		cam.ZoomOut()
	case "recenter":
		cam.Recenter()
	case "resize":
		e.Resize(st.Width, st.Height)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "screenshot":
		if r.OnScreenshot != nil {
			r.OnScreenshot(st.Label)
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 {
		r.done = true
	}
}

func parseWheelMode(s string) WheelMode {
	switch s {
	case "line":
		return WheelLine
	case "page":
		return WheelPage
	default:
		return WheelPixel
	}
}
