package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, logs bytes.Buffer
	root := newRootCmd(&logs)
	root.SetOut(&out)
	root.SetErr(&logs)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), logs.String(), err
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestInspectOrgChart(t *testing.T) {
	out, logs, err := runCLI(t, "inspect")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"indexed nodes: 177", "levels: 2", "visible nodes: 2", "edge polylines: 2"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
	if !strings.Contains(logs, "Loaded tree") {
		t.Errorf("logs %q should report loading", logs)
	}
}

func TestInspectShared(t *testing.T) {
	out, logs, err := runCLI(t, "inspect", "--demo", "shared", "--fanout", "10", "--depth", "3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "indexed nodes: 31") {
		t.Errorf("output %q missing node count", out)
	}
	if !strings.Contains(logs, "1111 virtual nodes") {
		t.Errorf("logs %q missing virtual size", logs)
	}
}

func TestInspectScript(t *testing.T) {
	script := writeFile(t, "steps.json", `{"steps": [
		{"action": "activate", "id": 176, "level": 1},
		{"action": "activate", "id": 171, "level": 2},
		{"action": "recenter"}
	]}`)
	out, _, err := runCLI(t, "inspect", "--script", script, "--width", "800", "--height", "600")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "levels: 4") || !strings.Contains(out, "open path: [177 176 171]") {
		t.Errorf("output %q, want three opens", out)
	}
	if !strings.Contains(out, "pan: (400.0, 300.0)") {
		t.Errorf("output %q, want camera back at the center", out)
	}
}

func TestInspectDataAndConfig(t *testing.T) {
	data := writeFile(t, "tree.json", `{"id": 1, "label": "root", "children": [{"id": 2}, {"id": 3}, {"id": 4}]}`)
	cfg := writeFile(t, "canopy.yaml", "horizontal_spacing: 1000\n")
	out, _, err := runCLI(t, "inspect", "--data", data, "--config", cfg, "--width", "400", "--height", "400")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Siblings 1000 apart: only the middle one fits a 400px viewport.
	if !strings.Contains(out, "indexed nodes: 4") || !strings.Contains(out, "visible nodes: 2") {
		t.Errorf("output %q", out)
	}
}

func TestInspectErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown demo", []string{"inspect", "--demo", "forest"}},
		{"missing data", []string{"inspect", "--data", "/nonexistent/tree.json"}},
		{"bad viewport", []string{"inspect", "--width", "0"}},
		{"bad fanout", []string{"inspect", "--demo", "shared", "--fanout", "0"}},
		{"missing script", []string{"inspect", "--script", "/nonexistent/script.json"}},
		{"extra args", []string{"inspect", "extra"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := runCLI(t, tt.args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestVerboseLogsDebug(t *testing.T) {
	_, logs, err := runCLI(t, "inspect", "-v")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(logs, "indexed tree") {
		t.Errorf("logs %q should include engine debug output", logs)
	}
}

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("expected the default logger without one attached")
	}
	l := newLogger(&bytes.Buffer{}, log.DebugLevel)
	if loggerFromContext(withLogger(context.Background(), l)) != l {
		t.Error("expected the attached logger")
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	p := newProgress(newLogger(&buf, log.InfoLevel))
	p.done("Loaded tree", "source", "org chart")
	if !strings.Contains(buf.String(), "Loaded tree") || !strings.Contains(buf.String(), "elapsed") {
		t.Errorf("output %q", buf.String())
	}
}
