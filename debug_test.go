package canopy

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestDebugLogDisabled(t *testing.T) {
	var buf bytes.Buffer
	e := &Engine{logger: log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})}
	e.debugLog(debugStats{nodeCount: 5})
	if buf.Len() != 0 {
		t.Errorf("debugLog wrote %q with debug mode off", buf.String())
	}
}

func TestDebugLogStats(t *testing.T) {
	var buf bytes.Buffer
	e := &Engine{logger: log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel}), debug: true}
	e.debugLog(debugStats{
		cullTime:   time.Millisecond,
		edgeTime:   time.Millisecond,
		nodeCount:  12,
		edgeCount:  4,
		levelCount: 3,
	})
	out := buf.String()
	if !strings.Contains(out, "nodes=12") || !strings.Contains(out, "polylines=4") {
		t.Errorf("output %q missing counts", out)
	}
	if strings.Contains(out, "exceeds") {
		t.Errorf("output %q should not warn", out)
	}
}

func TestDebugLogWarnsOnEdgeBudget(t *testing.T) {
	var buf bytes.Buffer
	e := &Engine{logger: log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel}), debug: true}
	e.debugLog(debugStats{edgeCount: 7, levelCount: 3})
	if !strings.Contains(buf.String(), "edge count exceeds two per level") {
		t.Errorf("output %q should warn", buf.String())
	}
}
