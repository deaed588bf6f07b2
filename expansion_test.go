package canopy

import (
	"slices"
	"testing"

	"pgregory.net/rapid"
)

func levelsEqual(a, b [][]int64) bool {
	return slices.EqualFunc(a, b, func(x, y []int64) bool { return slices.Equal(x, y) })
}

func TestNewExpansionOpensRoot(t *testing.T) {
	idx := BuildIndex(scenarioTree())
	exp := NewExpansion(idx)

	want := [][]int64{{0}, {1, 2}}
	if !levelsEqual(exp.Levels(), want) {
		t.Errorf("Levels = %v, want %v", exp.Levels(), want)
	}
	if !exp.IsOpen(0, 0) {
		t.Error("root should be open")
	}
	if _, ok := exp.Open(1); ok {
		t.Error("level 1 should have no open node")
	}
}

func TestNewExpansionLeafRoot(t *testing.T) {
	exp := NewExpansion(BuildIndex(&Node{ID: 9}))
	if exp.Depth() != 1 {
		t.Errorf("Depth = %d, want 1", exp.Depth())
	}
	if empty := NewExpansion(BuildIndex(nil)); empty.Depth() != 0 {
		t.Errorf("empty Depth = %d, want 0", empty.Depth())
	}
}

func TestExpansionScenario(t *testing.T) {
	idx := BuildIndex(scenarioTree())
	cfg := DefaultConfig()
	exp := NewExpansion(idx)

	// Expand node 1.
	x1 := NewLayout(cfg, exp).NodeX(1, 0)
	exp, tr := exp.Activate(idx, 1, 1, x1)
	if tr != TransitionExpand {
		t.Fatalf("transition = %v, want expand", tr)
	}
	if want := [][]int64{{0}, {1, 2}, {3, 4, 5}}; !levelsEqual(exp.Levels(), want) {
		t.Fatalf("Levels = %v, want %v", exp.Levels(), want)
	}
	if !exp.IsOpen(1, 1) {
		t.Error("node 1 should be open at level 1")
	}

	layout := NewLayout(cfg, exp)
	if !approxEqual(x1, -75, epsilon) {
		t.Errorf("x(1) = %f, want -75", x1)
	}
	for i, want := range []float64{-225, -75, 75} {
		if got := layout.NodeX(2, i); !approxEqual(got, want, epsilon) {
			t.Errorf("x(level 2, %d) = %f, want %f", i, got, want)
		}
	}
	if got := layout.NodeY(2); !approxEqual(got, 200, epsilon) {
		t.Errorf("y(level 2) = %f, want 200", got)
	}

	// Collapse node 1.
	exp, tr = exp.Activate(idx, 1, 1, x1)
	if tr != TransitionCollapse {
		t.Fatalf("transition = %v, want collapse", tr)
	}
	if want := [][]int64{{0}, {1, 2}}; !levelsEqual(exp.Levels(), want) {
		t.Errorf("Levels = %v, want %v", exp.Levels(), want)
	}
	if _, ok := exp.Open(1); ok {
		t.Error("level 1 should have no open node after collapse")
	}
}

func TestExpansionSiblingSwitch(t *testing.T) {
	a := &Node{ID: 1, Children: []*Node{{ID: 10}, {ID: 11}}}
	b := &Node{ID: 2, Children: []*Node{{ID: 20}}}
	idx := BuildIndex(&Node{ID: 0, Children: []*Node{a, b}})
	exp := NewExpansion(idx)

	exp, _ = exp.Activate(idx, 1, 1, -75)
	exp, _ = exp.Activate(idx, 10, 2, -150) // leaf
	exp, tr := exp.Activate(idx, 2, 1, 75)

	if tr != TransitionExpand {
		t.Fatalf("transition = %v, want expand", tr)
	}
	if want := [][]int64{{0}, {1, 2}, {20}}; !levelsEqual(exp.Levels(), want) {
		t.Errorf("Levels = %v, want %v", exp.Levels(), want)
	}
	if exp.IsOpen(1, 1) || !exp.IsOpen(1, 2) {
		t.Error("open node at level 1 should move to node 2")
	}
	if got := exp.ParentOffset(2); got != 75 {
		t.Errorf("ParentOffset(2) = %f, want 75", got)
	}
}

func TestExpansionLeafAndStale(t *testing.T) {
	idx := BuildIndex(scenarioTree())
	exp := NewExpansion(idx)

	tests := []struct {
		name  string
		id    int64
		level int
	}{
		{"leaf", 2, 1},
		{"wrong level", 1, 2},
		{"not visible", 3, 2},
		{"unknown id", 99, 1},
		{"negative level", 0, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, tr := exp.Activate(idx, tt.id, tt.level, 0)
			if tr != TransitionNone {
				t.Errorf("transition = %v, want none", tr)
			}
			if !levelsEqual(next.Levels(), exp.Levels()) {
				t.Errorf("Levels = %v, want unchanged %v", next.Levels(), exp.Levels())
			}
		})
	}
}

func TestExpansionRootNeverCollapses(t *testing.T) {
	idx := BuildIndex(scenarioTree())
	exp := NewExpansion(idx)
	exp, _ = exp.Activate(idx, 1, 1, -75)

	exp, tr := exp.Activate(idx, 0, 0, 0)
	if tr != TransitionExpand {
		t.Fatalf("transition = %v, want expand", tr)
	}
	if want := [][]int64{{0}, {1, 2}}; !levelsEqual(exp.Levels(), want) {
		t.Errorf("Levels = %v, want %v", exp.Levels(), want)
	}
	if !exp.IsOpen(0, 0) {
		t.Error("root should stay open")
	}
}

func TestExpansionActivateDoesNotMutateReceiver(t *testing.T) {
	idx := BuildIndex(scenarioTree())
	base := NewExpansion(idx)
	expanded, _ := base.Activate(idx, 1, 1, -75)
	before := expanded.Levels()

	// Truncating and re-expanding from base must not write into expanded.
	_, _ = base.Activate(idx, 0, 0, 0)
	_, _ = expanded.Activate(idx, 1, 1, -75)

	if !levelsEqual(expanded.Levels(), before) {
		t.Errorf("expanded Levels = %v, want %v", expanded.Levels(), before)
	}
	if base.Depth() != 2 {
		t.Errorf("base Depth = %d, want 2", base.Depth())
	}
}

func TestExpansionOpenPath(t *testing.T) {
	root := sharedTree(3, 4)
	idx := BuildIndex(root)
	exp := NewExpansion(idx)
	for level := 1; level < 4; level++ {
		id := exp.Level(level)[0]
		exp, _ = exp.Activate(idx, id, level, 0)
	}
	path := exp.OpenPath()
	if len(path) != 4 || path[0] != 0 {
		t.Errorf("OpenPath = %v, want root plus three opens", path)
	}
	if exp.Depth() != 5 {
		t.Errorf("Depth = %d, want 5", exp.Depth())
	}
}

func TestExpansionInvariants(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		root := genTree(t)
		idx := BuildIndex(root)
		cfg := DefaultConfig()
		exp := activateRandom(t, idx, cfg, NewExpansion(idx), rapid.IntRange(0, 20).Draw(t, "steps"))

		levels := exp.Levels()
		if len(levels) == 0 || !slices.Equal(levels[0], []int64{root.ID}) {
			t.Fatalf("levels[0] = %v, want [%d]", levels, root.ID)
		}

		deepest := -1
		for d := 0; d < len(levels); d++ {
			if _, ok := exp.Open(d); ok {
				deepest = d
			}
		}
		if len(levels) > deepest+2 {
			t.Fatalf("len(levels) = %d with deepest open %d", len(levels), deepest)
		}

		for d := 0; d+1 < len(levels); d++ {
			id, ok := exp.Open(d)
			if !ok {
				t.Fatalf("level %d shown but level %d has no open node", d+1, d)
			}
			if !slices.Contains(levels[d], id) {
				t.Fatalf("open node %d not in level %d", id, d)
			}
			if !slices.Equal(levels[d+1], idx.ChildIDs(id)) {
				t.Fatalf("level %d = %v, want children of %d", d+1, levels[d+1], id)
			}
		}
	})
}

func TestExpansionExpandCollapseInverse(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		root := genTree(t)
		idx := BuildIndex(root)
		cfg := DefaultConfig()
		exp := activateRandom(t, idx, cfg, NewExpansion(idx), rapid.IntRange(0, 10).Draw(t, "steps"))

		level := exp.Depth() - 1
		if level < 1 {
			return
		}
		var candidates []int
		for i, id := range exp.Level(level) {
			if n, _ := idx.Lookup(id); n.HasChildren() {
				candidates = append(candidates, i)
			}
		}
		if len(candidates) == 0 {
			return
		}
		col := candidates[rapid.IntRange(0, len(candidates)-1).Draw(t, "candidate")]
		id := exp.Level(level)[col]
		x := NewLayout(cfg, exp).NodeX(level, col)

		expanded, tr := exp.Activate(idx, id, level, x)
		if tr != TransitionExpand {
			t.Fatalf("first activation = %v, want expand", tr)
		}
		collapsed, tr := expanded.Activate(idx, id, level, x)
		if tr != TransitionCollapse {
			t.Fatalf("second activation = %v, want collapse", tr)
		}
		if !levelsEqual(collapsed.Levels(), exp.Levels()) {
			t.Fatalf("Levels = %v, want %v", collapsed.Levels(), exp.Levels())
		}
		if !slices.Equal(collapsed.OpenPath(), exp.OpenPath()) {
			t.Fatalf("OpenPath = %v, want %v", collapsed.OpenPath(), exp.OpenPath())
		}
	})
}
