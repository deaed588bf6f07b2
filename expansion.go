package canopy

// Expansion is the drill-down state: which node is open at each depth, the
// resulting sequence of visible levels, and the horizontal anchor each level
// is centered on.
//
// Expansion is a value. Activate returns a new Expansion and never modifies
// the receiver, so a previous state stays valid after a transition.
type Expansion struct {
	levels  [][]int64
	open    map[int]int64
	offsets map[int]float64
}

// NewExpansion returns the initial state for a tree: the root alone at level
// 0, opened, with its children (if any) as level 1.
func NewExpansion(idx *Index) Expansion {
	e := Expansion{
		open:    map[int]int64{},
		offsets: map[int]float64{0: 0},
	}
	root := idx.Root()
	if root == nil {
		return e
	}
	e.levels = [][]int64{{root.ID}}
	e.open[0] = root.ID
	if kids := idx.ChildIDs(root.ID); len(kids) > 0 {
		e.levels = append(e.levels, kids)
	}
	return e
}

// Depth returns the number of visible levels.
func (e Expansion) Depth() int {
	return len(e.levels)
}

// Level returns the ordered ids at depth d, or nil when d is out of range.
// The returned slice MUST NOT be mutated.
func (e Expansion) Level(d int) []int64 {
	if d < 0 || d >= len(e.levels) {
		return nil
	}
	return e.levels[d]
}

// Levels returns a copy of the level sequence. Inner slices are shared.
func (e Expansion) Levels() [][]int64 {
	out := make([][]int64, len(e.levels))
	copy(out, e.levels)
	return out
}

// Open returns the id of the open node at depth d.
func (e Expansion) Open(d int) (int64, bool) {
	id, ok := e.open[d]
	return id, ok
}

// IsOpen reports whether id is the open node at depth d.
func (e Expansion) IsOpen(d int, id int64) bool {
	cur, ok := e.open[d]
	return ok && cur == id
}

// OpenPath returns the open ids ordered by depth.
func (e Expansion) OpenPath() []int64 {
	path := make([]int64, 0, len(e.open))
	for d := 0; d < len(e.levels); d++ {
		if id, ok := e.open[d]; ok {
			path = append(path, id)
		}
	}
	return path
}

// ParentOffset returns the x anchor that level d is centered on: the x of
// the node that opened it, or 0 for the root level.
func (e Expansion) ParentOffset(d int) float64 {
	if d <= 0 {
		return 0
	}
	return e.offsets[d-1]
}

// Activate applies a click on node id, located at depth level with world x
// coordinate x, and returns the resulting state.
//
// Leaves and stale activations (the id is not at that level any more) leave
// the state unchanged and report TransitionNone. Otherwise every level below
// the clicked one is dropped along with its open entries; if id was already
// open it stays closed (collapse), else it is opened and its children become
// the next level (expand). The root is never closed: activating it again
// re-opens level 1 and retracts everything deeper.
func (e Expansion) Activate(idx *Index, id int64, level int, x float64) (Expansion, Transition) {
	if !e.contains(level, id) {
		return e, TransitionNone
	}
	n, ok := idx.Lookup(id)
	if !ok || !n.HasChildren() {
		return e, TransitionNone
	}

	next := Expansion{
		// Full slice expression so a later append never writes into the
		// receiver's backing array.
		levels:  e.levels[: level+1 : level+1],
		open:    make(map[int]int64, level+1),
		offsets: make(map[int]float64, level+1),
	}
	for d, v := range e.open {
		if d < level {
			next.open[d] = v
		}
	}
	for d, v := range e.offsets {
		if d < level {
			next.offsets[d] = v
		}
	}
	next.offsets[level] = x

	transition := TransitionExpand
	if e.IsOpen(level, id) && level > 0 {
		transition = TransitionCollapse
	} else {
		next.open[level] = id
		if kids := idx.ChildIDs(id); len(kids) > 0 {
			next.levels = append(next.levels, kids)
		}
	}
	return next, transition
}

// contains reports whether id sits at depth level.
func (e Expansion) contains(level int, id int64) bool {
	for _, v := range e.Level(level) {
		if v == id {
			return true
		}
	}
	return false
}

// indexOf returns id's sibling index at depth level, or -1.
func (e Expansion) indexOf(level int, id int64) int {
	for i, v := range e.Level(level) {
		if v == id {
			return i
		}
	}
	return -1
}
