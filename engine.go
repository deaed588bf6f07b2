package canopy

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Option configures an Engine.
type Option func(*Engine)

// WithLogger routes engine diagnostics (tree indexing, duplicate ids,
// activations, debug frame stats) to l. By default they are discarded.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithActivationHandler registers fn to receive every node activation.
func WithActivationHandler(fn func(Activation)) Option {
	return func(e *Engine) {
		e.onActivate = fn
	}
}

// Engine ties the tree index, expansion state and camera together and
// produces one Frame per recompute. Everything runs on the caller's
// goroutine; an Engine must not be shared between goroutines.
type Engine struct {
	cfg    Config
	idx    *Index
	exp    Expansion
	cam    *Camera
	logger *log.Logger
	debug  bool

	onActivate func(Activation)

	// stateVersion increases whenever the tree or expansion changes.
	stateVersion uint64

	frame             Frame
	frameValid        bool
	frameCamVersion   uint64
	frameStateVersion uint64
}

// NewEngine validates cfg and builds an engine for the tree rooted at root.
// A nil root is allowed and renders nothing.
func NewEngine(root *Node, cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new engine: %w", err)
	}
	e := &Engine{
		cfg:    cfg,
		cam:    newCamera(cfg),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.SetTree(root)
	return e, nil
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Camera returns the camera controller for host input.
func (e *Engine) Camera() *Camera {
	return e.cam
}

// Index returns the tree index.
func (e *Engine) Index() *Index {
	return e.idx
}

// Expansion returns the current expansion state.
func (e *Engine) Expansion() Expansion {
	return e.exp
}

// Layout returns the layout of the current expansion state.
func (e *Engine) Layout() Layout {
	return NewLayout(e.cfg, e.exp)
}

// SetTree replaces the input tree, rebuilding the index and resetting the
// expansion state to the root and its children. The camera is untouched.
func (e *Engine) SetTree(root *Node) {
	e.idx = BuildIndex(root)
	e.exp = NewExpansion(e.idx)
	e.stateVersion++

	if dups := e.idx.Duplicates(); len(dups) > 0 {
		e.logger.Warn("duplicate node ids, keeping first seen", "count", len(dups), "first", dups[0])
	}
	e.logger.Debug("indexed tree", "nodes", e.idx.Len(), "levels", e.exp.Depth())
}

// SetExpansion replaces the expansion state, for hosts that keep their own
// history of states (undo, bookmarks).
func (e *Engine) SetExpansion(exp Expansion) {
	e.exp = exp
	e.stateVersion++
}

// Resize updates the viewport size in pixels.
func (e *Engine) Resize(width, height float64) {
	e.cam.Resize(width, height)
}

// Update advances the camera by dt seconds: pending wheel input is applied
// once and the recenter animation steps forward. Call it once per tick.
func (e *Engine) Update(dt float32) {
	e.cam.update(dt)
}

// Activate handles a click on node id at depth level. The node is expanded,
// collapsed, or (for leaves and stale clicks) left alone, and the activation
// handler is called in every case.
func (e *Engine) Activate(id int64, level int) Activation {
	layout := e.Layout()
	pos, found := layout.Position(level, id)

	next, tr := e.exp.Activate(e.idx, id, level, pos.X)
	if tr != TransitionNone {
		e.exp = next
		e.stateVersion++
	}

	act := Activation{Transition: tr, Node: VisibleNode{ID: id, Level: level}}
	if n, ok := e.idx.Lookup(id); ok && found {
		act.Node = VisibleNode{
			ID:          id,
			X:           pos.X,
			Y:           pos.Y,
			Level:       level,
			Index:       e.exp.indexOf(level, id),
			HasChildren: n.HasChildren(),
			IsExpanded:  e.exp.IsOpen(level, id),
			Payload:     n.Payload,
			Node:        n,
		}
	}

	e.logger.Debug("activate", "id", id, "level", level, "transition", tr, "levels", e.exp.Depth())
	if e.onActivate != nil {
		e.onActivate(act)
	}
	return act
}

// Frame returns the visible nodes and edges for the current state and
// camera. The result is cached until either changes; callers must treat the
// returned slices as read-only.
func (e *Engine) Frame() Frame {
	if e.frameValid && e.frameCamVersion == e.cam.version && e.frameStateVersion == e.stateVersion {
		e.frame.Camera = e.cam.State()
		return e.frame
	}

	var stats debugStats
	var t0 time.Time
	if e.debug {
		t0 = time.Now()
	}

	bounds := e.cam.Viewport().VisibleRect(e.cfg.CullMargin)
	layout := e.Layout()
	nodes := Cull(make([]VisibleNode, 0, len(e.frame.Nodes)), e.idx, layout, bounds)

	if e.debug {
		stats.cullTime = time.Since(t0)
		t0 = time.Now()
	}

	edges := BuildEdges(make([]Polyline, 0, len(e.frame.Edges)), e.cfg, layout, bounds)

	if e.debug {
		stats.edgeTime = time.Since(t0)
		stats.nodeCount = len(nodes)
		stats.edgeCount = len(edges)
		stats.levelCount = e.exp.Depth()
		e.debugLog(stats)
	}

	e.frame = Frame{
		Nodes:  nodes,
		Edges:  edges,
		Camera: e.cam.State(),
		Bounds: bounds,
	}
	e.frameValid = true
	e.frameCamVersion = e.cam.version
	e.frameStateVersion = e.stateVersion
	return e.frame
}

// SetDebugMode enables or disables per-recompute timing and count logging
// at debug level.
func (e *Engine) SetDebugMode(enabled bool) {
	e.debug = enabled
}
