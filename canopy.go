package canopy

// Node is a vertex of the caller's hierarchy. The engine only reads ID and
// Children and never writes to a Node, so child slices may be shared by
// reference across any number of parents.
type Node struct {
	// ID must be unique across the whole tree.
	ID int64
	// Payload is opaque caller data, passed through to VisibleNode.
	Payload any
	// Children is the ordered child list. It may be nil, empty, or aliased.
	Children []*Node
}

// HasChildren reports whether n has at least one child.
func (n *Node) HasChildren() bool {
	return n != nil && len(n.Children) > 0
}

// Vec2 is a 2D point in world space.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned world-space rectangle, half-open on the right and
// bottom edges: a point is inside when Left <= x < Right and Top <= y < Bottom.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// Contains reports whether (x, y) lies inside the half-open rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.Left && x < r.Right &&
		y >= r.Top && y < r.Bottom
}

// Width returns Right - Left.
func (r Rect) Width() float64 { return r.Right - r.Left }

// Height returns Bottom - Top.
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// Transition describes what an activation did to the expansion state.
type Transition uint8

const (
	TransitionNone     Transition = iota // leaf or stale activation, state unchanged
	TransitionExpand                     // the node's children were revealed
	TransitionCollapse                   // the node's subtree was retracted
)

// String returns a lowercase name for the transition.
func (t Transition) String() string {
	switch t {
	case TransitionExpand:
		return "expand"
	case TransitionCollapse:
		return "collapse"
	default:
		return "none"
	}
}

// VisibleNode is a node materialized for the current frame. All positional
// fields are recomputed on every culling pass.
type VisibleNode struct {
	ID          int64
	X, Y        float64 // world-space top-left of the node's slot
	Level       int     // depth, 0 for the root
	Index       int     // position within the level's sibling sequence
	HasChildren bool
	IsExpanded  bool // the node is the open node of its level
	Payload     any
	Node        *Node
}

// Polyline is a connected run of world-space points drawn as one primitive.
// Key is stable for a given level and visible column window.
type Polyline struct {
	Key    string
	Points []Vec2
}

// Activation is delivered to the activation handler on every node click,
// whether or not it changed the expansion state.
type Activation struct {
	Node       VisibleNode
	Transition Transition
}

// Frame is the engine output for one recompute.
type Frame struct {
	Nodes  []VisibleNode
	Edges  []Polyline
	Camera CameraState
	Bounds Rect // world-space culling rectangle including the margin
}

// Primitives returns the number of draw primitives the frame needs: one per
// node and one per polyline.
func (f Frame) Primitives() int {
	return len(f.Nodes) + len(f.Edges)
}
