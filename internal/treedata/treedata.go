// Package treedata loads input trees for the canopy viewer: JSON files,
// the built-in org chart sample, and synthetic trees whose levels share
// child slices so that billions of virtual nodes cost a few hundred
// allocations.
package treedata

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/goccy/go-json"

	"github.com/phanxgames/canopy"
)

// ErrEmptyTree is returned when a document holds no root node.
var ErrEmptyTree = errors.New("tree has no root")

// jsonNode is the on-disk node shape:
//
//	{"id": 1, "label": "CEO", "children": [ ... ]}
//
// id is optional; missing ids are assigned in pre-order after the largest
// explicit id.
type jsonNode struct {
	ID       *int64      `json:"id"`
	Label    string      `json:"label"`
	Children []*jsonNode `json:"children"`
}

// Decode reads one JSON tree from r. Node labels become string payloads.
func Decode(r io.Reader) (*canopy.Node, error) {
	var root *jsonNode
	if err := json.NewDecoder(r).Decode(&root); err != nil {
		return nil, fmt.Errorf("decode tree: %w", err)
	}
	if root == nil {
		return nil, fmt.Errorf("decode tree: %w", ErrEmptyTree)
	}

	var maxID int64
	walk(root, func(n *jsonNode) {
		if n.ID != nil && *n.ID > maxID {
			maxID = *n.ID
		}
	})
	next := maxID + 1
	return convert(root, &next), nil
}

// Load reads a JSON tree from path.
func Load(path string) (*canopy.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load tree: %w", err)
	}
	defer f.Close()

	root, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("load tree %s: %w", path, err)
	}
	return root, nil
}

// walk visits n and its descendants in pre-order, skipping null entries.
func walk(n *jsonNode, fn func(*jsonNode)) {
	stack := []*jsonNode{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur == nil {
			continue
		}
		fn(cur)
		for i := len(cur.Children) - 1; i >= 0; i-- {
			stack = append(stack, cur.Children[i])
		}
	}
}

func convert(n *jsonNode, next *int64) *canopy.Node {
	out := &canopy.Node{}
	if n.ID != nil {
		out.ID = *n.ID
	} else {
		out.ID = *next
		*next++
	}
	if n.Label != "" {
		out.Payload = n.Label
	}
	if len(n.Children) > 0 {
		out.Children = make([]*canopy.Node, 0, len(n.Children))
		for _, c := range n.Children {
			if c == nil {
				continue
			}
			out.Children = append(out.Children, convert(c, next))
		}
	}
	return out
}

// Shared builds a tree of the given depth in which all nodes of a level
// share one children slice: fanout^depth leaves backed by fanout*depth+1
// distinct nodes. Ids are unique per distinct node and labels name the
// level and slot.
func Shared(fanout, depth int) (*canopy.Node, error) {
	if fanout <= 0 || depth < 0 {
		return nil, fmt.Errorf("shared tree: fanout %d must be positive and depth %d non-negative", fanout, depth)
	}
	id := int64(1)
	var below []*canopy.Node
	for d := depth; d >= 1; d-- {
		level := make([]*canopy.Node, fanout)
		for i := range level {
			level[i] = &canopy.Node{
				ID:       id,
				Payload:  fmt.Sprintf("L%d #%d", d, i+1),
				Children: below,
			}
			id++
		}
		below = level
	}
	return &canopy.Node{ID: 0, Payload: "root", Children: below}, nil
}

// VirtualCount returns the number of nodes a Shared tree presents,
// 1 + fanout + ... + fanout^depth, saturating at math.MaxUint64.
func VirtualCount(fanout, depth int) uint64 {
	if fanout <= 0 || depth < 0 {
		return 0
	}
	total, level := uint64(1), uint64(1)
	for d := 0; d < depth; d++ {
		if level > math.MaxUint64/uint64(fanout) {
			return math.MaxUint64
		}
		level *= uint64(fanout)
		if total > math.MaxUint64-level {
			return math.MaxUint64
		}
		total += level
	}
	return total
}
