package canopy

// Index maps node ids to nodes for every node reachable from a root. It is
// built once per input tree and never modified afterwards.
type Index struct {
	root       *Node
	nodes      map[int64]*Node
	duplicates []int64
}

// BuildIndex walks the tree rooted at root and indexes every reachable node
// by id. A node object reachable through several parents (shared child
// slices) is walked once. When two distinct node objects declare the same id
// the first one seen wins and the id is recorded in Duplicates.
//
// A nil root produces an empty index.
func BuildIndex(root *Node) *Index {
	idx := &Index{root: root, nodes: make(map[int64]*Node)}
	if root == nil {
		return idx
	}

	// Explicit stack: real trees can be far deeper than is comfortable to
	// recurse through.
	seen := make(map[*Node]struct{})
	stack := []*Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n == nil {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}

		if prev, ok := idx.nodes[n.ID]; ok && prev != n {
			idx.duplicates = append(idx.duplicates, n.ID)
		} else {
			idx.nodes[n.ID] = n
		}

		// Push in reverse so children are visited in declaration order,
		// which keeps first-seen-wins aligned with a pre-order walk.
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, n.Children[i])
		}
	}
	return idx
}

// Root returns the node the index was built from.
func (x *Index) Root() *Node {
	return x.root
}

// Len returns the number of distinct ids.
func (x *Index) Len() int {
	return len(x.nodes)
}

// Lookup returns the node registered under id.
func (x *Index) Lookup(id int64) (*Node, bool) {
	n, ok := x.nodes[id]
	return n, ok
}

// Contains reports whether id is indexed.
func (x *Index) Contains(id int64) bool {
	_, ok := x.nodes[id]
	return ok
}

// ChildIDs returns the ids of id's children in order. The result is a new
// slice; the node's Children slice is never exposed for writing. Unknown ids
// and leaves return nil.
func (x *Index) ChildIDs(id int64) []int64 {
	n, ok := x.nodes[id]
	if !ok || len(n.Children) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(n.Children))
	for _, c := range n.Children {
		if c != nil {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

// Duplicates returns the ids that were declared by more than one distinct
// node object, in discovery order. The returned slice MUST NOT be mutated.
func (x *Index) Duplicates() []int64 {
	return x.duplicates
}
