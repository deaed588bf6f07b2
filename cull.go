package canopy

// Cull appends to dst the nodes of layout whose position lies inside r and
// returns the extended slice. Nodes are ordered by level, then sibling index.
//
// Only the rows and columns that intersect r are visited, so the cost is
// proportional to the number of nodes returned, not to the tree size. Ids
// missing from idx are skipped.
func Cull(dst []VisibleNode, idx *Index, layout Layout, r Rect) []VisibleNode {
	rowStart, rowEnd := layout.RowRange(r)
	for level := rowStart; level < rowEnd; level++ {
		ids := layout.exp.Level(level)
		colStart, colEnd := layout.ColumnRange(level, r)
		y := layout.NodeY(level)
		for i := colStart; i < colEnd; i++ {
			id := ids[i]
			n, ok := idx.Lookup(id)
			if !ok {
				continue
			}
			dst = append(dst, VisibleNode{
				ID:          id,
				X:           layout.NodeX(level, i),
				Y:           y,
				Level:       level,
				Index:       i,
				HasChildren: n.HasChildren(),
				IsExpanded:  layout.exp.IsOpen(level, id),
				Payload:     n.Payload,
				Node:        n,
			})
		}
	}
	return dst
}
