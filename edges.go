package canopy

import "strconv"

// BuildEdges appends the connector polylines for every level below the root
// that has at least one node inside r, and returns the extended slice.
//
// Each such level contributes exactly two polylines regardless of how many
// siblings are visible:
//
//   - a horizontal connector at the level's connector height that dips down
//     to the top of every visible sibling and back up, as one strip;
//   - a vertical stem from the bottom of the opening node down to the
//     connector height.
func BuildEdges(dst []Polyline, cfg Config, layout Layout, r Rect) []Polyline {
	anchor := cfg.lineAnchor()
	rowStart, rowEnd := layout.RowRange(r)
	if rowStart < 1 {
		rowStart = 1
	}
	for level := rowStart; level < rowEnd; level++ {
		start, end := layout.ColumnRange(level, r)
		if start >= end {
			continue
		}
		levelY := layout.NodeY(level)
		connectorY := levelY - (cfg.VerticalSpacing-cfg.NodeHeight)/2

		horizontal := make([]Vec2, 0, 3*(end-start))
		for i := start; i < end; i++ {
			x := layout.NodeX(level, i) + anchor
			horizontal = append(horizontal,
				Vec2{X: x, Y: connectorY},
				Vec2{X: x, Y: levelY},
				Vec2{X: x, Y: connectorY},
			)
		}

		stemX := layout.exp.ParentOffset(level) + anchor
		parentBottom := layout.NodeY(level-1) + cfg.NodeHeight
		vertical := []Vec2{
			{X: stemX, Y: parentBottom},
			{X: stemX, Y: connectorY},
		}

		dst = append(dst,
			Polyline{Key: edgeKey('h', level, start, end), Points: horizontal},
			Polyline{Key: edgeKey('v', level, start, end), Points: vertical},
		)
	}
	return dst
}

// edgeKey formats "line-<kind>-<level>-<start>-<end>".
func edgeKey(kind byte, level, start, end int) string {
	b := make([]byte, 0, 32)
	b = append(b, "line-"...)
	b = append(b, kind, '-')
	b = strconv.AppendInt(b, int64(level), 10)
	b = append(b, '-')
	b = strconv.AppendInt(b, int64(start), 10)
	b = append(b, '-')
	b = strconv.AppendInt(b, int64(end), 10)
	return string(b)
}
