// Package canopy is a layout and windowing engine for browsing very large
// trees one branch at a time.
//
// The engine keeps a single open path from the root (one expanded node per
// depth level), lays each visible level out centered beneath the node that
// opened it, and culls that layout against a pan/zoom camera. Only the nodes
// inside the visible rectangle are ever materialized, so the per-frame cost
// tracks what is on screen rather than the size of the tree. Trees with
// shared child slices can describe hundreds of millions of virtual nodes
// while the index only holds the distinct ones.
//
// # Quick start
//
//	root := &canopy.Node{ID: 0, Children: kids}
//	eng, err := canopy.NewEngine(root, canopy.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	eng.Resize(1280, 800)
//
//	// Once per tick:
//	eng.Update(1.0 / 60)
//	frame := eng.Frame()
//	for _, n := range frame.Nodes {
//		// draw n at (n.X, n.Y) through frame.Camera
//	}
//	for _, pl := range frame.Edges {
//		// draw pl.Points as one line strip
//	}
//
// # Input
//
// Hosts translate their own events into engine calls: [Engine.Activate] for
// clicks on a node, [Camera.Drag] for pointer drags, [Camera.Wheel] for
// scroll wheels (coalesced to one pan update per [Engine.Update]), and
// [Camera.ZoomIn], [Camera.ZoomOut] and [Camera.Recenter] for zoom controls.
//
// The ebitenview subpackage is a complete host built on [Ebitengine].
//
// # Edges
//
// Each visible level below the root produces exactly two polylines: a
// horizontal connector with a tick down to every visible sibling, and a
// vertical stem up to the opening node. Edge cost is therefore independent
// of fan-out.
//
// [Ebitengine]: https://ebitengine.org
package canopy
