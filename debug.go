package canopy

import "time"

// debugStats holds per-recompute timing and output sizes.
// Only populated when debug mode is on.
type debugStats struct {
	cullTime   time.Duration
	edgeTime   time.Duration
	nodeCount  int
	edgeCount  int
	levelCount int
}

// debugLog reports recompute stats through the engine logger.
func (e *Engine) debugLog(stats debugStats) {
	if !e.debug {
		return
	}
	e.logger.Debug("frame",
		"cull", stats.cullTime,
		"edges", stats.edgeTime,
		"total", stats.cullTime+stats.edgeTime,
		"nodes", stats.nodeCount,
		"polylines", stats.edgeCount,
		"levels", stats.levelCount,
	)
	if stats.levelCount > 0 && stats.edgeCount > 2*stats.levelCount {
		e.logger.Warn("edge count exceeds two per level", "polylines", stats.edgeCount, "levels", stats.levelCount)
	}
}
