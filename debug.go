package xrinput

import (
	"fmt"
	"time"

	"github.com/kataras/golog"
)

var logger = golog.Child("[xrinput]")

// debugStats holds per-frame input metrics.
// Only populated when Scene.debug is true.
type debugStats struct {
	processTime    time.Duration
	pointerCount   int
	skippedCount   int
	candidateCount int
	eventCount     int
	objectCount    int
}

// debugLog writes frame stats through the package logger.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	logger.Debugf("input: %v | pointers: %d (skipped %d) | objects: %d | candidates: %d | events: %d",
		stats.processTime, stats.pointerCount, stats.skippedCount,
		stats.objectCount, stats.candidateCount, stats.eventCount)
}

// debugCheckDisposed panics with a descriptive message when a disposed object
// is used in a scene operation. Only called in debug mode.
func debugCheckDisposed(o *Object, op string) {
	if o.disposed {
		panic(fmt.Sprintf("xrinput debug: %s on disposed object %q (ID was %d)", op, o.Name, o.ID))
	}
}
