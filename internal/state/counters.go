package state

import "fmt"

// CounterName identifies one component counter namespace. The set is closed:
// each component kind owns its own namespace so identifiers never collide
// across kinds while staying sequential within one.
type CounterName string

const (
	CounterWindow         CounterName = "window"
	CounterDoor           CounterName = "door"
	CounterWall           CounterName = "wall"
	CounterFloor          CounterName = "floor"
	CounterCeiling        CounterName = "ceiling"
	CounterFoundation     CounterName = "foundation"
	CounterFoundationWall CounterName = "foundation_wall"
	CounterCrawlspace     CounterName = "crawlspace"
	CounterSlab           CounterName = "slab"
	CounterAttic          CounterName = "attic"
	CounterRoof           CounterName = "roof"
	CounterFloorHeader    CounterName = "floor_header"
)

var knownCounters = map[CounterName]struct{}{
	CounterWindow:         {},
	CounterDoor:           {},
	CounterWall:           {},
	CounterFloor:          {},
	CounterCeiling:        {},
	CounterFoundation:     {},
	CounterFoundationWall: {},
	CounterCrawlspace:     {},
	CounterSlab:           {},
	CounterAttic:          {},
	CounterRoof:           {},
	CounterFloorHeader:    {},
}

// CounterManager tracks the per-kind sequential counters. Values are
// monotonically non-decreasing for the lifetime of one translation call.
type CounterManager struct {
	counts map[CounterName]int
}

// NewCounterManager returns a manager with every known counter at zero.
func NewCounterManager() *CounterManager {
	return &CounterManager{counts: make(map[CounterName]int, len(knownCounters))}
}

// Increment bumps the named counter and returns the post-increment value.
// Unknown names fail: external callers can still supply counter names as
// strings, so the closed set is enforced at runtime here.
func (c *CounterManager) Increment(name CounterName) (int, error) {
	if _, ok := knownCounters[name]; !ok {
		return 0, fmt.Errorf("state: unknown counter %q", name)
	}
	c.counts[name]++
	return c.counts[name], nil
}

// Value returns the current count without incrementing.
func (c *CounterManager) Value(name CounterName) (int, error) {
	if _, ok := knownCounters[name]; !ok {
		return 0, fmt.Errorf("state: unknown counter %q", name)
	}
	return c.counts[name], nil
}
