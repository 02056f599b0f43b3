// Package virtual tracks estimated versus measured block heights so a
// presentation layer can map scroll offsets to block indices without
// laying out the whole document. The cache is advisory rather than
// correctness-critical: stale estimates degrade scroll-jump accuracy but
// never produce invalid state.
package virtual

import "github.com/yaklabco/mdview/pkg/render"

// noiseThreshold is the minimum delta between a new measurement and the
// current height before the measurement is recorded, absorbing sub-pixel
// layout jitter.
const noiseThreshold = 2.0

// defaultEstimates seed each block kind with a typical height before any
// measurement arrives.
//
//nolint:gochecknoglobals // Read-only estimate table
var defaultEstimates = map[render.BlockKind]float64{
	render.BlockText:     80,
	render.BlockCode:     200,
	render.BlockTable:    250,
	render.BlockImage:    300,
	render.BlockDiagram:  400,
	render.BlockMath:     120,
	render.BlockTaskList: 120,
}

// fallbackEstimate covers kinds missing from the table.
const fallbackEstimate = 80.0

// HeightCache maps block indices to heights, seeded by per-kind
// estimates and refined by measured feedback. It is owned exclusively by
// the presentation layer; it is the only mutable structure in the
// pipeline and is not safe for concurrent writers.
type HeightCache struct {
	kinds    []render.BlockKind
	measured map[int]float64
}

// NewHeightCache seeds a cache for the given block sequence.
func NewHeightCache(blocks []render.Block) *HeightCache {
	kinds := make([]render.BlockKind, len(blocks))
	for i, b := range blocks {
		kinds[i] = b.Kind
	}

	return &HeightCache{
		kinds:    kinds,
		measured: make(map[int]float64),
	}
}

// Len returns the number of tracked blocks.
func (c *HeightCache) Len() int {
	return len(c.kinds)
}

// Height returns the best known height for a block index: the measured
// value when one was recorded, the kind estimate otherwise.
func (c *HeightCache) Height(index int) float64 {
	if index < 0 || index >= len(c.kinds) {
		return 0
	}
	if h, ok := c.measured[index]; ok {
		return h
	}
	return estimateFor(c.kinds[index])
}

// Record stores a measured height for a block index, overriding the
// estimate. Measurements within the noise threshold of the current value
// are dropped to avoid thrashing on layout jitter.
func (c *HeightCache) Record(index int, height float64) {
	if index < 0 || index >= len(c.kinds) || height <= 0 {
		return
	}

	current := c.Height(index)
	delta := height - current
	if delta < 0 {
		delta = -delta
	}
	if delta <= noiseThreshold {
		return
	}

	c.measured[index] = height
}

// CumulativeHeight returns the summed heights of blocks [0, index).
func (c *HeightCache) CumulativeHeight(index int) float64 {
	if index > len(c.kinds) {
		index = len(c.kinds)
	}

	total := 0.0
	for i := 0; i < index; i++ {
		total += c.Height(i)
	}
	return total
}

// TotalHeight returns the summed heights of every block.
func (c *HeightCache) TotalHeight() float64 {
	return c.CumulativeHeight(len(c.kinds))
}

// BlockAt maps a vertical offset to the index of the block containing
// it. Offsets past the end map to the last block; negative offsets map
// to the first.
func (c *HeightCache) BlockAt(offset float64) int {
	if len(c.kinds) == 0 {
		return 0
	}
	if offset <= 0 {
		return 0
	}

	top := 0.0
	for i := range c.kinds {
		top += c.Height(i)
		if offset < top {
			return i
		}
	}
	return len(c.kinds) - 1
}

// Clear drops every measured override, reverting to pure estimates.
// Called whenever the block sequence is replaced by a new render.
func (c *HeightCache) Clear() {
	c.measured = make(map[int]float64)
}

// Reset replaces the tracked block sequence and drops all measurements.
func (c *HeightCache) Reset(blocks []render.Block) {
	kinds := make([]render.BlockKind, len(blocks))
	for i, b := range blocks {
		kinds[i] = b.Kind
	}
	c.kinds = kinds
	c.Clear()
}

func estimateFor(kind render.BlockKind) float64 {
	if h, ok := defaultEstimates[kind]; ok {
		return h
	}
	return fallbackEstimate
}
