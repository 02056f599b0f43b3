package pipeline

import "sync/atomic"

// Generation is a monotonic counter used by callers to supersede
// in-flight pipeline results. Each edit takes a new generation before
// invoking Build; when the build finishes, the result is kept only if
// its generation is still current. Running work is never interrupted --
// all stages are pure and bounded, so "cancellation" is just discarding
// a stale result.
type Generation struct {
	current atomic.Uint64
}

// Next advances the counter and returns the new generation.
func (g *Generation) Next() uint64 {
	return g.current.Add(1)
}

// Current returns the latest generation.
func (g *Generation) Current() uint64 {
	return g.current.Load()
}

// IsCurrent reports whether a result built under gen is still the
// newest one.
func (g *Generation) IsCurrent(gen uint64) bool {
	return g.current.Load() == gen
}
