// SPDX-License-Identifier: EPL-2.0

package loader

import (
	"math"
	"sync"
)

// unknownCap keeps the fallback below 100 so only a finished decode reads
// as complete.
const unknownCap = 95

// Percent converts a byte count to a progress percentage. With a known
// total it is the clamped ratio. Without one it grows with log10 of the
// bytes received, is at least 1 once any bytes arrived and never exceeds
// unknownCap.
func Percent(received, total int64) int {
	if received <= 0 {
		return 0
	}

	if total > 0 {
		pct := int(math.Floor(float64(received) / float64(total) * 100))
		return min(max(pct, 0), 100)
	}

	pct := int(math.Floor(math.Log10(1+float64(received)) * 12))
	return min(max(pct, 1), unknownCap)
}

// Tracker keeps reported percentages non-decreasing per sample, even when
// a retry or a changed total would move them backwards.
type Tracker struct {
	mu   sync.Mutex
	last map[string]int
}

func NewTracker() *Tracker {
	return &Tracker{last: make(map[string]int)}
}

// Update records progress for name and returns the percentage to show.
func (t *Tracker) Update(name string, received, total int64) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	pct := max(Percent(received, total), t.last[name])
	t.last[name] = pct
	return pct
}

// Complete pins name at 100.
func (t *Tracker) Complete(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.last[name] = 100
}

// Get returns the last percentage reported for name.
func (t *Tracker) Get(name string) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.last[name]
}

// Reset forgets every sample.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	clear(t.last)
}
