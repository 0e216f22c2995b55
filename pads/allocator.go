// SPDX-License-Identifier: EPL-2.0

package pads

import (
	"fmt"

	"github.com/ik5/padbank/audio"
)

// DefaultRecordingName names a committed recording when none is given.
const DefaultRecordingName = "Custom Rec"

// InsertRecorded places a freshly recorded buffer into a slot and selects
// it. The slot is, in order of preference: the first slot without a buffer,
// a new slot appended while fewer than MaxPads exist, the selected slot,
// the last slot.
//
// A name already used by another slot gets a numeric suffix so identities
// stay unique.
func (r *Registry) InsertRecorded(name string, buf *audio.Buffer) (*Sample, int, error) {
	if buf == nil {
		return nil, -1, ErrAllocation
	}
	if name == "" {
		name = DefaultRecordingName
	}

	target := r.allocate()
	s := &Sample{Name: r.uniqueName(name, target)}
	s.attach(buf)

	if target == len(r.slots) {
		r.slots = append(r.slots, s)
	} else {
		r.slots[target] = s
	}
	r.selected = s.Name

	return s, target, nil
}

func (r *Registry) allocate() int {
	for i, s := range r.slots {
		if !s.HasBuffer() {
			return i
		}
	}
	if len(r.slots) < MaxPads {
		return len(r.slots)
	}
	if _, i, ok := r.Lookup(r.selected); ok && r.selected != "" {
		return i
	}
	return len(r.slots) - 1
}

// uniqueName returns name, or name with the lowest free " N" suffix, so
// that it collides with no slot other than the one at skip.
func (r *Registry) uniqueName(name string, skip int) string {
	taken := func(candidate string) bool {
		for i, s := range r.slots {
			if i != skip && s.Name == candidate {
				return true
			}
		}
		return false
	}

	if !taken(name) {
		return name
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s %d", name, n)
		if !taken(candidate) {
			return candidate
		}
	}
}
