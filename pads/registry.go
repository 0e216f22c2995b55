// SPDX-License-Identifier: EPL-2.0

package pads

import (
	"fmt"

	"github.com/ik5/padbank/audio"
)

// MaxPads is the fixed number of addressable pad slots.
const MaxPads = 16

// DefaultBaseNote is the controller note mapped to pad 0 (C1).
const DefaultBaseNote = 36

// Entry seeds one slot of a batch.
type Entry struct {
	Name    string
	Locator string
}

// Registry owns the ordered pad slots and the current selection. The
// selection is an identity key resolved on every lookup, so replacing a slot
// can never leave a dangling reference.
//
// Registry is not safe for concurrent use; the engine serialises access.
type Registry struct {
	slots    []*Sample
	selected string
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Reset replaces every slot with bufferless samples built from entries and
// clears the selection. Entries without a name, repeated names and entries
// beyond MaxPads are skipped and reported.
func (r *Registry) Reset(entries []Entry) (skipped []string) {
	r.slots = make([]*Sample, 0, min(len(entries), MaxPads))
	r.selected = ""

	seen := make(map[string]bool, len(entries))
	for i, e := range entries {
		switch {
		case e.Name == "":
			skipped = append(skipped, fmt.Sprintf("#%d: missing name", i))
		case seen[e.Name]:
			skipped = append(skipped, fmt.Sprintf("%s: duplicate name", e.Name))
		case len(r.slots) >= MaxPads:
			skipped = append(skipped, fmt.Sprintf("%s: all %d pads in use", e.Name, MaxPads))
		default:
			seen[e.Name] = true
			r.slots = append(r.slots, &Sample{Name: e.Name, Locator: e.Locator})
		}
	}
	return skipped
}

// Len is the number of slots in use.
func (r *Registry) Len() int {
	return len(r.slots)
}

// At returns the slot at index i.
func (r *Registry) At(i int) (*Sample, bool) {
	if i < 0 || i >= len(r.slots) {
		return nil, false
	}
	return r.slots[i], true
}

// Lookup finds a slot by identity.
func (r *Registry) Lookup(name string) (*Sample, int, bool) {
	for i, s := range r.slots {
		if s.Name == name {
			return s, i, true
		}
	}
	return nil, -1, false
}

// Contains reports whether s is still one of the registry's slots.
func (r *Registry) Contains(s *Sample) bool {
	for _, slot := range r.slots {
		if slot == s {
			return true
		}
	}
	return false
}

// Samples returns copies of all slots in order.
func (r *Registry) Samples() []Sample {
	out := make([]Sample, len(r.slots))
	for i, s := range r.slots {
		out[i] = *s
	}
	return out
}

// Attach stores buf on s with a full-duration trim. It reports false when s
// is no longer in the registry, e.g. because a new preset replaced it while
// it was loading.
func (r *Registry) Attach(s *Sample, buf *audio.Buffer) bool {
	if buf == nil || !r.Contains(s) {
		return false
	}
	s.attach(buf)
	return true
}

// Select makes name the current selection.
func (r *Registry) Select(name string) error {
	if _, _, ok := r.Lookup(name); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSample, name)
	}
	r.selected = name
	return nil
}

// ClearSelection leaves nothing selected.
func (r *Registry) ClearSelection() {
	r.selected = ""
}

// Selected resolves the current selection.
func (r *Registry) Selected() (*Sample, bool) {
	if r.selected == "" {
		return nil, false
	}
	s, _, ok := r.Lookup(r.selected)
	return s, ok
}

// FirstWithBuffer returns the first slot, in order, that has a buffer.
func (r *Registry) FirstWithBuffer() (*Sample, bool) {
	for _, s := range r.slots {
		if s.HasBuffer() {
			return s, true
		}
	}
	return nil, false
}
