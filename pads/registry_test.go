// SPDX-License-Identifier: EPL-2.0

package pads

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/padbank/audio"
)

func seconds(d float64) *audio.Buffer {
	frames := int(d * 100)
	return &audio.Buffer{SampleRate: 100, Channels: 1, Data: make([]float32, frames)}
}

func entries(names ...string) []Entry {
	out := make([]Entry, len(names))
	for i, n := range names {
		out[i] = Entry{Name: n, Locator: "http://kits/" + n + ".wav"}
	}
	return out
}

func fullRegistry(t *testing.T) *Registry {
	t.Helper()

	names := make([]string, MaxPads)
	for i := range names {
		names[i] = fmt.Sprintf("pad%d", i+1)
	}

	r := NewRegistry()
	require.Empty(t, r.Reset(entries(names...)))
	for i := range MaxPads {
		s, _ := r.At(i)
		require.True(t, r.Attach(s, seconds(1)))
	}
	return r
}

func assertUniqueNames(t *testing.T, r *Registry) {
	t.Helper()

	seen := map[string]bool{}
	for _, s := range r.Samples() {
		assert.False(t, seen[s.Name], "duplicate identity %q", s.Name)
		seen[s.Name] = true
	}
}

func TestRegistry_Reset(t *testing.T) {
	r := NewRegistry()

	in := append(entries("kick", "snare"), Entry{Name: ""}, Entry{Name: "kick"})
	skipped := r.Reset(in)

	assert.Len(t, skipped, 2)
	assert.Equal(t, 2, r.Len())

	s, ok := r.At(0)
	require.True(t, ok)
	assert.Equal(t, "kick", s.Name)
	assert.False(t, s.HasBuffer())

	_, ok = r.Selected()
	assert.False(t, ok)
}

func TestRegistry_ResetTruncatesToMaxPads(t *testing.T) {
	names := make([]string, MaxPads+4)
	for i := range names {
		names[i] = fmt.Sprintf("s%d", i)
	}

	r := NewRegistry()
	skipped := r.Reset(entries(names...))

	assert.Equal(t, MaxPads, r.Len())
	assert.Len(t, skipped, 4)
}

func TestRegistry_AttachSetsFullTrim(t *testing.T) {
	r := NewRegistry()
	r.Reset(entries("kick"))
	s, _ := r.At(0)

	require.True(t, r.Attach(s, seconds(2)))
	assert.Equal(t, 0.0, s.TrimStart)
	assert.Equal(t, 2.0, s.TrimEnd)
}

func TestRegistry_AttachRejectsStaleSample(t *testing.T) {
	r := NewRegistry()
	r.Reset(entries("kick"))
	stale, _ := r.At(0)

	r.Reset(entries("kick"))
	assert.False(t, r.Attach(stale, seconds(1)))

	fresh, _ := r.At(0)
	assert.False(t, fresh.HasBuffer())
}

func TestRegistry_SelectionByIdentity(t *testing.T) {
	r := NewRegistry()
	r.Reset(entries("kick", "snare"))

	require.NoError(t, r.Select("snare"))
	s, ok := r.Selected()
	require.True(t, ok)
	assert.Equal(t, "snare", s.Name)

	assert.ErrorIs(t, r.Select("tom"), ErrUnknownSample)

	r.ClearSelection()
	_, ok = r.Selected()
	assert.False(t, ok)
}

func TestRegistry_FirstWithBuffer(t *testing.T) {
	r := NewRegistry()
	r.Reset(entries("kick", "snare", "hat"))

	_, ok := r.FirstWithBuffer()
	assert.False(t, ok)

	hat, _ := r.At(2)
	snare, _ := r.At(1)
	r.Attach(hat, seconds(1))
	r.Attach(snare, seconds(1))

	got, ok := r.FirstWithBuffer()
	require.True(t, ok)
	assert.Equal(t, "snare", got.Name)
}

func TestSample_SetTrimClamps(t *testing.T) {
	tests := []struct {
		name               string
		start, end         float64
		wantStart, wantEnd float64
	}{
		{"inside", 0.5, 1.5, 0.5, 1.5},
		{"negative start", -1, 1, 0, 1},
		{"end past duration", 0.5, 9, 0.5, 2},
		{"end before start keeps trim", 1.5, 1, 0, 2},
		{"empty range keeps trim", 1, 1, 0, 2},
		{"start past duration keeps trim", 3, 4, 0, 2},
		{"negative end keeps trim", 0, -1, 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Sample{Name: "kick"}
			s.attach(seconds(2))
			s.SetTrim(tt.start, tt.end)

			start, end := s.Trim()
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestSample_SetTrimWithoutBuffer(t *testing.T) {
	s := &Sample{Name: "kick"}
	s.SetTrim(1, 2)

	start, end := s.Trim()
	assert.Zero(t, start)
	assert.Zero(t, end)
	assert.Zero(t, s.Duration())
}
