// SPDX-License-Identifier: EPL-2.0

package controller

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSource_DeliverAfterClose(t *testing.T) {
	t.Parallel()

	stopped := false
	s := &Source{name: "pads", events: make(chan Event, 2), stop: func() { stopped = true }}
	kick := Event{Status: NoteOn, Note: 36, Velocity: 100}

	require.True(t, s.deliver(kick))
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
	assert.True(t, stopped)

	assert.NotPanics(t, func() { assert.False(t, s.deliver(kick)) })

	got := []Event{}
	for ev := range s.Events() {
		got = append(got, ev)
	}
	assert.Equal(t, []Event{kick}, got)
}

func TestSource_DeliverDropsWhenFull(t *testing.T) {
	t.Parallel()

	s := &Source{name: "pads", events: make(chan Event, 1)}
	assert.True(t, s.deliver(Event{Status: NoteOn, Note: 36, Velocity: 1}))
	assert.False(t, s.deliver(Event{Status: NoteOn, Note: 37, Velocity: 1}))
}

func TestSource_CloseRacesCallbacks(t *testing.T) {
	t.Parallel()

	s := &Source{name: "pads", events: make(chan Event, 8)}

	var wg sync.WaitGroup
	for i := range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				s.deliver(Event{Status: NoteOn, Note: uint8(36 + i), Velocity: 1})
			}
		}()
	}
	require.NoError(t, s.Close())
	wg.Wait()
}
