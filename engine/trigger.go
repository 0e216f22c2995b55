// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"context"

	"github.com/ik5/padbank/controller"
	"github.com/ik5/padbank/debug"
)

// HandleNote plays the pad mapped to a note-on. Note-offs, zero-velocity
// note-ons and notes outside the pads are ignored. The selection is never
// changed. It reports whether anything was played.
func (e *Engine) HandleNote(ev controller.Event) bool {
	if !ev.IsNoteOn() {
		return false
	}

	idx := int(ev.Note) - e.baseNote
	played := e.PlayIndex(idx)
	debug.Log("midi", "note %d vel %d -> pad %d played=%t", ev.Note, ev.Velocity, idx, played)
	return played
}

// RunController dispatches events until ctx is done or events is closed.
func (e *Engine) RunController(ctx context.Context, events <-chan controller.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			e.HandleNote(ev)
		}
	}
}
