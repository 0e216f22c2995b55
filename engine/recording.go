// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"context"
	"fmt"

	"github.com/ik5/padbank/audio"
	"github.com/ik5/padbank/capture"
	"github.com/ik5/padbank/debug"
	"github.com/ik5/padbank/pads"
	"github.com/ik5/padbank/trim"
)

var _ capture.Inserter = (*Engine)(nil)

// ArmCapture acquires the input device.
func (e *Engine) ArmCapture(ctx context.Context) error {
	if e.capture == nil {
		return capture.ErrNotArmed
	}
	return e.capture.Arm(ctx)
}

// StartRecording begins a take.
func (e *Engine) StartRecording() error {
	if e.capture == nil {
		return capture.ErrNotArmed
	}
	return e.capture.Start()
}

// StopRecording ends the current take.
func (e *Engine) StopRecording() error {
	if e.capture == nil {
		return nil
	}
	return e.capture.Stop()
}

// IsRecording reports whether a take is being recorded.
func (e *Engine) IsRecording() bool {
	return e.capture != nil && e.capture.IsRecording()
}

// CaptureState returns the capture pipeline state.
func (e *Engine) CaptureState() capture.State {
	if e.capture == nil {
		return capture.Idle
	}
	return e.capture.State()
}

// CommitRecording inserts the decoded take as a pad named name, or
// pads.DefaultRecordingName when name is empty.
func (e *Engine) CommitRecording(name string) error {
	if e.capture == nil {
		return fmt.Errorf("%w: no capture device", pads.ErrAllocation)
	}
	return e.capture.Commit(name)
}

// PlayRecording plays the uncommitted take in full.
func (e *Engine) PlayRecording() error {
	if e.capture == nil {
		return pads.ErrNoBuffer
	}
	buf, ok := e.capture.Last()
	if !ok {
		return fmt.Errorf("%w: no recording ready", pads.ErrNoBuffer)
	}
	e.player.Play(buf, 0, buf.Duration())
	return nil
}

// InsertRecorded places buf in a pad and selects it.
func (e *Engine) InsertRecorded(name string, buf *audio.Buffer) error {
	var out outbox

	e.mu.Lock()
	outgoing, _ := e.reg.Selected()
	var prev trim.Region
	if outgoing != nil {
		prev = outgoing
	}

	s, idx, err := e.reg.InsertRecorded(name, buf)
	if err != nil {
		e.mu.Unlock()
		return err
	}

	buffered := e.trim.Select(prev, s)
	snap := *s
	out.add(func() {
		e.notify.SampleReady(snap)
		e.notify.SampleSelected(snap)
	})
	if e.preview && buffered {
		e.playLocked(s, &out)
	}
	e.mu.Unlock()

	debug.Log("engine", "recording %q placed in pad %d", snap.Name, idx)
	out.flush()
	return nil
}

// Close releases the capture device.
func (e *Engine) Close() error {
	if e.capture == nil {
		return nil
	}
	return e.capture.Close()
}
