// SPDX-License-Identifier: EPL-2.0

// Package capture records takes from an input device, decodes them and
// hands finished recordings to the pad allocator.
package capture

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/ik5/padbank/audio"
	"github.com/ik5/padbank/debug"
	"github.com/ik5/padbank/pads"
)

// State of the capture pipeline.
type State int

const (
	Idle State = iota
	Armed
	Recording
	Decoding
	Ready
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Armed:
		return "armed"
	case Recording:
		return "recording"
	case Decoding:
		return "decoding"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Inserter places a committed recording into the pad registry.
type Inserter interface {
	InsertRecorded(name string, buf *audio.Buffer) error
}

// Pipeline drives one capture session at a time.
type Pipeline struct {
	device   Device
	decoder  pads.Decoder
	inserter Inserter
	notify   pads.Notifier

	armMu sync.Mutex

	mu       sync.Mutex
	state    State
	stream   Stream
	take     uuid.UUID
	awaiting bool
	last     *audio.Buffer
}

// NewPipeline creates an idle pipeline. A nil notifier is replaced by
// pads.NopNotifier.
func NewPipeline(device Device, decoder pads.Decoder, inserter Inserter, notify pads.Notifier) *Pipeline {
	if notify == nil {
		notify = pads.NopNotifier{}
	}
	return &Pipeline{
		device:   device,
		decoder:  decoder,
		inserter: inserter,
		notify:   notify,
	}
}

// State returns the current state.
func (p *Pipeline) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.state
}

// IsRecording mirrors State() == Recording.
func (p *Pipeline) IsRecording() bool {
	return p.State() == Recording
}

// Last returns the decoded take waiting to be committed, if any.
func (p *Pipeline) Last() (*audio.Buffer, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.last, p.last != nil
}

// Arm acquires a capture stream. Arming an armed pipeline is a no-op. On
// denial the pipeline stays idle and the error wraps pads.ErrPermission.
func (p *Pipeline) Arm(ctx context.Context) error {
	p.armMu.Lock()
	defer p.armMu.Unlock()

	p.mu.Lock()
	armed := p.stream != nil
	p.mu.Unlock()
	if armed {
		return nil
	}

	stream, err := p.device.Acquire(ctx, p.deliver)
	if err != nil {
		err = wrapKind(pads.ErrPermission, err)
		debug.Log("capture", "arm: %v", err)
		p.notify.Error(nil, err)
		p.notify.Status(nil, pads.Status{Phase: pads.PhaseError, Message: "microphone unavailable"})
		return err
	}

	p.mu.Lock()
	p.stream = stream
	p.state = Armed
	p.mu.Unlock()

	debug.Log("capture", "armed")
	return nil
}

// Start begins a new take, discarding any uncommitted one. It is a no-op
// while recording and fails with ErrNotArmed without a stream.
func (p *Pipeline) Start() error {
	p.mu.Lock()
	if p.state == Recording {
		p.mu.Unlock()
		return nil
	}
	if p.stream == nil {
		p.mu.Unlock()
		return ErrNotArmed
	}

	if err := p.stream.Start(); err != nil {
		p.mu.Unlock()
		debug.Log("capture", "start: %v", err)
		p.notify.Error(nil, err)
		return err
	}

	p.last = nil
	p.awaiting = false
	p.take = uuid.New()
	p.state = Recording
	take := p.take
	p.mu.Unlock()

	debug.Log("capture", "take %s: recording", take)
	p.notify.RecordingStarted()
	p.notify.Status(nil, pads.Status{Phase: pads.PhaseConnecting, Message: "recording"})
	return nil
}

// Stop ends the current take. The captured audio arrives asynchronously
// from the device. Stop is a no-op unless recording.
func (p *Pipeline) Stop() error {
	p.mu.Lock()
	if p.state != Recording {
		p.mu.Unlock()
		return nil
	}
	p.state = Armed
	p.awaiting = true
	stream, take := p.stream, p.take
	p.mu.Unlock()

	if err := stream.Stop(); err != nil {
		debug.Log("capture", "take %s: stop: %v", take, err)
		p.notify.Error(nil, err)
	}

	debug.Log("capture", "take %s: stopped", take)
	p.notify.RecordingStopped()
	return nil
}

func (p *Pipeline) deliver(data []byte) {
	p.mu.Lock()
	if !p.awaiting {
		p.mu.Unlock()
		debug.Log("capture", "dropping %d bytes delivered outside a take", len(data))
		return
	}
	p.awaiting = false
	take := p.take

	if len(data) == 0 {
		p.mu.Unlock()
		debug.Log("capture", "take %s: empty", take)
		return
	}

	p.state = Decoding
	p.mu.Unlock()

	p.notify.Status(nil, pads.Status{Phase: pads.PhaseDecoding, Message: "decoding recording"})

	buf, err := p.decoder.Decode(context.Background(), data)

	p.mu.Lock()
	if p.take != take || p.state != Decoding {
		p.mu.Unlock()
		debug.Log("capture", "take %s: superseded", take)
		return
	}
	if err != nil {
		p.state = Failed
		p.mu.Unlock()

		err = wrapKind(pads.ErrDecode, err)
		debug.Log("capture", "take %s: %v", take, err)
		p.notify.Error(nil, err)
		p.notify.Status(nil, pads.Status{Phase: pads.PhaseError, Message: "recording could not be decoded"})
		return
	}
	p.last = buf
	p.state = Ready
	p.mu.Unlock()

	debug.Log("capture", "take %s: ready, %.3fs", take, buf.Duration())
	p.notify.CaptureReady()
	p.notify.Status(nil, pads.Status{Phase: pads.PhaseReady, Message: "recording ready"})
}

// Commit inserts the decoded take under name and clears it. Without a
// decoded take it fails with pads.ErrAllocation.
func (p *Pipeline) Commit(name string) error {
	p.mu.Lock()
	buf := p.last
	if buf == nil {
		p.mu.Unlock()
		return fmt.Errorf("%w: no recording ready", pads.ErrAllocation)
	}
	p.last = nil
	p.state = Armed
	p.mu.Unlock()

	if err := p.inserter.InsertRecorded(name, buf); err != nil {
		return wrapKind(pads.ErrAllocation, err)
	}

	debug.Log("capture", "committed %q", name)
	return nil
}

// Close releases the capture stream and returns to idle.
func (p *Pipeline) Close() error {
	p.mu.Lock()
	stream := p.stream
	p.stream = nil
	p.state = Idle
	p.awaiting = false
	p.last = nil
	p.mu.Unlock()

	if stream == nil {
		return nil
	}
	return stream.Close()
}

func wrapKind(kind, err error) error {
	if errors.Is(err, kind) {
		return err
	}
	return fmt.Errorf("%w: %w", kind, err)
}
