// SPDX-License-Identifier: EPL-2.0

package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ik5/padbank/pads"
)

type sampleReadyMsg struct{ sample pads.Sample }

type sampleErrorMsg struct {
	sample pads.Sample
	err    error
}

type sampleSelectedMsg struct{ sample pads.Sample }

type progressMsg struct {
	name            string
	received, total int64
}

type statusMsg struct {
	name   string // empty for capture and batch events
	status pads.Status
}

type errorMsg struct{ err error }

type batchLoadedMsg struct{ loaded, failed int }

type recordingMsg struct{ on bool }

type captureReadyMsg struct{}

// Events is a pads.Notifier that queues engine events for the UI loop.
// Progress events are dropped when the queue is full; every other event
// is delivered eventually, in the order it was sent.
type Events struct {
	ch chan tea.Msg

	mu       sync.Mutex
	overflow []tea.Msg
	draining bool
}

func NewEvents() *Events {
	return &Events{ch: make(chan tea.Msg, 256)}
}

// Listen waits for the next event.
func (e *Events) Listen() tea.Cmd {
	return func() tea.Msg {
		return <-e.ch
	}
}

// send never blocks the caller: the UI loop itself may be the caller
// through an engine callback. Once the queue is full, events wait in
// overflow, which a single goroutine feeds to the queue.
func (e *Events) send(msg tea.Msg) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.overflow) == 0 {
		select {
		case e.ch <- msg:
			return
		default:
		}
	}

	e.overflow = append(e.overflow, msg)
	if !e.draining {
		e.draining = true
		go e.drain()
	}
}

func (e *Events) drain() {
	for {
		e.mu.Lock()
		if len(e.overflow) == 0 {
			e.draining = false
			e.mu.Unlock()
			return
		}
		msg := e.overflow[0]
		e.overflow[0] = nil
		e.overflow = e.overflow[1:]
		e.mu.Unlock()

		e.ch <- msg
	}
}

func (e *Events) SampleReady(s pads.Sample) { e.send(sampleReadyMsg{s}) }

func (e *Events) SampleError(s pads.Sample, err error) { e.send(sampleErrorMsg{s, err}) }

func (e *Events) SampleSelected(s pads.Sample) { e.send(sampleSelectedMsg{s}) }

func (e *Events) LoadProgress(s pads.Sample, received, total int64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.overflow) > 0 {
		return
	}
	select {
	case e.ch <- progressMsg{s.Name, received, total}:
	default:
	}
}

func (e *Events) Status(s *pads.Sample, st pads.Status) {
	name := ""
	if s != nil {
		name = s.Name
	}
	e.send(statusMsg{name, st})
}

// Error reports failures not tied to one pad; per-pad failures already
// arrive through SampleError.
func (e *Events) Error(s *pads.Sample, err error) {
	if s == nil {
		e.send(errorMsg{err})
	}
}

func (e *Events) BatchLoaded(loaded, failed int) { e.send(batchLoadedMsg{loaded, failed}) }
func (e *Events) RecordingStarted()              { e.send(recordingMsg{true}) }
func (e *Events) RecordingStopped()              { e.send(recordingMsg{false}) }
func (e *Events) CaptureReady()                  { e.send(captureReadyMsg{}) }

var _ pads.Notifier = (*Events)(nil)
