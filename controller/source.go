// SPDX-License-Identifier: EPL-2.0

package controller

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // register driver

	"github.com/ik5/padbank/debug"
)

var ErrNoPort = errors.New("no matching midi input")

// Source listens to one MIDI input port.
type Source struct {
	name   string
	stop   func()
	events chan Event

	once   sync.Once
	mu     sync.Mutex
	closed bool
}

// Ports lists the available input port names.
func Ports() []string {
	ins := gomidi.GetInPorts()
	names := make([]string, len(ins))
	for i, in := range ins {
		names[i] = in.String()
	}
	return names
}

// MatchPort returns the index of the first name containing want, ignoring
// case. An empty want matches the first name.
func MatchPort(names []string, want string) (int, bool) {
	want = strings.ToLower(strings.TrimSpace(want))
	for i, n := range names {
		if want == "" || strings.Contains(strings.ToLower(n), want) {
			return i, true
		}
	}
	return -1, false
}

// Open starts listening on the first input whose name contains port.
func Open(port string) (*Source, error) {
	ins := gomidi.GetInPorts()

	names := make([]string, len(ins))
	for i, in := range ins {
		names[i] = in.String()
	}

	i, ok := MatchPort(names, port)
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %s)", ErrNoPort, port, strings.Join(names, ", "))
	}

	return listen(ins[i])
}

func listen(in drivers.In) (*Source, error) {
	s := &Source{
		name:   in.String(),
		events: make(chan Event, 64),
	}

	stop, err := gomidi.ListenTo(in, func(msg gomidi.Message, _ int32) {
		if ev, ok := FromMessage(msg); ok {
			s.deliver(ev)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("open input %s: %w", s.name, err)
	}
	s.stop = stop

	debug.Log("midi", "listening on %s", s.name)
	return s, nil
}

// Name of the port being listened to.
func (s *Source) Name() string {
	return s.name
}

// Events delivers note events. It is closed by Close.
func (s *Source) Events() <-chan Event {
	return s.events
}

// deliver queues ev unless the consumer is behind or the source is closed.
// The driver may still run a callback while Close is in progress.
func (s *Source) deliver(ev Event) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}
	select {
	case s.events <- ev:
		return true
	default:
		debug.Log("midi", "%s: event dropped, consumer behind", s.name)
		return false
	}
}

func (s *Source) Close() error {
	s.once.Do(func() {
		if s.stop != nil {
			s.stop()
		}

		s.mu.Lock()
		s.closed = true
		close(s.events)
		s.mu.Unlock()
	})
	return nil
}
