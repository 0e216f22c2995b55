// SPDX-License-Identifier: EPL-2.0

// Package controller turns MIDI input into note trigger events.
package controller

import gomidi "gitlab.com/gomidi/midi/v2"

// Status nibbles of the messages the pad bank reacts to.
const (
	NoteOff uint8 = 0x80
	NoteOn  uint8 = 0x90
)

// Event is one {status, note, velocity} triple. Status carries the MIDI
// channel in its low nibble.
type Event struct {
	Status   uint8
	Note     uint8
	Velocity uint8
}

// Channel returns the zero-based MIDI channel.
func (e Event) Channel() uint8 {
	return e.Status & 0x0F
}

// IsNoteOn reports a note-on with positive velocity. A note-on with zero
// velocity is a note-off by convention.
func (e Event) IsNoteOn() bool {
	return e.Status&0xF0 == NoteOn && e.Velocity > 0
}

// FromMessage converts note messages. Other messages report false.
func FromMessage(msg gomidi.Message) (Event, bool) {
	var channel, note, velocity uint8
	switch {
	case msg.GetNoteOn(&channel, &note, &velocity):
		return Event{Status: NoteOn | channel, Note: note, Velocity: velocity}, true
	case msg.GetNoteOff(&channel, &note, &velocity):
		return Event{Status: NoteOff | channel, Note: note, Velocity: velocity}, true
	default:
		return Event{}, false
	}
}
