// SPDX-License-Identifier: EPL-2.0

// Package audiotest holds audio fixtures shared by tests.
package audiotest

import (
	"io"
	"math"
)

// Waveform returns the value of frame at channel.
type Waveform func(frame, channel int) float32

// Silence is the zero waveform.
func Silence(int, int) float32 { return 0 }

// Sine returns a full-scale sine at freq Hz for the given sample rate.
func Sine(sampleRate int, freq float64) Waveform {
	return func(frame, _ int) float32 {
		t := float64(frame) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * freq * t))
	}
}

// Source generates a fixed number of frames from a Waveform. It satisfies
// audio.Source structurally.
type Source struct {
	sampleRate int
	channels   int
	frames     int
	pos        int
	wave       Waveform
	closed     bool
}

// NewSource creates a source of frames frames per channel.
func NewSource(sampleRate, channels, frames int, wave Waveform) *Source {
	return &Source{
		sampleRate: sampleRate,
		channels:   channels,
		frames:     frames,
		wave:       wave,
	}
}

func (s *Source) SampleRate() int { return s.sampleRate }
func (s *Source) Channels() int   { return s.channels }
func (s *Source) Closed() bool    { return s.closed }

func (s *Source) Close() error {
	s.closed = true
	return nil
}

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if s.pos >= s.frames {
		return 0, io.EOF
	}

	n := min(len(dst)/s.channels, s.frames-s.pos)
	for f := range n {
		for c := range s.channels {
			dst[f*s.channels+c] = s.wave(s.pos+f, c)
		}
	}
	s.pos += n

	if s.pos >= s.frames {
		return n * s.channels, io.EOF
	}
	return n * s.channels, nil
}
