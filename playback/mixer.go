// SPDX-License-Identifier: EPL-2.0

// Package playback turns play requests into sound: a voice mixer that
// any output can pull from, and a malgo output device driving it.
package playback

import (
	"sync"

	"github.com/ik5/padbank/audio"
	"github.com/ik5/padbank/debug"
)

// MaxVoices bounds simultaneous voices. The oldest voice is dropped when
// a new one would exceed it.
const MaxVoices = 32

type voice struct {
	data []float32
	pos  int
}

// Mixer sums triggered regions into an interleaved float32 output at a
// fixed rate and channel count.
type Mixer struct {
	sampleRate int
	channels   int

	mu     sync.Mutex
	voices []*voice
}

func NewMixer(sampleRate, channels int) *Mixer {
	return &Mixer{sampleRate: sampleRate, channels: channels}
}

func (m *Mixer) SampleRate() int { return m.sampleRate }
func (m *Mixer) Channels() int   { return m.channels }

// Play queues the region [start, end) seconds of buf. It returns
// immediately.
func (m *Mixer) Play(buf *audio.Buffer, start, end float64) {
	if buf == nil {
		return
	}

	region := buf.Slice(start, end)
	if region.Frames() == 0 {
		return
	}

	region = audio.Remix(audio.Resample(region, m.sampleRate), m.channels)
	if len(region.Data) == 0 {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.voices) >= MaxVoices {
		debug.Log("playback", "voice limit reached, dropping oldest")
		m.voices = m.voices[1:]
	}
	m.voices = append(m.voices, &voice{data: region.Data})
}

// Active is the number of voices still sounding.
func (m *Mixer) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.voices)
}

// Stop silences every voice.
func (m *Mixer) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.voices = nil
}

// Mix overwrites out with the sum of all voices, clipped to [-1, 1], and
// advances them. Finished voices are released.
func (m *Mixer) Mix(out []float32) {
	clear(out)

	m.mu.Lock()
	defer m.mu.Unlock()

	live := m.voices[:0]
	for _, v := range m.voices {
		n := min(len(out), len(v.data)-v.pos)
		for i := range n {
			out[i] += v.data[v.pos+i]
		}
		v.pos += n
		if v.pos < len(v.data) {
			live = append(live, v)
		}
	}
	clear(m.voices[len(live):])
	m.voices = live

	for i, s := range out {
		out[i] = min(max(s, -1), 1)
	}
}
