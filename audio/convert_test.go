// SPDX-License-Identifier: EPL-2.0

package audio_test

import (
	"math"
	"testing"

	"github.com/ik5/padbank/audio"
)

func constant(rate, channels, frames int, v float32) *audio.Buffer {
	b := &audio.Buffer{SampleRate: rate, Channels: channels, Data: make([]float32, frames*channels)}
	for i := range b.Data {
		b.Data[i] = v
	}
	return b
}

func TestResample(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		from, to   int
		frames     int
		wantFrames int
	}{
		{"upsample", 8000, 16000, 800, 1600},
		{"downsample", 48000, 16000, 4800, 1600},
		{"same rate", 44100, 44100, 441, 441},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			in := constant(tt.from, 2, tt.frames, 0.25)
			out := audio.Resample(in, tt.to)

			if out.SampleRate != tt.to {
				t.Errorf("SampleRate = %d, want %d", out.SampleRate, tt.to)
			}
			if out.Frames() != tt.wantFrames {
				t.Errorf("Frames() = %d, want %d", out.Frames(), tt.wantFrames)
			}
			if math.Abs(out.Duration()-in.Duration()) > 1e-3 {
				t.Errorf("Duration() = %v, want %v", out.Duration(), in.Duration())
			}
			for i, v := range out.Data {
				if math.Abs(float64(v-0.25)) > 1e-5 {
					t.Fatalf("sample %d = %v, constant signal must stay constant", i, v)
				}
			}
		})
	}
}

func TestRemix(t *testing.T) {
	t.Parallel()

	stereo := &audio.Buffer{SampleRate: 8000, Channels: 2, Data: []float32{1, 0, 0.5, 0.5}}

	mono := audio.Remix(stereo, 1)
	if mono.Channels != 1 || len(mono.Data) != 2 || mono.Data[0] != 0.5 || mono.Data[1] != 0.5 {
		t.Errorf("Remix(stereo, 1) = %+v", mono)
	}

	back := audio.Remix(mono, 2)
	if back.Channels != 2 || len(back.Data) != 4 || back.Data[0] != back.Data[1] {
		t.Errorf("Remix(mono, 2) = %+v", back)
	}

	quad := &audio.Buffer{SampleRate: 8000, Channels: 4, Data: []float32{1, 1, 0, 0}}
	if got := audio.Remix(quad, 1); got.Data[0] != 0.5 {
		t.Errorf("Remix(quad, 1) = %v, want 0.5", got.Data[0])
	}

	if audio.Remix(stereo, 2) != stereo {
		t.Error("Remix to the same layout should return the input")
	}
}
