// SPDX-License-Identifier: EPL-2.0

package audio

import "github.com/ik5/padbank/utils"

// Resample converts b to rate using Catmull-Rom interpolation between
// neighbouring frames. Channel count is preserved.
func Resample(b *Buffer, rate int) *Buffer {
	if rate <= 0 || b.SampleRate == rate || b.Frames() == 0 {
		return b
	}

	ch := b.Channels
	frames := b.Frames()
	ratio := float64(b.SampleRate) / float64(rate)
	outFrames := int(float64(frames) / ratio)

	out := &Buffer{
		SampleRate: rate,
		Channels:   ch,
		Data:       make([]float32, outFrames*ch),
	}

	at := func(frame, c int) float32 {
		frame = min(max(frame, 0), frames-1)
		return b.Data[frame*ch+c]
	}

	for i := range outFrames {
		pos := float64(i) * ratio
		idx := int(pos)
		x := float32(pos - float64(idx))
		for c := range ch {
			out.Data[i*ch+c] = utils.CubicInterpolate(
				at(idx-1, c), at(idx, c), at(idx+1, c), at(idx+2, c), x)
		}
	}

	return out
}

// Remix changes b to the requested channel count. Going down to mono
// averages all channels; going up copies mono (or the downmix) to every
// output channel.
func Remix(b *Buffer, channels int) *Buffer {
	if channels <= 0 || b.Channels == channels {
		return b
	}

	mono := downmix(b)
	if channels == 1 {
		return mono
	}

	frames := mono.Frames()
	out := &Buffer{
		SampleRate: b.SampleRate,
		Channels:   channels,
		Data:       make([]float32, frames*channels),
	}
	for f := range frames {
		for c := range channels {
			out.Data[f*channels+c] = mono.Data[f]
		}
	}
	return out
}

func downmix(b *Buffer) *Buffer {
	if b.Channels == 1 {
		return b
	}

	frames := b.Frames()
	inv := float32(1) / float32(b.Channels)
	out := &Buffer{
		SampleRate: b.SampleRate,
		Channels:   1,
		Data:       make([]float32, frames),
	}

	switch b.Channels {
	case 2:
		for f := range frames {
			out.Data[f] = (b.Data[2*f] + b.Data[2*f+1]) * 0.5
		}
	default:
		for f := range frames {
			var sum float32
			for _, v := range b.Data[f*b.Channels : (f+1)*b.Channels] {
				sum += v
			}
			out.Data[f] = sum * inv
		}
	}
	return out
}
