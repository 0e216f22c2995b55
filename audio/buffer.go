// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
)

// Buffer is a fully decoded, interleaved float32 sample buffer.
type Buffer struct {
	SampleRate int
	Channels   int
	Data       []float32
}

// Frames is the number of sample frames (samples per channel).
func (b *Buffer) Frames() int {
	if b == nil || b.Channels <= 0 {
		return 0
	}
	return len(b.Data) / b.Channels
}

// Duration in seconds.
func (b *Buffer) Duration() float64 {
	if b == nil || b.SampleRate <= 0 {
		return 0
	}
	return float64(b.Frames()) / float64(b.SampleRate)
}

// Slice returns a view of the frames between start and end seconds. Bounds
// are clamped to the buffer; the returned buffer shares Data with b.
func (b *Buffer) Slice(start, end float64) *Buffer {
	frames := b.Frames()
	first := min(max(int(start*float64(b.SampleRate)), 0), frames)
	last := min(max(int(end*float64(b.SampleRate)), first), frames)

	return &Buffer{
		SampleRate: b.SampleRate,
		Channels:   b.Channels,
		Data:       b.Data[first*b.Channels : last*b.Channels],
	}
}

// ReadAll drains src into a Buffer and closes it.
func ReadAll(src Source) (*Buffer, error) {
	defer src.Close()

	if src.SampleRate() <= 0 || src.Channels() <= 0 {
		return nil, ErrInvalidFormat
	}

	b := &Buffer{
		SampleRate: src.SampleRate(),
		Channels:   src.Channels(),
		Data:       make([]float32, 0, src.SampleRate()*src.Channels()),
	}

	// a whole number of frames per read keeps interleaving intact
	chunk := make([]float32, 1024*src.Channels())
	stalls := 0
	for {
		n, err := src.ReadSamples(chunk)
		b.Data = append(b.Data, chunk[:n]...)

		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}

		if n == 0 {
			stalls++
			if stalls > 64 {
				break
			}
			continue
		}
		stalls = 0
	}

	// drop a trailing partial frame
	b.Data = b.Data[:b.Frames()*b.Channels]
	return b, nil
}

type bufferSource struct {
	b   *Buffer
	pos int
}

// NewBufferSource streams b as a Source.
func NewBufferSource(b *Buffer) Source {
	return &bufferSource{b: b}
}

func (s *bufferSource) SampleRate() int { return s.b.SampleRate }
func (s *bufferSource) Channels() int   { return s.b.Channels }
func (s *bufferSource) Close() error    { return nil }

func (s *bufferSource) ReadSamples(dst []float32) (int, error) {
	if len(dst)%s.b.Channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if s.pos >= len(s.b.Data) {
		return 0, io.EOF
	}

	n := copy(dst, s.b.Data[s.pos:])
	s.pos += n
	if s.pos >= len(s.b.Data) {
		return n, io.EOF
	}
	return n, nil
}
