// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/padbank/audio"
)

// go-mp3 always produces 16-bit little-endian stereo.
const outputChannels = 2

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type source struct {
	dec        mp3Reader
	sampleRate int
	buf        []byte
	carry      []byte
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return outputChannels }
func (s *source) Close() error    { return nil }

func (s *source) ReadSamples(dst []float32) (int, error) {
	want := len(dst) * 2
	if cap(s.buf) < want {
		s.buf = make([]byte, want)
	}

	// an odd byte left over from the previous read starts this one
	filled := copy(s.buf[:want], s.carry)
	s.carry = s.carry[:0]

	n, err := s.dec.Read(s.buf[filled:want])
	filled += n

	samples := filled / 2
	for i := range samples {
		dst[i] = float32(int16(binary.LittleEndian.Uint16(s.buf[2*i:]))) / 32768.0
	}
	if filled%2 == 1 {
		s.carry = append(s.carry, s.buf[filled-1])
	}

	if err != nil && err != io.EOF {
		return samples, fmt.Errorf("%w", err)
	}
	return samples, err
}

type Decoder struct{}

// Match accepts an ID3v2 tag or an MPEG audio frame sync word.
func (Decoder) Match(head []byte) bool {
	if len(head) >= 3 && bytes.Equal(head[:3], []byte("ID3")) {
		return true
	}
	return len(head) >= 2 && head[0] == 0xFF && head[1]&0xE0 == 0xE0
}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		buf:        make([]byte, 8192),
	}, nil
}
