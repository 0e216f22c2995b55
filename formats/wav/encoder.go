// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
	"github.com/ik5/padbank/audio"
	"github.com/ik5/padbank/utils"
)

// Encode writes b as 16-bit integer PCM.
func Encode(w io.WriteSeeker, b *audio.Buffer) error {
	if b.SampleRate <= 0 || b.Channels <= 0 {
		return audio.ErrInvalidFormat
	}

	data := make([]int, len(b.Data))
	for i, v := range b.Data {
		data[i] = utils.Float32ToPCM(v, 16)
	}

	return write(w, b.SampleRate, b.Channels, data)
}

// EncodeInt16 packages interleaved 16-bit PCM as a complete WAV file.
func EncodeInt16(sampleRate, channels int, pcm []int16) ([]byte, error) {
	if sampleRate <= 0 || channels <= 0 {
		return nil, audio.ErrInvalidFormat
	}

	data := make([]int, len(pcm))
	for i, v := range pcm {
		data[i] = int(v)
	}

	f := &memFile{}
	if err := write(f, sampleRate, channels, data); err != nil {
		return nil, err
	}
	return f.buf, nil
}

func write(w io.WriteSeeker, sampleRate, channels int, data []int) error {
	enc := gowav.NewEncoder(w, sampleRate, 16, channels, formatPCM)

	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("%w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// memFile is an in-memory io.WriteSeeker; the encoder seeks back to patch
// chunk sizes on Close.
type memFile struct {
	buf []byte
	off int64
}

func (f *memFile) Write(p []byte) (int, error) {
	end := f.off + int64(len(p))
	if end > int64(len(f.buf)) {
		f.buf = append(f.buf, make([]byte, end-int64(len(f.buf)))...)
	}
	copy(f.buf[f.off:end], p)
	f.off = end
	return len(p), nil
}

func (f *memFile) Seek(offset int64, whence int) (int64, error) {
	var next int64
	switch whence {
	case io.SeekStart:
		next = offset
	case io.SeekCurrent:
		next = f.off + offset
	case io.SeekEnd:
		next = int64(len(f.buf)) + offset
	default:
		return 0, fmt.Errorf("invalid whence: %d", whence)
	}
	if next < 0 {
		return 0, errors.New("negative position")
	}
	f.off = next
	return next, nil
}
