// SPDX-License-Identifier: EPL-2.0

package padbank

import (
	"bytes"
	"context"
	"fmt"

	"github.com/ik5/padbank/audio"
	"github.com/ik5/padbank/formats/aiff"
	"github.com/ik5/padbank/formats/mp3"
	"github.com/ik5/padbank/formats/vorbis"
	"github.com/ik5/padbank/formats/wav"
)

// BufferDecoder turns a complete compressed or PCM payload into an
// audio.Buffer, choosing the container by content sniffing.
type BufferDecoder struct {
	reg *audio.Registry
}

// NewDecoder returns a BufferDecoder with every built-in format registered.
// WAV is tried first since both captures and most kits use it.
func NewDecoder() *BufferDecoder {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("mp3", mp3.Decoder{})

	return NewDecoderWithRegistry(reg)
}

// NewDecoderWithRegistry decodes with a caller-supplied registry.
func NewDecoderWithRegistry(reg *audio.Registry) *BufferDecoder {
	return &BufferDecoder{reg: reg}
}

// Formats lists the formats this decoder can sniff.
func (d *BufferDecoder) Formats() []string {
	return d.reg.Formats()
}

// Decode sniffs data, decodes it fully and returns the samples.
func (d *BufferDecoder) Decode(ctx context.Context, data []byte) (*audio.Buffer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, audio.ErrEmptyInput
	}

	format, dec, ok := d.reg.Detect(data[:min(len(data), audio.HeadSize)])
	if !ok {
		return nil, audio.ErrUnknownFormat
	}

	src, err := dec.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", format, err)
	}

	buf, err := audio.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", format, err)
	}
	return buf, nil
}
