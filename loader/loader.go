// SPDX-License-Identifier: EPL-2.0

package loader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/ik5/padbank/audio"
	"github.com/ik5/padbank/debug"
	"github.com/ik5/padbank/pads"
)

// ChunkSize is the read increment between progress callbacks.
const ChunkSize = 32 * 1024

// ProgressFunc is called after every chunk with the bytes received so far
// and the announced total, or UnknownTotal.
type ProgressFunc func(received, total int64)

// Loader fetches and decodes single samples.
type Loader struct {
	fetcher Fetcher
	decoder pads.Decoder
}

func New(fetcher Fetcher, decoder pads.Decoder) *Loader {
	return &Loader{fetcher: fetcher, decoder: decoder}
}

// Load fetches locator and decodes it. An empty locator is a successful
// no-op returning a nil buffer. Transport failures wrap pads.ErrTransport
// and decode failures wrap pads.ErrDecode.
func (l *Loader) Load(ctx context.Context, locator string, progress ProgressFunc) (*audio.Buffer, error) {
	if locator == "" {
		return nil, nil
	}

	data, err := l.fetch(ctx, locator, progress)
	if err != nil {
		return nil, err
	}

	buf, err := l.decoder.Decode(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", pads.ErrDecode, err)
	}
	return buf, nil
}

func (l *Loader) fetch(ctx context.Context, locator string, progress ProgressFunc) ([]byte, error) {
	st, err := l.fetcher.Fetch(ctx, locator)
	if err != nil {
		if !errors.Is(err, pads.ErrTransport) {
			err = fmt.Errorf("%w: %w", pads.ErrTransport, err)
		}
		return nil, err
	}
	if st == nil || st.Body == nil {
		return nil, fmt.Errorf("%w: %s: no body", pads.ErrTransport, locator)
	}
	defer st.Body.Close()

	var data bytes.Buffer
	if st.Total > 0 {
		data.Grow(int(st.Total))
	}

	chunk := make([]byte, ChunkSize)
	var received int64
	for {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", pads.ErrTransport, err)
		}

		n, rerr := st.Body.Read(chunk)
		if n > 0 {
			data.Write(chunk[:n])
			received += int64(n)
			debug.LogEvery(16, "loader", "%s: %d/%d bytes", locator, received, st.Total)
			if progress != nil {
				progress(received, st.Total)
			}
		}

		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return nil, fmt.Errorf("%w: read %s: %w", pads.ErrTransport, locator, rerr)
		}
	}

	debug.Log("loader", "%s: fetched %d bytes", locator, received)
	return data.Bytes(), nil
}
