// SPDX-License-Identifier: EPL-2.0

package pads

import (
	"context"

	"github.com/ik5/padbank/audio"
)

// Decoder turns a complete audio payload into a playable buffer.
type Decoder interface {
	Decode(ctx context.Context, data []byte) (*audio.Buffer, error)
}

// Player plays the region [start, end) seconds of buf. It must not block
// on playback completion.
type Player interface {
	Play(buf *audio.Buffer, start, end float64)
}
