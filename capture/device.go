// SPDX-License-Identifier: EPL-2.0

package capture

import "context"

// Device acquires capture streams from the environment.
//
// deliver receives the encoded audio of one take, asynchronously, after
// each Stream.Stop. An empty payload means nothing was captured.
// Acquisition failures should wrap pads.ErrPermission.
type Device interface {
	Acquire(ctx context.Context, deliver func(data []byte)) (Stream, error)
}

// Stream is an acquired capture handle.
type Stream interface {
	Start() error
	Stop() error
	Close() error
}
