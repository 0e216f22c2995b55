// SPDX-License-Identifier: EPL-2.0

package pads

import "errors"

var (
	// ErrTransport is a network or stream failure while fetching a sample.
	ErrTransport = errors.New("transport error")
	// ErrDecode is a malformed or unsupported audio payload.
	ErrDecode = errors.New("decode error")
	// ErrPermission is a denied capture device.
	ErrPermission = errors.New("capture permission denied")
	// ErrAllocation is a commit without a decoded recording.
	ErrAllocation = errors.New("no recorded sample available")

	ErrUnknownSample = errors.New("unknown sample")
	ErrNoBuffer      = errors.New("sample has no buffer")
)
