// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")
	ErrUnknownFormat  = errors.New("unknown audio format")
	ErrEmptyInput     = errors.New("empty audio input")
	ErrInvalidFormat  = errors.New("invalid sample rate or channel count")
)
