// SPDX-License-Identifier: EPL-2.0

package capture

import "errors"

var (
	ErrNotArmed = errors.New("capture not armed")
	ErrClosed   = errors.New("capture stream closed")
)
