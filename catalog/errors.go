// SPDX-License-Identifier: EPL-2.0

package catalog

import "errors"

var (
	ErrNotFound  = errors.New("preset not found")
	ErrNotLoaded = errors.New("catalog not loaded")
)
