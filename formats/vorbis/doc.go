// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis streams with github.com/jfreymuth/oggvorbis.
//
// Samples arrive as float32 already, so the source is a thin pass-through
// that only guards frame alignment.
package vorbis
