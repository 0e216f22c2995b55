// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF and uncompressed AIFF-C files via
// github.com/go-audio/aiff.
//
// Integer sample sizes of 8, 16, 24 and 32 bits are supported. Because
// go-audio needs to seek, non-seekable readers are buffered in memory first;
// pad samples are small so this is never a concern in practice.
package aiff
