// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1/2 Layer III audio using
// github.com/hajimehoshi/go-mp3.
//
// The decoder always yields interleaved stereo at the stream's sample rate.
// Mono files are duplicated to both channels by go-mp3; downstream code that
// needs mono should use audio.Remix.
//
// Decoder implements audio.Matcher and accepts payloads that start with an
// ID3v2 tag or an MPEG frame sync word.
package mp3
