// SPDX-License-Identifier: EPL-2.0

// Package wav decodes and encodes RIFF/WAVE audio through
// github.com/go-audio/wav.
//
// # Decoding
//
// Decoder accepts integer PCM at 8, 16, 24 and 32 bits, any channel count
// and any sample rate. Chunks other than fmt and data are skipped, so files
// written by DAWs with LIST or bext chunks decode fine:
//
//	src, err := wav.Decoder{}.Decode(r)
//	buf, err := audio.ReadAll(src)
//
// Decoder also implements audio.Matcher so a Registry can route a payload
// to it by its RIFF/WAVE signature.
//
// # Encoding
//
// Captured microphone PCM is packaged as a 16-bit WAV before it is handed
// to the decode capability:
//
//	data, err := wav.EncodeInt16(44100, 1, pcm)
//
// Encode writes any audio.Buffer to an io.WriteSeeker.
//
// # Errors
//
//   - ErrNotWavFile: the payload has no RIFF/WAVE header
//   - ErrUnsupportedEncoding: compressed or floating point data
//   - ErrUnsupportedBitDepth: bit depth outside 8/16/24/32
package wav
