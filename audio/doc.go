// SPDX-License-Identifier: EPL-2.0

// Package audio provides the sample-buffer primitives shared by the pad bank.
//
// # Sources and decoders
//
// Every container decoder under formats/ turns an io.Reader into a Source
// that streams interleaved float32 samples in [-1, 1]:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    Close() error
//	}
//
// Decoders are collected in a Registry keyed by format name. Decoders that
// also implement Matcher take part in content sniffing through
// Registry.Detect, which is how a payload fetched from the network is routed
// to the right decoder without trusting its file extension.
//
// # Buffers
//
// Pads play from memory, so sources are drained with ReadAll into a Buffer.
// A Buffer knows its Duration in seconds and can be sliced to a trim range:
//
//	buf, err := audio.ReadAll(src)
//	region := buf.Slice(sample.TrimStart, sample.TrimEnd)
//
// Resample and Remix adapt a Buffer to the output device's rate and
// channel layout before it is mixed.
package audio
