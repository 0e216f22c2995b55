// SPDX-License-Identifier: EPL-2.0

// Package padbank manages a bank of sixteen sample pads: it streams sample
// audio from a preset catalog, decodes it into playable buffers, keeps
// per-sample trim boundaries, records new samples from a microphone and
// triggers playback from the keyboard, the mouse or a MIDI controller.
//
// This root package holds the decode capability shared by the loader and
// the capture pipeline:
//
//	dec := padbank.NewDecoder()
//	buf, err := dec.Decode(ctx, payload)
//
// The payload's container is sniffed from its first bytes; WAV, AIFF, Ogg
// Vorbis and MP3 are supported out of the box.
//
// # Packages
//
//   - audio: Source/Decoder registry, Buffer, resampling and channel remixing
//   - formats/...: container decoders (and the WAV encoder used for captures)
//   - pads: Sample, Registry, the pad allocator and the Notifier contract
//   - loader: streaming fetch with progress and the per-batch load join
//   - trim: time/pixel mapping and the trim-marker drag state machine
//   - capture: the record, decode and commit pipeline
//   - playback: the voice mixer behind the output device
//   - controller: MIDI note input
//   - catalog: preset catalog client and cache
//   - engine: wires everything into one pad bank
//
// The cmd/padbank binary puts a terminal front end on top of engine.
package padbank
