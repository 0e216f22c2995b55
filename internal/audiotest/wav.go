// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"time"

	"github.com/ik5/padbank/formats/wav"
	"github.com/ik5/padbank/utils"
)

// WAV renders d of wave as a 16-bit WAV file.
func WAV(sampleRate, channels int, d time.Duration, wave Waveform) []byte {
	frames := int(d.Seconds() * float64(sampleRate))
	pcm := make([]int16, frames*channels)
	for f := range frames {
		for c := range channels {
			pcm[f*channels+c] = utils.Float32ToInt16(wave(f, c))
		}
	}

	data, err := wav.EncodeInt16(sampleRate, channels, pcm)
	if err != nil {
		panic(err)
	}
	return data
}

// SilentWAV is d of mono silence at 8 kHz.
func SilentWAV(d time.Duration) []byte {
	return WAV(8000, 1, d, Silence)
}
