// SPDX-License-Identifier: EPL-2.0

package utils

// Float32ToInt16 clamps x to [-1, 1] and scales it to 16-bit PCM.
func Float32ToInt16(x float32) int16 {
	return int16(Float32ToPCM(x, 16))
}

// Float32ToPCM clamps x to [-1, 1] and scales it to a signed integer of
// the given bit depth. Unknown depths are treated as 16-bit.
func Float32ToPCM(x float32, bitDepth int) int {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	return int(x * float32(fullScale(bitDepth)-1))
}

// PCMToFloat32 normalises a signed integer sample of the given bit depth
// to [-1, 1).
func PCMToFloat32(v int, bitDepth int) float32 {
	if bitDepth == 8 {
		// 8-bit WAV is unsigned
		return float32(v-128) / 128.0
	}
	return float32(float64(v) / float64(fullScale(bitDepth)))
}

func fullScale(bitDepth int) int64 {
	switch bitDepth {
	case 8, 16, 24, 32:
		return int64(1) << (bitDepth - 1)
	default:
		return 1 << 15
	}
}
