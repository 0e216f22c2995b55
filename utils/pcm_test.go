// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"
	"testing"
)

func TestFloat32ToInt16(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input float32
		want  int16
	}{
		{"zero", 0, 0},
		{"max positive", 1, math.MaxInt16},
		{"max negative", -1, -math.MaxInt16},
		{"half", 0.5, 16383},
		{"clamp over max", 1.5, math.MaxInt16},
		{"clamp under min", -100, -math.MaxInt16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Float32ToInt16(tt.input); got != tt.want {
				t.Errorf("Float32ToInt16(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestPCMToFloat32(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		v        int
		bitDepth int
		want     float32
	}{
		{"16-bit zero", 0, 16, 0},
		{"16-bit min", math.MinInt16, 16, -1},
		{"16-bit half", 16384, 16, 0.5},
		{"24-bit min", -8388608, 24, -1},
		{"8-bit midpoint is silence", 128, 8, 0},
		{"8-bit min", 0, 8, -1},
		{"unknown depth falls back to 16-bit", 16384, 12, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := PCMToFloat32(tt.v, tt.bitDepth); got != tt.want {
				t.Errorf("PCMToFloat32(%d, %d) = %v, want %v", tt.v, tt.bitDepth, got, tt.want)
			}
		})
	}
}

func TestFloat32ToPCM_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, depth := range []int{16, 24, 32} {
		for _, x := range []float32{-0.75, -0.25, 0, 0.25, 0.75} {
			got := PCMToFloat32(Float32ToPCM(x, depth), depth)
			if math.Abs(float64(got-x)) > 1e-3 {
				t.Errorf("depth %d: round trip of %v = %v", depth, x, got)
			}
		}
	}
}
