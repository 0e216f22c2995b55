// SPDX-License-Identifier: EPL-2.0

// Package trim maps a sample's trim range onto two markers in a fixed
// width coordinate space and runs the drag gesture that moves them.
package trim

// SecondsToPixel maps s seconds of a duration d clip onto [0, width].
func SecondsToPixel(s, d, width float64) float64 {
	if d <= 0 {
		return 0
	}
	return s / d * width
}

// PixelToSeconds is the inverse of SecondsToPixel.
func PixelToSeconds(p, d, width float64) float64 {
	if width <= 0 {
		return 0
	}
	return p / width * d
}
