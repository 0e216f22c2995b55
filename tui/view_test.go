// SPDX-License-Identifier: EPL-2.0

package tui

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/ik5/padbank/audio"
)

func TestPeaks(t *testing.T) {
	t.Parallel()

	buf := &audio.Buffer{SampleRate: 8, Channels: 2, Data: []float32{
		0.1, -0.2, 0.0, 0.0,
		-0.9, 0.3, 0.5, 0.5,
	}}

	got := peaks(buf, 2)
	assert.InDeltaSlice(t, []float32{0.2, 0.9}, got, 1e-6)

	assert.Equal(t, []float32{0, 0, 0}, peaks(nil, 3))
	assert.Empty(t, peaks(buf, 0))

	// more columns than frames repeats frames instead of reading past them
	assert.Len(t, peaks(buf, 10), 10)
}

func TestLevelRune(t *testing.T) {
	t.Parallel()

	assert.Equal(t, '▁', levelRune(0))
	assert.Equal(t, '█', levelRune(1))
	assert.Equal(t, '█', levelRune(3))
	assert.Equal(t, '▅', levelRune(0.55))
}

func TestMarkerColumns(t *testing.T) {
	t.Parallel()

	tests := []struct {
		left, right float64
		width       int
		l, r        int
	}{
		{0, 64, 64, 0, 63},
		{10.5, 20.2, 64, 10, 20},
		{30, 31, 64, 30, 30},
		{-3, 100, 64, 0, 63},
	}

	for _, tt := range tests {
		l, r := markerColumns(tt.left, tt.right, tt.width)
		assert.Equal(t, tt.l, l)
		assert.Equal(t, tt.r, r)
	}
}

func TestPadCell_FixedWidth(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"", "kick", "a very long sample name indeed", "Kick 808X ünïcode"} {
		cell := padCell("q", name, "100%")
		assert.Equal(t, cellWidth, utf8.RuneCountInString(cell), name)
	}
}

func TestPixelForColumn(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.0, pixelForColumn(-2, 64))
	assert.Equal(t, 0.0, pixelForColumn(0, 64))
	assert.Equal(t, 10.5, pixelForColumn(10, 64))
	assert.Equal(t, 64.0, pixelForColumn(63, 64))
}

func TestPadIndex(t *testing.T) {
	t.Parallel()

	i, ok := padIndex("1")
	assert.True(t, ok)
	assert.Equal(t, 0, i)

	i, ok = padIndex("v")
	assert.True(t, ok)
	assert.Equal(t, 15, i)

	_, ok = padIndex("R")
	assert.False(t, ok)
}

func TestRenderStrip_Width(t *testing.T) {
	t.Parallel()

	buf := &audio.Buffer{SampleRate: 100, Channels: 1, Data: make([]float32, 100)}
	assert.Empty(t, renderStrip(buf, 0, 0, 0, false))
	assert.NotEmpty(t, renderStrip(buf, 32, 4, 20, true))
	assert.NotEmpty(t, renderStrip(nil, 32, 0, 0, false))
}
