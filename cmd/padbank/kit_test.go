// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/padbank/catalog"
	"github.com/ik5/padbank/pads"
)

func touch(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
}

func TestLocalKit(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, n := range []string{"snare.WAV", "kick.wav", "notes.txt", "hat.ogg"} {
		touch(t, dir, n)
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.wav"), 0o755))

	p, err := localKit(dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Base(dir), p.Name)
	assert.Equal(t, []catalog.SampleRef{
		{Name: "hat", URL: "hat.ogg"},
		{Name: "kick", URL: "kick.wav"},
		{Name: "snare", URL: "snare.WAV"},
	}, p.Samples)

	entries := p.Entries(dir)
	require.Len(t, entries, 3)
	assert.Equal(t, filepath.Join(dir, "kick.wav"), entries[1].Locator)
}

func TestLocalKit_CapsAtPadCount(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for i := range pads.MaxPads + 4 {
		touch(t, dir, fmt.Sprintf("s%02d.wav", i))
	}

	p, err := localKit(dir)
	require.NoError(t, err)
	assert.Len(t, p.Samples, pads.MaxPads)
}

func TestLocalKit_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	touch(t, dir, "readme.md")

	_, err := localKit(dir)
	require.Error(t, err)

	_, err = localKit(filepath.Join(dir, "missing"))
	require.Error(t, err)
}
