// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ik5/padbank/catalog"
	"github.com/ik5/padbank/pads"
)

var kitExtensions = []string{".wav", ".aif", ".aiff", ".ogg", ".mp3"}

// localKit builds a preset from the audio files in dir, sorted by name and
// capped at the pad count. Sample names are the file names without
// extension.
func localKit(dir string) (catalog.Preset, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return catalog.Preset{}, err
	}

	p := catalog.Preset{Name: filepath.Base(filepath.Clean(dir)), Type: "local"}
	for _, e := range entries {
		if e.IsDir() || !slices.Contains(kitExtensions, strings.ToLower(filepath.Ext(e.Name()))) {
			continue
		}
		p.Samples = append(p.Samples, catalog.SampleRef{
			Name: strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())),
			URL:  e.Name(),
		})
		if len(p.Samples) == pads.MaxPads {
			break
		}
	}

	if len(p.Samples) == 0 {
		return catalog.Preset{}, fmt.Errorf("%s: no audio files", dir)
	}
	return p, nil
}
