// SPDX-License-Identifier: EPL-2.0

// Package catalog reads presets from the preset service and resolves
// their sample references into loadable locators.
package catalog

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/ik5/padbank/debug"
	"github.com/ik5/padbank/pads"
)

// SampleRef is one sample of a preset. URL is usually relative to the
// audio base.
type SampleRef struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type Preset struct {
	Name             string      `json:"name"`
	Type             string      `json:"type,omitempty"`
	IsFactoryPresets bool        `json:"isFactoryPresets"`
	Samples          []SampleRef `json:"samples"`
}

// Entries resolves the preset's samples against base and returns the pad
// entries for them. Samples without a name are skipped.
func (p Preset) Entries(base string) []pads.Entry {
	out := make([]pads.Entry, 0, len(p.Samples))
	for _, s := range p.Samples {
		if s.Name == "" {
			debug.Log("catalog", "%s: skipping sample without name (%s)", p.Name, s.URL)
			continue
		}
		out = append(out, pads.Entry{Name: s.Name, Locator: Resolve(base, s.URL)})
	}
	return out
}

// Resolve turns a sample reference into a locator. Absolute URLs pass
// through. Relative references are joined to base, which may be a URL or
// a directory; URL joins escape the reference. An empty reference stays
// empty.
func Resolve(base, ref string) string {
	if ref == "" {
		return ""
	}
	if u, err := url.Parse(ref); err == nil && u.Scheme != "" && u.Host != "" {
		return ref
	}
	if filepath.IsAbs(ref) {
		return ref
	}

	b, err := url.Parse(base)
	if err != nil || b.Scheme == "" || b.Scheme == "file" {
		dir := base
		if err == nil && b.Scheme == "file" {
			dir = b.Path
		}
		return filepath.Join(dir, filepath.FromSlash(ref))
	}

	if !strings.HasSuffix(b.Path, "/") {
		b.Path += "/"
	}
	return b.ResolveReference(&url.URL{Path: ref}).String()
}
