// SPDX-License-Identifier: EPL-2.0

// Package config loads runtime settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/ik5/padbank/pads"
)

// Config holds all runtime configuration.
type Config struct {
	// Preset service
	CatalogURL   string
	AudioBaseURL string // sample references resolve against this
	HTTPTimeout  time.Duration

	// Controller
	BaseNote int    // note number mapped to pad 0
	MIDIPort string // substring of the input port name, empty for first

	// Pads
	WaveWidth       int // trim coordinate space
	PreviewOnSelect bool

	// Audio devices
	PlaybackRate    int
	CaptureRate     int
	CaptureChannels int

	DebugLog string // empty disables logging
}

// Load reads files (default ".env") into the environment without
// overriding variables already set, then builds a Config. Missing files
// are ignored.
func Load(files ...string) Config {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			_ = godotenv.Load(f)
		}
	}

	return Config{
		CatalogURL:      envStr("PADBANK_CATALOG_URL", "http://localhost:3000/api/presets"),
		AudioBaseURL:    envStr("PADBANK_AUDIO_BASE_URL", "http://localhost:3000/presets/"),
		HTTPTimeout:     time.Duration(envInt("PADBANK_HTTP_TIMEOUT", 30)) * time.Second,
		BaseNote:        envInt("PADBANK_BASE_NOTE", pads.DefaultBaseNote),
		MIDIPort:        envStr("PADBANK_MIDI_PORT", ""),
		WaveWidth:       envInt("PADBANK_WAVE_WIDTH", 64),
		PreviewOnSelect: envBool("PADBANK_PREVIEW_ON_SELECT", true),
		PlaybackRate:    envInt("PADBANK_PLAYBACK_RATE", 48000),
		CaptureRate:     envInt("PADBANK_CAPTURE_RATE", 44100),
		CaptureChannels: envInt("PADBANK_CAPTURE_CHANNELS", 1),
		DebugLog:        envStr("PADBANK_DEBUG_LOG", ""),
	}
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var errs []error

	if c.CatalogURL == "" {
		errs = append(errs, errors.New("PADBANK_CATALOG_URL is empty"))
	}
	if c.BaseNote < 0 || c.BaseNote > 127 {
		errs = append(errs, fmt.Errorf("PADBANK_BASE_NOTE %d outside 0..127", c.BaseNote))
	}
	for _, v := range []struct {
		name string
		n    int
	}{
		{"PADBANK_WAVE_WIDTH", c.WaveWidth},
		{"PADBANK_PLAYBACK_RATE", c.PlaybackRate},
		{"PADBANK_CAPTURE_RATE", c.CaptureRate},
		{"PADBANK_CAPTURE_CHANNELS", c.CaptureChannels},
	} {
		if v.n <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %d", v.name, v.n))
		}
	}
	if c.HTTPTimeout < 0 {
		errs = append(errs, fmt.Errorf("PADBANK_HTTP_TIMEOUT must not be negative, got %s", c.HTTPTimeout))
	}

	return errors.Join(errs...)
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
