// SPDX-License-Identifier: EPL-2.0

// Command padbank is a terminal sample pad bank. It loads a preset from the
// catalog service (or a local directory with -kit), plays pads from the
// keyboard, the mouse or a MIDI controller and records new pads from the
// default microphone.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ik5/padbank"
	"github.com/ik5/padbank/capture"
	"github.com/ik5/padbank/catalog"
	"github.com/ik5/padbank/config"
	"github.com/ik5/padbank/controller"
	"github.com/ik5/padbank/debug"
	"github.com/ik5/padbank/engine"
	"github.com/ik5/padbank/loader"
	"github.com/ik5/padbank/playback"
	"github.com/ik5/padbank/tui"
)

func main() {
	var (
		envFile = flag.String("env", ".env", "environment file to load before reading settings")
		kitDir  = flag.String("kit", "", "load the audio files of this directory instead of the catalog")
		ports   = flag.Bool("ports", false, "list MIDI input ports and exit")
	)
	flag.Parse()

	if *ports {
		for _, p := range controller.Ports() {
			fmt.Println(p)
		}
		return
	}

	if err := run(*envFile, *kitDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(envFile, kitDir string) error {
	cfg := config.Load(envFile)
	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.DebugLog != "" {
		if err := debug.Enable(cfg.DebugLog); err != nil {
			return err
		}
		defer debug.Disable()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := tui.Options{AudioBase: cfg.AudioBaseURL}
	if kitDir != "" {
		kit, err := localKit(kitDir)
		if err != nil {
			return err
		}
		opts.Preset = &kit
		opts.AudioBase = kitDir
	} else {
		client, err := catalog.NewClient(cfg.CatalogURL, cfg.HTTPTimeout)
		if err != nil {
			return err
		}
		opts.Catalog = catalog.NewCache(client, catalog.Query{})
	}

	out, err := playback.Open(cfg.PlaybackRate)
	if err != nil {
		return fmt.Errorf("audio output: %w", err)
	}
	defer out.Close()

	dec := padbank.NewDecoder()
	events := tui.NewEvents()
	eng := engine.New(engine.Config{
		Loader:          loader.New(loader.NewFetcher(cfg.HTTPTimeout), dec),
		Decoder:         dec,
		Player:          out,
		Notifier:        events,
		Capture:         capture.NewMalgoDevice(cfg.CaptureRate, cfg.CaptureChannels),
		Width:           cfg.WaveWidth,
		BaseNote:        cfg.BaseNote,
		PreviewOnSelect: cfg.PreviewOnSelect,
	})
	defer eng.Close()

	// The pad bank works without a controller.
	if src, err := controller.Open(cfg.MIDIPort); err != nil {
		debug.Log("midi", "no controller: %v", err)
	} else {
		defer src.Close()
		opts.MIDIPort = src.Name()
		go eng.RunController(ctx, src.Events())
	}

	opts.Engine = eng
	opts.Events = events

	p := tea.NewProgram(tui.NewModel(opts), tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
