// SPDX-License-Identifier: EPL-2.0

// Package engine ties the pad registry, loader, trim controller, capture
// pipeline and player together behind one lock.
//
// Every public method may be called from any goroutine. Notifications are
// delivered after the lock is released, so a Notifier may call back into
// the engine.
package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/ik5/padbank/capture"
	"github.com/ik5/padbank/catalog"
	"github.com/ik5/padbank/debug"
	"github.com/ik5/padbank/loader"
	"github.com/ik5/padbank/pads"
	"github.com/ik5/padbank/trim"
)

// Config wires an Engine. Loader, Decoder and Player are required.
type Config struct {
	Loader   *loader.Loader
	Decoder  pads.Decoder
	Player   pads.Player
	Notifier pads.Notifier

	// Capture is optional; without it recording operations fail with
	// capture.ErrNotArmed.
	Capture capture.Device

	Width           int
	BaseNote        int // note of pad 0, usually pads.DefaultBaseNote
	PreviewOnSelect bool
}

type Engine struct {
	loader  *loader.Loader
	player  pads.Player
	notify  pads.Notifier
	capture *capture.Pipeline

	baseNote int
	preview  bool

	mu   sync.Mutex
	reg  *pads.Registry
	trim *trim.Controller
	gen  uint64
}

func New(cfg Config) *Engine {
	if cfg.Notifier == nil {
		cfg.Notifier = pads.NopNotifier{}
	}
	if cfg.Width <= 0 {
		cfg.Width = 64
	}

	e := &Engine{
		loader:   cfg.Loader,
		player:   cfg.Player,
		notify:   cfg.Notifier,
		baseNote: cfg.BaseNote,
		preview:  cfg.PreviewOnSelect,
		reg:      pads.NewRegistry(),
		trim:     trim.New(float64(cfg.Width)),
	}
	if cfg.Capture != nil {
		e.capture = capture.NewPipeline(cfg.Capture, cfg.Decoder, e, cfg.Notifier)
	}
	return e
}

// outbox collects notifications while the lock is held.
type outbox []func()

func (o *outbox) add(f func()) { *o = append(*o, f) }

func (o outbox) flush() {
	for _, f := range o {
		f()
	}
}

// LoadPreset loads the samples of p, resolving their references against
// audioBase.
func (e *Engine) LoadPreset(ctx context.Context, p catalog.Preset, audioBase string) (loaded, failed int) {
	debug.Log("engine", "loading preset %q (%d samples)", p.Name, len(p.Samples))
	return e.LoadEntries(ctx, p.Entries(audioBase))
}

// LoadEntries replaces every pad with entries and loads them concurrently.
// It returns once every load has settled. When nothing is selected
// afterwards, the first pad with a buffer is selected.
func (e *Engine) LoadEntries(ctx context.Context, entries []pads.Entry) (loaded, failed int) {
	e.mu.Lock()
	e.gen++
	gen := e.gen
	skipped := e.reg.Reset(entries)
	e.trim.Select(nil, nil)

	jobs := make([]loader.Job, e.reg.Len())
	slots := make([]*pads.Sample, e.reg.Len())
	for i := range jobs {
		s, _ := e.reg.At(i)
		slots[i] = s
		jobs[i] = loader.Job{Index: i, Name: s.Name, Locator: s.Locator}
	}
	e.mu.Unlock()

	for _, msg := range skipped {
		debug.Log("engine", "skipped entry %s", msg)
	}
	e.notify.Status(nil, pads.Status{
		Phase:   pads.PhaseConnecting,
		Message: fmt.Sprintf("loading %d samples", len(jobs)),
	})

	loaded, failed = e.loader.LoadAll(ctx, jobs, &batchSink{e: e, slots: slots})

	var out outbox
	e.mu.Lock()
	if gen == e.gen {
		if _, ok := e.reg.Selected(); !ok {
			if first, ok := e.reg.FirstWithBuffer(); ok {
				e.selectLocked(first, e.preview, &out)
			}
		}
	} else {
		debug.Log("engine", "batch %d superseded", gen)
	}
	e.mu.Unlock()

	out.flush()
	e.notify.BatchLoaded(loaded, failed)
	e.notify.Status(nil, pads.Status{
		Phase:   pads.PhaseReady,
		Message: fmt.Sprintf("%d loaded, %d failed", loaded, failed),
	})

	return loaded, failed
}

// Samples returns a snapshot of every pad in order.
func (e *Engine) Samples() []pads.Sample {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.reg.Samples()
}

// Selected returns a snapshot of the selected pad.
func (e *Engine) Selected() (pads.Sample, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, ok := e.reg.Selected()
	if !ok {
		return pads.Sample{}, false
	}
	return *s, true
}

// Select makes name the selection. The outgoing pad keeps the trim shown
// by the markers. With PreviewOnSelect the new selection is auditioned.
func (e *Engine) Select(name string) error {
	var out outbox
	defer func() { out.flush() }()

	e.mu.Lock()
	defer e.mu.Unlock()

	s, _, ok := e.reg.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %q", pads.ErrUnknownSample, name)
	}
	e.selectLocked(s, e.preview, &out)
	return nil
}

// Click selects name if needed and plays it once.
func (e *Engine) Click(name string) error {
	var out outbox
	defer func() { out.flush() }()

	e.mu.Lock()
	defer e.mu.Unlock()

	s, _, ok := e.reg.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %q", pads.ErrUnknownSample, name)
	}
	if !s.HasBuffer() {
		return fmt.Errorf("%w: %q", pads.ErrNoBuffer, name)
	}

	if sel, ok := e.reg.Selected(); !ok || sel != s {
		e.selectLocked(s, false, &out)
	}
	e.playLocked(s, &out)
	return nil
}

// RefreshSelection reloads the markers from the selected pad and
// announces it again.
func (e *Engine) RefreshSelection() {
	var out outbox

	e.mu.Lock()
	if s, ok := e.reg.Selected(); ok {
		e.trim.Load(s)
		snap := *s
		out.add(func() { e.notify.SampleSelected(snap) })
	}
	e.mu.Unlock()

	out.flush()
}

// expects e.mu held
func (e *Engine) selectLocked(s *pads.Sample, preview bool, out *outbox) {
	outgoing, _ := e.reg.Selected()
	if err := e.reg.Select(s.Name); err != nil {
		return
	}

	var prev trim.Region
	if outgoing != nil {
		prev = outgoing
	}
	buffered := e.trim.Select(prev, s)

	snap := *s
	out.add(func() { e.notify.SampleSelected(snap) })
	debug.Log("engine", "selected %q", s.Name)

	if preview && buffered {
		e.playLocked(s, out)
	}
}

// expects e.mu held; the play itself runs from the outbox
func (e *Engine) playLocked(s *pads.Sample, out *outbox) {
	if !s.HasBuffer() {
		return
	}
	buf := s.Buffer
	start, end := s.Trim()
	out.add(func() { e.player.Play(buf, start, end) })
}

// PlayIndex plays pad i over its trim range without touching the
// selection. It reports whether anything was played.
func (e *Engine) PlayIndex(i int) bool {
	var out outbox

	e.mu.Lock()
	s, ok := e.reg.At(i)
	ok = ok && s.HasBuffer()
	if ok {
		e.playLocked(s, &out)
	}
	e.mu.Unlock()

	out.flush()
	return ok
}

// PlaySelected plays the selected pad over its trim range.
func (e *Engine) PlaySelected() bool {
	var out outbox

	e.mu.Lock()
	s, ok := e.reg.Selected()
	ok = ok && s.HasBuffer()
	if ok {
		e.playLocked(s, &out)
	}
	e.mu.Unlock()

	out.flush()
	return ok
}
