// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/padbank"
	"github.com/ik5/padbank/catalog"
	"github.com/ik5/padbank/controller"
	"github.com/ik5/padbank/internal/audiotest"
	"github.com/ik5/padbank/loader"
	"github.com/ik5/padbank/pads"
)

type stubFetcher map[string][]byte

func (f stubFetcher) Fetch(_ context.Context, locator string) (*loader.Stream, error) {
	data, ok := f[locator]
	if !ok {
		return nil, fmt.Errorf("%w: %s: status 404", pads.ErrTransport, locator)
	}
	return &loader.Stream{Body: io.NopCloser(bytes.NewReader(data)), Total: int64(len(data))}, nil
}

type recorder struct {
	pads.NopNotifier

	mu       sync.Mutex
	ready    []string
	failed   map[string]error
	selected []string
	batches  [][2]int
	progress map[string]int
}

func newRecorder() *recorder {
	return &recorder{failed: map[string]error{}, progress: map[string]int{}}
}

func (r *recorder) SampleReady(s pads.Sample) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ready = append(r.ready, s.Name)
}

func (r *recorder) SampleError(s pads.Sample, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failed[s.Name] = err
}

func (r *recorder) SampleSelected(s pads.Sample) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.selected = append(r.selected, s.Name)
}

func (r *recorder) LoadProgress(s pads.Sample, received, total int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.progress[s.Name]++
}

func (r *recorder) BatchLoaded(loaded, failed int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches = append(r.batches, [2]int{loaded, failed})
}

func (r *recorder) selections() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.selected...)
}

type fixture struct {
	engine *Engine
	player *audiotest.Player
	events *recorder
}

func newFixture(t *testing.T, files stubFetcher, preview bool) fixture {
	t.Helper()

	dec := padbank.NewDecoder()
	f := fixture{player: &audiotest.Player{}, events: newRecorder()}
	f.engine = New(Config{
		Loader:          loader.New(files, dec),
		Decoder:         dec,
		Player:          f.player,
		Notifier:        f.events,
		Width:           100,
		BaseNote:        pads.DefaultBaseNote,
		PreviewOnSelect: preview,
	})
	return f
}

func kit(names ...string) ([]pads.Entry, stubFetcher) {
	entries := make([]pads.Entry, len(names))
	files := stubFetcher{}
	for i, n := range names {
		loc := "mem://" + n + ".wav"
		entries[i] = pads.Entry{Name: n, Locator: loc}
		files[loc] = audiotest.SilentWAV(time.Duration(i+1) * 100 * time.Millisecond)
	}
	return entries, files
}

func TestLoadEntries_TransportFailureLeavesSelectionEmpty(t *testing.T) {
	t.Parallel()

	f := newFixture(t, stubFetcher{}, true)
	p := catalog.Preset{Name: "Basic Kit", Samples: []catalog.SampleRef{{Name: "kick", URL: "Basic Kit/kick.wav"}}}

	loaded, failed := f.engine.LoadPreset(context.Background(), p, "http://localhost:3000/presets/")

	assert.Equal(t, 0, loaded)
	assert.Equal(t, 1, failed)
	assert.ErrorIs(t, f.events.failed["kick"], pads.ErrTransport)
	assert.Empty(t, f.events.selections())

	_, ok := f.engine.Selected()
	assert.False(t, ok)

	samples := f.engine.Samples()
	require.Len(t, samples, 1)
	assert.False(t, samples[0].HasBuffer(), "failed pad stays addressable without a buffer")
}

func TestLoadEntries_IsolatesFailureAndSelectsFirstBuffered(t *testing.T) {
	t.Parallel()

	entries, files := kit("kick", "snare", "hat")
	delete(files, "mem://kick.wav")
	f := newFixture(t, files, true)

	loaded, failed := f.engine.LoadEntries(context.Background(), entries)
	assert.Equal(t, 2, loaded)
	assert.Equal(t, 1, failed)
	assert.Equal(t, [][2]int{{2, 1}}, f.events.batches)
	assert.ElementsMatch(t, []string{"snare", "hat"}, f.events.ready)
	assert.ErrorIs(t, f.events.failed["kick"], pads.ErrTransport)
	assert.Positive(t, f.events.progress["snare"])

	sel, ok := f.engine.Selected()
	require.True(t, ok)
	assert.Equal(t, "snare", sel.Name)
	assert.Equal(t, []string{"snare"}, f.events.selections())

	// auto selection previews the pad
	plays := f.player.Plays()
	require.Len(t, plays, 1)
	assert.Equal(t, 0.0, plays[0].Start)
	assert.InDelta(t, 0.2, plays[0].End, 1e-3)

	left, right, ok := f.engine.Markers()
	require.True(t, ok)
	assert.Equal(t, 0.0, left)
	assert.Equal(t, 100.0, right)
}

func TestLoadEntries_PreviewDisabled(t *testing.T) {
	t.Parallel()

	entries, files := kit("kick")
	f := newFixture(t, files, false)
	f.engine.LoadEntries(context.Background(), entries)

	_, ok := f.engine.Selected()
	assert.True(t, ok)
	assert.Empty(t, f.player.Plays())
}

func TestLoadEntries_ReplacesPreviousKit(t *testing.T) {
	t.Parallel()

	entries, files := kit("kick", "snare")
	f := newFixture(t, files, false)
	f.engine.LoadEntries(context.Background(), entries)
	require.NoError(t, f.engine.Select("snare"))

	more, moreFiles := kit("clap")
	for k, v := range moreFiles {
		files[k] = v
	}
	f.engine.LoadEntries(context.Background(), more)

	samples := f.engine.Samples()
	require.Len(t, samples, 1)
	assert.Equal(t, "clap", samples[0].Name)

	sel, ok := f.engine.Selected()
	require.True(t, ok)
	assert.Equal(t, "clap", sel.Name)
}

func TestLoadEntries_EmptyLocatorIsNotAFailure(t *testing.T) {
	t.Parallel()

	f := newFixture(t, stubFetcher{}, false)
	loaded, failed := f.engine.LoadEntries(context.Background(), []pads.Entry{{Name: "blank"}})

	assert.Equal(t, 1, loaded)
	assert.Zero(t, failed)
	assert.Empty(t, f.events.ready)
	_, ok := f.engine.Selected()
	assert.False(t, ok)
}

func TestHandleNote_PlaysTrimRangeWithoutSelecting(t *testing.T) {
	t.Parallel()

	entries, files := kit("kick", "snare")
	f := newFixture(t, files, false)
	f.engine.LoadEntries(context.Background(), entries)
	require.NoError(t, f.engine.Select("snare"))

	// trim kick to its second half through the markers
	require.NoError(t, f.engine.Select("kick"))
	require.True(t, f.engine.PointerDown(0))
	require.True(t, f.engine.PointerMove(50))
	require.True(t, f.engine.PointerUp())
	require.NoError(t, f.engine.Select("snare"))
	f.player.Reset()
	selectedBefore := len(f.events.selections())

	played := f.engine.HandleNote(controller.Event{Status: 0x90, Note: 36, Velocity: 100})
	require.True(t, played)

	last, ok := f.player.Last()
	require.True(t, ok)
	assert.InDelta(t, 0.05, last.Start, 1e-9)
	assert.InDelta(t, 0.1, last.End, 1e-9)

	sel, _ := f.engine.Selected()
	assert.Equal(t, "snare", sel.Name)
	assert.Len(t, f.events.selections(), selectedBefore)
}

func TestHandleNote_Ignored(t *testing.T) {
	t.Parallel()

	entries, files := kit("kick")
	delete(files, "mem://kick.wav")
	entries = append(entries, pads.Entry{Name: "snare", Locator: "mem://snare.wav"})
	files["mem://snare.wav"] = audiotest.SilentWAV(100 * time.Millisecond)

	f := newFixture(t, files, false)
	f.engine.LoadEntries(context.Background(), entries)
	f.player.Reset()

	tests := []struct {
		name string
		ev   controller.Event
	}{
		{"note off", controller.Event{Status: 0x80, Note: 37, Velocity: 64}},
		{"zero velocity", controller.Event{Status: 0x90, Note: 37, Velocity: 0}},
		{"below base note", controller.Event{Status: 0x90, Note: 35, Velocity: 100}},
		{"past last pad", controller.Event{Status: 0x90, Note: 40, Velocity: 100}},
		{"pad without buffer", controller.Event{Status: 0x90, Note: 36, Velocity: 100}},
	}

	for _, tt := range tests {
		assert.False(t, f.engine.HandleNote(tt.ev), tt.name)
	}
	assert.Empty(t, f.player.Plays())

	assert.True(t, f.engine.HandleNote(controller.Event{Status: 0x99, Note: 37, Velocity: 1}))
}

func TestRunController(t *testing.T) {
	t.Parallel()

	entries, files := kit("kick")
	f := newFixture(t, files, false)
	f.engine.LoadEntries(context.Background(), entries)

	events := make(chan controller.Event, 2)
	events <- controller.Event{Status: 0x90, Note: 36, Velocity: 90}
	events <- controller.Event{Status: 0x80, Note: 36}
	close(events)

	f.engine.RunController(context.Background(), events)
	assert.Len(t, f.player.Plays(), 1)
}

func TestClick(t *testing.T) {
	t.Parallel()

	entries, files := kit("kick", "snare")
	f := newFixture(t, files, true)
	f.engine.LoadEntries(context.Background(), entries)
	f.player.Reset()

	require.NoError(t, f.engine.Click("snare"))
	sel, _ := f.engine.Selected()
	assert.Equal(t, "snare", sel.Name)
	assert.Len(t, f.player.Plays(), 1, "click plays once even with preview on")

	require.NoError(t, f.engine.Click("snare"))
	assert.Len(t, f.player.Plays(), 2)
	assert.Equal(t, []string{"kick", "snare"}, f.events.selections())

	assert.ErrorIs(t, f.engine.Click("tom"), pads.ErrUnknownSample)
}

func TestClick_WithoutBuffer(t *testing.T) {
	t.Parallel()

	f := newFixture(t, stubFetcher{}, false)
	f.engine.LoadEntries(context.Background(), []pads.Entry{{Name: "kick", Locator: "mem://gone"}})

	assert.ErrorIs(t, f.engine.Click("kick"), pads.ErrNoBuffer)
	assert.Empty(t, f.player.Plays())
}

func TestSelect_KeepsEditedTrimPerPad(t *testing.T) {
	t.Parallel()

	entries, files := kit("kick", "snare")
	f := newFixture(t, files, false)
	f.engine.LoadEntries(context.Background(), entries)

	require.NoError(t, f.engine.Select("snare"))
	f.engine.PointerDown(100)
	f.engine.PointerMove(25)
	f.engine.PointerUp()

	require.NoError(t, f.engine.Select("kick"))
	left, right, _ := f.engine.Markers()
	assert.Equal(t, 0.0, left)
	assert.Equal(t, 100.0, right)

	require.NoError(t, f.engine.Select("snare"))
	_, right, _ = f.engine.Markers()
	assert.InDelta(t, 25.0, right, 1e-9)

	for _, s := range f.engine.Samples() {
		if s.Name == "snare" {
			assert.InDelta(t, 0.05, s.TrimEnd, 1e-9)
		}
	}

	assert.ErrorIs(t, f.engine.Select("tom"), pads.ErrUnknownSample)
}

func TestPointerUp_PlaysEditedRange(t *testing.T) {
	t.Parallel()

	entries, files := kit("kick")
	f := newFixture(t, files, false)
	f.engine.LoadEntries(context.Background(), entries)

	require.True(t, f.engine.PointerDown(0))
	f.engine.PointerMove(20)
	require.True(t, f.engine.PointerUp())

	last, ok := f.player.Last()
	require.True(t, ok)
	assert.InDelta(t, 0.02, last.Start, 1e-9)
	assert.InDelta(t, 0.1, last.End, 1e-9)

	// a click without movement is not an edit
	f.player.Reset()
	f.engine.PointerDown(20)
	assert.False(t, f.engine.PointerUp())
	assert.Empty(t, f.player.Plays())
}

func TestRefreshSelection(t *testing.T) {
	t.Parallel()

	entries, files := kit("kick")
	f := newFixture(t, files, false)
	f.engine.LoadEntries(context.Background(), entries)

	f.engine.RefreshSelection()
	assert.Equal(t, []string{"kick", "kick"}, f.events.selections())
}

func TestPlaySelectedAndIndex(t *testing.T) {
	t.Parallel()

	f := newFixture(t, stubFetcher{}, false)
	assert.False(t, f.engine.PlaySelected())
	assert.False(t, f.engine.PlayIndex(0))

	entries, files := kit("kick")
	f = newFixture(t, files, false)
	f.engine.LoadEntries(context.Background(), entries)
	assert.True(t, f.engine.PlaySelected())
	assert.True(t, f.engine.PlayIndex(0))
	assert.Len(t, f.player.Plays(), 2)
}

func TestSetWidth(t *testing.T) {
	t.Parallel()

	entries, files := kit("kick")
	f := newFixture(t, files, false)
	f.engine.LoadEntries(context.Background(), entries)

	f.engine.SetWidth(40)
	assert.Equal(t, 40.0, f.engine.Width())
	_, right, _ := f.engine.Markers()
	assert.Equal(t, 40.0, right)
}

// gatedFetcher holds every fetch until release is closed.
type gatedFetcher struct {
	files   stubFetcher
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (g *gatedFetcher) Fetch(ctx context.Context, locator string) (*loader.Stream, error) {
	g.once.Do(func() { close(g.started) })
	<-g.release
	return g.files.Fetch(ctx, locator)
}

func TestSelect_WhileLoadingLoadsMarkersOnAttach(t *testing.T) {
	t.Parallel()

	entries, files := kit("kick")
	gate := &gatedFetcher{files: files, started: make(chan struct{}), release: make(chan struct{})}

	dec := padbank.NewDecoder()
	player := &audiotest.Player{}
	events := newRecorder()
	e := New(Config{
		Loader:   loader.New(gate, dec),
		Decoder:  dec,
		Player:   player,
		Notifier: events,
		Width:    100,
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		e.LoadEntries(context.Background(), entries)
	}()

	<-gate.started
	require.NoError(t, e.Select("kick"))
	_, _, ok := e.Markers()
	assert.False(t, ok, "no markers before the buffer arrives")

	close(gate.release)
	<-done

	left, right, ok := e.Markers()
	require.True(t, ok)
	assert.Equal(t, 0.0, left)
	assert.Equal(t, 100.0, right)
	assert.Equal(t, []string{"kick", "kick"}, events.selections())

	require.True(t, e.PointerDown(0))
	require.True(t, e.PointerMove(50))
	require.True(t, e.PointerUp())

	sel, _ := e.Selected()
	start, end := sel.Trim()
	assert.InDelta(t, 0.05, start, 1e-9)
	assert.InDelta(t, 0.1, end, 1e-9)
	assert.Len(t, player.Plays(), 1)
}
