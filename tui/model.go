// SPDX-License-Identifier: EPL-2.0

// Package tui is the terminal front end: a 4x4 pad grid, the trim strip of
// the selected pad, the preset menu and the recorder.
package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ik5/padbank/catalog"
	"github.com/ik5/padbank/engine"
	"github.com/ik5/padbank/loader"
	"github.com/ik5/padbank/pads"
)

// padKeys maps keyboard keys to pads, laid out as a 4x4 grid.
var padKeys = []string{
	"1", "2", "3", "4",
	"q", "w", "e", "r",
	"a", "s", "d", "f",
	"z", "x", "c", "v",
}

const gridColumns = 4

func padIndex(key string) (int, bool) {
	for i, k := range padKeys {
		if k == key {
			return i, true
		}
	}
	return -1, false
}

// Options configures a Model. Catalog may be nil when Preset is given.
type Options struct {
	Engine    *engine.Engine
	Events    *Events
	Catalog   *catalog.Cache
	AudioBase string
	Preset    *catalog.Preset // loaded at start instead of the first catalog entry
	MIDIPort  string
}

// layout holds positions computed by the last View, for mouse hit tests.
type layout struct {
	padTop, padLeft, cellWidth int
	stripTop, stripLeft        int
}

type Model struct {
	engine    *engine.Engine
	events    *Events
	cache     *catalog.Cache
	audioBase string
	midi      string

	presets   []catalog.Preset
	presetIdx int
	current   string
	loading   bool
	initial   *catalog.Preset

	pads      []pads.Sample
	selected  string
	failed    map[string]bool
	progress  *loader.Tracker
	status    string
	lastErr   string
	recording bool
	takeReady bool

	naming bool
	name   []rune

	stripWidth int
	bounds     *layout
	dragging   bool
	quitting   bool
}

type presetsMsg struct {
	presets []catalog.Preset
	err     error
}

type loadDoneMsg struct {
	name           string
	loaded, failed int
}

type captureErrMsg struct{ err error }

func NewModel(opts Options) Model {
	return Model{
		engine:     opts.Engine,
		events:     opts.Events,
		cache:      opts.Catalog,
		audioBase:  opts.AudioBase,
		midi:       opts.MIDIPort,
		initial:    opts.Preset,
		failed:     map[string]bool{},
		progress:   loader.NewTracker(),
		stripWidth: int(opts.Engine.Width()),
		bounds:     &layout{},
		status:     "starting",
	}
}

func fetchPresets(cache *catalog.Cache) tea.Cmd {
	return func() tea.Msg {
		if err := cache.Refresh(context.Background()); err != nil {
			return presetsMsg{err: err}
		}
		return presetsMsg{presets: cache.Presets()}
	}
}

func loadPreset(e *engine.Engine, p catalog.Preset, base string) tea.Cmd {
	return func() tea.Msg {
		loaded, failed := e.LoadPreset(context.Background(), p, base)
		return loadDoneMsg{name: p.Name, loaded: loaded, failed: failed}
	}
}

func startRecording(e *engine.Engine) tea.Cmd {
	return func() tea.Msg {
		if err := e.ArmCapture(context.Background()); err != nil {
			return captureErrMsg{err}
		}
		if err := e.StartRecording(); err != nil {
			return captureErrMsg{err}
		}
		return nil
	}
}

func (m Model) Init() tea.Cmd {
	if m.cache == nil {
		return tea.Batch(m.events.Listen(), func() tea.Msg { return presetsMsg{} })
	}
	return tea.Batch(m.events.Listen(), fetchPresets(m.cache))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.stripWidth = max(16, msg.Width-4)
		m.engine.SetWidth(m.stripWidth)
		return m, nil

	case tea.KeyMsg:
		if m.naming {
			return m.updateNaming(msg)
		}
		return m.updateKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case presetsMsg:
		return m.updatePresets(msg)

	case loadDoneMsg:
		m.loading = false
		m.current = msg.name
		m.refresh()
		return m, nil

	case captureErrMsg:
		m.lastErr = msg.err.Error()
		return m, nil
	}

	if m.applyEvent(msg) {
		m.refresh()
		return m, m.events.Listen()
	}
	return m, nil
}

func (m Model) updatePresets(msg presetsMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.lastErr = fmt.Sprintf("catalog: %v", msg.err)
	} else {
		m.presets = msg.presets
		m.presetIdx = min(m.presetIdx, max(len(m.presets)-1, 0))
	}

	if m.current != "" || m.loading {
		return m, nil
	}

	switch {
	case m.initial != nil:
		return m.startLoad(*m.initial)
	case len(m.presets) > 0:
		return m.startLoad(m.presets[m.presetIdx])
	}
	return m, nil
}

func (m Model) startLoad(p catalog.Preset) (tea.Model, tea.Cmd) {
	m.loading = true
	m.failed = map[string]bool{}
	m.progress.Reset()
	m.status = fmt.Sprintf("loading %s", p.Name)
	return m, loadPreset(m.engine, p, m.audioBase)
}

// applyEvent folds an engine event into the model. It reports whether msg
// was an engine event.
func (m *Model) applyEvent(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case sampleReadyMsg:
		delete(m.failed, msg.sample.Name)
		m.progress.Complete(msg.sample.Name)
	case sampleErrorMsg:
		m.failed[msg.sample.Name] = true
		m.lastErr = fmt.Sprintf("%s: %v", msg.sample.Name, msg.err)
	case sampleSelectedMsg:
		m.selected = msg.sample.Name
	case progressMsg:
		m.progress.Update(msg.name, msg.received, msg.total)
	case statusMsg:
		if msg.name == "" {
			m.status = msg.status.Message
		}
	case errorMsg:
		m.lastErr = msg.err.Error()
		if errors.Is(msg.err, pads.ErrPermission) {
			m.recording = false
		}
	case batchLoadedMsg:
		m.status = fmt.Sprintf("%d loaded, %d failed", msg.loaded, msg.failed)
	case recordingMsg:
		m.recording = msg.on
		if msg.on {
			m.takeReady = false
		}
	case captureReadyMsg:
		m.takeReady = true
	default:
		return false
	}
	return true
}

// refresh re-reads the pad snapshot from the engine.
func (m *Model) refresh() {
	m.pads = m.engine.Samples()
	if s, ok := m.engine.Selected(); ok {
		m.selected = s.Name
	} else {
		m.selected = ""
	}
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if i, ok := padIndex(key); ok {
		if i < len(m.pads) {
			m.click(m.pads[i].Name)
		}
		return m, nil
	}

	switch key {
	case "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit

	case "[":
		if len(m.presets) > 0 {
			m.presetIdx = (m.presetIdx + len(m.presets) - 1) % len(m.presets)
		}
	case "]":
		if len(m.presets) > 0 {
			m.presetIdx = (m.presetIdx + 1) % len(m.presets)
		}
	case "enter":
		if len(m.presets) > 0 && !m.loading {
			return m.startLoad(m.presets[m.presetIdx])
		}
	case "ctrl+r":
		if m.cache != nil {
			return m, fetchPresets(m.cache)
		}

	case "left", "right":
		m.moveSelection(key == "right")
	case " ":
		m.engine.PlaySelected()

	case "R":
		if m.recording {
			m.setErr(m.engine.StopRecording())
			return m, nil
		}
		m.lastErr = ""
		return m, startRecording(m.engine)
	case "P":
		m.setErr(m.engine.PlayRecording())
	case "C":
		if m.takeReady {
			m.naming = true
			m.name = m.name[:0]
		} else {
			m.lastErr = "nothing recorded yet"
		}
	}

	return m, nil
}

func (m Model) updateNaming(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.naming = false
	case tea.KeyEnter:
		m.naming = false
		if err := m.engine.CommitRecording(string(m.name)); err != nil {
			m.lastErr = err.Error()
		} else {
			m.takeReady = false
		}
		m.refresh()
	case tea.KeyBackspace:
		if len(m.name) > 0 {
			m.name = m.name[:len(m.name)-1]
		}
	case tea.KeySpace:
		m.name = append(m.name, ' ')
	case tea.KeyRunes:
		m.name = append(m.name, msg.Runes...)
	}
	return m, nil
}

func (m *Model) click(name string) {
	if err := m.engine.Click(name); err != nil {
		m.lastErr = err.Error()
		return
	}
	m.selected = name
}

func (m *Model) moveSelection(forward bool) {
	if len(m.pads) == 0 {
		return
	}

	cur := -1
	for i, s := range m.pads {
		if s.Name == m.selected {
			cur = i
		}
	}

	step := len(m.pads) - 1
	if forward {
		step = 1
	}
	next := (cur + step) % len(m.pads)
	if cur < 0 {
		next = 0
	}

	m.setErr(m.engine.Select(m.pads[next].Name))
	m.selected = m.pads[next].Name
}

func (m *Model) setErr(err error) {
	if err != nil {
		m.lastErr = err.Error()
	}
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	b := m.bounds

	if msg.Y == b.stripTop || m.dragging {
		col := msg.X - b.stripLeft
		x := pixelForColumn(col, m.stripWidth)

		switch {
		case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
			if col >= 0 && col < m.stripWidth {
				m.dragging = m.engine.PointerDown(x)
			}
		case msg.Action == tea.MouseActionMotion && m.dragging:
			m.engine.PointerMove(x)
		case msg.Action == tea.MouseActionRelease && m.dragging:
			m.dragging = false
			m.engine.PointerUp()
			m.refresh()
		}
		return
	}

	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return
	}

	row, col := msg.Y-b.padTop, (msg.X-b.padLeft)/max(b.cellWidth, 1)
	if row < 0 || col < 0 || col >= gridColumns || msg.X < b.padLeft {
		return
	}
	if i := row*gridColumns + col; i < len(m.pads) {
		m.click(m.pads[i].Name)
	}
}

// pixelForColumn maps a strip column to the trim coordinate space so that
// the first and last columns reach both ends.
func pixelForColumn(col, width int) float64 {
	switch {
	case col <= 0:
		return 0
	case col >= width-1:
		return float64(width)
	default:
		return float64(col) + 0.5
	}
}
