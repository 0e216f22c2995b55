// SPDX-License-Identifier: EPL-2.0

package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ik5/padbank/audio"
	"github.com/ik5/padbank/pads"
)

var (
	headerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#7dcfff")).Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#555"))
	readyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#ddd"))
	failedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#f7768e"))
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	trimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#9ece6a"))
	markerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#e0af68")).Bold(true)
	recStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#fff")).Background(lipgloss.Color("#c00")).Padding(0, 1)
)

const (
	cellWidth = 22
	indent    = "  "
)

var levels = []rune("▁▂▃▄▅▆▇█")

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var lines []string
	add := func(s string) { lines = append(lines, s) }

	add("")
	add(m.header())
	add(indent + m.presetLine())
	add("")

	m.bounds.padTop = len(lines)
	m.bounds.padLeft = len(indent)
	m.bounds.cellWidth = cellWidth
	for _, row := range m.gridRows() {
		add(indent + row)
	}
	add("")

	sel, hasSel := m.selectedSample()
	left, right, ok := m.engine.Markers()

	m.bounds.stripTop = len(lines)
	m.bounds.stripLeft = len(indent)
	var buf *audio.Buffer
	if hasSel {
		buf = sel.Buffer
	}
	add(indent + renderStrip(buf, m.stripWidth, left, right, ok))
	add(indent + dimStyle.Render(trimLine(sel, hasSel)))
	add("")

	add(indent + m.statusLine())
	if m.lastErr != "" {
		add(indent + failedStyle.Render(m.lastErr))
	} else {
		add("")
	}
	add(indent + dimStyle.Render(m.helpLine()))

	return strings.Join(lines, "\n")
}

func (m Model) header() string {
	title := "padbank"
	if m.current != "" {
		title += "  " + m.current
	}
	h := indent + headerStyle.Render(title)
	if m.midi != "" {
		h += dimStyle.Render("  midi: " + m.midi)
	}
	if m.recording {
		h += "  " + recStyle.Render("REC")
	}
	return h
}

func (m Model) presetLine() string {
	if len(m.presets) == 0 {
		return dimStyle.Render("no presets")
	}
	p := m.presets[m.presetIdx]
	line := fmt.Sprintf("< %s >  %d/%d  %s", p.Name, m.presetIdx+1, len(m.presets), p.Type)
	if m.loading {
		line += "  loading..."
	}
	return line
}

func (m Model) gridRows() []string {
	rows := make([]string, 0, len(padKeys)/gridColumns)
	for r := 0; r < len(padKeys)/gridColumns; r++ {
		var b strings.Builder
		for c := range gridColumns {
			i := r*gridColumns + c
			b.WriteString(m.cell(i))
		}
		rows = append(rows, b.String())
	}
	return rows
}

func (m Model) cell(i int) string {
	if i >= len(m.pads) {
		return dimStyle.Render(padCell(padKeys[i], "", ""))
	}

	s := m.pads[i]
	state, style := m.padState(s)
	text := padCell(padKeys[i], s.Name, state)
	if s.Name == m.selected {
		style = selectedStyle
	}
	return style.Render(text)
}

func (m Model) padState(s pads.Sample) (string, lipgloss.Style) {
	switch {
	case s.HasBuffer():
		return fmt.Sprintf("%.2fs", s.Duration()), readyStyle
	case m.failed[s.Name]:
		return "ERR", failedStyle
	case s.Locator == "":
		return "--", dimStyle
	default:
		return fmt.Sprintf("%d%%", m.progress.Get(s.Name)), dimStyle
	}
}

// padCell renders one fixed-width grid cell.
func padCell(key, name, state string) string {
	nameWidth := cellWidth - len(key) - 9
	runes := []rune(name)
	if len(runes) > nameWidth {
		runes = runes[:nameWidth]
	}
	return fmt.Sprintf("%s %-*s %6s ", key, nameWidth, string(runes), state)
}

func (m Model) selectedSample() (pads.Sample, bool) {
	for _, s := range m.pads {
		if s.Name == m.selected && m.selected != "" {
			return s, true
		}
	}
	return pads.Sample{}, false
}

func trimLine(s pads.Sample, ok bool) string {
	if !ok || !s.HasBuffer() {
		return "no sample selected"
	}
	start, end := s.Trim()
	return fmt.Sprintf("%s  trim %.3fs .. %.3fs of %.3fs", s.Name, start, end, s.Duration())
}

func (m Model) statusLine() string {
	var parts []string
	if m.status != "" {
		parts = append(parts, m.status)
	}
	if m.takeReady {
		parts = append(parts, "take ready: P play, C keep")
	}
	if m.naming {
		parts = append(parts, fmt.Sprintf("name: %s_", string(m.name)))
	}
	return strings.Join(parts, "  |  ")
}

func (m Model) helpLine() string {
	return "1-4 q-r a-f z-v: pads  left/right: select  space: play  [ ]: preset  enter: load  R: rec  P: play take  C: keep take  ctrl+r: reload  esc: quit"
}

// peaks returns the absolute peak of each of width equal slices of buf.
func peaks(buf *audio.Buffer, width int) []float32 {
	out := make([]float32, max(width, 0))
	frames := buf.Frames()
	if frames == 0 || width <= 0 {
		return out
	}

	ch := buf.Channels
	for col := range out {
		first := col * frames / width
		last := max((col+1)*frames/width, first+1)
		var peak float32
		for f := first; f < min(last, frames); f++ {
			for c := range ch {
				peak = max(peak, float32(math.Abs(float64(buf.Data[f*ch+c]))))
			}
		}
		out[col] = peak
	}
	return out
}

func levelRune(peak float32) rune {
	i := int(peak * float32(len(levels)))
	return levels[min(max(i, 0), len(levels)-1)]
}

// markerColumns maps marker pixels to the strip columns that show them.
func markerColumns(left, right float64, width int) (int, int) {
	l := min(max(int(left), 0), width-1)
	r := min(max(int(math.Ceil(right))-1, l), width-1)
	return l, r
}

// renderStrip draws the waveform of buf with the trim range highlighted.
func renderStrip(buf *audio.Buffer, width int, left, right float64, ok bool) string {
	if width <= 0 {
		return ""
	}

	cols := peaks(buf, width)
	if !ok {
		var b strings.Builder
		for _, p := range cols {
			b.WriteRune(levelRune(p))
		}
		return dimStyle.Render(b.String())
	}

	l, r := markerColumns(left, right, width)

	var b strings.Builder
	for i, p := range cols {
		ch := string(levelRune(p))
		switch {
		case i == l || i == r:
			b.WriteString(markerStyle.Render("|"))
		case i > l && i < r:
			b.WriteString(trimStyle.Render(ch))
		default:
			b.WriteString(dimStyle.Render(ch))
		}
	}
	return b.String()
}
