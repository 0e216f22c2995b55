// SPDX-License-Identifier: EPL-2.0

package engine

import "github.com/ik5/padbank/trim"

// Markers returns the trim marker pixels for the selected pad.
func (e *Engine) Markers() (left, right float64, ok bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.trim.Markers()
}

// Width of the trim coordinate space.
func (e *Engine) Width() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.trim.Width()
}

// SetWidth resizes the trim coordinate space.
func (e *Engine) SetWidth(width int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	sel, _ := e.reg.Selected()
	var active trim.Region
	if sel != nil {
		active = sel
	}
	e.trim.SetWidth(float64(width), active)
}

// PointerDown starts dragging the marker nearest x.
func (e *Engine) PointerDown(x float64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.trim.PointerDown(x)
}

// PointerMove drags the captured marker and updates the selected pad's
// trim range.
func (e *Engine) PointerMove(x float64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	sel, ok := e.reg.Selected()
	if !ok {
		return false
	}
	return e.trim.PointerMove(x, sel)
}

// PointerUp ends the drag and, if a marker moved, plays the new range.
func (e *Engine) PointerUp() bool {
	var out outbox

	e.mu.Lock()
	dragged := e.trim.PointerUp()
	if dragged {
		if sel, ok := e.reg.Selected(); ok {
			e.playLocked(sel, &out)
		}
	}
	e.mu.Unlock()

	out.flush()
	return dragged
}
