// SPDX-License-Identifier: EPL-2.0

package trim

import "math"

// MinGap is the smallest distance, in pixels, kept between the markers.
const MinGap = 1.0

// Region is the trim state of one sample.
type Region interface {
	HasBuffer() bool
	Duration() float64
	Trim() (start, end float64)
	SetTrim(start, end float64)
}

// Marker identifies one of the two boundaries.
type Marker int

const (
	None Marker = iota
	Left
	Right
)

func (m Marker) String() string {
	switch m {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "none"
	}
}

// Controller holds the marker positions for the active sample and the
// state of the current drag. It keeps no reference to the sample itself;
// callers pass the active Region to every call that needs it.
//
// Controller is not safe for concurrent use.
type Controller struct {
	width       float64
	left, right float64
	set         bool

	drag  Marker
	moved bool
}

// New creates a controller for a coordinate space of the given width.
func New(width float64) *Controller {
	return &Controller{width: width}
}

func (c *Controller) Width() float64 {
	return c.width
}

// Markers returns the marker pixels. ok is false while no sample with a
// buffer is active.
func (c *Controller) Markers() (left, right float64, ok bool) {
	return c.left, c.right, c.set
}

// Dragging returns the captured marker, None when idle.
func (c *Controller) Dragging() Marker {
	return c.drag
}

// Select switches the active sample. The outgoing sample's trim is first
// written back from the markers, then the incoming sample's trim is loaded
// into them. It reports whether the incoming sample has a buffer; without
// one the markers stay unset.
func (c *Controller) Select(outgoing, incoming Region) bool {
	if c.set && outgoing != nil && outgoing.HasBuffer() {
		c.commit(outgoing)
	}

	c.drag = None
	c.moved = false
	return c.Load(incoming)
}

// Load positions the markers from r's trim without committing anything.
func (c *Controller) Load(r Region) bool {
	if r == nil || !r.HasBuffer() {
		c.set = false
		c.left, c.right = 0, 0
		return false
	}

	d := r.Duration()
	start, end := r.Trim()
	c.left = min(max(SecondsToPixel(start, d, c.width), 0), c.width)
	c.right = min(max(SecondsToPixel(end, d, c.width), c.left), c.width)
	c.set = true
	return true
}

// SetWidth changes the coordinate space and reloads the markers from the
// active region.
func (c *Controller) SetWidth(width float64, active Region) {
	if width <= 0 || width == c.width {
		return
	}
	c.width = width
	c.Load(active)
}

// PointerDown starts a drag of whichever marker is nearer x. On a tie the
// left marker wins unless x lies past it. It reports whether a marker was
// captured.
func (c *Controller) PointerDown(x float64) bool {
	if !c.set {
		return false
	}

	dl, dr := math.Abs(x-c.left), math.Abs(x-c.right)
	switch {
	case dl < dr:
		c.drag = Left
	case dr < dl:
		c.drag = Right
	case x <= c.left:
		c.drag = Left
	default:
		c.drag = Right
	}
	c.moved = false
	return true
}

// PointerMove moves the captured marker towards x, clamped to the space
// and to MinGap from the other marker, and writes the new range into
// active. It reports whether a marker moved.
func (c *Controller) PointerMove(x float64, active Region) bool {
	if c.drag == None || !c.set {
		return false
	}

	x = min(max(x, 0), c.width)

	prev := c.left
	switch c.drag {
	case Left:
		c.left = max(min(x, c.right-MinGap), 0)
	case Right:
		prev = c.right
		c.right = min(max(x, c.left+MinGap), c.width)
	}

	now := c.left
	if c.drag == Right {
		now = c.right
	}
	if now == prev {
		return false
	}

	c.moved = true
	if active != nil && active.HasBuffer() {
		c.commit(active)
	}
	return true
}

// PointerUp ends the drag. It reports whether any marker moved during it,
// in which case the caller should audition the new range.
func (c *Controller) PointerUp() bool {
	moved := c.drag != None && c.moved
	c.drag = None
	c.moved = false
	return moved
}

func (c *Controller) commit(r Region) {
	d := r.Duration()
	r.SetTrim(PixelToSeconds(c.left, d, c.width), PixelToSeconds(c.right, d, c.width))
}
