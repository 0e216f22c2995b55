// SPDX-License-Identifier: EPL-2.0

package pads

import "github.com/ik5/padbank/audio"

// Sample is one pad slot. Trim bounds are seconds into Buffer and are only
// meaningful once Buffer is set.
type Sample struct {
	Name      string
	Locator   string // empty for recordings
	Buffer    *audio.Buffer
	TrimStart float64
	TrimEnd   float64
}

// HasBuffer reports whether the sample finished decoding.
func (s *Sample) HasBuffer() bool {
	return s != nil && s.Buffer != nil
}

// Duration of the decoded buffer in seconds, zero without one.
func (s *Sample) Duration() float64 {
	if !s.HasBuffer() {
		return 0
	}
	return s.Buffer.Duration()
}

// Trim returns the current trim range.
func (s *Sample) Trim() (start, end float64) {
	return s.TrimStart, s.TrimEnd
}

// SetTrim stores a trim range clamped to [0, duration]. A range that is
// empty after clamping leaves the trim unchanged, so start < end always
// holds. It is a no-op on a sample without a buffer.
func (s *Sample) SetTrim(start, end float64) {
	if !s.HasBuffer() {
		return
	}

	d := s.Duration()
	start = min(max(start, 0), d)
	end = min(max(end, 0), d)
	if end <= start {
		return
	}
	s.TrimStart, s.TrimEnd = start, end
}

// attach sets buf and resets the trim range to the full duration.
func (s *Sample) attach(buf *audio.Buffer) {
	s.Buffer = buf
	s.TrimStart = 0
	s.TrimEnd = buf.Duration()
}
