// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"sync"

	"github.com/ik5/padbank/audio"
)

// Play is one recorded play request.
type Play struct {
	Buffer     *audio.Buffer
	Start, End float64
}

// Player records play requests instead of producing sound.
type Player struct {
	mu    sync.Mutex
	plays []Play
}

func (p *Player) Play(buf *audio.Buffer, start, end float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.plays = append(p.plays, Play{Buffer: buf, Start: start, End: end})
}

// Plays returns a copy of every request so far.
func (p *Player) Plays() []Play {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]Play, len(p.plays))
	copy(out, p.plays)
	return out
}

// Last returns the most recent request.
func (p *Player) Last() (Play, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.plays) == 0 {
		return Play{}, false
	}
	return p.plays[len(p.plays)-1], true
}

// Reset forgets recorded requests.
func (p *Player) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.plays = nil
}
