// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"github.com/ik5/padbank/audio"
	"github.com/ik5/padbank/debug"
	"github.com/ik5/padbank/loader"
	"github.com/ik5/padbank/pads"
)

// batchSink routes loader results to the slots of one batch. Results for
// slots that were replaced in the meantime are dropped.
type batchSink struct {
	e     *Engine
	slots []*pads.Sample
}

// snapshot copies the job's slot if it is still live.
func (b *batchSink) snapshot(job loader.Job) (pads.Sample, bool) {
	b.e.mu.Lock()
	defer b.e.mu.Unlock()

	s := b.slots[job.Index]
	if !b.e.reg.Contains(s) {
		return pads.Sample{}, false
	}
	return *s, true
}

func (b *batchSink) Status(job loader.Job, st pads.Status) {
	if snap, ok := b.snapshot(job); ok {
		b.e.notify.Status(&snap, st)
	}
}

func (b *batchSink) Progress(job loader.Job, received, total int64) {
	if snap, ok := b.snapshot(job); ok {
		b.e.notify.LoadProgress(snap, received, total)
	}
}

func (b *batchSink) Loaded(job loader.Job, buf *audio.Buffer) {
	if buf == nil {
		return
	}

	b.e.mu.Lock()
	s := b.slots[job.Index]
	attached := b.e.reg.Attach(s, buf)
	snap := *s

	// a pad selected while loading gets its markers now
	reselect := false
	if sel, ok := b.e.reg.Selected(); attached && ok && sel == s {
		b.e.trim.Load(s)
		reselect = true
	}
	b.e.mu.Unlock()

	if !attached {
		debug.Log("engine", "%s: dropping stale load", job.Name)
		return
	}
	b.e.notify.SampleReady(snap)
	if reselect {
		b.e.notify.SampleSelected(snap)
	}
}

func (b *batchSink) Failed(job loader.Job, err error) {
	snap, ok := b.snapshot(job)
	if !ok {
		return
	}
	b.e.notify.SampleError(snap, err)
	b.e.notify.Error(&snap, err)
}
