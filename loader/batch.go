// SPDX-License-Identifier: EPL-2.0

package loader

import (
	"context"
	"sync"

	"github.com/ik5/padbank/audio"
	"github.com/ik5/padbank/debug"
	"github.com/ik5/padbank/pads"
)

// Job is one entry of a batch. Index is the caller's slot index and is
// passed back untouched.
type Job struct {
	Index   int
	Name    string
	Locator string
}

// Sink receives the outcome of every job in a batch. Calls for one job are
// ordered (Status connecting, any Progress, then exactly one of Loaded or
// Failed, then the final Status). Calls for different jobs may interleave
// and arrive from different goroutines.
type Sink interface {
	Status(job Job, st pads.Status)
	Progress(job Job, received, total int64)
	Loaded(job Job, buf *audio.Buffer)
	Failed(job Job, err error)
}

// LoadAll loads every job concurrently and returns once all of them have
// settled. A nil buffer passed to Loaded means the job had nothing to
// load.
func (l *Loader) LoadAll(ctx context.Context, jobs []Job, sink Sink) (loaded, failed int) {
	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)

	for _, job := range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()

			ok := l.run(ctx, job, sink)

			mu.Lock()
			if ok {
				loaded++
			} else {
				failed++
			}
			mu.Unlock()
		}()
	}

	wg.Wait()
	debug.Log("loader", "batch settled: %d loaded, %d failed", loaded, failed)

	return loaded, failed
}

func (l *Loader) run(ctx context.Context, job Job, sink Sink) bool {
	sink.Status(job, pads.Status{Phase: pads.PhaseConnecting, Message: "connecting"})

	buf, err := l.Load(ctx, job.Locator, func(received, total int64) {
		sink.Progress(job, received, total)
	})
	if err != nil {
		debug.Log("loader", "%s: %v", job.Name, err)
		sink.Failed(job, err)
		sink.Status(job, pads.Status{Phase: pads.PhaseError, Message: err.Error()})
		return false
	}

	sink.Loaded(job, buf)
	msg := "ready"
	if buf == nil {
		msg = "nothing to load"
	}
	sink.Status(job, pads.Status{Phase: pads.PhaseReady, Message: msg})
	return true
}
