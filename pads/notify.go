// SPDX-License-Identifier: EPL-2.0

package pads

// Phase of a sample load or of the capture pipeline.
type Phase string

const (
	PhaseConnecting Phase = "connecting"
	PhaseDecoding   Phase = "decoding"
	PhaseReady      Phase = "ready"
	PhaseError      Phase = "error"
)

type Status struct {
	Phase   Phase
	Message string
}

// Notifier receives pad bank events. Samples are passed by value; holding
// on to one does not keep a slot alive. A nil *Sample marks an event that
// belongs to the capture pipeline rather than to a slot.
//
// Methods may be called from loader goroutines, never while the engine
// holds its lock, so implementations may call back into the engine.
type Notifier interface {
	SampleReady(s Sample)
	SampleError(s Sample, err error)
	SampleSelected(s Sample)
	LoadProgress(s Sample, received, total int64)
	Status(s *Sample, st Status)
	Error(s *Sample, err error)
	BatchLoaded(loaded, failed int)
	RecordingStarted()
	RecordingStopped()
	CaptureReady()
}

// NopNotifier ignores every event. Embed it to implement only a subset.
type NopNotifier struct{}

func (NopNotifier) SampleReady(Sample)                {}
func (NopNotifier) SampleError(Sample, error)         {}
func (NopNotifier) SampleSelected(Sample)             {}
func (NopNotifier) LoadProgress(Sample, int64, int64) {}
func (NopNotifier) Status(*Sample, Status)            {}
func (NopNotifier) Error(*Sample, error)              {}
func (NopNotifier) BatchLoaded(int, int)              {}
func (NopNotifier) RecordingStarted()                 {}
func (NopNotifier) RecordingStopped()                 {}
func (NopNotifier) CaptureReady()                     {}

var _ Notifier = NopNotifier{}
