// SPDX-License-Identifier: EPL-2.0

package capture

import (
	"context"
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/gen2brain/malgo"

	"github.com/ik5/padbank/debug"
	"github.com/ik5/padbank/formats/wav"
	"github.com/ik5/padbank/pads"
)

// MalgoDevice captures 16-bit PCM from the default input device and
// delivers each take as a WAV file.
type MalgoDevice struct {
	SampleRate int
	Channels   int
}

func NewMalgoDevice(sampleRate, channels int) *MalgoDevice {
	return &MalgoDevice{SampleRate: sampleRate, Channels: channels}
}

func (d *MalgoDevice) Acquire(ctx context.Context, deliver func([]byte)) (Stream, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: init audio context: %w", pads.ErrPermission, err)
	}

	s := &malgoStream{
		mctx:       mctx,
		sampleRate: d.SampleRate,
		channels:   d.Channels,
		deliver:    deliver,
	}

	cfg := malgo.DefaultDeviceConfig(malgo.Capture)
	cfg.PeriodSizeInMilliseconds = 20
	cfg.Capture.Format = malgo.FormatS16
	cfg.Capture.Channels = uint32(d.Channels)
	cfg.SampleRate = uint32(d.SampleRate)
	cfg.Alsa.NoMMap = 1

	s.dev, err = malgo.InitDevice(mctx.Context, cfg, malgo.DeviceCallbacks{
		Data: s.onData,
	})
	if err != nil {
		mctx.Uninit()
		mctx.Free()
		return nil, fmt.Errorf("%w: init capture device: %w", pads.ErrPermission, err)
	}

	debug.Log("capture", "input acquired: %d Hz, %d ch", d.SampleRate, d.Channels)
	return s, nil
}

type malgoStream struct {
	mctx       *malgo.AllocatedContext
	dev        *malgo.Device
	sampleRate int
	channels   int
	deliver    func([]byte)

	mu        sync.Mutex
	pcm       []byte
	recording bool
	closed    bool
}

func (s *malgoStream) onData(_, input []byte, _ uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.recording {
		s.pcm = append(s.pcm, input...)
	}
}

func (s *malgoStream) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if s.recording {
		return nil
	}

	s.pcm = s.pcm[:0]
	if err := s.dev.Start(); err != nil {
		return fmt.Errorf("start capture device: %w", err)
	}
	s.recording = true
	return nil
}

func (s *malgoStream) Stop() error {
	s.mu.Lock()
	if !s.recording {
		s.mu.Unlock()
		return nil
	}
	s.recording = false
	raw := s.pcm
	s.pcm = nil
	s.mu.Unlock()

	if err := s.dev.Stop(); err != nil {
		return fmt.Errorf("stop capture device: %w", err)
	}

	go func() {
		if len(raw) < 2 {
			s.deliver(nil)
			return
		}

		samples := make([]int16, len(raw)/2)
		for i := range samples {
			samples[i] = int16(binary.LittleEndian.Uint16(raw[i*2:]))
		}

		data, err := wav.EncodeInt16(s.sampleRate, s.channels, samples)
		if err != nil {
			debug.Log("capture", "encode take: %v", err)
			s.deliver(nil)
			return
		}
		s.deliver(data)
	}()

	return nil
}

func (s *malgoStream) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.recording = false
	s.mu.Unlock()

	s.dev.Uninit()
	if err := s.mctx.Uninit(); err != nil {
		return err
	}
	s.mctx.Free()
	return nil
}
