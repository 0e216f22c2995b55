// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gen2brain/malgo"

	"github.com/ik5/padbank/audio"
	"github.com/ik5/padbank/debug"
)

// Device plays a Mixer through the default output device.
type Device struct {
	mixer   *Mixer
	mctx    *malgo.AllocatedContext
	dev     *malgo.Device
	scratch []float32
}

// Open starts a stereo float32 output at sampleRate.
func Open(sampleRate int) (*Device, error) {
	mctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return nil, fmt.Errorf("init audio context: %w", err)
	}

	d := &Device{
		mixer: NewMixer(sampleRate, 2),
		mctx:  mctx,
	}

	cfg := malgo.DefaultDeviceConfig(malgo.Playback)
	cfg.PeriodSizeInMilliseconds = 10
	cfg.Playback.Format = malgo.FormatF32
	cfg.Playback.Channels = 2
	cfg.SampleRate = uint32(sampleRate)
	cfg.Alsa.NoMMap = 1

	d.dev, err = malgo.InitDevice(mctx.Context, cfg, malgo.DeviceCallbacks{
		Data: d.onData,
	})
	if err != nil {
		mctx.Uninit()
		mctx.Free()
		return nil, fmt.Errorf("init playback device: %w", err)
	}

	if err := d.dev.Start(); err != nil {
		d.dev.Uninit()
		mctx.Uninit()
		mctx.Free()
		return nil, fmt.Errorf("start playback device: %w", err)
	}

	debug.Log("playback", "output started: %d Hz stereo", sampleRate)
	return d, nil
}

func (d *Device) onData(output, _ []byte, frames uint32) {
	n := int(frames) * d.mixer.Channels()
	if cap(d.scratch) < n {
		d.scratch = make([]float32, n)
	}
	buf := d.scratch[:n]

	d.mixer.Mix(buf)
	for i, s := range buf {
		binary.LittleEndian.PutUint32(output[i*4:], math.Float32bits(s))
	}
}

// Play implements pads.Player.
func (d *Device) Play(buf *audio.Buffer, start, end float64) {
	d.mixer.Play(buf, start, end)
}

// Mixer exposes the mixer feeding the device.
func (d *Device) Mixer() *Mixer {
	return d.mixer
}

func (d *Device) Close() error {
	d.dev.Uninit()
	if err := d.mctx.Uninit(); err != nil {
		return err
	}
	d.mctx.Free()
	return nil
}
