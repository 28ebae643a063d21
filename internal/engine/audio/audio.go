// Package audio plays the looping background ambience.
package audio

import (
	"bytes"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

// DefaultSampleRate is the speaker sample rate.
const DefaultSampleRate = beep.SampleRate(44100)

// Player loops one WAV track.
type Player struct {
	mu sync.RWMutex

	initialized bool
	sampleRate  beep.SampleRate

	streamer beep.StreamSeekCloser
	ctrl     *beep.Ctrl
	volume   *effects.Volume
	path     string

	level float64 // 0.0 to 1.0
}

// New creates a player at the given volume.
func New(volume float64) *Player {
	return &Player{level: clamp(volume, 0, 1)}
}

// Init opens the audio device.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	p.sampleRate = DefaultSampleRate
	if err := speaker.Init(p.sampleRate, p.sampleRate.N(time.Second/30)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	p.initialized = true
	return nil
}

// Close stops playback and releases the track.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stop()
	if p.initialized {
		speaker.Clear()
	}
	p.initialized = false
}

// Play decodes WAV data and loops it until Stop or Close.
func (p *Player) Play(data []byte, path string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return fmt.Errorf("audio not initialized")
	}
	p.stop()

	streamer, looped, err := loopTrack(data, p.sampleRate)
	if err != nil {
		return err
	}

	p.ctrl = &beep.Ctrl{Streamer: looped}
	p.volume = &effects.Volume{Streamer: p.ctrl, Base: 2}
	p.applyVolume()

	p.streamer = streamer
	p.path = path
	speaker.Play(p.volume)
	return nil
}

// Stop ends playback.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stop()
}

func (p *Player) stop() {
	if p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = true
	speaker.Unlock()
	speaker.Clear()
	if p.streamer != nil {
		p.streamer.Close()
		p.streamer = nil
	}
	p.ctrl = nil
	p.volume = nil
	p.path = ""
}

// SetPaused pauses or resumes the track.
func (p *Player) SetPaused(paused bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = paused
	speaker.Unlock()
}

// Playing reports whether a track is loaded and not paused.
func (p *Player) Playing() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.ctrl != nil && !p.ctrl.Paused
}

// Path returns the path of the current track.
func (p *Player) Path() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.path
}

// SetVolume sets the volume (0.0 to 1.0).
func (p *Player) SetVolume(vol float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.level = clamp(vol, 0, 1)
	p.applyVolume()
}

// Volume returns the current volume.
func (p *Player) Volume() float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.level
}

func (p *Player) applyVolume() {
	if p.volume == nil {
		return
	}
	if p.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	p.volume.Silent = p.level <= 0
	p.volume.Volume = volumeToExp(p.level)
}

// volumeToExp maps a linear level to the base-2 exponent used by
// effects.Volume, so 0.5 is one halving of amplitude.
func volumeToExp(vol float64) float64 {
	if vol <= 0 {
		return -10
	}
	return math.Log2(vol)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// loopTrack decodes WAV data and loops it at the source rate, then
// resamples the endless stream to rate. The returned source is what Close
// releases.
func loopTrack(data []byte, rate beep.SampleRate) (beep.StreamSeekCloser, beep.Streamer, error) {
	source, format, err := wav.Decode(memFile{bytes.NewReader(data)})
	if err != nil {
		return nil, nil, fmt.Errorf("decode wav: %w", err)
	}
	looped, err := beep.Loop2(source)
	if err != nil {
		source.Close()
		return nil, nil, fmt.Errorf("loop wav: %w", err)
	}
	if format.SampleRate != rate {
		looped = beep.Resample(4, format.SampleRate, rate, looped)
	}
	return source, looped, nil
}

// memFile lets the decoder seek back to the start of the track.
type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }
