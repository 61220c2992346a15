// Package audio provides sound effect playback for game events.
package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/generators"
	"github.com/gopxl/beep/v2/speaker"
)

// DefaultSampleRate is the default sample rate for audio playback.
const DefaultSampleRate = beep.SampleRate(44100)

// tone is one note of a generated effect.
type tone struct {
	freq int
	dur  time.Duration
}

// The game ships no recorded sounds; every effect is a short generated
// tone sequence.
var (
	jumpEffect     = []tone{{880, 60 * time.Millisecond}}
	gameOverEffect = []tone{{440, 120 * time.Millisecond}, {330, 120 * time.Millisecond}, {220, 180 * time.Millisecond}}
	dayNightEffect = []tone{{600, 80 * time.Millisecond}, {900, 80 * time.Millisecond}}
)

// Manager handles sound effect playback for the game.
type Manager struct {
	mu sync.RWMutex

	initialized bool
	sampleRate  beep.SampleRate
	muted       bool

	// Volume settings (0.0 to 1.0)
	masterVolume float64
	sfxVolLevel  float64

	// SFX mixer for concurrent sound effects
	sfxMixer *beep.Mixer
}

// New creates a new audio manager.
func New() *Manager {
	return &Manager{
		masterVolume: 1.0,
		sfxVolLevel:  1.0,
		sfxMixer:     &beep.Mixer{},
	}
}

// Init initializes the audio device. The manager stays usable when this
// fails; playback calls just do nothing.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	m.sampleRate = DefaultSampleRate
	if err := speaker.Init(m.sampleRate, m.sampleRate.N(time.Second/30)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}

	speaker.Play(m.sfxMixer)

	m.initialized = true
	return nil
}

// Close shuts down the audio system.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		speaker.Clear()
	}
	m.initialized = false
}

// IsInitialized returns whether the audio system is initialized.
func (m *Manager) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initialized
}

// SetMuted silences all effects without touching the volume levels.
func (m *Manager) SetMuted(muted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muted = muted
}

// IsMuted returns whether effects are silenced.
func (m *Manager) IsMuted() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.muted
}

// SetMasterVolume sets the master volume (0.0 to 1.0).
func (m *Manager) SetMasterVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.masterVolume = clamp(vol, 0, 1)
}

// SetSFXVolume sets the SFX volume (0.0 to 1.0).
func (m *Manager) SetSFXVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sfxVolLevel = clamp(vol, 0, 1)
}

// GetMasterVolume returns the master volume.
func (m *Manager) GetMasterVolume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.masterVolume
}

// GetSFXVolume returns the SFX volume.
func (m *Manager) GetSFXVolume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sfxVolLevel
}

// PlayJump plays the jump chirp.
func (m *Manager) PlayJump() {
	m.play(jumpEffect)
}

// PlayGameOver plays the descending collision sting.
func (m *Manager) PlayGameOver() {
	m.play(gameOverEffect)
}

// PlayDayNight plays the day/night transition cue.
func (m *Manager) PlayDayNight() {
	m.play(dayNightEffect)
}

// play mixes a tone sequence into the speaker output.
func (m *Manager) play(seq []tone) {
	m.mu.RLock()
	initialized := m.initialized
	muted := m.muted
	vol := m.masterVolume * m.sfxVolLevel
	sr := m.sampleRate
	m.mu.RUnlock()

	if !initialized || muted || vol <= 0 {
		return
	}

	streamer, err := sequence(sr, seq)
	if err != nil {
		return
	}

	volStreamer := &effects.Volume{
		Streamer: streamer,
		Base:     2,
		Volume:   volumeToDb(vol),
		Silent:   vol <= 0,
	}

	// The speaker streams from another goroutine; the mixer may only be
	// touched under its lock.
	speaker.Lock()
	m.sfxMixer.Add(volStreamer)
	speaker.Unlock()
}

// sequence builds a streamer that plays each tone in order.
func sequence(sr beep.SampleRate, seq []tone) (beep.Streamer, error) {
	parts := make([]beep.Streamer, 0, len(seq))
	for _, t := range seq {
		osc, err := generators.SinTone(sr, t.freq)
		if err != nil {
			return nil, err
		}
		parts = append(parts, beep.Take(sr.N(t.dur), osc))
	}
	return beep.Seq(parts...), nil
}

// volumeToDb converts a 0-1 volume to the decibel scale beep's Volume
// effect expects: vol=1 -> 0dB, vol=0.5 -> ~-6dB.
func volumeToDb(vol float64) float64 {
	if vol <= 0 {
		return -100 // Effectively silent
	}
	return 20 * math.Log10(vol)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
