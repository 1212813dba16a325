// Package audio synthesizes sound effects from simulation events. Audio is
// strictly a side effect: failures disable it and never reach the game.
package audio

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/swarm-beacon/internal/game"
)

// DefaultSampleRate is the output rate used when Config leaves it zero.
const DefaultSampleRate = beep.SampleRate(44100)

// Config controls the sound manager.
type Config struct {
	Enabled    bool
	SampleRate beep.SampleRate
	Volume     float64 // 0..1
}

// DefaultConfig returns audio enabled at 60% volume.
func DefaultConfig() Config {
	return Config{Enabled: true, SampleRate: DefaultSampleRate, Volume: 0.6}
}

// SoundManager plays effects for game events through a shared mixer.
type SoundManager struct {
	mu      sync.Mutex
	cfg     Config
	logger  *log.Logger
	mixer   *beep.Mixer
	enabled bool
	muted   bool
	played  map[Sound]int

	// lock/unlock guard the mixer against the speaker goroutine.
	lock, unlock func()
}

// NewSoundManager creates a manager. Nothing is played until Init succeeds.
func NewSoundManager(cfg Config, logger *log.Logger) *SoundManager {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = DefaultSampleRate
	}
	if logger == nil {
		logger = log.Default()
	}
	return &SoundManager{
		cfg:    cfg,
		logger: logger,
		mixer:  &beep.Mixer{},
		played: make(map[Sound]int),
		lock:   func() {},
		unlock: func() {},
	}
}

// Init opens the speaker. Any failure is logged and leaves the manager
// disabled; it is never returned to the caller.
func (sm *SoundManager) Init() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if !sm.cfg.Enabled || sm.enabled {
		return
	}
	if err := speaker.Init(sm.cfg.SampleRate, sm.cfg.SampleRate.N(100*time.Millisecond)); err != nil {
		sm.logger.Warn("audio disabled", "err", err)
		return
	}
	sm.lock, sm.unlock = speaker.Lock, speaker.Unlock
	speaker.Play(sm.mixer)
	sm.enabled = true
}

// Enabled reports whether sound is being produced.
func (sm *SoundManager) Enabled() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.enabled
}

// SetMuted silences new sounds and drops queued ones.
func (sm *SoundManager) SetMuted(m bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if m && !sm.muted {
		sm.lock()
		sm.mixer.Clear()
		sm.unlock()
	}
	sm.muted = m
}

// Handle plays the sounds for one step's events. At most one shot sound is
// queued per step.
func (sm *SoundManager) Handle(events []game.Event) {
	for _, s := range SoundsFor(events) {
		sm.Play(s)
	}
}

// Play queues a single sound.
func (sm *SoundManager) Play(s Sound) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if !sm.enabled || sm.muted {
		return
	}
	st := Build(s, sm.cfg.SampleRate, sm.cfg.Volume)
	if st == nil {
		return
	}
	sm.lock()
	sm.mixer.Add(st)
	sm.unlock()
	sm.played[s]++
}

// Played returns how many times s has been queued.
func (sm *SoundManager) Played(s Sound) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.played[s]
}

// Close stops playback.
func (sm *SoundManager) Close() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if !sm.enabled {
		return
	}
	sm.lock()
	sm.mixer.Clear()
	sm.unlock()
	speaker.Clear()
	sm.enabled = false
}

// SoundsFor maps events onto sounds. Mute toggles inside the batch are
// applied by the caller through SetMuted before Handle.
func SoundsFor(events []game.Event) []Sound {
	var out []Sound
	shot := false
	for _, e := range events {
		switch e.Kind {
		case game.EventShotFired:
			if !shot {
				out = append(out, SoundShot)
				shot = true
			}
		case game.EventClumpDestroyed:
			if e.Children > 0 {
				out = append(out, SoundSplit)
			} else {
				out = append(out, SoundHit)
			}
		case game.EventLatched:
			out = append(out, SoundLatch)
		case game.EventEMP:
			out = append(out, SoundEMP)
		case game.EventPhaseChanged:
			if e.To == game.PhaseRoundComplete {
				out = append(out, SoundRoundClear)
			}
		case game.EventOutcome:
			switch e.Outcome {
			case game.OutcomeWin:
				out = append(out, SoundWin)
			case game.OutcomeLose:
				out = append(out, SoundLose)
			}
		}
	}
	return out
}
