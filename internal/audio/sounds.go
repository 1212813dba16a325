package audio

import (
	"time"

	"github.com/gopxl/beep"
)

// Sound is a named effect.
type Sound int

const (
	SoundShot Sound = iota
	SoundHit
	SoundSplit
	SoundLatch
	SoundEMP
	SoundRoundClear
	SoundWin
	SoundLose
)

func (s Sound) String() string {
	switch s {
	case SoundShot:
		return "shot"
	case SoundHit:
		return "hit"
	case SoundSplit:
		return "split"
	case SoundLatch:
		return "latch"
	case SoundEMP:
		return "emp"
	case SoundRoundClear:
		return "round_clear"
	case SoundWin:
		return "win"
	case SoundLose:
		return "lose"
	default:
		return "unknown"
	}
}

// Build synthesizes the streamer for a sound at the given rate and volume.
func Build(s Sound, rate beep.SampleRate, volume float64) beep.Streamer {
	var st beep.Streamer
	switch s {
	case SoundShot:
		st = gain(NewEnvelope(NewSweep(1400, 700, 60*time.Millisecond, WaveSquare, rate),
			60*time.Millisecond, 2*time.Millisecond, 40*time.Millisecond, rate), 0.25)
	case SoundHit:
		st = NewEnvelope(NewTone(0, 120*time.Millisecond, WaveNoise, rate),
			120*time.Millisecond, 2*time.Millisecond, 100*time.Millisecond, rate)
		st = gain(st, 0.5)
	case SoundSplit:
		st = beep.Mix(
			gain(NewEnvelope(NewTone(0, 140*time.Millisecond, WaveNoise, rate),
				140*time.Millisecond, 2*time.Millisecond, 120*time.Millisecond, rate), 0.4),
			gain(note(220, 140*time.Millisecond, WaveSaw, rate), 0.3),
		)
	case SoundLatch:
		st = gain(NewEnvelope(NewSweep(300, 90, 250*time.Millisecond, WaveSaw, rate),
			250*time.Millisecond, 10*time.Millisecond, 150*time.Millisecond, rate), 0.5)
	case SoundEMP:
		st = beep.Mix(
			gain(NewEnvelope(NewSweep(80, 900, 400*time.Millisecond, WaveSine, rate),
				400*time.Millisecond, 5*time.Millisecond, 250*time.Millisecond, rate), 0.6),
			gain(NewEnvelope(NewTone(0, 300*time.Millisecond, WaveNoise, rate),
				300*time.Millisecond, 5*time.Millisecond, 250*time.Millisecond, rate), 0.2),
		)
	case SoundRoundClear:
		st = beep.Seq(
			gain(note(523.25, 90*time.Millisecond, WaveSquare, rate), 0.3),
			gain(note(659.25, 90*time.Millisecond, WaveSquare, rate), 0.3),
			gain(note(783.99, 180*time.Millisecond, WaveSquare, rate), 0.3),
		)
	case SoundWin:
		st = beep.Seq(
			gain(note(523.25, 120*time.Millisecond, WaveSine, rate), 0.5),
			gain(note(783.99, 120*time.Millisecond, WaveSine, rate), 0.5),
			gain(note(1046.5, 400*time.Millisecond, WaveSine, rate), 0.5),
		)
	case SoundLose:
		st = gain(NewEnvelope(NewSweep(440, 55, 900*time.Millisecond, WaveSaw, rate),
			900*time.Millisecond, 10*time.Millisecond, 500*time.Millisecond, rate), 0.5)
	default:
		return nil
	}
	return gain(st, volume)
}
