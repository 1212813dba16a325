package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/swarm-beacon/internal/game"
)

func drain(t *testing.T, s beep.Streamer) int {
	t.Helper()
	buf := make([][2]float64, 512)
	total := 0
	for range 1000 {
		n, ok := s.Stream(buf)
		for i := range n {
			if math.Abs(buf[i][0]) > 1+1e-9 || math.Abs(buf[i][1]) > 1+1e-9 {
				t.Fatalf("sample %d out of range: %v", total+i, buf[i])
			}
		}
		total += n
		if !ok {
			return total
		}
	}
	t.Fatal("streamer never finished")
	return total
}

func TestToneLength(t *testing.T) {
	rate := beep.SampleRate(8000)
	for _, w := range []Wave{WaveSine, WaveSquare, WaveSaw, WaveNoise} {
		got := drain(t, NewTone(440, 50*time.Millisecond, w, rate))
		if want := rate.N(50 * time.Millisecond); got != want {
			t.Errorf("wave %d: streamed %d samples, want %d", w, got, want)
		}
	}
}

func TestSquareIsBipolar(t *testing.T) {
	s := NewTone(100, 10*time.Millisecond, WaveSquare, beep.SampleRate(8000))
	buf := make([][2]float64, 40)
	n, _ := s.Stream(buf)
	for i := range n {
		if v := buf[i][0]; v != 1 && v != -1 {
			t.Fatalf("square sample %d = %v", i, v)
		}
	}
}

func TestNoiseIsReproducible(t *testing.T) {
	rate := beep.SampleRate(8000)
	a, b := make([][2]float64, 64), make([][2]float64, 64)
	NewTone(0, 20*time.Millisecond, WaveNoise, rate).Stream(a)
	NewTone(0, 20*time.Millisecond, WaveNoise, rate).Stream(b)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("noise differs at %d", i)
		}
	}
}

func TestEnvelopeRamps(t *testing.T) {
	rate := beep.SampleRate(1000)
	env := NewEnvelope(NewTone(250, 100*time.Millisecond, WaveSquare, rate),
		100*time.Millisecond, 10*time.Millisecond, 10*time.Millisecond, rate)
	buf := make([][2]float64, 100)
	n, _ := env.Stream(buf)
	if n != 100 {
		t.Fatalf("streamed %d, want 100", n)
	}
	if buf[0][0] != 0 {
		t.Errorf("first sample = %v, want silent start", buf[0][0])
	}
	if math.Abs(buf[50][0]) != 1 {
		t.Errorf("sustain sample = %v, want full scale", buf[50][0])
	}
	if math.Abs(buf[99][0]) > 0.11 {
		t.Errorf("last sample = %v, want near silence", buf[99][0])
	}
}

func TestEverySoundBuildsAndEnds(t *testing.T) {
	rate := beep.SampleRate(8000)
	for s := SoundShot; s <= SoundLose; s++ {
		t.Run(s.String(), func(t *testing.T) {
			st := Build(s, rate, 1)
			if st == nil {
				t.Fatal("nil streamer")
			}
			if n := drain(t, st); n == 0 {
				t.Error("sound produced no samples")
			}
		})
	}
	if Build(Sound(99), rate, 1) != nil {
		t.Error("unknown sound should build nil")
	}
}

func TestSoundsFor(t *testing.T) {
	tests := []struct {
		name   string
		events []game.Event
		want   []Sound
	}{
		{"nothing", nil, nil},
		{"shots collapse", []game.Event{{Kind: game.EventShotFired}, {Kind: game.EventShotFired}}, []Sound{SoundShot}},
		{"split vs hit", []game.Event{
			{Kind: game.EventClumpDestroyed, Children: 2},
			{Kind: game.EventClumpDestroyed},
		}, []Sound{SoundSplit, SoundHit}},
		{"latch and emp", []game.Event{{Kind: game.EventLatched}, {Kind: game.EventEMP}}, []Sound{SoundLatch, SoundEMP}},
		{"round clear", []game.Event{
			{Kind: game.EventPhaseChanged, From: game.PhasePlaying, To: game.PhaseRoundComplete},
			{Kind: game.EventPhaseChanged, From: game.PhaseTitle, To: game.PhasePlaying},
		}, []Sound{SoundRoundClear}},
		{"outcomes", []game.Event{
			{Kind: game.EventOutcome, Outcome: game.OutcomeWin},
			{Kind: game.EventOutcome, Outcome: game.OutcomeLose},
			{Kind: game.EventOutcome, Outcome: game.OutcomeAbort},
		}, []Sound{SoundWin, SoundLose}},
		{"spawns are silent", []game.Event{{Kind: game.EventClumpSpawned}, {Kind: game.EventDetached}}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SoundsFor(tt.events)
			if len(got) != len(tt.want) {
				t.Fatalf("SoundsFor = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("SoundsFor[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

// enabledManager bypasses the speaker so the mixer can be inspected.
func enabledManager() *SoundManager {
	sm := NewSoundManager(DefaultConfig(), nil)
	sm.enabled = true
	return sm
}

func TestDisabledManagerIsSilent(t *testing.T) {
	sm := NewSoundManager(Config{Enabled: false}, nil)
	sm.Init()
	if sm.Enabled() {
		t.Fatal("disabled config should not open the speaker")
	}
	sm.Handle([]game.Event{{Kind: game.EventEMP}})
	if sm.Played(SoundEMP) != 0 || sm.mixer.Len() != 0 {
		t.Error("disabled manager queued a sound")
	}
	sm.Close()
}

func TestManagerQueuesAndMutes(t *testing.T) {
	sm := enabledManager()
	sm.Handle([]game.Event{{Kind: game.EventShotFired}, {Kind: game.EventLatched}})
	if sm.mixer.Len() != 2 {
		t.Fatalf("mixer has %d streamers, want 2", sm.mixer.Len())
	}

	sm.SetMuted(true)
	if sm.mixer.Len() != 0 {
		t.Error("muting should drop queued sounds")
	}
	sm.Handle([]game.Event{{Kind: game.EventEMP}})
	if sm.Played(SoundEMP) != 0 {
		t.Error("muted manager queued a sound")
	}

	sm.SetMuted(false)
	sm.Play(SoundEMP)
	if sm.Played(SoundEMP) != 1 || sm.Played(SoundShot) != 1 {
		t.Errorf("played counts emp=%d shot=%d", sm.Played(SoundEMP), sm.Played(SoundShot))
	}
}
