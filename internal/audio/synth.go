package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/vovakirdan/swarm-beacon/internal/core"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator produces a single tone for a fixed number of samples. The
// frequency glides linearly from freq to glideTo across the duration when
// glideTo is non-zero.
type oscillator struct {
	freq    float64
	glideTo float64
	phase   float64
	total   int
	pos     int
	wave    Wave
	rate    beep.SampleRate
	noise   *core.RNG
}

// NewTone creates an oscillator streamer.
func NewTone(freq float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return newOscillator(freq, 0, d, wave, rate)
}

// NewSweep creates an oscillator that glides from one frequency to another.
func NewSweep(from, to float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return newOscillator(from, to, d, wave, rate)
}

func newOscillator(freq, glideTo float64, d time.Duration, wave Wave, rate beep.SampleRate) *oscillator {
	o := &oscillator{freq: freq, glideTo: glideTo, total: rate.N(d), wave: wave, rate: rate}
	if wave == WaveNoise {
		// Noise draws from its own generator so sound never touches game state.
		o.noise = core.NewRNG(uint32(o.total) ^ 0x5EED) //#nosec G115 -- sample counts are small
	}
	return o
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.pos >= o.total {
			return i, i > 0
		}
		var v float64
		switch o.wave {
		case WaveSine:
			v = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			v = 1
			if o.phase >= 0.5 {
				v = -1
			}
		case WaveSaw:
			v = 2 * (o.phase - 0.5)
		case WaveNoise:
			v = o.noise.Range(-1, 1)
		}
		samples[i][0] = v
		samples[i][1] = v

		f := o.freq
		if o.glideTo != 0 && o.total > 0 {
			f += (o.glideTo - o.freq) * float64(o.pos) / float64(o.total)
		}
		o.phase += f / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.pos++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and release to a streamer.
type envelope struct {
	s       beep.Streamer
	pos     int
	attack  int
	release int
	total   int
}

// NewEnvelope shapes s with a linear attack/release over duration d.
func NewEnvelope(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{s: s, attack: rate.N(attack), release: rate.N(release), total: rate.N(d)}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.s.Stream(samples)
	for i := range n {
		if e.pos >= e.total {
			return i, i > 0
		}
		vol := 1.0
		if e.attack > 0 && e.pos < e.attack {
			vol = float64(e.pos) / float64(e.attack)
		}
		if left := e.total - e.pos; e.release > 0 && left < e.release {
			vol = math.Min(vol, float64(left)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.s.Err() }

// gain scales a streamer by a linear factor; zero or less is silent.
func gain(s beep.Streamer, v float64) beep.Streamer {
	if v <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(v)}
}

// note is a shaped tone with a short attack and a release over its tail.
func note(freq float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return NewEnvelope(NewTone(freq, d, wave, rate), d, 4*time.Millisecond, d/2, rate)
}
