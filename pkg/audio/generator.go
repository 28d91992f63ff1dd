package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

const hornAttack = 20 * time.Millisecond

// Waveform types
const (
	waveSine = iota
	waveSquare
	waveSaw
)

// oscillator is a phase accumulator for one waveform
type oscillator struct {
	wave  int
	phase float64
}

func (o *oscillator) next(freq float64, sr beep.SampleRate) float64 {
	var v float64
	switch o.wave {
	case waveSine:
		v = math.Sin(2 * math.Pi * o.phase)
	case waveSquare:
		v = 1
		if o.phase >= 0.5 {
			v = -1
		}
	case waveSaw:
		v = 2 * (o.phase - 0.5)
	}
	o.phase += freq / float64(sr)
	if o.phase >= 1 {
		o.phase -= math.Floor(o.phase)
	}
	return v
}

// EngineGenerator is an endless idle-to-cruise engine drone. It never drains, so
// it loops until its Ctrl is cleared.
type EngineGenerator struct {
	sr     beep.SampleRate
	body   oscillator
	rumble oscillator
	t      int
}

func NewEngineGenerator(sr beep.SampleRate) *EngineGenerator {
	return &EngineGenerator{
		sr:     sr,
		body:   oscillator{wave: waveSaw},
		rumble: oscillator{wave: waveSine},
	}
}

func (g *EngineGenerator) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		// 4Hz wobble so the loop doesn't sound like a test tone.
		wobble := math.Sin(2 * math.Pi * 4 * float64(g.t) / float64(g.sr))
		v := 0.25*g.body.next(55+3*wobble, g.sr) + 0.15*g.rumble.next(27.5, g.sr)
		samples[i] = [2]float64{v, v}
		g.t++
	}
	return len(samples), true
}

func (g *EngineGenerator) Err() error { return nil }

// StarterGenerator is a cranking starter motor that rises into the engine note.
// Wrap it in beep.Take to bound its length.
type StarterGenerator struct {
	sr    beep.SampleRate
	crank oscillator
	body  oscillator
	t     int
}

func NewStarterGenerator(sr beep.SampleRate) *StarterGenerator {
	return &StarterGenerator{
		sr:    sr,
		crank: oscillator{wave: waveSquare},
		body:  oscillator{wave: waveSaw},
	}
}

func (g *StarterGenerator) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		sec := float64(g.t) / float64(g.sr)
		// Starter pulses at ~12Hz for the first 0.4s, then the engine catches.
		gate := 0.0
		if math.Sin(2*math.Pi*12*sec) > 0 {
			gate = 1
		}
		catch := clamp01((sec - 0.4) / 0.3)
		v := 0.2*(1-catch)*gate*g.crank.next(90, g.sr) +
			0.3*catch*g.body.next(55+40*(1-catch), g.sr)
		samples[i] = [2]float64{v, v}
		g.t++
	}
	return len(samples), true
}

func (g *StarterGenerator) Err() error { return nil }

// HornGenerator is a two-tone car horn with a short attack
type HornGenerator struct {
	sr   beep.SampleRate
	low  oscillator
	high oscillator
	t    int
}

func NewHornGenerator(sr beep.SampleRate) *HornGenerator {
	return &HornGenerator{
		sr:   sr,
		low:  oscillator{wave: waveSquare},
		high: oscillator{wave: waveSquare},
	}
}

func (g *HornGenerator) Stream(samples [][2]float64) (int, bool) {
	attack := g.sr.N(hornAttack)
	for i := range samples {
		vol := 1.0
		if g.t < attack {
			vol = float64(g.t) / float64(attack)
		}
		v := vol * (0.15*g.low.next(400, g.sr) + 0.15*g.high.next(500, g.sr))
		samples[i] = [2]float64{v, v}
		g.t++
	}
	return len(samples), true
}

func (g *HornGenerator) Err() error { return nil }

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
