package cyclo

import (
	"math"

	"github.com/cbegin/cyclo/internal/lfo"
)

// ToBipolar maps a [0,1) unipolar value to [-1,1).
func ToBipolar(v float64) float64 { return v*2 - 1 }

// FromBipolar maps a [-1,1) bipolar value back to [0,1).
func FromBipolar(v float64) float64 { return (v + 1) / 2 }

// phaseSignal builds a continuous Signal from a function of cycle phase
// ([0,1)), the same shape internal/lfo.LFO.Sample computes its waveform
// value from - adapted here to run off a queried time rather than an
// advancing per-sample phase counter.
func phaseSignal(f func(phase float64) float64) Pattern {
	return Signal(func(t Rational) any {
		return f(t.CyclePos().Float64())
	})
}

// Saw rises linearly from 0 to 1 across each cycle.
func Saw() Pattern { return phaseSignal(func(phase float64) float64 { return phase }) }

// Isaw is Saw inverted: falls from 1 to 0 across each cycle.
func Isaw() Pattern { return phaseSignal(func(phase float64) float64 { return 1 - phase }) }

// Tri rises then falls linearly across each cycle, the unipolar remap of
// internal/lfo's triangle waveform.
func Tri() Pattern {
	return phaseSignal(func(phase float64) float64 { return FromBipolar(triBipolar(phase)) })
}

// Itri is Tri inverted.
func Itri() Pattern {
	return phaseSignal(func(phase float64) float64 { return 1 - FromBipolar(triBipolar(phase)) })
}

func triBipolar(phase float64) float64 { return lfo.WaveAt(lfo.WaveTriangle, phase) }

// Square is high for the first half of the cycle, low for the second -
// the unipolar remap of internal/lfo's square waveform.
func Square() Pattern {
	return phaseSignal(func(phase float64) float64 {
		if lfo.WaveAt(lfo.WaveSquare, phase) > 0 {
			return 1
		}
		return 0
	})
}

// Sine oscillates smoothly across [0,1) over each cycle.
func Sine() Pattern {
	return phaseSignal(func(phase float64) float64 {
		return FromBipolar(math.Sin(phase * 2 * math.Pi))
	})
}

// Cosine is Sine shifted a quarter cycle earlier.
func Cosine() Pattern {
	return phaseSignal(func(phase float64) float64 {
		return FromBipolar(math.Cos(phase * 2 * math.Pi))
	})
}

// SineBipolar, CosineBipolar, SawBipolar, IsawBipolar, TriBipolar and
// SquareBipolar are the [-1,1]-ranged counterparts of
// the unipolar signals above, matching the ±depth range
// internal/lfo.LFO.Sample returns directly rather than remapping it.
func SineBipolar() Pattern {
	return phaseSignal(func(phase float64) float64 { return math.Sin(phase * 2 * math.Pi) })
}

func CosineBipolar() Pattern {
	return phaseSignal(func(phase float64) float64 { return math.Cos(phase * 2 * math.Pi) })
}

// internal/lfo's raw saw formula (1-2*phase) falls across the cycle, so it
// is Isaw's shape directly; Saw negates it to rise instead.
func SawBipolar() Pattern {
	return phaseSignal(func(phase float64) float64 { return -lfo.WaveAt(lfo.WaveSaw, phase) })
}

func IsawBipolar() Pattern {
	return phaseSignal(func(phase float64) float64 { return lfo.WaveAt(lfo.WaveSaw, phase) })
}

func TriBipolar() Pattern { return phaseSignal(triBipolar) }

func SquareBipolar() Pattern {
	return phaseSignal(func(phase float64) float64 { return lfo.WaveAt(lfo.WaveSquare, phase) })
}
