// Package analysis examines recorded flight channels in the frequency
// domain, for picking oscillatory modes out of a run.
package analysis

import (
	"math"
	"math/cmplx"
)

// Spectrum is the power spectrum of one flight channel sampled at a
// fixed rate. Bins run from DC upward, half a sample rate wide in
// total.
type Spectrum struct {
	SampleRate float64
	Power      []float64
}

// Analyze removes the series mean, truncates to the largest power of
// two and returns the power spectrum. Series shorter than four samples
// or a rate of zero or less yield nil, there is no spectrum worth the
// name in them.
func Analyze(series []float64, sampleRate float64) *Spectrum {
	n := largestPowerOfTwo(len(series))
	if n < 4 || sampleRate <= 0 {
		return nil
	}

	data := make([]float64, n)
	copy(data, series[:n])

	// Detrend so the DC bin does not drown the dynamics.
	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(n)
	for i := range data {
		data[i] -= mean
	}

	bins := fft(data)
	power := make([]float64, len(bins)/2)
	for i := range power {
		power[i] = cmplx.Abs(bins[i])
	}

	return &Spectrum{SampleRate: sampleRate, Power: power}
}

// Frequency returns the center frequency of bin i in Hz.
func (s *Spectrum) Frequency(i int) float64 {
	return float64(i) * s.SampleRate / float64(2*len(s.Power))
}

// Dominant returns the frequency and power of the strongest bin above
// DC.
func (s *Spectrum) Dominant() (freq, power float64) {
	best := 1
	for i := 2; i < len(s.Power); i++ {
		if s.Power[i] > s.Power[best] {
			best = i
		}
	}
	return s.Frequency(best), s.Power[best]
}

// fft is a recursive radix-2 transform. The caller guarantees a power
// of two length.
func fft(data []float64) []complex128 {
	n := len(data)
	if n <= 1 {
		result := make([]complex128, n)
		for i := range data {
			result[i] = complex(data[i], 0)
		}
		return result
	}

	even := make([]float64, n/2)
	odd := make([]float64, n/2)
	for i := 0; i < n/2; i++ {
		even[i] = data[2*i]
		odd[i] = data[2*i+1]
	}

	feven := fft(even)
	fodd := fft(odd)

	result := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		result[k] = feven[k] + w*fodd[k]
		result[k+n/2] = feven[k] - w*fodd[k]
	}

	return result
}

func largestPowerOfTwo(n int) int {
	p := 1
	for p*2 <= n {
		p *= 2
	}
	return p
}
