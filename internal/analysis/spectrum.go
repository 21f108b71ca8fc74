package analysis

import (
	"errors"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/stat"

	"zebranoise/internal/frame"
)

// MaxSpectrumSize caps the square crop handed to the FFT.
const MaxSpectrumSize = 512

// Spectrum is a radially averaged power spectrum.
type Spectrum struct {
	Size        int
	Frequencies []float64 // cycles per pixel
	Power       []float64
	Slope       float64
	Intercept   float64
	RSquared    float64
}

// RadialSpectrum crops s to the largest power-of-two square that fits (at
// most MaxSpectrumSize), removes the mean, and averages |F|² over integer
// radii 1..n/2. Slope is the least-squares fit of log power on log frequency.
func RadialSpectrum(s *frame.Float) (Spectrum, error) {
	if s == nil {
		return Spectrum{}, errors.New("spectrum: nil slice")
	}
	n := 1
	for n*2 <= min(s.Width, s.Height, MaxSpectrumSize) {
		n *= 2
	}
	if n < 8 {
		return Spectrum{}, errors.New("spectrum: slice smaller than 8x8")
	}

	rows := make([][]float64, n)
	var mean float64
	for y := range n {
		rows[y] = append([]float64(nil), s.Row(y)[:n]...)
		for _, v := range rows[y] {
			mean += v
		}
	}
	mean /= float64(n * n)
	for y := range rows {
		for x := range rows[y] {
			rows[y][x] -= mean
		}
	}

	freq := fft.FFT2Real(rows)
	half := n / 2
	sums := make([]float64, half+1)
	counts := make([]int, half+1)
	for ky := range n {
		fy := wrapFreq(ky, n)
		for kx := range n {
			fx := wrapFreq(kx, n)
			r := int(math.Round(math.Hypot(float64(fx), float64(fy))))
			if r < 1 || r > half {
				continue
			}
			p := cmplx.Abs(freq[ky][kx])
			sums[r] += p * p
			counts[r]++
		}
	}

	out := Spectrum{Size: n}
	var logF, logP []float64
	for r := 1; r <= half; r++ {
		if counts[r] == 0 {
			continue
		}
		p := sums[r] / float64(counts[r])
		f := float64(r) / float64(n)
		out.Frequencies = append(out.Frequencies, f)
		out.Power = append(out.Power, p)
		if p > 0 {
			logF = append(logF, math.Log10(f))
			logP = append(logP, math.Log10(p))
		}
	}
	if len(logF) < 2 {
		return out, errors.New("spectrum: flat slice has no power to fit")
	}
	out.Intercept, out.Slope = stat.LinearRegression(logF, logP, nil, false)
	out.RSquared = stat.RSquared(logF, logP, nil, out.Intercept, out.Slope)
	return out, nil
}

func wrapFreq(k, n int) int {
	if k > n/2 {
		return k - n
	}
	return k
}
