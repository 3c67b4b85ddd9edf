// SPDX-License-Identifier: EPL-2.0

package dsp

import (
	"math"
	"math/cmplx"

	dspcore "github.com/cwbudde/algo-dsp/dsp/core"
)

// ButterworthQ is the section Q of a second-order Butterworth response.
const ButterworthQ = math.Sqrt2 / 2

// Biquad is a second-order IIR section in Direct Form I. Process does not
// allocate.
type Biquad struct {
	b0, b1, b2 float64
	a1, a2     float64

	x1, x2 float64
	y1, y2 float64
}

// NewBiquad takes coefficients already normalised by a0.
func NewBiquad(b0, b1, b2, a1, a2 float64) *Biquad {
	return &Biquad{b0: b0, b1: b1, b2: b2, a1: a1, a2: a2}
}

func newNormalized(b0, b1, b2, a0, a1, a2 float64) *Biquad {
	return NewBiquad(b0/a0, b1/a0, b2/a0, a1/a0, a2/a0)
}

func (b *Biquad) Process(x float64) float64 {
	y := b.b0*x + b.b1*b.x1 + b.b2*b.x2 - b.a1*b.y1 - b.a2*b.y2
	y = dspcore.FlushDenormals(y)

	b.x2, b.x1 = b.x1, x
	b.y2, b.y1 = b.y1, y

	return y
}

// ProcessBuffer filters buf in place.
func (b *Biquad) ProcessBuffer(buf []float32) {
	for i, v := range buf {
		buf[i] = float32(b.Process(float64(v)))
	}
}

func (b *Biquad) Reset() {
	b.x1, b.x2 = 0, 0
	b.y1, b.y2 = 0, 0
}

// rbj returns the shared terms of the RBJ cookbook designs.
func rbj(freq, sampleRate, q float64) (cosw0, alpha float64) {
	w0 := 2 * math.Pi * freq / sampleRate
	return math.Cos(w0), math.Sin(w0) / (2 * q)
}

// NewLowpass is an RBJ low-pass.
func NewLowpass(cutoff, sampleRate, q float64) *Biquad {
	c, alpha := rbj(cutoff, sampleRate, q)
	return newNormalized((1-c)/2, 1-c, (1-c)/2, 1+alpha, -2*c, 1-alpha)
}

// NewHighpass is an RBJ high-pass.
func NewHighpass(cutoff, sampleRate, q float64) *Biquad {
	c, alpha := rbj(cutoff, sampleRate, q)
	return newNormalized((1+c)/2, -(1 + c), (1+c)/2, 1+alpha, -2*c, 1-alpha)
}

// NewBandpass has unity gain at center.
func NewBandpass(center, sampleRate, q float64) *Biquad {
	c, alpha := rbj(center, sampleRate, q)
	return newNormalized(alpha, 0, -alpha, 1+alpha, -2*c, 1-alpha)
}

// NewNotch is an RBJ notch.
func NewNotch(center, sampleRate, q float64) *Biquad {
	c, alpha := rbj(center, sampleRate, q)
	return newNormalized(1, -2*c, 1, 1+alpha, -2*c, 1-alpha)
}

// Chain runs sections in series.
type Chain []*Biquad

func (ch Chain) ProcessBuffer(buf []float32) {
	for _, b := range ch {
		b.ProcessBuffer(buf)
	}
}

func (ch Chain) Reset() {
	for _, b := range ch {
		b.Reset()
	}
}

// BandEdges turns a center frequency and a bandwidth given as a fraction of
// it into cutoffs clamped inside (0, nyquist).
func BandEdges(center, fraction, sampleRate float64) (low, high float64) {
	half := center * fraction / 2
	nyquist := sampleRate / 2

	low = max(center-half, 1)
	high = min(center+half, nyquist*0.99)

	return low, high
}

// NewButterworthBandpass is a 12 dB/octave high-pass at low followed by a
// 12 dB/octave low-pass at high.
func NewButterworthBandpass(low, high, sampleRate float64) Chain {
	return Chain{
		NewHighpass(low, sampleRate, ButterworthQ),
		NewLowpass(high, sampleRate, ButterworthQ),
	}
}

// NewBandstop is a fourth-order Butterworth band-stop over [low, high]: the
// second-order Butterworth low-pass prototype mapped to a band-stop, split
// into two sections and discretised with a prewarped bilinear transform.
// Each section has unity gain at DC and nyquist.
func NewBandstop(low, high, sampleRate float64) Chain {
	k := 2 * sampleRate
	wl := k * math.Tan(math.Pi*low/sampleRate)
	wh := k * math.Tan(math.Pi*high/sampleRate)
	w0sq := wl * wh

	// s = bw*s' / (s'^2 + w0^2) turns each prototype pole p into the roots
	// of s'^2 - (bw/p)s' + w0^2.
	proto := cmplx.Exp(complex(0, 3*math.Pi/4))
	bp := complex(wh-wl, 0) / proto
	disc := cmplx.Sqrt(bp*bp - complex(4*w0sq, 0))

	chain := make(Chain, 0, 2)
	for _, pole := range []complex128{(bp + disc) / 2, (bp - disc) / 2} {
		a1 := -2 * real(pole)
		a0 := real(pole)*real(pole) + imag(pole)*imag(pole)
		g := a0 / w0sq

		chain = append(chain, bilinear(g, 0, g*w0sq, 1, a1, a0, k))
	}

	return chain
}

// bilinear maps the analog section (b2 s^2 + b1 s + b0)/(a2 s^2 + a1 s + a0)
// with s = k(1 - z^-1)/(1 + z^-1).
func bilinear(b2, b1, b0, a2, a1, a0, k float64) *Biquad {
	k2 := k * k

	return newNormalized(
		b2*k2+b1*k+b0, 2*(b0-b2*k2), b2*k2-b1*k+b0,
		a2*k2+a1*k+a0, 2*(a0-a2*k2), a2*k2-a1*k+a0,
	)
}
