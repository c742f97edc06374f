// Package dct implements DCT-I (REDFT00), the real self-inverse cosine
// transform WeightFunctionGrid2D applies along both axes of its frequency
// tensor (spec §3, §4.10). The transform is built from an even-symmetric
// extension fed through gonum's real-input FFT, the same technique the
// reference DCT-I-via-FFT construction uses (grounded on
// _examples/other_examples: MeKo-Christian/algo-pde's r2r.DCTPlan), adapted
// here to gonum.org/v1/gonum/dsp/fourier instead of algo-fft.
package dct

import (
	"fmt"

	"gonum.org/v1/gonum/dsp/fourier"
)

// Plan is a precomputed DCT-I plan for a fixed transform size n >= 2.
// Not safe for concurrent use; callers needing parallel transforms should
// construct one Plan per goroutine (spec §5).
type Plan struct {
	n         int
	extendedN int
	fft       *fourier.FFT
	ext       []float64
}

// NewPlan builds a DCT-I plan for size n. n must be at least 2.
func NewPlan(n int) (*Plan, error) {
	if n < 2 {
		return nil, fmt.Errorf("dct: size %d must be >= 2", n)
	}
	extendedN := 2 * (n - 1)
	return &Plan{
		n:         n,
		extendedN: extendedN,
		fft:       fourier.NewFFT(extendedN),
		ext:       make([]float64, extendedN),
	}, nil
}

// Len returns the transform size.
func (p *Plan) Len() int { return p.n }

// Forward computes the DCT-I of src into dst (may alias). Output is
// unnormalised: X[k] = x[0] + (-1)^k*x[n-1] + 2*sum_{i=1}^{n-2} x[i]*cos(pi*i*k/(n-1)).
func (p *Plan) Forward(dst, src []float64) error {
	if len(dst) != p.n || len(src) != p.n {
		return fmt.Errorf("dct: length mismatch: dst=%d src=%d want %d", len(dst), len(src), p.n)
	}
	for i := 0; i < p.n; i++ {
		p.ext[i] = src[i]
	}
	for i := 1; i < p.n-1; i++ {
		p.ext[p.extendedN-i] = src[i]
	}

	coeffs := p.fft.Coefficients(nil, p.ext)
	for k := 0; k < p.n; k++ {
		dst[k] = real(coeffs[k])
	}
	return nil
}

// Inverse applies the self-inverse DCT-I and rescales by 1/extendedN so
// that Forward followed by Inverse returns the original sequence.
func (p *Plan) Inverse(dst, src []float64) error {
	if err := p.Forward(dst, src); err != nil {
		return err
	}
	scale := 1.0 / float64(p.extendedN)
	for i := range dst {
		dst[i] *= scale
	}
	return nil
}

// Plan2D applies a DCT-I Plan independently along both axes of a row-major
// (ny rows of nx columns) tensor, in place: first every row, then every
// column — the construction WeightFunctionGrid2D needs for its REDFT00
// frequency-domain transform (spec §4.10).
type Plan2D struct {
	nx, ny  int
	rowPlan *Plan
	colPlan *Plan
	rowBuf  []float64
	colBuf  []float64
}

// NewPlan2D builds a 2-D DCT-I plan for an nx-by-ny tensor.
func NewPlan2D(nx, ny int) (*Plan2D, error) {
	rowPlan, err := NewPlan(nx)
	if err != nil {
		return nil, fmt.Errorf("dct: row axis: %w", err)
	}
	colPlan, err := NewPlan(ny)
	if err != nil {
		return nil, fmt.Errorf("dct: column axis: %w", err)
	}
	return &Plan2D{
		nx: nx, ny: ny,
		rowPlan: rowPlan, colPlan: colPlan,
		rowBuf: make([]float64, nx),
		colBuf: make([]float64, ny),
	}, nil
}

// Forward applies the 2-D DCT-I to tensor in place. tensor is row-major
// with ny rows of nx values each (index = row*nx + col).
func (p *Plan2D) Forward(tensor []float64) error {
	if len(tensor) != p.nx*p.ny {
		return fmt.Errorf("dct: tensor length %d, want %d", len(tensor), p.nx*p.ny)
	}
	for row := 0; row < p.ny; row++ {
		off := row * p.nx
		copy(p.rowBuf, tensor[off:off+p.nx])
		if err := p.rowPlan.Forward(p.rowBuf, p.rowBuf); err != nil {
			return err
		}
		copy(tensor[off:off+p.nx], p.rowBuf)
	}
	for col := 0; col < p.nx; col++ {
		for row := 0; row < p.ny; row++ {
			p.colBuf[row] = tensor[row*p.nx+col]
		}
		if err := p.colPlan.Forward(p.colBuf, p.colBuf); err != nil {
			return err
		}
		for row := 0; row < p.ny; row++ {
			tensor[row*p.nx+col] = p.colBuf[row]
		}
	}
	return nil
}
