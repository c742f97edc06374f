// Package spectrum implements SpectralResponse, the tabulated instrument
// efficiency S(lambda) on a uniform wavelength grid (spec §3, §4.4).
package spectrum

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/scintweight/scintweight/internal/grid"
)

// SpectralResponse is a UniformGrid in nm paired with response values of
// matching length.
type SpectralResponse struct {
	Grid   grid.UniformGrid
	Values []float64
}

// New builds a SpectralResponse from a grid and matching values slice.
func New(g grid.UniformGrid, values []float64) SpectralResponse {
	return SpectralResponse{Grid: g, Values: append([]float64(nil), values...)}
}

// Normalise divides every value by their sum so that sum(S) == 1 (spec
// §4.4, testable property 3).
func (s *SpectralResponse) Normalise() {
	total := 0.0
	for _, v := range s.Values {
		total += v
	}
	if total == 0 {
		return
	}
	for i := range s.Values {
		s.Values[i] /= total
	}
}

// Stack intersects s's grid with other's, replaces both value slices by the
// intersection, and overwrites the receiver's values with the elementwise
// product, adopting the intersected grid (spec §4.4). other's grid must
// phase-match s's, else *errs.MismatchedGrids is returned (propagated from
// UniformGrid.Intersect).
func (s *SpectralResponse) Stack(other SpectralResponse) error {
	inter, err := s.Grid.Intersect(other.Grid)
	if err != nil {
		return err
	}
	sStart := int(round((inter.Origin() - s.Grid.Origin()) / s.Grid.Delta()))
	oStart := int(round((inter.Origin() - other.Grid.Origin()) / other.Grid.Delta()))
	n := inter.Size()
	merged := make([]float64, n)
	for i := 0; i < n; i++ {
		merged[i] = s.Values[sStart+i] * other.Values[oStart+i]
	}
	s.Grid = inter
	s.Values = merged
	return nil
}

func round(x float64) float64 {
	if x >= 0 {
		return float64(int(x + 0.5))
	}
	return float64(int(x - 0.5))
}

// EffectiveLambda returns <lambda> weighted by S/lambda:
//
//	origin + delta * sum(i * v_i/lambda_i) / sum(v_i/lambda_i)
//
// equivalently the weighted mean of lambda with weights S/lambda (spec
// §4.4).
func (s *SpectralResponse) EffectiveLambda() float64 {
	num, den := 0.0, 0.0
	for i, v := range s.Values {
		lambda := s.Grid.Value(i)
		w := v / lambda
		num += float64(i) * w
		den += w
	}
	if den == 0 {
		return s.Grid.Origin()
	}
	return s.Grid.Origin() + s.Grid.Delta()*num/den
}

// MakeFromFile parses a two-column whitespace-separated text file of
// (lambda_nm, value) pairs, in increasing lambda order, and constructs a
// SpectralResponse whose grid is validated for uniformity (spec §4.4, §6).
// Multiple consecutive whitespace characters are treated as one separator.
func MakeFromFile(path string) (SpectralResponse, error) {
	f, err := os.Open(path)
	if err != nil {
		return SpectralResponse{}, fmt.Errorf("spectrum: opening %s: %w", path, err)
	}
	defer f.Close()

	var lambdas, values []float64
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return SpectralResponse{}, fmt.Errorf("spectrum: %s:%d: expected two columns, got %q", path, lineNo, line)
		}
		lambda, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return SpectralResponse{}, fmt.Errorf("spectrum: %s:%d: bad wavelength %q: %w", path, lineNo, fields[0], err)
		}
		val, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return SpectralResponse{}, fmt.Errorf("spectrum: %s:%d: bad value %q: %w", path, lineNo, fields[1], err)
		}
		lambdas = append(lambdas, lambda)
		values = append(values, val)
	}
	if err := scanner.Err(); err != nil {
		return SpectralResponse{}, fmt.Errorf("spectrum: reading %s: %w", path, err)
	}

	g, err := grid.NewFromValues(lambdas)
	if err != nil {
		return SpectralResponse{}, fmt.Errorf("spectrum: %s: %w", path, err)
	}
	return New(g, values), nil
}

// StackFromFiles folds make_from_file over paths, stacking the accumulator
// built so far into each newly loaded file.
//
// Per spec §9's open question, the fold is c.Stack(*acc) — the newly read
// file c is stacked against the running accumulator, which is a deliberate
// choice to let the most-recently loaded file's grid bound the result
// range (see DESIGN.md): the accumulated grid always narrows to whatever
// the incoming file can see, matching how a sequence of progressively
// narrower instrument filters would be composed in practice.
func StackFromFiles(paths []string) (SpectralResponse, error) {
	if len(paths) == 0 {
		return SpectralResponse{}, fmt.Errorf("spectrum: no response files given")
	}
	acc, err := MakeFromFile(paths[0])
	if err != nil {
		return SpectralResponse{}, err
	}
	for _, p := range paths[1:] {
		cur, err := MakeFromFile(p)
		if err != nil {
			return SpectralResponse{}, err
		}
		if err := cur.Stack(acc); err != nil {
			return SpectralResponse{}, fmt.Errorf("spectrum: stacking %s: %w", p, err)
		}
		acc = cur
	}
	return acc, nil
}
