// Command scintweight computes a scintillation weight function W(h) from a
// spectral response and aperture geometry and writes it as a two-column CSV
// of (altitude_km, W) (spec §6).
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/scintweight/scintweight/internal/aperture"
	"github.com/scintweight/scintweight/internal/cli"
	"github.com/scintweight/scintweight/internal/filter"
	"github.com/scintweight/scintweight/internal/spectrum"
	"github.com/scintweight/scintweight/internal/weight"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := cli.Parse("scintweight", args)
	if err != nil {
		return err
	}

	sf, lambda, err := buildSpectralFilter(cfg)
	if err != nil {
		return err
	}

	af, err := buildApertureFilter(cfg)
	if err != nil {
		return err
	}

	wf, err := buildWeightFunction(cfg, sf, af, lambda)
	if err != nil {
		return err
	}

	altitudes := cli.Linspace(0, 32, 200)
	values := make([]float64, len(altitudes))
	for i, h := range altitudes {
		values[i] = wf.Evaluate(h)
	}

	return writeCSV(cfg.OutputFilename, altitudes, values)
}

// buildSpectralFilter returns the SpectralFilter and the physical
// wavelength (nm) to hand to the WeightFunction: for --mono it's the given
// wavelength directly; for the polychromatic path it's the Poly filter's
// equivalent wavelength captured *before* Normalise() makes the filter
// dimensionless (spec §4.6).
func buildSpectralFilter(cfg cli.RunConfig) (filter.Filter, float64, error) {
	if cfg.Mono > 0 {
		return filter.Mono{}, cfg.Mono, nil
	}
	if len(cfg.ResponseFilenames) == 0 {
		return nil, 0, fmt.Errorf("scintweight: no spectral response given (use --response_filename or --mono)")
	}

	resp, err := spectrum.StackFromFiles(cfg.ResponseFilenames)
	if err != nil {
		return nil, 0, fmt.Errorf("scintweight: %w", err)
	}
	resp.Normalise()

	var carrier []float64
	if cfg.Carrier > 0 {
		carrier = []float64{cfg.Carrier}
	}
	poly, err := filter.NewPoly(resp, cfg.Size, carrier...)
	if err != nil {
		return nil, 0, fmt.Errorf("scintweight: %w", err)
	}
	lambda := poly.EquivLambda()
	poly.Normalise()
	return poly, lambda, nil
}

func buildApertureFilter(cfg cli.RunConfig) (aperture.Filter, error) {
	var af aperture.Filter
	var err error
	switch {
	case cfg.Square:
		af = aperture.Square()
	case cfg.CentralObscuration > 0:
		af, err = aperture.Annular(cfg.CentralObscuration)
		if err != nil {
			return nil, fmt.Errorf("scintweight: %w", err)
		}
	default:
		af = aperture.Circular()
	}

	if cfg.BaseRatio > 0 {
		af = aperture.NewDimm(af, cfg.BaseRatio)
	}
	return af, nil
}

func buildWeightFunction(cfg cli.RunConfig, sf filter.Filter, af aperture.Filter, lambda float64) (*weight.Function, error) {
	if cfg.Square {
		wf, err := weight.New2D(sf, af, lambda, cfg.ApertureScale, cfg.Size)
		if err != nil {
			return nil, fmt.Errorf("scintweight: %w", err)
		}
		return wf, nil
	}
	wf, err := weight.New1D(sf, af, lambda, cfg.ApertureScale, cfg.Size)
	if err != nil {
		return nil, fmt.Errorf("scintweight: %w", err)
	}
	return wf, nil
}

func writeCSV(path string, altitudes, values []float64) error {
	out := os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("scintweight: creating %s: %w", path, err)
		}
		defer f.Close()
		out = f
	}

	w := csv.NewWriter(out)
	defer w.Flush()
	for i, h := range altitudes {
		record := []string{
			strconv.FormatFloat(h, 'g', -1, 64),
			strconv.FormatFloat(values[i], 'g', -1, 64),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("scintweight: writing CSV: %w", err)
		}
	}
	return w.Error()
}
