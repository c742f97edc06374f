// Command scintplot-table re-samples a weight-function CSV (as written by
// scintweight) at an arbitrary set of altitudes, via the same CubicSpline
// machinery the core uses internally. It exists because a precomputed W(h)
// table is cheap to re-query many times without re-running the FFT and
// quadrature pipeline — a feature the original distillation's spec.md
// omitted but original_source/ implies is routine (see DESIGN.md).
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/scintweight/scintweight/internal/grid"
	"github.com/scintweight/scintweight/internal/spline"
)

// repeatableFlag implements flag.Value for --altitude, which may be given
// more than once.
type repeatableFlag struct{ values *[]string }

func (r repeatableFlag) String() string {
	if r.values == nil {
		return ""
	}
	return strings.Join(*r.values, ",")
}

func (r repeatableFlag) Set(v string) error {
	*r.values = append(*r.values, v)
	return nil
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type config struct {
	inputFilename  string
	outputFilename string
	altitudes      []float64
}

func run(args []string) error {
	cfg, err := parseArgs(args)
	if err != nil {
		return err
	}

	altitudes, values, err := readTable(cfg.inputFilename)
	if err != nil {
		return fmt.Errorf("scintplot-table: %w", err)
	}
	g, err := grid.NewFromValues(altitudes)
	if err != nil {
		return fmt.Errorf("scintplot-table: input altitudes are not uniformly spaced: %w", err)
	}
	sp := spline.New(values, spline.Natural())

	queries := cfg.altitudes
	if len(queries) == 0 {
		queries = altitudes
	}
	resampled := make([]float64, len(queries))
	for i, h := range queries {
		idx := (h - g.Origin()) / g.Delta()
		resampled[i] = sp.Eval(idx)
	}

	return writeTable(cfg.outputFilename, queries, resampled)
}

func parseArgs(args []string) (config, error) {
	var inputFilename, outputFilename string
	var altitudes []string
	fs := flag.NewFlagSet("scintplot-table", flag.ContinueOnError)
	fs.StringVar(&inputFilename, "input_filename", "", "weight-function CSV produced by scintweight")
	fs.StringVar(&outputFilename, "output_filename", "", "output CSV path (default stdout)")
	fs.Var(repeatableFlag{&altitudes}, "altitude", "altitude (km) to resample at (repeatable); defaults to the input's own grid")

	if err := fs.Parse(args); err != nil {
		return config{}, err
	}
	if inputFilename == "" {
		return config{}, fmt.Errorf("scintplot-table: --input_filename is required")
	}

	var parsed []float64
	for _, a := range altitudes {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return config{}, fmt.Errorf("scintplot-table: bad --altitude %q: %w", a, err)
		}
		parsed = append(parsed, v)
	}

	return config{inputFilename: inputFilename, outputFilename: outputFilename, altitudes: parsed}, nil
}

func readTable(path string) ([]float64, []float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 2
	var altitudes, values []float64
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("reading %s: %w", path, err)
		}
		h, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: bad altitude %q: %w", path, record[0], err)
		}
		w, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: bad weight %q: %w", path, record[1], err)
		}
		altitudes = append(altitudes, h)
		values = append(values, w)
	}
	if len(altitudes) < 2 {
		return nil, nil, fmt.Errorf("%s: need at least 2 rows", path)
	}
	return altitudes, values, nil
}

func writeTable(path string, altitudes, values []float64) error {
	out := os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("scintplot-table: creating %s: %w", path, err)
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
			return fmt.Errorf("scintplot-table: writing CSV: %w", err)
		}
	}
	return w.Error()
}
