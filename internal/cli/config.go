// Package cli implements the flag-and-JSON5-config surface of the
// scintweight command-line program (spec §6: the CLI layer is "treated as
// out-of-scope glue", specified only where it drives the core). Flags
// parsed on the command line take precedence over a JSON5 config file
// loaded via --config, which in turn overrides the program defaults —
// mirroring the teacher's json5-parameter-file pattern (jsonProcessing.go)
// but generalised to flag.FlagSet instead of a single positional file.
package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"

	json "github.com/KevinWang15/go-json5"
)

// RunConfig collects the common flags of spec §6 shared by scintweight's
// collaborator programs.
type RunConfig struct {
	Size               int      `json:"size"`
	ApertureScale      float64  `json:"aperture_scale"`
	CentralObscuration float64  `json:"central_obscuration"`
	BaseRatio          float64  `json:"base_ratio"`
	ResponseFilenames  []string `json:"response_filename"`
	Square             bool     `json:"square"`
	Carrier            float64  `json:"carrier"`
	Mono               float64  `json:"mono"`
	OutputFilename     string   `json:"output_filename"`
}

// Defaults returns the program's built-in defaults (spec §6: --size
// defaults to 1024).
func Defaults() RunConfig {
	return RunConfig{Size: 1024}
}

// repeatableFlag implements flag.Value for --response_filename, which may
// be given more than once.
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

// Parse builds a RunConfig from command-line args, a program-default base,
// and an optional --config JSON5 file: a flag explicitly given on the
// command line always wins; otherwise the config file's value is used if
// present; otherwise the default stands.
func Parse(progName string, args []string) (RunConfig, error) {
	cfg := Defaults()
	fs := flag.NewFlagSet(progName, flag.ContinueOnError)

	size := fs.Int("size", cfg.Size, "precompute grid size")
	apertureScale := fs.Float64("aperture_scale", cfg.ApertureScale, "aperture scale, mm")
	centralObscuration := fs.Float64("central_obscuration", cfg.CentralObscuration, "central obscuration ratio, 0<=eps<1")
	baseRatio := fs.Float64("base_ratio", cfg.BaseRatio, "DIMM baseline / aperture scale")
	var responseFilenames []string
	fs.Var(repeatableFlag{&responseFilenames}, "response_filename", "spectral response file (repeatable)")
	square := fs.Bool("square", cfg.Square, "use a square aperture")
	carrier := fs.Float64("carrier", cfg.Carrier, "carrier wavelength override, nm")
	mono := fs.Float64("mono", cfg.Mono, "use a monochromatic filter at this wavelength, nm")
	output := fs.String("output_filename", cfg.OutputFilename, "output CSV path")
	configPath := fs.String("config", "", "optional JSON5 config file")

	if err := fs.Parse(args); err != nil {
		return RunConfig{}, err
	}

	explicit := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	if *configPath != "" {
		fileCfg, err := loadFile(*configPath)
		if err != nil {
			return RunConfig{}, err
		}
		if !explicit["size"] && fileCfg.Size != 0 {
			*size = fileCfg.Size
		}
		if !explicit["aperture_scale"] && fileCfg.ApertureScale != 0 {
			*apertureScale = fileCfg.ApertureScale
		}
		if !explicit["central_obscuration"] && fileCfg.CentralObscuration != 0 {
			*centralObscuration = fileCfg.CentralObscuration
		}
		if !explicit["base_ratio"] && fileCfg.BaseRatio != 0 {
			*baseRatio = fileCfg.BaseRatio
		}
		if !explicit["response_filename"] && len(fileCfg.ResponseFilenames) > 0 {
			responseFilenames = fileCfg.ResponseFilenames
		}
		if !explicit["square"] && fileCfg.Square {
			*square = true
		}
		if !explicit["carrier"] && fileCfg.Carrier != 0 {
			*carrier = fileCfg.Carrier
		}
		if !explicit["mono"] && fileCfg.Mono != 0 {
			*mono = fileCfg.Mono
		}
		if !explicit["output_filename"] && fileCfg.OutputFilename != "" {
			*output = fileCfg.OutputFilename
		}
	}

	return RunConfig{
		Size:               *size,
		ApertureScale:      *apertureScale,
		CentralObscuration: *centralObscuration,
		BaseRatio:          *baseRatio,
		ResponseFilenames:  responseFilenames,
		Square:             *square,
		Carrier:            *carrier,
		Mono:               *mono,
		OutputFilename:     *output,
	}, nil
}

func loadFile(path string) (RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RunConfig{}, fmt.Errorf("cli: reading config %s: %w", path, err)
	}
	var cfg RunConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return RunConfig{}, fmt.Errorf("cli: parsing config %s: %w", path, err)
	}
	return cfg, nil
}
