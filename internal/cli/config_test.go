package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scintweight/scintweight/internal/cli"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := cli.Parse("test", nil)
	require.NoError(t, err)
	assert.Equal(t, 1024, cfg.Size)
	assert.False(t, cfg.Square)
}

func TestParseFlagsOnly(t *testing.T) {
	cfg, err := cli.Parse("test", []string{"--size=256", "--square", "--carrier=600"})
	require.NoError(t, err)
	assert.Equal(t, 256, cfg.Size)
	assert.True(t, cfg.Square)
	assert.Equal(t, 600.0, cfg.Carrier)
}

func TestParseConfigFileFillsUnsetFlags(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.json5")
	content := `{
		size: 512,
		aperture_scale: 250,
		central_obscuration: 0.32,
		output_filename: "out.csv",
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := cli.Parse("test", []string{"--config=" + path, "--size=2048"})
	require.NoError(t, err)
	assert.Equal(t, 2048, cfg.Size) // explicit flag wins over config
	assert.Equal(t, 250.0, cfg.ApertureScale)
	assert.Equal(t, 0.32, cfg.CentralObscuration)
	assert.Equal(t, "out.csv", cfg.OutputFilename)
}
