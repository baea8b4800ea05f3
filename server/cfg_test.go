package server

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zucenko/nuggets/model"
)

func env(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func TestLoadConfigFlags(t *testing.T) {
	cfg, err := LoadConfig([]string{
		"-map", "maps/main.txt",
		"-seed", "42",
		"-port", "9000",
		"-margin-rows", "1",
		"-log-level", "debug",
	}, env(nil))
	require.NoError(t, err)
	assert.Equal(t, "maps/main.txt", cfg.MapFile)
	assert.EqualValues(t, 42, cfg.Seed)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, model.Bounds{MarginRows: 1}, cfg.Bounds())
}

func TestLoadConfigPositional(t *testing.T) {
	cfg, err := LoadConfig([]string{"main.txt", "7"}, env(map[string]string{"PORT": "7777"}))
	require.NoError(t, err)
	assert.Equal(t, "main.txt", cfg.MapFile)
	assert.EqualValues(t, 7, cfg.Seed)
	assert.Equal(t, "7777", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig([]string{"main.txt"}, env(nil))
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, model.Bounds{}, cfg.Bounds())
}

func TestLoadConfigErrors(t *testing.T) {
	for name, args := range map[string][]string{
		"no map":          {},
		"bad seed":        {"main.txt", "abc"},
		"negative seed":   {"-map", "main.txt", "-seed", "-3"},
		"unknown flag":    {"-bogus", "main.txt"},
		"negative margin": {"-map", "main.txt", "-margin-cols", "-1"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(args, env(nil))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "map.txt")
	require.NoError(t, os.WriteFile(path, []byte("+---+\n|...|\n+---+\n"), 0o644))

	grid, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5, grid.Width())
	assert.Equal(t, 3, grid.Height())

	_, err = Load(filepath.Join(dir, "missing.txt"))
	assert.ErrorIs(t, err, model.ErrFatalLoad)

	bad := filepath.Join(dir, "bad.txt")
	require.NoError(t, os.WriteFile(bad, []byte("+---+\n|..|\n"), 0o644))
	_, err = Load(bad)
	assert.ErrorIs(t, err, model.ErrFatalLoad)
}

func TestInitLogger(t *testing.T) {
	assert.NoError(t, InitLogger("", "warn"))
	assert.Error(t, InitLogger("", "loud"))
	assert.NoError(t, InitLogger("", "info"))
}
