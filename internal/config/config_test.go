package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_EmptyPathGivesDefaults(t *testing.T) {
	run, err := Load("")
	require.NoError(t, err)
	require.Equal(t, 50, run.PopulationSize)
	require.Equal(t, 100, run.Generations)
	require.Equal(t, 0.1, run.MutationRate)
	require.Equal(t, "standard", run.Mode)
	require.Nil(t, run.MaxCost)
	require.Nil(t, run.Seed)
}

func TestLoad_PartialOverride(t *testing.T) {
	path := writeConfig(t, "generations: 20\nmode: eco\nseed: 42\n")

	run, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 20, run.Generations)
	require.Equal(t, "eco", run.Mode)
	require.NotNil(t, run.Seed)
	require.Equal(t, int64(42), *run.Seed)
	// Untouched fields keep defaults.
	require.Equal(t, 50, run.PopulationSize)
	require.Equal(t, 0.1, run.MutationRate)
}

func TestLoad_ZeroMutationRateIsRespected(t *testing.T) {
	path := writeConfig(t, "mutation_rate: 0\n")
	run, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 0.0, run.MutationRate)
}

func TestLoad_RateOverrides(t *testing.T) {
	path := writeConfig(t, `
rates:
  excavator:
    cost: 450
    carbon: 35
`)
	run, err := Load(path)
	require.NoError(t, err)

	overrides := run.RateOverrides()
	require.Len(t, overrides, 1)
	require.Equal(t, 450.0, overrides["excavator"].Cost)
	require.Equal(t, 35.0, overrides["excavator"].Carbon)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	path := writeConfig(t, "generations: [broken\n")
	_, err = Load(path)
	require.Error(t, err)
}
