package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate runs the test from an empty directory so a stray wbalsim.yaml in
// the working tree cannot leak into it.
func isolate(t *testing.T) {
	t.Helper()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(cwd) })
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, 250.0, cfg.Params.CP)
	assert.Equal(t, 20000.0, cfg.Params.WPrime)
	assert.Equal(t, 300.0, cfg.Params.Tau)
	assert.Equal(t, 350.0, cfg.Params.IntervalPower)
	assert.Equal(t, 150.0, cfg.Params.RecoveryPower)
	assert.Equal(t, 180, cfg.Params.IntervalDuration)
	assert.Equal(t, 120, cfg.Params.RecoveryDuration)
	assert.Equal(t, 4, cfg.Params.Repeats)
	assert.Equal(t, 0, cfg.Params.WarmupDuration)
	assert.Equal(t, int64(0), cfg.Seed)
	assert.Equal(t, "simulation.csv", cfg.OutputPath)
	assert.False(t, cfg.Verbose)
}

func TestLoad_ConfigFile(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "protocol.yaml")
	yaml := "cp: 280\ninterval-power: 420\nrepeats: 6\nseed: 99\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, 280.0, cfg.Params.CP)
	assert.Equal(t, 420.0, cfg.Params.IntervalPower)
	assert.Equal(t, 6, cfg.Params.Repeats)
	assert.Equal(t, int64(99), cfg.Seed)
	// Untouched keys keep their defaults.
	assert.Equal(t, 120, cfg.Params.RecoveryDuration)
}

func TestLoad_MissingExplicitConfigFileFails(t *testing.T) {
	isolate(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)

	t.Setenv("WBALSIM_CP", "310")
	t.Setenv("WBALSIM_INTERVAL_DURATION", "240")

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, 310.0, cfg.Params.CP)
	assert.Equal(t, 240, cfg.Params.IntervalDuration)
}

func TestLoad_FlagsTakePrecedence(t *testing.T) {
	isolate(t)

	t.Setenv("WBALSIM_CP", "310")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Float64("cp", 250, "")
	flags.Int64("seed", 0, "")
	require.NoError(t, flags.Parse([]string{"--cp=333", "--seed=7"}))

	cfg, err := Load("", flags)
	require.NoError(t, err)

	assert.Equal(t, 333.0, cfg.Params.CP)
	assert.Equal(t, int64(7), cfg.Seed)
}

func TestLoad_RejectsInvalidParameters(t *testing.T) {
	isolate(t)

	t.Setenv("WBALSIM_RECOVERY_DURATION", "10")

	_, err := Load("", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "recovery duration")
}
