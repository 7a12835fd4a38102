package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultValues(t *testing.T) {
	t.Cleanup(viper.Reset)

	require.NoError(t, Load(t.TempDir()))

	c, err := Current()
	require.NoError(t, err)
	assert.Equal(t, Config{
		LogLevel:           "info",
		LogFormat:          "console",
		Trials:             1000,
		Workers:            runtime.NumCPU(),
		Seed:               0,
		MaxRounds:          6,
		ExplosionThreshold: -1,
	}, c)
	assert.True(t, c.RandomThreshold())
}

func TestLoad_WithYAMLFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	cfg := "logLevel: debug\ntrials: 250\nseed: 42\nexplosionThreshold: 0.3\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fleetsim.yaml"), []byte(cfg), 0o644))

	require.NoError(t, Load(dir))

	c, err := Current()
	require.NoError(t, err)
	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, 250, c.Trials)
	assert.Equal(t, uint64(42), c.Seed)
	assert.InDelta(t, 0.3, c.ExplosionThreshold, 1e-12)
	assert.False(t, c.RandomThreshold())
	assert.Equal(t, "console", c.LogFormat)
}

func TestLoad_WithJSONFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fleetsim.json"), []byte(`{"workers": 3, "maxRounds": 4}`), 0o644))

	require.NoError(t, Load(dir))

	c, err := Current()
	require.NoError(t, err)
	assert.Equal(t, 3, c.Workers)
	assert.Equal(t, 4, c.MaxRounds)
}

func TestLoad_InvalidFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fleetsim.yaml"), []byte("trials: [\n"), 0o644))

	err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Cleanup(viper.Reset)
	t.Setenv("FLEETSIM_TRIALS", "77")
	t.Setenv("FLEETSIM_LOGFORMAT", "json")

	require.NoError(t, Load(t.TempDir()))

	c, err := Current()
	require.NoError(t, err)
	assert.Equal(t, 77, c.Trials)
	assert.Equal(t, "json", c.LogFormat)
}

func TestBindFlags(t *testing.T) {
	t.Cleanup(viper.Reset)
	require.NoError(t, Load(t.TempDir()))

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Int("trials", 10, "")
	fs.String("log-level", "info", "")
	fs.String("unrelated", "", "")
	require.NoError(t, BindFlags(fs))

	c, err := Current()
	require.NoError(t, err)
	assert.Equal(t, 1000, c.Trials, "unchanged flags do not override defaults")

	require.NoError(t, fs.Parse([]string{"--trials=5", "--log-level=warn"}))
	c, err = Current()
	require.NoError(t, err)
	assert.Equal(t, 5, c.Trials)
	assert.Equal(t, "warn", c.LogLevel)
	assert.False(t, viper.IsSet("unrelated"))
}

func TestCurrent_Validation(t *testing.T) {
	tests := []struct {
		key   string
		value any
	}{
		{"trials", 0},
		{"maxRounds", -1},
		{"explosionThreshold", 1.5},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Cleanup(viper.Reset)
			SetDefaults()
			viper.Set(tt.key, tt.value)

			_, err := Current()
			assert.Error(t, err)
		})
	}
}

func TestCurrent_ZeroWorkersUsesCPUs(t *testing.T) {
	t.Cleanup(viper.Reset)
	SetDefaults()
	viper.Set("workers", 0)

	c, err := Current()
	require.NoError(t, err)
	assert.Equal(t, runtime.NumCPU(), c.Workers)
}
