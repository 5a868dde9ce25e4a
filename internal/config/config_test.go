package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "llama-3.3-70b-versatile", cfg.Model)
	assert.Equal(t, 25, cfg.IterationBudget)
	assert.Equal(t, 60*time.Second, cfg.RequestTimeout())
	assert.Equal(t, "scdra.db", cfg.VectorStorePath)
	assert.False(t, cfg.RetryEnabled)
}

func TestYAMLFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scdra.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"model: other-model\niteration_budget: 10\nretry_enabled: true\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "other-model", cfg.Model)
	assert.Equal(t, 10, cfg.IterationBudget)
	assert.True(t, cfg.RetryEnabled)
	// Unset fields keep their defaults.
	assert.Equal(t, 60, cfg.RequestTimeoutSeconds)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scdra.yaml")
	require.NoError(t, os.WriteFile(path, []byte("model: from-file\n"), 0o600))

	t.Setenv("SCDRA_MODEL", "from-env")
	t.Setenv("SCDRA_BUDGET", "7")
	t.Setenv("GROQ_API_KEY", "sk-test")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Model)
	assert.Equal(t, 7, cfg.IterationBudget)
	assert.Equal(t, "sk-test", cfg.APIKey)
}

func TestInvalidValuesRejected(t *testing.T) {
	t.Setenv("SCDRA_BUDGET", "0")
	_, err := Load("")
	assert.Error(t, err)
}

func TestMissingFileIsAnError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
