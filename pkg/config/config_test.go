package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, DefaultSparklineURL, cfg.Archive.SparklineURL)
	assert.Equal(t, DefaultAvailableURL, cfg.Archive.AvailableURL)
	assert.Equal(t, 10*time.Second, cfg.Archive.Timeout)
	assert.Equal(t, 4.2, cfg.Psi.IntegrationThreshold)
	assert.Equal(t, 0.87, cfg.Psi.StabilityThreshold)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("WBCHECK_ARCHIVE_SPARKLINE_URL", "http://127.0.0.1:9999/__wb/sparkline")
	t.Setenv("WBCHECK_ARCHIVE_TIMEOUT", "3s")
	t.Setenv("WBCHECK_PSI_STABILITY_THRESHOLD", "0.5")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:9999/__wb/sparkline", cfg.Archive.SparklineURL)
	assert.Equal(t, DefaultAvailableURL, cfg.Archive.AvailableURL)
	assert.Equal(t, 3*time.Second, cfg.Archive.Timeout)
	assert.Equal(t, 0.5, cfg.Psi.StabilityThreshold)
	assert.Equal(t, 4.2, cfg.Psi.IntegrationThreshold)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wbcheck.yaml")
	content := `
archive:
  timeout: 2s
  user_agent: test-agent
psi:
  integration_threshold: 1.5
output:
  format: yaml
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	v := viper.New()
	v.SetConfigFile(path)

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, 2*time.Second, cfg.Archive.Timeout)
	assert.Equal(t, "test-agent", cfg.Archive.UserAgent)
	assert.Equal(t, 1.5, cfg.Psi.IntegrationThreshold)
	assert.Equal(t, 0.87, cfg.Psi.StabilityThreshold)
	assert.Equal(t, "yaml", cfg.Output.Format)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	v := viper.New()
	v.SetConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load(v)
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"relative sparkline url", func(c *Config) { c.Archive.SparklineURL = "/__wb/sparkline" }, true},
		{"empty available url", func(c *Config) { c.Archive.AvailableURL = "" }, true},
		{"zero timeout", func(c *Config) { c.Archive.Timeout = 0 }, true},
		{"yaml format", func(c *Config) { c.Output.Format = "yaml" }, false},
		{"table format", func(c *Config) { c.Output.Format = "table" }, true},
		{"json logs", func(c *Config) { c.Logging.Format = "json" }, false},
		{"xml logs", func(c *Config) { c.Logging.Format = "xml" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPsiConfig_Thresholds(t *testing.T) {
	p := PsiConfig{IntegrationThreshold: 1, StabilityThreshold: 0.25}
	th := p.Thresholds()
	assert.Equal(t, 1.0, th.IntegrationThreshold)
	assert.Equal(t, 0.25, th.StabilityThreshold)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ExpandPath("~/backups")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "backups"), got)

	got, err = ExpandPath("/tmp/x")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x", got)

	got, err = ExpandPath("")
	require.NoError(t, err)
	assert.Equal(t, "", got)
}
