package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/yairfalse/wbcheck/pkg/types"
)

const (
	// EnvPrefix is prepended to every environment override, e.g. WBCHECK_ARCHIVE_TIMEOUT
	EnvPrefix = "WBCHECK"

	DefaultSparklineURL = "http://web.archive.org/__wb/sparkline"
	DefaultAvailableURL = "http://archive.org/wayback/available"
	DefaultTimeout      = 10 * time.Second
)

// Config represents the complete wbcheck configuration
type Config struct {
	Archive ArchiveConfig `mapstructure:"archive"`
	Psi     PsiConfig     `mapstructure:"psi"`
	Output  OutputConfig  `mapstructure:"output"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ArchiveConfig contains Wayback Machine API settings
type ArchiveConfig struct {
	SparklineURL string        `mapstructure:"sparkline_url"`
	AvailableURL string        `mapstructure:"available_url"`
	Timeout      time.Duration `mapstructure:"timeout"`
	UserAgent    string        `mapstructure:"user_agent"`
}

// PsiConfig contains the awareness scorer thresholds
type PsiConfig struct {
	IntegrationThreshold float64 `mapstructure:"integration_threshold"`
	StabilityThreshold   float64 `mapstructure:"stability_threshold"`
}

// Thresholds converts the psi settings into an immutable threshold pair
func (p PsiConfig) Thresholds() types.ThresholdConfig {
	return types.ThresholdConfig{
		IntegrationThreshold: p.IntegrationThreshold,
		StabilityThreshold:   p.StabilityThreshold,
	}
}

// OutputConfig contains output formatting configuration
type OutputConfig struct {
	Format    string `mapstructure:"format"`
	NoColor   bool   `mapstructure:"no_color"`
	BackupDir string `mapstructure:"backup_dir"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Archive: ArchiveConfig{
			SparklineURL: DefaultSparklineURL,
			AvailableURL: DefaultAvailableURL,
			Timeout:      DefaultTimeout,
			UserAgent:    "wbcheck/dev",
		},
		Psi: PsiConfig{
			IntegrationThreshold: types.DefaultIntegrationThreshold,
			StabilityThreshold:   types.DefaultStabilityThreshold,
		},
		Output: OutputConfig{
			Format:    "json",
			NoColor:   false,
			BackupDir: "",
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// SetDefaults registers every default on v so env overrides resolve on Unmarshal
func SetDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("archive.sparkline_url", d.Archive.SparklineURL)
	v.SetDefault("archive.available_url", d.Archive.AvailableURL)
	v.SetDefault("archive.timeout", d.Archive.Timeout)
	v.SetDefault("archive.user_agent", d.Archive.UserAgent)
	v.SetDefault("psi.integration_threshold", d.Psi.IntegrationThreshold)
	v.SetDefault("psi.stability_threshold", d.Psi.StabilityThreshold)
	v.SetDefault("output.format", d.Output.Format)
	v.SetDefault("output.no_color", d.Output.NoColor)
	v.SetDefault("output.backup_dir", d.Output.BackupDir)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
}

// Load loads configuration from defaults, an optional config file and the environment.
// An explicit file set with v.SetConfigFile must exist; the search paths are optional.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	// SetConfigName would discard a file set with SetConfigFile
	if v.ConfigFileUsed() == "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".wbcheck"))
		}
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.BindEnv("logging.level", EnvPrefix+"_LOG_LEVEL", "LOG_LEVEL")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config := DefaultConfig()
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	for name, endpoint := range map[string]string{
		"archive.sparkline_url": c.Archive.SparklineURL,
		"archive.available_url": c.Archive.AvailableURL,
	} {
		u, err := url.Parse(endpoint)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%s must be an absolute URL, got %q", name, endpoint)
		}
	}

	if c.Archive.Timeout <= 0 {
		return fmt.Errorf("archive timeout must be positive")
	}

	switch c.Output.Format {
	case "json", "yaml", "yml":
	default:
		return fmt.Errorf("unsupported output format: %s", c.Output.Format)
	}

	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unsupported log format: %s", c.Logging.Format)
	}

	return nil
}

// ExpandPaths expands home directory paths
func (c *Config) ExpandPaths() error {
	var err error
	c.Output.BackupDir, err = ExpandPath(c.Output.BackupDir)
	if err != nil {
		return fmt.Errorf("failed to expand backup dir: %w", err)
	}
	return nil
}

// ExpandPath expands ~ to home directory
func ExpandPath(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path, err
	}

	if len(path) == 1 {
		return home, nil
	}

	return filepath.Join(home, path[1:]), nil
}
