package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Defaults applied by New before the config file and environment are read.
const (
	DefaultBaseURL      = "http://localhost:8787"
	DefaultTimeout      = 30 * time.Second
	DefaultMinVersion   = ">= 1.0.0"
	DefaultOutputFormat = "table"
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "json"
	configFileName      = "config.yaml"
	outputTypeFile      = "file"
)

// Environment variables that override values from the config file.
const (
	EnvHome       = "PROPFOCUS_HOME"
	EnvAPIURL     = "PROPFOCUS_API_URL"
	EnvAPIToken   = "PROPFOCUS_API_TOKEN"
	EnvAPITimeout = "PROPFOCUS_API_TIMEOUT"
	EnvLogLevel   = "PROPFOCUS_LOG_LEVEL"
	EnvLogFormat  = "PROPFOCUS_LOG_FORMAT"
	EnvLogFile    = "PROPFOCUS_LOG_FILE"
)

// Config is the propfocus configuration.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
	Revenue RevenueConfig `yaml:"revenue"`

	configPath string
}

// APIConfig configures the SecureAPI client.
type APIConfig struct {
	BaseURL    string        `yaml:"base_url"              validate:"required,url"`
	Token      string        `yaml:"token,omitempty"`
	Timeout    time.Duration `yaml:"timeout"               validate:"gte=0"`
	MinVersion string        `yaml:"min_version,omitempty" validate:"omitempty,semver_constraint"`
}

// OutputConfig configures non-interactive output.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" validate:"omitempty,oneof=table json ndjson"`
}

// LoggingConfig configures the zerolog logger.
type LoggingConfig struct {
	Level  string `yaml:"level"          validate:"omitempty,oneof=trace debug info warn error fatal panic disabled"`
	Format string `yaml:"format"         validate:"omitempty,oneof=json console"`
	File   string `yaml:"file,omitempty"`
}

// RevenueConfig configures the revenue summary view.
type RevenueConfig struct {
	// Period is the default YYYY-MM period; empty means the current month.
	Period string `yaml:"period,omitempty" validate:"omitempty,datetime=2006-01"`
}

// New returns a Config built from defaults, the config file in the config
// directory (if present) and environment overrides.
func New() *Config {
	cfg := defaults()

	if dir, err := GetConfigDir(); err == nil {
		cfg.configPath = filepath.Join(dir, configFileName)
		cfg.Logging.File = filepath.Join(dir, "logs", "propfocus.log")
	}

	if cfg.configPath != "" {
		if _, err := os.Stat(cfg.configPath); err == nil {
			// A broken config file leaves defaults in place; `config validate` reports it.
			_ = ShallowMergeYAML(cfg, cfg.configPath)
		}
	}

	cfg.applyEnv()
	return cfg
}

// NewFromFile returns a Config with path laid over the defaults, then env overrides.
func NewFromFile(path string) (*Config, error) {
	cfg := New()
	if err := ShallowMergeYAML(cfg, path); err != nil {
		return nil, err
	}
	cfg.configPath = path
	cfg.applyEnv()
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:    DefaultBaseURL,
			Timeout:    DefaultTimeout,
			MinVersion: DefaultMinVersion,
		},
		Output: OutputConfig{DefaultFormat: DefaultOutputFormat},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvAPIURL); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv(EnvAPIToken); v != "" {
		c.API.Token = v
	}
	if v := os.Getenv(EnvAPITimeout); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.API.Timeout = d
		}
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Logging.Format = strings.ToLower(v)
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		c.Logging.File = v
	}
}

// ConfigPath returns the file this config is saved to.
func (c *Config) ConfigPath() string {
	return c.configPath
}

// Save writes the config as YAML with owner-only permissions.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.New("config path not set")
	}
	if err := os.MkdirAll(filepath.Dir(c.configPath), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err = os.WriteFile(c.configPath, data, 0o600); err != nil {
		return fmt.Errorf("writing config file %s: %w", c.configPath, err)
	}
	return nil
}

// Validate checks the config against its struct tags.
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("semver_constraint", validateSemverConstraint); err != nil {
		return fmt.Errorf("registering validator: %w", err)
	}
	if err := v.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %q check (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
			}
			return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func validateSemverConstraint(fl validator.FieldLevel) bool {
	_, err := semver.NewConstraint(fl.Field().String())
	return err == nil
}

// GetOutputFormat returns flagValue when set, otherwise the configured default.
func GetOutputFormat(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	cfg := GetGlobalConfig()
	if cfg.Output.DefaultFormat == "" {
		return DefaultOutputFormat
	}
	return cfg.Output.DefaultFormat
}
