package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/propfocus/internal/config"
	"github.com/rshade/propfocus/internal/logging"
)

// isolateHome points PROPFOCUS_HOME at a temp dir and clears env overrides.
func isolateHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(config.EnvHome, dir)
	for _, k := range []string{
		config.EnvAPIURL, config.EnvAPIToken, config.EnvAPITimeout,
		config.EnvLogLevel, config.EnvLogFormat, config.EnvLogFile,
	} {
		t.Setenv(k, "")
	}
	t.Cleanup(config.ResetGlobalConfigForTest)
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestNew_Defaults(t *testing.T) {
	dir := isolateHome(t)

	cfg := config.New()

	assert.Equal(t, config.DefaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, config.DefaultTimeout, cfg.API.Timeout)
	assert.Equal(t, config.DefaultMinVersion, cfg.API.MinVersion)
	assert.Equal(t, "table", cfg.Output.DefaultFormat)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, filepath.Join(dir, "config.yaml"), cfg.ConfigPath())
	assert.Equal(t, filepath.Join(dir, "logs", "propfocus.log"), cfg.Logging.File)
	require.NoError(t, cfg.Validate())
}

func TestNew_ReadsConfigFile(t *testing.T) {
	dir := isolateHome(t)
	writeFile(t, filepath.Join(dir, "config.yaml"), `
api:
  base_url: https://api.example.com
  timeout: 5s
output:
  default_format: json
`)

	cfg := config.New()

	assert.Equal(t, "https://api.example.com", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, "json", cfg.Output.DefaultFormat)
	// Absent sections keep their defaults.
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestNew_EnvOverrides(t *testing.T) {
	isolateHome(t)
	t.Setenv(config.EnvAPIURL, "https://env.example.com")
	t.Setenv(config.EnvAPIToken, "secret")
	t.Setenv(config.EnvAPITimeout, "2s")
	t.Setenv(config.EnvLogLevel, "DEBUG")
	t.Setenv(config.EnvLogFile, "/tmp/x.log")

	cfg := config.New()

	assert.Equal(t, "https://env.example.com", cfg.API.BaseURL)
	assert.Equal(t, "secret", cfg.API.Token)
	assert.Equal(t, 2*time.Second, cfg.API.Timeout)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "/tmp/x.log", cfg.Logging.File)
}

func TestShallowMergeYAML_KeepsUnsetSectionKeys(t *testing.T) {
	isolateHome(t)
	cfg := config.New()
	cfg.API.Token = "from-default"

	path := filepath.Join(t.TempDir(), "overlay.yaml")
	writeFile(t, path, `
api:
  base_url: https://overlay.example.com
logging:
  level: debug
unknown_section:
  foo: bar
`)

	require.NoError(t, config.ShallowMergeYAML(cfg, path))

	assert.Equal(t, "https://overlay.example.com", cfg.API.BaseURL)
	assert.Equal(t, "from-default", cfg.API.Token)
	assert.Equal(t, config.DefaultTimeout, cfg.API.Timeout)
	assert.Equal(t, config.DefaultMinVersion, cfg.API.MinVersion)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, config.DefaultLogFormat, cfg.Logging.Format)
	assert.Equal(t, "table", cfg.Output.DefaultFormat)
}

func TestNew_PartialAPISectionKeepsDefaults(t *testing.T) {
	dir := isolateHome(t)
	writeFile(t, filepath.Join(dir, "config.yaml"), "api:\n  base_url: https://api.example.com\n")

	cfg := config.New()

	assert.Equal(t, "https://api.example.com", cfg.API.BaseURL)
	assert.Equal(t, config.DefaultTimeout, cfg.API.Timeout)
	assert.Equal(t, config.DefaultMinVersion, cfg.API.MinVersion)
	require.NoError(t, cfg.Validate())
}

func TestShallowMergeYAML_Errors(t *testing.T) {
	t.Run("nil target", func(t *testing.T) {
		require.Error(t, config.ShallowMergeYAML(nil, "x"))
	})

	t.Run("missing file", func(t *testing.T) {
		require.Error(t, config.ShallowMergeYAML(&config.Config{}, filepath.Join(t.TempDir(), "nope.yaml")))
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		writeFile(t, path, "api: [unterminated")
		require.Error(t, config.ShallowMergeYAML(&config.Config{}, path))
	})

	t.Run("empty file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.yaml")
		writeFile(t, path, "# nothing here\n")
		require.NoError(t, config.ShallowMergeYAML(&config.Config{}, path))
	})
}

func TestSaveAndReload(t *testing.T) {
	dir := isolateHome(t)

	cfg := config.New()
	cfg.API.BaseURL = "https://saved.example.com"
	cfg.Revenue.Period = "2025-02"
	require.NoError(t, cfg.Save())

	info, err := os.Stat(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	reloaded := config.New()
	assert.Equal(t, "https://saved.example.com", reloaded.API.BaseURL)
	assert.Equal(t, "2025-02", reloaded.Revenue.Period)
	assert.Equal(t, config.DefaultTimeout, reloaded.API.Timeout)
}

func TestValidate(t *testing.T) {
	isolateHome(t)

	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{name: "defaults valid", mutate: func(*config.Config) {}},
		{
			name:    "bad url",
			mutate:  func(c *config.Config) { c.API.BaseURL = "not a url" },
			wantErr: "BaseURL",
		},
		{
			name:    "bad output format",
			mutate:  func(c *config.Config) { c.Output.DefaultFormat = "xml" },
			wantErr: "DefaultFormat",
		},
		{
			name:    "bad semver constraint",
			mutate:  func(c *config.Config) { c.API.MinVersion = ">>> one" },
			wantErr: "MinVersion",
		},
		{
			name:    "bad period",
			mutate:  func(c *config.Config) { c.Revenue.Period = "2025/02" },
			wantErr: "Period",
		},
		{
			name:    "bad log level",
			mutate:  func(c *config.Config) { c.Logging.Level = "loud" },
			wantErr: "Level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	isolateHome(t)
	path := filepath.Join(t.TempDir(), ".env")
	writeFile(t, path, "PROPFOCUS_TEST_DOTENV=loaded\n")
	t.Cleanup(func() { _ = os.Unsetenv("PROPFOCUS_TEST_DOTENV") })

	require.NoError(t, config.LoadDotEnv(path, filepath.Join(t.TempDir(), "missing.env")))
	assert.Equal(t, "loaded", os.Getenv("PROPFOCUS_TEST_DOTENV"))
}

func TestToLoggingConfig(t *testing.T) {
	lc := config.LoggingConfig{Level: "debug", Format: "console"}
	got := lc.ToLoggingConfig()
	assert.Equal(t, logging.OutputStderr, got.Output)

	lc.File = "/tmp/p.log"
	got = lc.ToLoggingConfig()
	assert.Equal(t, logging.OutputFile, got.Output)
	assert.Equal(t, "/tmp/p.log", got.File)
}

func TestGetOutputFormat(t *testing.T) {
	isolateHome(t)
	assert.Equal(t, "json", config.GetOutputFormat("json"))
	assert.Equal(t, "table", config.GetOutputFormat(""))
}
