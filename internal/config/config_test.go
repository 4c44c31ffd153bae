package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/mvp-joe/project-pir/internal/pir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Config System:
// - Default() returns valid configuration with all expected defaults
// - LoadConfigFromDir() uses defaults when no config file exists
// - LoadConfigFromDir() loads from .pir/config.yml and merges with defaults
// - Environment variables override config file values
// - NewFileLoader() fails when the explicit file is missing
// - Load returns error for malformed YAML and for invalid values
// - Validate() rejects each invalid field with its sentinel
// - Validate() reports multiple errors at once
// - ToExtractorConfig() carries every setting through

func writeConfig(t *testing.T, root, content string) string {
	t.Helper()
	dir := filepath.Join(root, ".pir")
	require.NoError(t, os.MkdirAll(dir, 0755))
	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault_ReturnsValidConfiguration(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.NotNil(t, cfg)

	assert.Equal(t, []string{".git", "build", "dist", "__pycache__", ".vscode"}, cfg.Discovery.IgnoredDirs)
	assert.Equal(t, []string{".c", ".h", ".S", ".s", ".ld", "Makefile"}, cfg.Discovery.SourceExtensions)
	assert.Equal(t, []string{"core", "mm", "driver", "fs", "user", "link"}, cfg.Classify.Buckets)
	assert.Equal(t, "pir.txt", cfg.Output.Path)
	assert.Equal(t, "os-riscv", cfg.Output.Profile)
	assert.False(t, cfg.Output.BuildFlags)
	assert.Equal(t, "regex", cfg.Parser.Functions)
	assert.Equal(t, runtime.NumCPU(), cfg.Processing.Workers)
	assert.Equal(t, 4096, cfg.Processing.CacheSize)

	assert.NoError(t, Validate(cfg))
}

func TestLoadConfigFromDir_NoConfigFile(t *testing.T) {
	t.Parallel()

	cfg, err := LoadConfigFromDir(t.TempDir())
	require.NoError(t, err)

	def := Default()
	assert.Equal(t, def.Classify.Buckets, cfg.Classify.Buckets)
	assert.Equal(t, def.Output.Path, cfg.Output.Path)
	assert.Equal(t, def.Parser.Functions, cfg.Parser.Functions)
}

func TestLoadConfigFromDir_MergesFileWithDefaults(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeConfig(t, root, `
classify:
  buckets: [kernel, lib]
output:
  build_flags: true
parser:
  functions: treesitter
processing:
  workers: 3
`)

	cfg, err := LoadConfigFromDir(root)
	require.NoError(t, err)

	assert.Equal(t, []string{"kernel", "lib"}, cfg.Classify.Buckets)
	assert.True(t, cfg.Output.BuildFlags)
	assert.Equal(t, "treesitter", cfg.Parser.Functions)
	assert.Equal(t, 3, cfg.Processing.Workers)

	// Untouched keys keep defaults
	assert.Equal(t, "pir.txt", cfg.Output.Path)
	assert.Equal(t, 4096, cfg.Processing.CacheSize)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `
output:
  path: from-file.txt
processing:
  workers: 2
`)

	t.Setenv("PIR_OUTPUT_PATH", "from-env.txt")
	t.Setenv("PIR_PROCESSING_WORKERS", "7")

	cfg, err := LoadConfigFromDir(root)
	require.NoError(t, err)

	assert.Equal(t, "from-env.txt", cfg.Output.Path)
	assert.Equal(t, 7, cfg.Processing.Workers)
}

func TestNewFileLoader(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	path := writeConfig(t, root, "output:\n  profile: os-arm\n")

	cfg, err := NewFileLoader(path).Load()
	require.NoError(t, err)
	assert.Equal(t, "os-arm", cfg.Output.Profile)

	_, err = NewFileLoader(filepath.Join(root, "missing.yml")).Load()
	assert.Error(t, err)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	t.Run("malformed yaml", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		writeConfig(t, root, "output: [unterminated\n")

		_, err := LoadConfigFromDir(root)
		assert.ErrorContains(t, err, "failed to read config file")
	})

	t.Run("invalid values", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		writeConfig(t, root, "parser:\n  functions: llm\n")

		_, err := LoadConfigFromDir(root)
		assert.ErrorIs(t, err, ErrInvalidFunctionMode)
	})
}

func TestValidate_RejectsInvalidFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"empty buckets", func(c *Config) { c.Classify.Buckets = nil }, ErrEmptyBuckets},
		{"duplicate bucket", func(c *Config) { c.Classify.Buckets = []string{"mm", "mm"} }, ErrInvalidBucket},
		{"reserved bucket", func(c *Config) { c.Classify.Buckets = []string{"other"} }, ErrInvalidBucket},
		{"bucket with slash", func(c *Config) { c.Classify.Buckets = []string{"a/b"} }, ErrInvalidBucket},
		{"empty extensions", func(c *Config) { c.Discovery.SourceExtensions = nil }, ErrEmptyExtensions},
		{"bad glob", func(c *Config) { c.Discovery.Ignore = []string{"[unclosed"} }, ErrInvalidPattern},
		{"unknown mode", func(c *Config) { c.Parser.Functions = "ast" }, ErrInvalidFunctionMode},
		{"zero workers", func(c *Config) { c.Processing.Workers = 0 }, ErrInvalidWorkers},
		{"negative cache", func(c *Config) { c.Processing.CacheSize = -1 }, ErrInvalidCacheSize},
		{"empty output", func(c *Config) { c.Output.Path = " " }, ErrEmptyOutput},
		{"empty profile", func(c *Config) { c.Output.Profile = "" }, ErrEmptyOutput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, Validate(cfg), tt.want)
		})
	}
}

func TestValidate_MultipleErrors(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Processing.Workers = 0
	cfg.Output.Path = ""
	cfg.Parser.Functions = "x"

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.ErrorIs(t, err, ErrInvalidWorkers)
	assert.ErrorIs(t, err, ErrEmptyOutput)
	assert.ErrorIs(t, err, ErrInvalidFunctionMode)
}

func TestToExtractorConfig(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Discovery.Ignore = []string{"vendor/**"}
	cfg.Output.BuildFlags = true
	cfg.Processing.Workers = 2

	ec := cfg.ToExtractorConfig("/src/os")
	assert.Equal(t, "/src/os", ec.RootDir)
	assert.Equal(t, cfg.Discovery.IgnoredDirs, ec.IgnoredDirs)
	assert.Equal(t, cfg.Discovery.SourceExtensions, ec.SourceExtensions)
	assert.Equal(t, []string{"vendor/**"}, ec.IgnorePatterns)
	assert.Equal(t, []pir.Bucket{"core", "mm", "driver", "fs", "user", "link"}, ec.Buckets)
	assert.Equal(t, "os-riscv", ec.Profile)
	assert.Equal(t, "regex", ec.FunctionMode)
	assert.Equal(t, 2, ec.Workers)
	assert.Equal(t, 4096, ec.CacheSize)
	assert.True(t, ec.EmitBuildFlags)
}
