// Package config provides configuration loading for pir.
//
// Configuration Hierarchy (highest to lowest priority):
//  1. Environment variables (PIR_*)
//  2. Config file (<root>/.pir/config.yml, or the --config path)
//  3. Built-in defaults
//
// Nested keys map to environment variables with underscores, e.g.
// PIR_OUTPUT_PATH or PIR_PARSER_FUNCTIONS.
package config

import (
	"runtime"
)

// Config represents the complete pir configuration.
type Config struct {
	Discovery  DiscoveryConfig  `yaml:"discovery" mapstructure:"discovery"`
	Classify   ClassifyConfig   `yaml:"classify" mapstructure:"classify"`
	Output     OutputConfig     `yaml:"output" mapstructure:"output"`
	Parser     ParserConfig     `yaml:"parser" mapstructure:"parser"`
	Processing ProcessingConfig `yaml:"processing" mapstructure:"processing"`
}

// DiscoveryConfig defines which files are extracted.
type DiscoveryConfig struct {
	IgnoredDirs      []string `yaml:"ignored_dirs" mapstructure:"ignored_dirs"`           // directory names skipped at any depth
	SourceExtensions []string `yaml:"source_extensions" mapstructure:"source_extensions"` // ".c" style extensions or exact names like "Makefile"
	Ignore           []string `yaml:"ignore" mapstructure:"ignore"`                       // extra glob patterns over relative paths
}

// ClassifyConfig defines the architectural buckets.
type ClassifyConfig struct {
	Buckets []string `yaml:"buckets" mapstructure:"buckets"` // ordered; first match wins
}

// OutputConfig defines the artifact.
type OutputConfig struct {
	Path       string `yaml:"path" mapstructure:"path"`
	Profile    string `yaml:"profile" mapstructure:"profile"`
	BuildFlags bool   `yaml:"build_flags" mapstructure:"build_flags"` // emit the BUILD section
}

// ParserConfig selects structural parsing strategies.
type ParserConfig struct {
	Functions string `yaml:"functions" mapstructure:"functions"` // "regex" or "treesitter"
}

// ProcessingConfig tunes the pipeline.
type ProcessingConfig struct {
	Workers   int `yaml:"workers" mapstructure:"workers"`
	CacheSize int `yaml:"cache_size" mapstructure:"cache_size"` // 0 disables the content cache
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Discovery: DiscoveryConfig{
			IgnoredDirs:      []string{".git", "build", "dist", "__pycache__", ".vscode"},
			SourceExtensions: []string{".c", ".h", ".S", ".s", ".ld", "Makefile"},
			Ignore:           []string{},
		},
		Classify: ClassifyConfig{
			Buckets: []string{"core", "mm", "driver", "fs", "user", "link"},
		},
		Output: OutputConfig{
			Path:       "pir.txt",
			Profile:    "os-riscv",
			BuildFlags: false,
		},
		Parser: ParserConfig{
			Functions: "regex",
		},
		Processing: ProcessingConfig{
			Workers:   runtime.NumCPU(),
			CacheSize: 4096,
		},
	}
}
