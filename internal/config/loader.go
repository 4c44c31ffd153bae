package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	rootDir    string
	configFile string
}

// NewLoader creates a loader that looks for .pir/config.yml under rootDir.
func NewLoader(rootDir string) Loader {
	return &loader{rootDir: rootDir}
}

// NewFileLoader creates a loader for an explicit config file. The file must exist.
func NewFileLoader(configFile string) Loader {
	return &loader{configFile: configFile}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (PIR_*)
// 2. Config file
// 3. Default values
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	if l.configFile != "" {
		v.SetConfigFile(l.configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Join(l.rootDir, ".pir"))
	}

	v.SetEnvPrefix("PIR")
	v.AutomaticEnv()
	// Replace . with _ in env var names (e.g., PIR_OUTPUT_PATH)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Scalar keys; AutomaticEnv only sees keys viper already knows about.
	v.BindEnv("output.path")
	v.BindEnv("output.profile")
	v.BindEnv("output.build_flags")
	v.BindEnv("parser.functions")
	v.BindEnv("processing.workers")
	v.BindEnv("processing.cache_size")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is acceptable - we'll use defaults + env vars
		var notFound viper.ConfigFileNotFoundError
		if l.configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("discovery.ignored_dirs", defaults.Discovery.IgnoredDirs)
	v.SetDefault("discovery.source_extensions", defaults.Discovery.SourceExtensions)
	v.SetDefault("discovery.ignore", defaults.Discovery.Ignore)

	v.SetDefault("classify.buckets", defaults.Classify.Buckets)

	v.SetDefault("output.path", defaults.Output.Path)
	v.SetDefault("output.profile", defaults.Output.Profile)
	v.SetDefault("output.build_flags", defaults.Output.BuildFlags)

	v.SetDefault("parser.functions", defaults.Parser.Functions)

	v.SetDefault("processing.workers", defaults.Processing.Workers)
	v.SetDefault("processing.cache_size", defaults.Processing.CacheSize)
}

// LoadConfigFromDir loads configuration for the tree rooted at rootDir.
func LoadConfigFromDir(rootDir string) (*Config, error) {
	return NewLoader(rootDir).Load()
}
