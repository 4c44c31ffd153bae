package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

var (
	// ErrEmptyBuckets indicates no classification buckets are configured
	ErrEmptyBuckets = errors.New("empty bucket list")

	// ErrInvalidBucket indicates a duplicate, reserved or malformed bucket name
	ErrInvalidBucket = errors.New("invalid bucket")

	// ErrEmptyExtensions indicates no source extensions are configured
	ErrEmptyExtensions = errors.New("empty source extensions")

	// ErrInvalidPattern indicates a malformed ignore glob
	ErrInvalidPattern = errors.New("invalid ignore pattern")

	// ErrInvalidFunctionMode indicates an unsupported function extraction mode
	ErrInvalidFunctionMode = errors.New("invalid function extraction mode")

	// ErrInvalidWorkers indicates a non-positive worker count
	ErrInvalidWorkers = errors.New("invalid worker count")

	// ErrInvalidCacheSize indicates a negative cache size
	ErrInvalidCacheSize = errors.New("invalid cache size")

	// ErrEmptyOutput indicates a missing output path or profile
	ErrEmptyOutput = errors.New("empty output setting")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	if err := validateDiscovery(&cfg.Discovery); err != nil {
		errs = append(errs, err)
	}
	if err := validateClassify(&cfg.Classify); err != nil {
		errs = append(errs, err)
	}
	if err := validateOutput(&cfg.Output); err != nil {
		errs = append(errs, err)
	}
	if err := validateParser(&cfg.Parser); err != nil {
		errs = append(errs, err)
	}
	if err := validateProcessing(&cfg.Processing); err != nil {
		errs = append(errs, err)
	}

	return joinErrors(errs)
}

func validateDiscovery(cfg *DiscoveryConfig) error {
	var errs []error

	if len(cfg.SourceExtensions) == 0 {
		errs = append(errs, fmt.Errorf("%w: at least one source extension required", ErrEmptyExtensions))
	}

	for _, pattern := range cfg.Ignore {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			errs = append(errs, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, pattern, err))
		}
	}

	return joinErrors(errs)
}

func validateClassify(cfg *ClassifyConfig) error {
	var errs []error

	if len(cfg.Buckets) == 0 {
		errs = append(errs, fmt.Errorf("%w: at least one bucket required", ErrEmptyBuckets))
	}

	seen := make(map[string]bool, len(cfg.Buckets))
	for _, b := range cfg.Buckets {
		switch {
		case strings.TrimSpace(b) == "" || strings.Contains(b, "/"):
			errs = append(errs, fmt.Errorf("%w: %q is not a path segment", ErrInvalidBucket, b))
		case b == "other":
			errs = append(errs, fmt.Errorf("%w: \"other\" is reserved for unmatched paths", ErrInvalidBucket))
		case seen[b]:
			errs = append(errs, fmt.Errorf("%w: duplicate bucket %q", ErrInvalidBucket, b))
		}
		seen[b] = true
	}

	return joinErrors(errs)
}

func validateOutput(cfg *OutputConfig) error {
	var errs []error

	if strings.TrimSpace(cfg.Path) == "" {
		errs = append(errs, fmt.Errorf("%w: output path is required", ErrEmptyOutput))
	}
	if strings.TrimSpace(cfg.Profile) == "" {
		errs = append(errs, fmt.Errorf("%w: profile is required", ErrEmptyOutput))
	}

	return joinErrors(errs)
}

func validateParser(cfg *ParserConfig) error {
	switch cfg.Functions {
	case "regex", "treesitter":
		return nil
	default:
		return fmt.Errorf("%w: must be 'regex' or 'treesitter', got '%s'", ErrInvalidFunctionMode, cfg.Functions)
	}
}

func validateProcessing(cfg *ProcessingConfig) error {
	var errs []error

	if cfg.Workers < 1 {
		errs = append(errs, fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidWorkers, cfg.Workers))
	}
	if cfg.CacheSize < 0 {
		errs = append(errs, fmt.Errorf("%w: cache_size cannot be negative, got %d", ErrInvalidCacheSize, cfg.CacheSize))
	}

	return joinErrors(errs)
}

// joinErrors combines multiple errors into one. The result still matches
// every sentinel with errors.Is.
func joinErrors(errs []error) error {
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	default:
		return fmt.Errorf("validation failed: %w", errors.Join(errs...))
	}
}
