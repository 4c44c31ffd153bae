package config

import (
	"github.com/mvp-joe/project-pir/internal/extractor"
	"github.com/mvp-joe/project-pir/internal/pir"
)

// ToExtractorConfig converts a Config to an extractor.Config.
// The rootDir parameter specifies the root directory of the tree to scan.
func (c *Config) ToExtractorConfig(rootDir string) *extractor.Config {
	buckets := make([]pir.Bucket, 0, len(c.Classify.Buckets))
	for _, b := range c.Classify.Buckets {
		buckets = append(buckets, pir.Bucket(b))
	}

	return &extractor.Config{
		RootDir:          rootDir,
		IgnoredDirs:      c.Discovery.IgnoredDirs,
		SourceExtensions: c.Discovery.SourceExtensions,
		IgnorePatterns:   c.Discovery.Ignore,
		Buckets:          buckets,
		Profile:          c.Output.Profile,
		FunctionMode:     c.Parser.Functions,
		Workers:          c.Processing.Workers,
		CacheSize:        c.Processing.CacheSize,
		EmitBuildFlags:   c.Output.BuildFlags,
	}
}
