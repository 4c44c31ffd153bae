package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/project-pir/internal/config"
)

// Test Plan for config show:
// - writeConfig() emits YAML using the config file keys
// - the emitted YAML loads back as an equivalent configuration

func TestWriteConfig_RoundTrip(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Classify.Buckets = []string{"kernel", "lib"}
	cfg.Output.BuildFlags = true

	var buf bytes.Buffer
	require.NoError(t, writeConfig(&buf, cfg))

	out := buf.String()
	assert.Contains(t, out, "discovery:\n  ignored_dirs:\n")
	assert.Contains(t, out, "  build_flags: true\n")
	assert.Contains(t, out, "  functions: regex\n")

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".pir"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".pir", "config.yml"), buf.Bytes(), 0644))

	loaded, err := config.LoadConfigFromDir(root)
	require.NoError(t, err)
	assert.Equal(t, cfg.Discovery.IgnoredDirs, loaded.Discovery.IgnoredDirs)
	assert.Equal(t, cfg.Discovery.SourceExtensions, loaded.Discovery.SourceExtensions)
	assert.Empty(t, loaded.Discovery.Ignore)
	assert.Equal(t, cfg.Classify, loaded.Classify)
	assert.Equal(t, cfg.Output, loaded.Output)
	assert.Equal(t, cfg.Parser, loaded.Parser)
	assert.Equal(t, cfg.Processing, loaded.Processing)
}
