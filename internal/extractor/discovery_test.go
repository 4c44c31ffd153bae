package extractor

import (
	"testing"

	"github.com/mvp-joe/project-pir/internal/pir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Discovery and Classification:
// - Discover() returns source files in lexical walk order with slash-separated relative paths
// - Discover() skips ignored directory names at any depth
// - Discover() skips files and directories matching ignore globs
// - Discover() matches exact names such as Makefile, case-sensitive extensions
// - IsIgnoredPath()/IsIgnoredDir() agree with what Discover() prunes
// - NewFileDiscovery() rejects malformed glob patterns
// - Classify() returns the first configured bucket appearing as a directory segment
// - Classify() returns "other" when nothing matches and "link" for .ld files
// - Classify() never matches a bucket name against the file name itself

func TestDiscover_FiltersAndOrders(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"Makefile":              "all:\n",
		"README.md":             "# readme\n",
		"src/main.c":            "int main(void){return 0;}\n",
		"src/start.S":           "_start:\n",
		"src/entry.s":           "_entry:\n",
		"src/os.h":              "\n",
		"src/notes.txt":         "\n",
		"src/build/gen.c":       "\n",
		".git/hooks/pre.c":      "\n",
		"vendor/lib/x.c":        "\n",
		"tools/scripts/gen.asm": "\n",
		"os.ld":                 "ENTRY(_start)\n",
	})

	cfg := DefaultConfig(root)
	fd, err := NewFileDiscovery(root, cfg.IgnoredDirs, cfg.SourceExtensions, []string{"vendor/**"})
	require.NoError(t, err)

	files, err := fd.Discover()
	require.NoError(t, err)

	rel := make([]string, 0, len(files))
	for _, f := range files {
		rel = append(rel, f.RelPath)
		assert.True(t, len(f.AbsPath) > len(f.RelPath))
	}
	assert.Equal(t, []string{"Makefile", "os.ld", "src/entry.s", "src/main.c", "src/os.h", "src/start.S"}, rel)
}

func TestDiscover_IsIgnoredPath(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig(t.TempDir())
	fd, err := NewFileDiscovery(cfg.RootDir, cfg.IgnoredDirs, cfg.SourceExtensions, []string{"gen/**", "*.pb.c"})
	require.NoError(t, err)

	assert.True(t, fd.IsIgnoredPath("build/out.c"))
	assert.True(t, fd.IsIgnoredPath("a/.git/b.c"))
	assert.True(t, fd.IsIgnoredPath("gen/x.c"))
	assert.True(t, fd.IsIgnoredPath("msg.pb.c"))
	assert.False(t, fd.IsIgnoredPath("src/build.c"))
	assert.False(t, fd.IsIgnoredPath("src/main.c"))

	assert.True(t, fd.IsIgnoredDir("build"))
	assert.True(t, fd.IsIgnoredDir("kernel/.git"))
	assert.True(t, fd.IsIgnoredDir("gen"))
	assert.False(t, fd.IsIgnoredDir("kernel"))
	assert.False(t, fd.IsIgnoredDir("kernel/mm"))
}

func TestNewFileDiscovery_InvalidPattern(t *testing.T) {
	t.Parallel()

	_, err := NewFileDiscovery(t.TempDir(), nil, []string{".c"}, []string{"[unclosed"})
	assert.Error(t, err)
}

func TestClassify(t *testing.T) {
	t.Parallel()

	c := NewClassifier(pir.DefaultBuckets)

	tests := []struct {
		path string
		want pir.Bucket
	}{
		{"src/core/main.c", "core"},
		{"core/main.c", "core"},
		{"kernel/mm/page.c", "mm"},
		{"drivers/driver/uart.c", "driver"},
		{"fs/ext2/inode.c", "fs"},
		{"user/init.c", "user"},
		{"src/main.c", pir.BucketOther},
		{"src/core.c", pir.BucketOther},
		{"src/coremark/x.c", pir.BucketOther},
		{"src/core/os.ld", pir.BucketLink},
		{"os.ld", pir.BucketLink},
		{"user/core/x.c", "core"},
		{"core/user/x.c", "core"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, c.Classify(tt.path), tt.path)
	}
}

func TestClassify_OrderDecidesTies(t *testing.T) {
	t.Parallel()

	c := NewClassifier([]pir.Bucket{"user", "core"})
	assert.Equal(t, pir.Bucket("user"), c.Classify("core/user/x.c"))
	assert.Equal(t, pir.Bucket("user"), c.Classify("user/core/x.c"))
}
