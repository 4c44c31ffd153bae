package extractor

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/maypok86/otter"

	"github.com/mvp-joe/project-pir/internal/parsers"
	"github.com/mvp-joe/project-pir/internal/pir"
)

// analysis is the content-derived part of a file's extraction. It depends
// only on the file kind and bytes, never on the path or unit id.
type analysis struct {
	includes  []string
	functions []string
	body      string
	layout    *parsers.LinkerLayout
	buildVars []parsers.BuildVar
}

// ContentCache keeps analyses keyed by file kind and content hash, so
// unchanged files are not re-normalized across runs of one process.
// A nil *ContentCache is a valid, always-missing cache.
type ContentCache struct {
	cache otter.Cache[string, *analysis]
}

// NewContentCache creates a cache holding up to capacity analyses.
// A capacity of zero returns nil.
func NewContentCache(capacity int) (*ContentCache, error) {
	if capacity <= 0 {
		return nil, nil
	}
	c, err := otter.MustBuilder[string, *analysis](capacity).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build content cache: %w", err)
	}
	return &ContentCache{cache: c}, nil
}

func contentKey(kind pir.FileKind, content string) string {
	sum := sha256.Sum256([]byte(content))
	return kind.String() + ":" + hex.EncodeToString(sum[:])
}

func (c *ContentCache) get(key string) (*analysis, bool) {
	if c == nil {
		return nil, false
	}
	return c.cache.Get(key)
}

func (c *ContentCache) set(key string, a *analysis) {
	if c == nil {
		return
	}
	c.cache.Set(key, a)
}

// Close releases the cache.
func (c *ContentCache) Close() {
	if c == nil {
		return
	}
	c.cache.Close()
}
