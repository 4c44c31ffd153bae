package extractor

import (
	"errors"
	"runtime"
	"time"

	"github.com/mvp-joe/project-pir/internal/pir"
)

// ErrNotDirectory is returned when the scan root is missing or not a directory.
var ErrNotDirectory = errors.New("root is not a directory")

// Config contains extractor configuration.
type Config struct {
	RootDir          string
	IgnoredDirs      []string     // directory names skipped anywhere in the tree
	SourceExtensions []string     // extensions (".c") or exact file names ("Makefile")
	IgnorePatterns   []string     // extra glob patterns over slash-separated relative paths
	Buckets          []pir.Bucket // ordered; first match wins
	Profile          string
	FunctionMode     string // "regex" or "treesitter"
	Workers          int
	CacheSize        int // 0 disables the content cache
	EmitBuildFlags   bool
}

// DefaultConfig returns the reference configuration for rootDir.
func DefaultConfig(rootDir string) *Config {
	return &Config{
		RootDir:          rootDir,
		IgnoredDirs:      []string{".git", "build", "dist", "__pycache__", ".vscode"},
		SourceExtensions: []string{".c", ".h", ".S", ".s", ".ld", "Makefile"},
		Buckets:          append([]pir.Bucket(nil), pir.DefaultBuckets...),
		Profile:          "os-riscv",
		FunctionMode:     "regex",
		Workers:          runtime.NumCPU(),
		CacheSize:        4096,
	}
}

// SourceFile is one enumerated file.
type SourceFile struct {
	AbsPath string
	RelPath string // slash-separated, relative to the root
}

// Stats summarizes one extraction run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int
	FilesSkipped    int
	Units           int
	Edges           int
	Symbols         int
	Layouts         int
	Bodies          int
	GraphNodes      int
	GraphEdges      int
	TopIncludes     []pir.TargetCount // most included targets
	CacheHits       int
	RawBytes        int64
	NormalizedBytes int64
	Duration        time.Duration
}

// Reduction returns the percentage by which normalization shrank the
// bodies, relative to the raw bytes of the files that produced them.
func (s *Stats) Reduction() float64 {
	if s.RawBytes == 0 {
		return 0
	}
	return (1 - float64(s.NormalizedBytes)/float64(s.RawBytes)) * 100
}
