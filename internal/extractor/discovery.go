package extractor

import (
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// compiledPattern holds both the pattern string and compiled glob
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// FileDiscovery enumerates source files under a root directory.
// Files are returned in lexical walk order, so repeated runs over the same
// tree yield the same sequence.
type FileDiscovery struct {
	rootDir        string
	ignoredDirs    map[string]bool
	extensions     map[string]bool
	ignorePatterns []compiledPattern
}

// NewFileDiscovery creates a new file discovery instance.
func NewFileDiscovery(rootDir string, ignoredDirs, extensions, ignorePatterns []string) (*FileDiscovery, error) {
	fd := &FileDiscovery{
		rootDir:     rootDir,
		ignoredDirs: make(map[string]bool, len(ignoredDirs)),
		extensions:  make(map[string]bool, len(extensions)),
	}
	for _, d := range ignoredDirs {
		fd.ignoredDirs[d] = true
	}
	for _, e := range extensions {
		fd.extensions[e] = true
	}

	for _, pattern := range ignorePatterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid ignore pattern %q: %w", pattern, err)
		}
		fd.ignorePatterns = append(fd.ignorePatterns, compiledPattern{pattern: pattern, glob: g})
	}

	return fd, nil
}

// CheckRoot returns ErrNotDirectory unless the root is an existing directory.
func CheckRoot(rootDir string) error {
	info, err := os.Stat(rootDir)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrNotDirectory, rootDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotDirectory, rootDir)
	}
	return nil
}

// Discover walks the tree and returns the source files to extract.
// Unreadable subdirectories are logged and skipped.
func (fd *FileDiscovery) Discover() ([]SourceFile, error) {
	if err := CheckRoot(fd.rootDir); err != nil {
		return nil, err
	}

	files := []SourceFile{}
	err := filepath.WalkDir(fd.rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == fd.rootDir {
				return err
			}
			log.Printf("Warning: error accessing %s: %v", path, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		relPath, err := filepath.Rel(fd.rootDir, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		if d.IsDir() {
			if path != fd.rootDir && fd.IsIgnoredDir(relPath) {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() || !fd.IsSource(d.Name()) || fd.shouldIgnore(relPath) {
			return nil
		}

		absPath, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		files = append(files, SourceFile{AbsPath: absPath, RelPath: relPath})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", fd.rootDir, err)
	}

	return files, nil
}

// IsSource reports whether a file name has a recognized extension or is a
// recognized exact name such as "Makefile".
func (fd *FileDiscovery) IsSource(name string) bool {
	base := filepath.Base(name)
	if fd.extensions[base] {
		return true
	}
	ext := filepath.Ext(base)
	return ext != "" && fd.extensions[ext]
}

// IsIgnoredPath reports whether any directory segment of a slash-separated
// relative path is an ignored directory name or the path matches an ignore
// pattern.
func (fd *FileDiscovery) IsIgnoredPath(relPath string) bool {
	segments := strings.Split(relPath, "/")
	for _, seg := range segments[:len(segments)-1] {
		if fd.ignoredDirs[seg] {
			return true
		}
	}
	return fd.shouldIgnore(relPath)
}

// IsIgnoredDir reports whether the directory at a slash-separated relative
// path is pruned during discovery.
func (fd *FileDiscovery) IsIgnoredDir(relPath string) bool {
	name := relPath[strings.LastIndex(relPath, "/")+1:]
	return fd.ignoredDirs[name] || fd.IsIgnoredPath(relPath)
}

// shouldIgnore checks if a path matches any ignore pattern.
func (fd *FileDiscovery) shouldIgnore(relPath string) bool {
	for _, cp := range fd.ignorePatterns {
		if cp.glob.Match(relPath) {
			return true
		}
	}

	// A directory "vendor" also matches the pattern "vendor/**".
	pathWithSuffix := relPath + "/**"
	for _, cp := range fd.ignorePatterns {
		if cp.glob.Match(pathWithSuffix) {
			return true
		}
	}
	return false
}
