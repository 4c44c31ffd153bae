package watcher

import "context"

// FileWatcher monitors a source tree for changes with debouncing.
type FileWatcher interface {
	// Start begins watching, calling callback with debounced batches of changed files.
	Start(ctx context.Context, callback func(files []string)) error

	// Stop stops the file watcher and cleans up resources.
	Stop() error
}

// PathFilter decides which paths in the tree are relevant.
// *extractor.FileDiscovery satisfies it.
type PathFilter interface {
	// IsSource reports whether a file name is an extractable source file.
	IsSource(name string) bool

	// IsIgnoredPath reports whether a slash-separated relative path lies in
	// an ignored directory or matches an ignore pattern.
	IsIgnoredPath(relPath string) bool

	// IsIgnoredDir reports whether a directory is pruned from the tree.
	IsIgnoredDir(relPath string) bool
}

// Regenerator rebuilds the artifact after source changes.
type Regenerator interface {
	// Regenerate re-runs extraction. changed lists the files that triggered it.
	Regenerate(ctx context.Context, changed []string) error
}
