package watcher

import (
	"context"
	"log"
)

// WatchCoordinator routes debounced file changes to a Regenerator.
type WatchCoordinator struct {
	files  FileWatcher
	target Regenerator
	ctx    context.Context
}

// NewWatchCoordinator creates a new watch coordinator.
func NewWatchCoordinator(files FileWatcher, target Regenerator) *WatchCoordinator {
	return &WatchCoordinator{
		files:  files,
		target: target,
	}
}

// Start begins watching and regenerating. Blocks until ctx is cancelled
// or the file watcher fails to start.
func (c *WatchCoordinator) Start(ctx context.Context) error {
	c.ctx = ctx

	if err := c.files.Start(ctx, c.handleFileChange); err != nil {
		c.cleanup()
		return err
	}

	<-ctx.Done()
	c.cleanup()
	return ctx.Err()
}

// cleanup stops the file watcher.
func (c *WatchCoordinator) cleanup() {
	if err := c.files.Stop(); err != nil {
		log.Printf("Warning: file watcher stop failed: %v", err)
	}
}

// handleFileChange regenerates the artifact. Failures are logged and the
// watch continues.
func (c *WatchCoordinator) handleFileChange(files []string) {
	if len(files) == 0 || c.ctx.Err() != nil {
		return
	}

	log.Printf("Processing %d file change(s)...", len(files))

	if err := c.target.Regenerate(c.ctx, files); err != nil {
		log.Printf("Error: regeneration failed: %v", err)
	}
}
