package extractor

import (
	"strings"

	"github.com/mvp-joe/project-pir/internal/pir"
)

// Classifier maps relative paths to architectural buckets.
type Classifier struct {
	buckets []pir.Bucket
}

// NewClassifier creates a classifier that tries buckets in the given order.
func NewClassifier(buckets []pir.Bucket) *Classifier {
	return &Classifier{buckets: append([]pir.Bucket(nil), buckets...)}
}

// Classify returns the first bucket whose name is a directory segment of
// relPath, or pir.BucketOther. Linker scripts always land in pir.BucketLink.
func (c *Classifier) Classify(relPath string) pir.Bucket {
	if pir.KindOf(relPath) == pir.KindLinkerScript {
		return pir.BucketLink
	}

	// Leading slash so top-level directories count as segments too.
	p := "/" + strings.TrimPrefix(relPath, "/")
	for _, b := range c.buckets {
		if strings.Contains(p, "/"+string(b)+"/") {
			return b
		}
	}
	return pir.BucketOther
}
