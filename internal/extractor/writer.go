package extractor

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/mvp-joe/project-pir/internal/pir"
)

// CompressedSuffix marks output paths that are written zstd-compressed.
const CompressedSuffix = ".zst"

// WriteDocument writes the rendered document to path atomically using the
// temp → rename pattern, so readers never observe a partial artifact.
// Paths ending in ".zst" get a zstd-compressed artifact.
func WriteDocument(path string, doc *pir.Document) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tempPath := tmp.Name()

	if err := writeBody(tmp, doc, strings.HasSuffix(path, CompressedSuffix)); err != nil {
		tmp.Close()
		os.Remove(tempPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tempPath, 0644); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to set file mode: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

func writeBody(w io.Writer, doc *pir.Document, compress bool) error {
	if !compress {
		_, err := doc.WriteTo(w)
		return err
	}

	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return err
	}
	if _, err := doc.WriteTo(enc); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

// ReadDocument returns the artifact text at path, decompressing ".zst" files.
func ReadDocument(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, CompressedSuffix) {
		dec, err := zstd.NewReader(f)
		if err != nil {
			return "", fmt.Errorf("failed to open zstd stream: %w", err)
		}
		defer dec.Close()
		r = dec
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}
