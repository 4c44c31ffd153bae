package extractor

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/mvp-joe/project-pir/internal/normalize"
	"github.com/mvp-joe/project-pir/internal/parsers"
	"github.com/mvp-joe/project-pir/internal/pir"
)

// fileResult is the local outcome of processing one file. Results are
// merged in discovery order after all files are processed.
type fileResult struct {
	file     SourceFile
	kind     pir.FileKind
	bucket   pir.Bucket
	rawBytes int
	cached   bool
	err      error
	analysis *analysis
}

// readSource loads a file as text. Invalid UTF-8 sequences are dropped.
func readSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.ToValidUTF8(string(data), ""), nil
}

// processFile reads, classifies, normalizes and parses one file. It never
// panics; any failure is reported in the result's err field.
func (e *Extractor) processFile(f SourceFile) (res fileResult) {
	res.file = f
	res.kind = pir.KindOf(f.RelPath)
	res.bucket = e.classifier.Classify(f.RelPath)

	defer func() {
		if r := recover(); r != nil {
			res.err = fmt.Errorf("panic while processing: %v", r)
		}
	}()

	content, err := readSource(f.AbsPath)
	if err != nil {
		res.err = err
		return res
	}
	res.rawBytes = len(content)

	key := contentKey(res.kind, content)
	if a, ok := e.cache.get(key); ok {
		res.analysis = a
		res.cached = true
		return res
	}

	res.analysis = e.analyze(f, res.kind, content)
	e.cache.set(key, res.analysis)
	return res
}

// analyze runs the kind-specific normalizer and structural parsers.
func (e *Extractor) analyze(f SourceFile, kind pir.FileKind, content string) *analysis {
	a := &analysis{}

	switch kind {
	case pir.KindC, pir.KindHeader:
		a.includes = parsers.Includes(content)
		functions, err := e.functions.Functions([]byte(content))
		if err != nil {
			log.Printf("Warning: function extraction failed for %s: %v", f.RelPath, err)
		}
		a.functions = functions
		a.body = normalize.C(content)

	case pir.KindAssembly:
		a.body = normalize.Assembly(content)

	case pir.KindLinkerScript:
		layout := parsers.LinkerScript(content)
		a.layout = &layout

	case pir.KindBuildFile:
		a.buildVars = parsers.BuildFlags(content)
	}

	return a
}
