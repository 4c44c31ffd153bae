package extractor

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mvp-joe/project-pir/internal/parsers"
	"github.com/mvp-joe/project-pir/internal/pir"
)

// Extractor runs the extraction pipeline over one source tree.
// It may be run repeatedly; the content cache is shared between runs.
type Extractor struct {
	config     *Config
	rootDir    string
	discovery  *FileDiscovery
	classifier *Classifier
	functions  parsers.FunctionExtractor
	cache      *ContentCache
	progress   ProgressReporter
}

// New creates an extractor. A nil progress reporter disables reporting.
func New(config *Config, progress ProgressReporter) (*Extractor, error) {
	if err := CheckRoot(config.RootDir); err != nil {
		return nil, err
	}
	rootDir, err := filepath.Abs(config.RootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root directory: %w", err)
	}

	discovery, err := NewFileDiscovery(rootDir, config.IgnoredDirs, config.SourceExtensions, config.IgnorePatterns)
	if err != nil {
		return nil, fmt.Errorf("failed to create file discovery: %w", err)
	}

	functions, err := parsers.NewFunctionExtractor(config.FunctionMode)
	if err != nil {
		return nil, err
	}

	cache, err := NewContentCache(config.CacheSize)
	if err != nil {
		return nil, err
	}

	if progress == nil {
		progress = &NoOpProgressReporter{}
	}

	return &Extractor{
		config:     config,
		rootDir:    rootDir,
		discovery:  discovery,
		classifier: NewClassifier(config.Buckets),
		functions:  functions,
		cache:      cache,
		progress:   progress,
	}, nil
}

// RootDir returns the absolute root directory.
func (e *Extractor) RootDir() string {
	return e.rootDir
}

// Discovery returns the file enumerator used by the extractor.
func (e *Extractor) Discovery() *FileDiscovery {
	return e.discovery
}

// Close releases the content cache.
func (e *Extractor) Close() {
	e.cache.Close()
}

// Run extracts the whole tree into a PIR document. A single file that
// cannot be read or processed is skipped; only cancellation or an
// unusable root aborts the run.
func (e *Extractor) Run(ctx context.Context) (*pir.Document, *Stats, error) {
	start := time.Now()

	e.progress.OnDiscoveryStart()
	files, err := e.discovery.Discover()
	if err != nil {
		return nil, nil, err
	}
	e.progress.OnDiscoveryComplete(len(files))

	results, err := e.process(ctx, files)
	if err != nil {
		return nil, nil, err
	}

	doc, stats := e.merge(results)
	stats.FilesDiscovered = len(files)
	stats.Duration = time.Since(start)

	e.progress.OnComplete(stats)
	return doc, stats, nil
}

// process handles files in parallel. Each worker writes only its own slot,
// so the result order is the discovery order regardless of completion order.
func (e *Extractor) process(ctx context.Context, files []SourceFile) ([]fileResult, error) {
	e.progress.OnFileProcessingStart(len(files))

	workers := e.config.Workers
	if workers < 1 {
		workers = 1
	}

	results := make([]fileResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, f := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = e.processFile(f)
			if results[i].err != nil {
				e.progress.OnFileSkipped(f.RelPath, results[i].err)
			} else {
				e.progress.OnFileProcessed(f.RelPath)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("extraction cancelled: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("extraction cancelled: %w", err)
	}

	return results, nil
}

// topIncludes is how many of the most included targets Stats reports.
const topIncludes = 5

// merge reduces per-file results into the aggregate tables, assigning unit
// ids in discovery order to the files that were processed successfully.
func (e *Extractor) merge(results []fileResult) (*pir.Document, *Stats) {
	stats := &Stats{}
	doc := &pir.Document{
		Meta: pir.Meta{
			Name:      filepath.Base(e.rootDir),
			Root:      e.rootDir,
			Profile:   e.config.Profile,
			Languages: pir.DefaultLanguages,
		},
		EmitBuild: e.config.EmitBuildFlags,
	}

	symbols := pir.NewSymbolTable()
	var includes []pir.IncludeEdge

	for _, r := range results {
		if r.err != nil {
			log.Printf("Warning: skipping %s: %v", r.file.RelPath, r.err)
			stats.FilesSkipped++
			continue
		}
		stats.FilesProcessed++
		if r.cached {
			stats.CacheHits++
		}

		id := pir.UnitID(len(doc.Units))
		doc.Units = append(doc.Units, pir.Unit{
			ID:      id,
			Path:    r.file.RelPath,
			AbsPath: r.file.AbsPath,
			Kind:    r.kind,
			Type:    pir.TypeTag(r.file.RelPath),
			Bucket:  r.bucket,
		})

		a := r.analysis
		if r.kind.IsCFamily() {
			for _, target := range a.includes {
				includes = append(includes, pir.IncludeEdge{UnitID: id, Target: target})
			}
			for _, name := range a.functions {
				symbols.Add(name, id, pir.RoleFunction)
			}
		}

		if a.layout != nil {
			doc.Layouts = append(doc.Layouts, pir.Layout{
				UnitID:   id,
				Entry:    a.layout.Entry,
				Base:     a.layout.Base,
				Sections: a.layout.Sections,
				Symbols:  a.layout.Symbols,
			})
			for _, name := range a.layout.Symbols {
				symbols.Add(name, id, pir.RoleLinker)
			}
			if a.layout.Entry != nil {
				symbols.Add(*a.layout.Entry, id, pir.RoleLinker)
			}
		}

		for _, v := range a.buildVars {
			doc.BuildFlags = append(doc.BuildFlags, pir.BuildFlag{UnitID: id, Name: v.Name, Value: v.Value})
		}

		if a.body != "" {
			doc.Bodies = append(doc.Bodies, pir.Body{UnitID: id, Text: a.body})
			stats.RawBytes += int64(r.rawBytes)
			stats.NormalizedBytes += int64(len(a.body))
		}
	}

	graphStart := time.Now()
	graph := pir.NewDependencyGraph(doc.Units)
	for _, edge := range includes {
		graph.Add(edge)
	}
	doc.Edges = graph.Edges()
	if nodes, edges, err := graph.Counts(); err == nil {
		stats.GraphNodes, stats.GraphEdges = nodes, edges
	}
	if top, err := graph.TopTargets(topIncludes); err == nil {
		stats.TopIncludes = top
	}
	e.progress.OnGraphBuildingComplete(stats.GraphNodes, stats.GraphEdges, time.Since(graphStart))

	doc.Symbols = symbols.Sorted()

	stats.Units = len(doc.Units)
	stats.Edges = len(doc.Edges)
	stats.Symbols = len(doc.Symbols)
	stats.Layouts = len(doc.Layouts)
	stats.Bodies = len(doc.Bodies)
	return doc, stats
}
