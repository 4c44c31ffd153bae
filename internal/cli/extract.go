package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/project-pir/internal/config"
	"github.com/mvp-joe/project-pir/internal/extractor"
	"github.com/mvp-joe/project-pir/internal/watcher"
)

var (
	outputFlag     string
	quietFlag      bool
	watchFlag      bool
	workersFlag    int
	functionsFlag  string
	buildFlagsFlag bool
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract <root>",
	Short: "Extract a PIR artifact from a source tree",
	Long: `Extract walks a source tree and writes one PIR text artifact.

The extractor:
  - Classifies every C, header, assembly, linker script and Makefile
  - Records #include edges and declared function names
  - Parses linker scripts for ENTRY, base address and sections
  - Minifies source bodies (comments stripped, whitespace compressed)

Examples:
  # Extract the tree under ./os into pir.txt
  pir extract ./os

  # Write to a different file
  pir extract ./os -o build/os.pir

  # Write a zstd-compressed artifact
  pir extract ./os -o pir.txt.zst

  # Regenerate whenever a source file changes
  pir extract ./os --watch
`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output artifact path (default from config, pir.txt)")
	extractCmd.Flags().BoolVarP(&quietFlag, "quiet", "q", false, "Disable progress bars and non-error output")
	extractCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Watch for file changes and regenerate the artifact")
	extractCmd.Flags().IntVar(&workersFlag, "workers", 0, "Number of parallel file workers (default from config)")
	extractCmd.Flags().StringVar(&functionsFlag, "functions", "", "Function extraction mode: regex or treesitter")
	extractCmd.Flags().BoolVar(&buildFlagsFlag, "build-flags", false, "Emit the BUILD section with Makefile CFLAGS/LDFLAGS")
}

// extractOptions carries the resolved command line for one invocation.
type extractOptions struct {
	rootDir    string
	configFile string
	quiet      bool
	verbose    bool
	watch      bool

	// Overrides applied on top of the loaded configuration when set.
	output     string
	workers    int
	functions  string
	buildFlags *bool
}

func runExtract(cmd *cobra.Command, args []string) error {
	// Ctrl+C cancels the run; no artifact is written for a cancelled run.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := extractOptions{
		rootDir:    args[0],
		configFile: cfgFile,
		quiet:      quietFlag,
		verbose:    verbose,
		watch:      watchFlag,
		output:     outputFlag,
		workers:    workersFlag,
		functions:  functionsFlag,
	}
	if cmd.Flags().Changed("build-flags") {
		opts.buildFlags = &buildFlagsFlag
	}

	return extract(ctx, opts, cmd.OutOrStdout())
}

// extract runs one extraction, and then keeps regenerating in watch mode.
func extract(ctx context.Context, opts extractOptions, out io.Writer) error {
	// Invalid root is reported before anything is loaded or written.
	if err := extractor.CheckRoot(opts.rootDir); err != nil {
		return err
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	outputPath, err := filepath.Abs(cfg.Output.Path)
	if err != nil {
		return fmt.Errorf("failed to resolve output path: %w", err)
	}

	progress := NewCLIProgressReporter(out, opts.quiet, opts.verbose)
	ext, err := extractor.New(cfg.ToExtractorConfig(opts.rootDir), progress)
	if err != nil {
		return fmt.Errorf("failed to create extractor: %w", err)
	}
	defer ext.Close()

	runner := &extractRunner{
		extractor: ext,
		output:    outputPath,
		out:       out,
		quiet:     opts.quiet,
	}

	if err := runner.run(ctx); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("extraction cancelled")
		}
		return err
	}

	if !opts.watch {
		return nil
	}

	fw, err := watcher.NewFileWatcher(ext.RootDir(), ext.Discovery())
	if err != nil {
		return fmt.Errorf("failed to start file watcher: %w", err)
	}
	if !opts.quiet {
		log.Printf("Watching %s for changes (Ctrl+C to stop)...", ext.RootDir())
	}

	err = watcher.NewWatchCoordinator(fw, runner).Start(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("watch mode failed: %w", err)
	}
	if !opts.quiet {
		log.Println("Watch mode stopped")
	}
	return nil
}

// loadConfig loads the file/env configuration and applies flag overrides.
func loadConfig(opts extractOptions) (*config.Config, error) {
	var loader config.Loader
	if opts.configFile != "" {
		loader = config.NewFileLoader(opts.configFile)
	} else {
		loader = config.NewLoader(opts.rootDir)
	}

	cfg, err := loader.Load()
	if err != nil {
		return nil, err
	}

	if opts.output != "" {
		cfg.Output.Path = opts.output
	}
	if opts.workers != 0 {
		cfg.Processing.Workers = opts.workers
	}
	if opts.functions != "" {
		cfg.Parser.Functions = opts.functions
	}
	if opts.buildFlags != nil {
		cfg.Output.BuildFlags = *opts.buildFlags
	}

	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// extractRunner runs the pipeline and writes the artifact. It is the
// watch coordinator's regeneration target.
type extractRunner struct {
	extractor *extractor.Extractor
	output    string
	out       io.Writer
	quiet     bool
}

func (r *extractRunner) run(ctx context.Context) error {
	doc, _, err := r.extractor.Run(ctx)
	if err != nil {
		return err
	}

	if err := extractor.WriteDocument(r.output, doc); err != nil {
		return fmt.Errorf("failed to write %s: %w", r.output, err)
	}

	if !r.quiet {
		fmt.Fprintf(r.out, "✓ Wrote %s\n", r.output)
	}
	return nil
}

// Regenerate re-extracts the whole tree. Unchanged files hit the content cache.
func (r *extractRunner) Regenerate(ctx context.Context, changed []string) error {
	return r.run(ctx)
}
