package cli

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"github.com/mvp-joe/project-pir/internal/extractor"
)

// CLIProgressReporter implements extractor.ProgressReporter with a progress bar.
// File callbacks arrive from several workers, so bar access is serialized.
// The bar is drawn only when out is a terminal.
type CLIProgressReporter struct {
	quiet   bool
	verbose bool
	bars    bool
	out     io.Writer

	mu      sync.Mutex
	fileBar *progressbar.ProgressBar
	skipped []string
}

// NewCLIProgressReporter creates a new CLI progress reporter writing to out.
func NewCLIProgressReporter(out io.Writer, quiet, verbose bool) *CLIProgressReporter {
	return &CLIProgressReporter{
		quiet:   quiet,
		verbose: verbose,
		bars:    !quiet && isTerminal(out),
		out:     out,
	}
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (c *CLIProgressReporter) OnDiscoveryStart() {
	if c.quiet || !c.verbose {
		return
	}
	log.Println("Discovering files...")
}

func (c *CLIProgressReporter) OnDiscoveryComplete(files int) {
	if c.quiet || !c.verbose {
		return
	}
	log.Printf("Found %s source files\n", formatNumber(files))
}

func (c *CLIProgressReporter) OnFileProcessingStart(totalFiles int) {
	if c.quiet {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.skipped = nil
	if !c.bars {
		return
	}
	c.fileBar = progressbar.NewOptions(totalFiles,
		progressbar.OptionSetWriter(c.out),
		progressbar.OptionSetDescription("Extracting"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(c.out)
		}),
	)
}

func (c *CLIProgressReporter) OnFileProcessed(fileName string) {
	if c.quiet {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fileBar != nil {
		c.fileBar.Add(1)
	}
}

func (c *CLIProgressReporter) OnFileSkipped(fileName string, err error) {
	if c.quiet {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.skipped = append(c.skipped, fileName)
	if c.fileBar != nil {
		c.fileBar.Add(1)
	}
}

func (c *CLIProgressReporter) OnGraphBuildingComplete(nodeCount, edgeCount int, duration time.Duration) {
	if c.quiet {
		return
	}
	c.mu.Lock()
	if c.fileBar != nil {
		c.fileBar.Finish()
		c.fileBar = nil
	}
	c.mu.Unlock()

	if c.verbose {
		fmt.Fprintf(c.out, "✓ Include graph: %s nodes, %s edges (took %.3fs)\n",
			formatNumber(nodeCount), formatNumber(edgeCount), duration.Seconds())
	}
}

func (c *CLIProgressReporter) OnComplete(stats *extractor.Stats) {
	if c.quiet {
		return
	}

	fmt.Fprintf(c.out, "✓ Extraction complete: %s units in %.1fs\n",
		formatNumber(stats.Units), stats.Duration.Seconds())
	fmt.Fprintf(c.out, "  Files:   %s processed, %s skipped\n",
		formatNumber(stats.FilesProcessed), formatNumber(stats.FilesSkipped))
	fmt.Fprintf(c.out, "  Tables:  %s edges, %s symbols, %s layouts, %s bodies\n",
		formatNumber(stats.Edges), formatNumber(stats.Symbols),
		formatNumber(stats.Layouts), formatNumber(stats.Bodies))
	fmt.Fprintf(c.out, "  Size:    %s → %s bytes (%.1f%% reduction)\n",
		formatNumber(int(stats.RawBytes)), formatNumber(int(stats.NormalizedBytes)), stats.Reduction())
	if stats.CacheHits > 0 {
		fmt.Fprintf(c.out, "  Cache:   %s hits\n", formatNumber(stats.CacheHits))
	}

	if c.verbose {
		for _, tc := range stats.TopIncludes {
			fmt.Fprintf(c.out, "  Include: %s (%s units)\n", tc.Target, formatNumber(tc.Units))
		}
		c.mu.Lock()
		for _, name := range c.skipped {
			fmt.Fprintf(c.out, "  Skipped: %s\n", name)
		}
		c.mu.Unlock()
	}
}

// formatNumber formats an integer with thousands separators.
func formatNumber(n int) string {
	if n < 1000 && n > -1000 {
		return fmt.Sprintf("%d", n)
	}

	str := fmt.Sprintf("%d", n)
	sign := ""
	if str[0] == '-' {
		sign, str = "-", str[1:]
	}
	var result []byte
	for i := 0; i < len(str); i++ {
		if i > 0 && (len(str)-i)%3 == 0 {
			result = append(result, ',')
		}
		result = append(result, str[i])
	}
	return sign + string(result)
}
