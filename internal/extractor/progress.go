package extractor

import "time"

// ProgressReporter provides callbacks for reporting extraction progress.
// OnFileProcessed and OnFileSkipped may be called from several goroutines.
type ProgressReporter interface {
	// OnDiscoveryStart is called when file discovery begins.
	OnDiscoveryStart()

	// OnDiscoveryComplete is called when file discovery finishes.
	OnDiscoveryComplete(files int)

	// OnFileProcessingStart is called before processing files.
	OnFileProcessingStart(totalFiles int)

	// OnFileProcessed is called after each file is processed.
	OnFileProcessed(fileName string)

	// OnFileSkipped is called for each file that could not be processed.
	OnFileSkipped(fileName string, err error)

	// OnGraphBuildingComplete is called after include edges are merged.
	OnGraphBuildingComplete(nodeCount, edgeCount int, duration time.Duration)

	// OnComplete is called when extraction completes successfully.
	OnComplete(stats *Stats)
}

// NoOpProgressReporter is a progress reporter that does nothing.
type NoOpProgressReporter struct{}

func (n *NoOpProgressReporter) OnDiscoveryStart()                        {}
func (n *NoOpProgressReporter) OnDiscoveryComplete(files int)            {}
func (n *NoOpProgressReporter) OnFileProcessingStart(totalFiles int)     {}
func (n *NoOpProgressReporter) OnFileProcessed(fileName string)          {}
func (n *NoOpProgressReporter) OnFileSkipped(fileName string, err error) {}
func (n *NoOpProgressReporter) OnComplete(stats *Stats)                  {}
func (n *NoOpProgressReporter) OnGraphBuildingComplete(nodeCount, edgeCount int, duration time.Duration) {
}
