package batch

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// StatsCollector defines the interface for collecting metrics about a batch
// run. The StatsCollector is optional; if not provided, no statistics are
// collected.
type StatsCollector interface {
	// RecordRunStart is called once per Execute, before any task runs.
	RecordRunStart(runID uuid.UUID, totalFiles int)

	// RecordFileProcessed is called for each file whose task completed.
	RecordFileProcessed()

	// RecordFileError is called for each file whose task failed.
	RecordFileError()

	// RecordRunComplete is called when dispatch finishes, successfully
	// or not.
	RecordRunComplete(duration time.Duration)

	// GetStats returns a snapshot of the current statistics.
	GetStats() Stats
}

// Stats holds aggregated statistics about a batch run.
type Stats struct {
	// RunID identifies the execution the counters belong to.
	RunID uuid.UUID

	// TotalFiles is the number of files submitted to the run.
	TotalFiles uint64

	// FilesProcessed is the number of files whose task completed.
	FilesProcessed uint64

	// FileErrors is the number of files whose task failed.
	FileErrors uint64

	// RunDuration is the wall-clock time of the dispatch phase.
	RunDuration time.Duration

	// StartTime is when the run started.
	StartTime time.Time
}

// NoOpStatsCollector discards all metrics. It is the default collector when
// none is specified.
type NoOpStatsCollector struct{}

// RecordRunStart implements the StatsCollector interface.
func (NoOpStatsCollector) RecordRunStart(uuid.UUID, int) {}

// RecordFileProcessed implements the StatsCollector interface.
func (NoOpStatsCollector) RecordFileProcessed() {}

// RecordFileError implements the StatsCollector interface.
func (NoOpStatsCollector) RecordFileError() {}

// RecordRunComplete implements the StatsCollector interface.
func (NoOpStatsCollector) RecordRunComplete(time.Duration) {}

// GetStats implements the StatsCollector interface.
func (NoOpStatsCollector) GetStats() Stats {
	return Stats{}
}

// BasicStatsCollector is a thread-safe in-memory StatsCollector.
type BasicStatsCollector struct {
	mu    sync.RWMutex
	stats Stats
}

// NewBasicStatsCollector returns an empty BasicStatsCollector.
func NewBasicStatsCollector() *BasicStatsCollector {
	return &BasicStatsCollector{}
}

// RecordRunStart implements the StatsCollector interface.
func (c *BasicStatsCollector) RecordRunStart(runID uuid.UUID, totalFiles int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats.RunID = runID
	c.stats.TotalFiles = uint64(totalFiles)
	c.stats.FilesProcessed = 0
	c.stats.FileErrors = 0
	c.stats.RunDuration = 0
	c.stats.StartTime = time.Now().UTC()
}

// RecordFileProcessed implements the StatsCollector interface.
func (c *BasicStatsCollector) RecordFileProcessed() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats.FilesProcessed++
}

// RecordFileError implements the StatsCollector interface.
func (c *BasicStatsCollector) RecordFileError() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats.FileErrors++
}

// RecordRunComplete implements the StatsCollector interface.
func (c *BasicStatsCollector) RecordRunComplete(duration time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats.RunDuration = duration
}

// GetStats implements the StatsCollector interface.
func (c *BasicStatsCollector) GetStats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}
