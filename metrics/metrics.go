package metrics

import (
	"fmt"
	"io"
	"os"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"

	"github.com/surfbatch/surfbatch/batch"
)

// Metric names written by Write.
const (
	// Number of files submitted to the run.
	MetricFilesTotal = "surfbatch_files_total"

	// Number of files whose task completed.
	MetricFilesProcessed = "surfbatch_files_processed_total"

	// Number of files whose task failed.
	MetricFileErrors = "surfbatch_file_errors_total"

	// Wall-clock duration of the dispatch phase.
	MetricRunDuration = "surfbatch_run_duration_seconds"
)

// Write encodes stats as Prometheus text exposition on w. Every sample
// carries a run_id label identifying the execution.
func Write(w io.Writer, stats batch.Stats) error {
	families := []*dto.MetricFamily{
		family(MetricFilesTotal, "Number of files submitted to the batch run.",
			dto.MetricType_GAUGE, float64(stats.TotalFiles), stats),
		family(MetricFilesProcessed, "Number of files processed successfully.",
			dto.MetricType_COUNTER, float64(stats.FilesProcessed), stats),
		family(MetricFileErrors, "Number of files whose task failed.",
			dto.MetricType_COUNTER, float64(stats.FileErrors), stats),
		family(MetricRunDuration, "Wall-clock duration of the dispatch phase in seconds.",
			dto.MetricType_GAUGE, stats.RunDuration.Seconds(), stats),
	}

	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("metrics: encode %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

// Save writes the metrics file at path, overwriting any existing file.
func Save(path string, stats batch.Stats) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("metrics: create %s: %w", path, err)
	}
	if err := Write(f, stats); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func family(name, help string, mt dto.MetricType, value float64, stats batch.Stats) *dto.MetricFamily {
	labels := []*dto.LabelPair{{
		Name:  ptr("run_id"),
		Value: ptr(stats.RunID.String()),
	}}

	m := &dto.Metric{Label: labels}
	switch mt {
	case dto.MetricType_COUNTER:
		m.Counter = &dto.Counter{Value: ptr(value)}
	default:
		m.Gauge = &dto.Gauge{Value: ptr(value)}
	}

	return &dto.MetricFamily{
		Name:   ptr(name),
		Help:   ptr(help),
		Type:   ptr(mt),
		Metric: []*dto.Metric{m},
	}
}

func ptr[T any](v T) *T { return &v }
