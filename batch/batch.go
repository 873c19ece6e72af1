package batch

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/surfbatch/surfbatch/surface"
	"github.com/surfbatch/surfbatch/table"
)

// Batch is the builder-style front end of the harness. It holds the file
// list, the pending operation and parameter lists, and optional external
// metadata; registration methods append deferred calls and return the Batch
// for chaining. Nothing touches a file until Execute.
//
// A Batch is not safe for concurrent registration. Execute may only run
// once at a time; calling it concurrently panics, matching the misuse
// behavior of the With* setters.
type Batch struct {
	filepaths  []string
	loader     surface.Loader
	catalog    surface.Catalog
	operations []Operation
	parameters []Parameter
	additional *table.Table
	logger     Logger
	stats      StatsCollector
	progress   Progress

	// deferred holds registration errors (unknown parameter identifiers)
	// surfaced by Execute before any file I/O.
	deferred []error

	mu      sync.Mutex
	running bool
}

// New creates a Batch over the given files. The file list is fixed at
// construction; one task is produced per entry. loader and catalog are the
// external data-object collaborators.
func New(filepaths []string, loader surface.Loader, catalog surface.Catalog) *Batch {
	return &Batch{
		filepaths: append([]string(nil), filepaths...),
		loader:    loader,
		catalog:   catalog,
	}
}

// WithLogger sets a custom logger. If not set, no logging occurs.
//
// Panics if called while Execute is running.
func (b *Batch) WithLogger(logger Logger) *Batch {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.running {
		panic("batch: WithLogger cannot be called while Execute is running")
	}
	b.logger = logger
	return b
}

// WithStats sets a custom stats collector. If not set, no statistics are
// collected.
//
// Panics if called while Execute is running.
func (b *Batch) WithStats(stats StatsCollector) *Batch {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.running {
		panic("batch: WithStats cannot be called while Execute is running")
	}
	b.stats = stats
	return b
}

// WithProgress sets a custom progress reporter. If not set, no progress is
// reported.
//
// Panics if called while Execute is running.
func (b *Batch) WithProgress(progress Progress) *Batch {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.running {
		panic("batch: WithProgress cannot be called while Execute is running")
	}
	b.progress = progress
	return b
}

// WithMetadata attaches an external metadata table to be inner-joined with
// the results on the "file" column. The table must contain that column;
// otherwise a *UsageError is returned immediately.
func (b *Batch) WithMetadata(t *table.Table) error {
	if !t.HasColumn(table.MetadataKeyColumn) {
		return &UsageError{Msg: "metadata is missing the required column \"file\""}
	}
	b.additional = t
	return nil
}

// WithMetadataFile reads a CSV metadata file and attaches it like
// WithMetadata.
func (b *Batch) WithMetadataFile(path string) error {
	t, err := table.ReadCSV(path)
	if err != nil {
		return err
	}
	return b.WithMetadata(t)
}

func (b *Batch) registerOperation(identifier string, args surface.Args) *Batch {
	b.operations = append(b.operations, NewOperation(identifier, args))
	return b
}

// Zero registers the zero operation for later execution.
func (b *Batch) Zero() *Batch {
	return b.registerOperation("zero", surface.NewArgs())
}

// Center registers the center operation for later execution.
func (b *Batch) Center() *Batch {
	return b.registerOperation("center", surface.NewArgs())
}

// Level registers the level operation for later execution.
func (b *Batch) Level() *Batch {
	return b.registerOperation("level", surface.NewArgs())
}

// Threshold registers the threshold operation for later execution.
func (b *Batch) Threshold(threshold float64) *Batch {
	return b.registerOperation("threshold",
		surface.NewArgs().WithKeyword("threshold", threshold))
}

// RemoveOutliers registers the remove_outliers operation for later
// execution. method selects the detection statistic, typically "mean" or
// "median".
func (b *Batch) RemoveOutliers(n float64, method string) *Batch {
	return b.registerOperation("remove_outliers",
		surface.NewArgs().WithKeyword("n", n).WithKeyword("method", method))
}

// FillNonmeasured registers the fill_nonmeasured operation for later
// execution. method selects the interpolation, typically "linear",
// "nearest", or "cubic".
func (b *Batch) FillNonmeasured(method string) *Batch {
	return b.registerOperation("fill_nonmeasured",
		surface.NewArgs().WithKeyword("method", method))
}

// Filter registers the filter operation for later execution. filterType is
// "highpass", "lowpass", or "bandpass"; cutoff2 is only used for bandpass
// filtering and names the lower cutoff frequency.
func (b *Batch) Filter(filterType string, cutoff float64, cutoff2 ...float64) *Batch {
	args := surface.NewArgs(filterType, cutoff)
	if len(cutoff2) > 0 {
		args = args.WithKeyword("cutoff2", cutoff2[0])
	}
	return b.registerOperation("filter", args)
}

// Rotate registers the rotate operation for later execution. angle is in
// degrees.
func (b *Batch) Rotate(angle float64) *Batch {
	return b.registerOperation("rotate", surface.NewArgs(angle))
}

// Align registers the align operation for later execution. axis is "x" or
// "y".
func (b *Batch) Align(axis string) *Batch {
	return b.registerOperation("align",
		surface.NewArgs().WithKeyword("axis", axis))
}

// Zoom registers the zoom operation for later execution.
func (b *Batch) Zoom(factor float64) *Batch {
	return b.registerOperation("zoom", surface.NewArgs(factor))
}

// Measure registers any published measurement parameter by identifier, with
// the given positional arguments. This is the generic counterpart to the
// named operation methods: every identifier in the catalog can be
// registered this way without a dedicated method.
//
// An identifier the catalog does not publish is recorded as a
// *surface.UnknownCapabilityError and surfaced by Execute before any file
// is touched, the same error type a Surface returns for a genuinely
// missing capability. Measure still returns the Batch so chains stay
// intact.
func (b *Batch) Measure(identifier string, positional ...any) *Batch {
	if !b.catalogHas(identifier) {
		b.deferred = append(b.deferred, &surface.UnknownCapabilityError{Name: identifier})
		return b
	}
	b.parameters = append(b.parameters, Param(identifier, positional...))
	return b
}

// MeasureWith registers a fully specified Parameter as-is, enabling keyword
// arguments for individually tuned parameters:
//
//	vmc := batch.Param("Vmc")
//	vmc.Args = vmc.Args.WithKeyword("p", 5.0).WithKeyword("q", 95.0)
//	b.MeasureWith(vmc)
func (b *Batch) MeasureWith(p Parameter) *Batch {
	b.parameters = append(b.parameters, p)
	return b
}

// RoughnessParameters registers measurement parameters in bulk. With no
// arguments every parameter published by the catalog is registered exactly
// once with default arguments, in catalog order. Otherwise each entry is
// registered as given: use Param("Sa") for a bare identifier with default
// arguments, or a fully specified Parameter for custom ones.
func (b *Batch) RoughnessParameters(params ...Parameter) *Batch {
	if len(params) == 0 {
		for _, name := range b.catalog.Parameters() {
			b.parameters = append(b.parameters, Param(name))
		}
		return b
	}
	b.parameters = append(b.parameters, params...)
	return b
}

func (b *Batch) catalogHas(identifier string) bool {
	for _, name := range b.catalog.Parameters() {
		if name == identifier {
			return true
		}
	}
	return false
}

// Execute runs all registered operations and parameters against every file
// and returns the assembled table. At least one operation or parameter must
// be registered, or a *UsageError is returned before any file I/O; deferred
// registration errors from Measure are surfaced here the same way.
//
// Dispatch is parallel by default; see Options for sequential mode, worker
// count, failure policy, and CSV export. With the default fail-fast policy
// the first failing file aborts the run and no table is returned.
//
// Row order matches completion order, so it is not guaranteed to match the
// input file order unless Options.Sequential is set.
func (b *Batch) Execute(ctx context.Context, opts *Options) (*table.Table, error) {
	b.mu.Lock()
	if b.running {
		b.mu.Unlock()
		panic("batch: concurrent calls to Execute are not allowed")
	}
	b.running = true
	if b.logger == nil {
		b.logger = NoOpLogger{}
	}
	if b.stats == nil {
		b.stats = NoOpStatsCollector{}
	}
	if b.progress == nil {
		b.progress = NoOpProgress{}
	}
	b.mu.Unlock()
	defer func() {
		b.mu.Lock()
		b.running = false
		b.mu.Unlock()
	}()

	opts = opts.WithDefaults()

	if len(b.deferred) > 0 {
		return nil, b.deferred[0]
	}
	if len(b.operations) == 0 && len(b.parameters) == 0 {
		return nil, &UsageError{Msg: "no operations or parameters registered"}
	}

	runID := uuid.New()
	b.logger.Info("starting batch run %s: %d file(s), %d operation(s), %d parameter(s)",
		runID, len(b.filepaths), len(b.operations), len(b.parameters))
	b.stats.RecordRunStart(runID, len(b.filepaths))

	start := time.Now()
	records, err := b.dispatch(ctx, opts)
	b.stats.RecordRunComplete(time.Since(start))
	if err != nil {
		return nil, err
	}

	result := b.assemble(records)
	if b.additional != nil {
		result, err = table.Merge(b.additional, result, table.MetadataKeyColumn)
		if err != nil {
			return nil, err
		}
	}

	if opts.SaveTo != "" {
		if err := result.SaveCSV(opts.SaveTo); err != nil {
			return nil, err
		}
		b.logger.Info("saved results to %s", opts.SaveTo)
	}

	b.logger.Info("batch run %s complete: %d row(s)", runID, result.Len())
	return result, nil
}

// assemble builds the result table. Columns are pre-seeded in registration
// order (file first, then each parameter's result columns) so the layout
// is stable even though records arrive in completion order.
func (b *Batch) assemble(records []Record) *table.Table {
	cols := []string{FileColumn}
	seen := map[string]struct{}{FileColumn: {}}
	for _, p := range b.parameters {
		for _, c := range p.resultColumns(b.catalog) {
			if _, ok := seen[c]; !ok {
				seen[c] = struct{}{}
				cols = append(cols, c)
			}
		}
	}
	t := table.New(cols...)
	for _, record := range records {
		t.Append(table.Row(record))
	}
	return t
}
