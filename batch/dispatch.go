package batch

import (
	"context"
	"sync"
)

// taskResult pairs one file's record with its error so results can be
// collected in completion order from a single channel.
type taskResult struct {
	record Record
	err    error
}

// dispatch fans the per-file task out over the file list, in parallel or
// sequentially, and collects the records. The registered operation and
// parameter lists are copied first; workers only ever read them.
func (b *Batch) dispatch(ctx context.Context, opts *Options) ([]Record, error) {
	operations := append([]Operation(nil), b.operations...)
	parameters := append([]Parameter(nil), b.parameters...)
	files := append([]string(nil), b.filepaths...)

	b.progress.Start(len(files))
	defer b.progress.Finish()

	if opts.Sequential {
		return b.runSequential(ctx, files, operations, parameters, opts)
	}
	return b.runParallel(ctx, files, operations, parameters, opts)
}

// runSequential executes every task on the calling goroutine, in file-list
// order.
func (b *Batch) runSequential(ctx context.Context, files []string,
	operations []Operation, parameters []Parameter, opts *Options) ([]Record, error) {

	records := make([]Record, 0, len(files))
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := runTask(b.loader, b.catalog, path, operations, parameters)
		b.progress.Advance()
		if err != nil {
			b.stats.RecordFileError()
			if opts.SkipFailures {
				b.logger.Warn("skipping failed file: %v", err)
				continue
			}
			b.logger.Error("aborting batch: %v", err)
			return nil, err
		}
		b.stats.RecordFileProcessed()
		records = append(records, record)
	}
	return records, nil
}

// runParallel executes tasks across a worker pool, one task per file, and
// collects results in completion order. Under the fail-fast policy the
// first error cancels the pool; in-flight tasks drain, and no records are
// returned.
func (b *Batch) runParallel(ctx context.Context, files []string,
	operations []Operation, parameters []Parameter, opts *Options) ([]Record, error) {

	workers := opts.Workers
	if workers > len(files) {
		workers = len(files)
	}
	if workers < 1 {
		workers = 1
	}
	b.logger.Debug("dispatching %d file(s) across %d worker(s)", len(files), workers)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan string)
	results := make(chan taskResult, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				record, err := runTask(b.loader, b.catalog, path, operations, parameters)
				select {
				case results <- taskResult{record: record, err: err}:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, path := range files {
			select {
			case jobs <- path:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var firstErr error
	records := make([]Record, 0, len(files))
	for res := range results {
		b.progress.Advance()
		if res.err != nil {
			b.stats.RecordFileError()
			if opts.SkipFailures {
				b.logger.Warn("skipping failed file: %v", res.err)
				continue
			}
			if firstErr == nil {
				firstErr = res.err
				b.logger.Error("aborting batch: %v", res.err)
				cancel()
			}
			continue
		}
		b.stats.RecordFileProcessed()
		if firstErr == nil {
			records = append(records, res.record)
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return records, nil
}
