// Package batch contains the core batch-processing harness. The main type
// is Batch, which can be created using New. It records a deferred sequence
// of surface operations and parameter computations through a fluent builder,
// replays that sequence against every file in its list (in parallel by
// default), and assembles the per-file results into a table.
//
// Registration methods return the Batch itself, so pipelines read the same
// way they run:
//
//	b := batch.New(files, loader, catalog)
//	b.Level().Filter("lowpass", 10).Align("y").Measure("Sa").Measure("Sq")
//	result, err := b.Execute(ctx, nil)
//
// Operations are applied in registration order and compose: each one sees
// the cumulative effect of the operations before it. Parameters are
// evaluated after all operations, against the final state of the surface.
// Across files no ordering is guaranteed: results are collected as tasks
// complete, so rows appear in completion order unless Options.Sequential is
// set.
//
// The first failing file aborts the whole run by default; see
// Options.SkipFailures for the skip-and-report alternative.
package batch
