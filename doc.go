// Package surfbatch applies a deferred sequence of transformations and
// measurement computations to a collection of surface-topography files, in
// parallel, and assembles the numeric results into a single table.
//
// The core lives in the batch package: batch.Batch records intended surface
// method calls through a fluent builder without executing them, then replays
// the sequence against every file when Execute is called. The surface
// package defines the contract for the measurement data object that
// actually loads files and implements the operations; table holds the
// assembled results and handles the metadata merge; discover finds
// measurement files on disk; metrics exports run statistics.
//
// A minimal session:
//
//	files, _ := discover.Glob("scans", ".vk4")
//	b := surfbatch.New(files, loader, catalog)
//	b.Level().Filter("lowpass", 10).Align("y")
//	b.Measure("Sa").Measure("Sq")
//	result, err := b.Execute(ctx, &batch.Options{SaveTo: "results.csv"})
package surfbatch
