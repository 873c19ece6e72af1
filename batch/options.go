package batch

import "runtime"

// Options controls one call to Execute.
type Options struct {
	// Sequential runs every task on the calling goroutine in file-list
	// order instead of across the worker pool. Useful for determinism,
	// debugging, or environments where parallel dispatch is undesirable.
	Sequential bool

	// Workers is the parallel worker-pool size. If zero or negative, the
	// available CPU parallelism is used. Ignored when Sequential is set.
	Workers int

	// SkipFailures changes the failure policy from fail-fast to
	// skip-and-report: a failing file is logged and counted, its row is
	// omitted, and the run continues. Note that this changes the output
	// cardinality: the table then has one row per successful file, not
	// one per input file.
	SkipFailures bool

	// SaveTo, if non-empty, writes the assembled table to this CSV path,
	// overwriting any existing file.
	SaveTo string
}

// WithDefaults returns Options with default values filled in where not
// specified. A nil receiver yields all defaults.
func (o *Options) WithDefaults() *Options {
	if o == nil {
		o = &Options{}
	}
	out := *o
	if out.Workers <= 0 {
		out.Workers = runtime.GOMAXPROCS(0)
	}
	return &out
}
