package surfbatch

import (
	"github.com/surfbatch/surfbatch/batch"
	"github.com/surfbatch/surfbatch/surface"
)

// New creates a batch over the given measurement files. It is shorthand for
// batch.New.
func New(filepaths []string, loader surface.Loader, catalog surface.Catalog) *batch.Batch {
	return batch.New(filepaths, loader, catalog)
}
