package batch

import (
	"path/filepath"

	"github.com/surfbatch/surfbatch/surface"
)

// FileColumn is the result column that carries each file's name (including
// extension, without directory). It is present in every record and doubles
// as the metadata join key.
const FileColumn = "file"

// Record is the flat per-file result: one entry per scalar parameter result,
// one entry per labeled value of a multi-valued result, plus FileColumn.
type Record map[string]any

// runTask processes a single file: load the surface, replay every operation
// in registration order, evaluate every parameter against the final state,
// and collect the results into one Record.
//
// The operation and parameter slices are shared read-only across all
// concurrent invocations; runTask never mutates them or any other shared
// state, which is what makes it the unit of parallel dispatch. Failures are
// wrapped in *TaskError naming the file.
func runTask(loader surface.Loader, cat surface.Catalog, path string,
	operations []Operation, parameters []Parameter) (Record, error) {

	s, err := loader.Load(path)
	if err != nil {
		return nil, &TaskError{File: path, Err: err}
	}

	for _, op := range operations {
		if err := op.executeOn(s); err != nil {
			return nil, &TaskError{File: path, Err: err}
		}
	}

	record := Record{FileColumn: filepath.Base(path)}
	for _, p := range parameters {
		results, err := p.calculateFrom(s, cat)
		if err != nil {
			return nil, &TaskError{File: path, Err: err}
		}
		for k, v := range results {
			record[k] = v
		}
	}
	return record, nil
}
