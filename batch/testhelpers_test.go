package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/surfbatch/surfbatch/surface"
)

// heightData is the fake measurement data object used by the internal
// tests: a flat list of height values parsed from the file contents.
type heightData struct {
	values []float64
}

func argFloat(v any) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case int:
		return float64(x)
	default:
		panic(fmt.Sprintf("unexpected argument type %T", v))
	}
}

// newTestRegistry builds a capability table with order-sensitive operations
// and parameters covering the scalar, labeled, and misconfigured cases.
func newTestRegistry() *surface.Registry {
	reg := surface.NewRegistry()

	reg.RegisterOperation("add", func(data any, args surface.Args) error {
		d := data.(*heightData)
		n := argFloat(args.Positional[0])
		for i := range d.values {
			d.values[i] += n
		}
		return nil
	})
	reg.RegisterOperation("scale", func(data any, args surface.Args) error {
		d := data.(*heightData)
		n := argFloat(args.Positional[0])
		for i := range d.values {
			d.values[i] *= n
		}
		return nil
	})
	reg.RegisterOperation("fail_op", func(any, surface.Args) error {
		return fmt.Errorf("operation failed")
	})

	reg.RegisterParameter("mean", nil, func(data any, _ surface.Args) ([]float64, error) {
		d := data.(*heightData)
		var sum float64
		for _, v := range d.values {
			sum += v
		}
		return []float64{sum / float64(len(d.values))}, nil
	})
	reg.RegisterParameter("minmax", []string{"min", "max"}, func(data any, _ surface.Args) ([]float64, error) {
		d := data.(*heightData)
		lo, hi := d.values[0], d.values[0]
		for _, v := range d.values[1:] {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
		return []float64{lo, hi}, nil
	})
	// Declared multi-valued but no labels registered.
	reg.RegisterParameter("broken_multi", nil, func(any, surface.Args) ([]float64, error) {
		return []float64{1, 2}, nil
	})
	// Three labels, two values.
	reg.RegisterParameter("short_multi", []string{"a", "b", "c"}, func(any, surface.Args) ([]float64, error) {
		return []float64{1, 2}, nil
	})

	return reg
}

// newTestLoader parses whitespace-separated floats from the file contents.
func newTestLoader(reg *surface.Registry) surface.Loader {
	return reg.Loader(func(path string) (any, error) {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		fields := strings.Fields(string(raw))
		if len(fields) == 0 {
			return nil, fmt.Errorf("empty measurement file")
		}
		values := make([]float64, len(fields))
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("malformed value %q", f)
			}
			values[i] = v
		}
		return &heightData{values: values}, nil
	})
}

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// newRunnableBatch returns a Batch with collaborators filled in so internal
// tests can call dispatch directly.
func newRunnableBatch(files []string) (*Batch, *surface.Registry) {
	reg := newTestRegistry()
	b := New(files, newTestLoader(reg), reg)
	b.logger = NoOpLogger{}
	b.stats = NoOpStatsCollector{}
	b.progress = NoOpProgress{}
	return b, reg
}

// countingProgress records the calls it receives.
type countingProgress struct {
	started  int
	total    int
	advanced int
	finished int
}

func (p *countingProgress) Start(total int) {
	p.started++
	p.total = total
}

func (p *countingProgress) Advance() { p.advanced++ }

func (p *countingProgress) Finish() { p.finished++ }
