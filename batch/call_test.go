package batch

import (
	"errors"
	"testing"

	"github.com/surfbatch/surfbatch/surface"
)

func loadTestSurface(t *testing.T, reg *surface.Registry, content string) surface.Surface {
	t.Helper()
	path := writeTestFile(t, t.TempDir(), "probe.ext", content)
	s, err := newTestLoader(reg).Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return s
}

func TestNewOperation_ForcesInplaceFlag(t *testing.T) {
	args := surface.NewArgs("lowpass", 10.0)
	op := NewOperation("filter", args)

	if v, ok := op.Args.Keyword[inplaceKeyword]; !ok || v != true {
		t.Errorf("expected inplace=true in keyword args, got %v", op.Args.Keyword)
	}
	// The caller's Args value must stay untouched.
	if args.Keyword != nil {
		t.Errorf("original args modified: %v", args.Keyword)
	}
}

func TestNewOperation_OverridesCallerInplace(t *testing.T) {
	args := surface.NewArgs().WithKeyword(inplaceKeyword, false)
	op := NewOperation("level", args)

	if v := op.Args.Keyword[inplaceKeyword]; v != true {
		t.Errorf("expected inplace forced true, got %v", v)
	}
}

func TestParameter_ScalarResultKey(t *testing.T) {
	reg := newTestRegistry()
	s := loadTestSurface(t, reg, "1 2 3")

	results, err := Param("mean").calculateFrom(s, reg)
	if err != nil {
		t.Fatalf("calculateFrom: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %v", results)
	}
	if results["mean"] != 2 {
		t.Errorf("mean: got %v, want 2", results["mean"])
	}
}

func TestParameter_LabeledResultKeys(t *testing.T) {
	reg := newTestRegistry()
	s := loadTestSurface(t, reg, "4 1 3")

	results, err := Param("minmax").calculateFrom(s, reg)
	if err != nil {
		t.Fatalf("calculateFrom: %v", err)
	}
	if results["minmax_min"] != 1 {
		t.Errorf("minmax_min: got %v, want 1", results["minmax_min"])
	}
	if results["minmax_max"] != 4 {
		t.Errorf("minmax_max: got %v, want 4", results["minmax_max"])
	}
	if len(results) != 2 {
		t.Errorf("expected exactly 2 results, got %v", results)
	}
}

func TestParameter_MultiValueWithoutLabels_ConfigError(t *testing.T) {
	reg := newTestRegistry()
	s := loadTestSurface(t, reg, "1")

	_, err := Param("broken_multi").calculateFrom(s, reg)
	var configErr *ConfigError
	if !errors.As(err, &configErr) {
		t.Fatalf("expected *ConfigError, got %v", err)
	}
}

func TestParameter_LabelCountMismatch_ConfigError(t *testing.T) {
	reg := newTestRegistry()
	s := loadTestSurface(t, reg, "1")

	_, err := Param("short_multi").calculateFrom(s, reg)
	var configErr *ConfigError
	if !errors.As(err, &configErr) {
		t.Fatalf("expected *ConfigError, got %v", err)
	}
}

func TestParameter_ResultColumns(t *testing.T) {
	reg := newTestRegistry()

	cols := Param("mean").resultColumns(reg)
	if len(cols) != 1 || cols[0] != "mean" {
		t.Errorf("scalar columns: got %v", cols)
	}

	cols = Param("minmax").resultColumns(reg)
	if len(cols) != 2 || cols[0] != "minmax_min" || cols[1] != "minmax_max" {
		t.Errorf("labeled columns: got %v", cols)
	}
}
