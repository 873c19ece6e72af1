package batch

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/surfbatch/surfbatch/surface"
)

const testPipelineYAML = `
operations:
  - name: add
    args: [1.0]
  - name: scale
    args: [2.0]
parameters:
  - name: mean
  - name: minmax
    kwargs: {window: 3.0}
`

func TestLoadPipeline_ParsesCallsInFileOrder(t *testing.T) {
	path := writeTestFile(t, t.TempDir(), "pipeline.yml", testPipelineYAML)

	p, err := LoadPipeline(path)
	if err != nil {
		t.Fatalf("LoadPipeline: %v", err)
	}

	if len(p.Operations) != 2 {
		t.Fatalf("operations: got %d, want 2", len(p.Operations))
	}
	if p.Operations[0].Name != "add" || p.Operations[1].Name != "scale" {
		t.Errorf("operation order: got %q, %q", p.Operations[0].Name, p.Operations[1].Name)
	}
	if len(p.Operations[0].Args) != 1 || p.Operations[0].Args[0] != 1.0 {
		t.Errorf("add args: got %v", p.Operations[0].Args)
	}

	if len(p.Parameters) != 2 {
		t.Fatalf("parameters: got %d, want 2", len(p.Parameters))
	}
	if p.Parameters[1].Kwargs["window"] != 3.0 {
		t.Errorf("minmax kwargs: got %v", p.Parameters[1].Kwargs)
	}
}

func TestLoadPipeline_MissingNameIsAnError(t *testing.T) {
	path := writeTestFile(t, t.TempDir(), "pipeline.yml", `
operations:
  - args: [1.0]
`)

	_, err := LoadPipeline(path)
	if err == nil {
		t.Fatal("expected an error for a call without a name")
	}
	if !strings.Contains(err.Error(), "name is required") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadPipeline_EmptyPipelineIsAnError(t *testing.T) {
	path := writeTestFile(t, t.TempDir(), "pipeline.yml", "operations: []\nparameters: []\n")

	_, err := LoadPipeline(path)
	if err == nil {
		t.Fatal("expected an error for an empty pipeline")
	}
}

func TestLoadPipeline_MalformedYAMLIsAnError(t *testing.T) {
	path := writeTestFile(t, t.TempDir(), "pipeline.yml", "operations: [\n")

	_, err := LoadPipeline(path)
	if err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestApplyPipeline_RegistersCallsLikeTheBuilderMethods(t *testing.T) {
	path := writeTestFile(t, t.TempDir(), "pipeline.yml", testPipelineYAML)
	p, err := LoadPipeline(path)
	if err != nil {
		t.Fatalf("LoadPipeline: %v", err)
	}

	b, _ := newRunnableBatch(nil)
	b.ApplyPipeline(p)

	if len(b.operations) != 2 {
		t.Fatalf("operations registered: got %d, want 2", len(b.operations))
	}
	if b.operations[0].Identifier != "add" || b.operations[1].Identifier != "scale" {
		t.Errorf("operation order: got %q, %q",
			b.operations[0].Identifier, b.operations[1].Identifier)
	}
	for i, op := range b.operations {
		if op.Args.Keyword[inplaceKeyword] != true {
			t.Errorf("operations[%d]: inplace not forced: %v", i, op.Args.Keyword)
		}
	}

	if len(b.parameters) != 2 {
		t.Fatalf("parameters registered: got %d, want 2", len(b.parameters))
	}
	if b.parameters[1].Args.Keyword["window"] != 3.0 {
		t.Errorf("minmax kwargs lost: %v", b.parameters[1].Args.Keyword)
	}
}

func TestApplyPipeline_UnknownParameterSurfacesAtExecute(t *testing.T) {
	b, _ := newRunnableBatch(nil)
	b.ApplyPipeline(&Pipeline{
		Parameters: []PipelineCall{{Name: "no_such_parameter"}},
	})

	_, err := b.Execute(context.Background(), nil)
	var unknownErr *surface.UnknownCapabilityError
	if !errors.As(err, &unknownErr) {
		t.Fatalf("expected *surface.UnknownCapabilityError, got %v", err)
	}
	if unknownErr.Name != "no_such_parameter" {
		t.Errorf("Name: got %q", unknownErr.Name)
	}
}
