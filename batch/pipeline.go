package batch

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/surfbatch/surfbatch/surface"
)

// PipelineCall is one deferred call in a pipeline file: a capability name
// plus optional positional and keyword arguments.
type PipelineCall struct {
	Name   string         `yaml:"name"`
	Args   []any          `yaml:"args"`
	Kwargs map[string]any `yaml:"kwargs"`
}

// Pipeline is a declarative pipeline definition, loadable from YAML:
//
//	operations:
//	  - name: level
//	  - name: filter
//	    args: [lowpass, 10.0]
//	parameters:
//	  - name: Sa
//	  - name: Vmc
//	    kwargs: {p: 5.0, q: 95.0}
//
// Entries keep file order, which becomes registration order when the
// pipeline is applied to a Batch.
type Pipeline struct {
	Operations []PipelineCall `yaml:"operations"`
	Parameters []PipelineCall `yaml:"parameters"`
}

// LoadPipeline reads and parses the YAML pipeline file at path.
func LoadPipeline(path string) (*Pipeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("pipeline: read file: %w", err)
	}

	var p Pipeline
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("pipeline: parse yaml: %w", err)
	}

	if err := validatePipeline(&p); err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	return &p, nil
}

// validatePipeline checks structural constraints that do not depend on any
// particular catalog. Parameter names are checked against the catalog when
// the pipeline is applied.
func validatePipeline(p *Pipeline) error {
	if len(p.Operations) == 0 && len(p.Parameters) == 0 {
		return fmt.Errorf("no operations or parameters defined")
	}
	for i, op := range p.Operations {
		if op.Name == "" {
			return fmt.Errorf("operations[%d]: name is required", i)
		}
	}
	for i, pc := range p.Parameters {
		if pc.Name == "" {
			return fmt.Errorf("parameters[%d]: name is required", i)
		}
	}
	return nil
}

func (c PipelineCall) surfaceArgs() surface.Args {
	args := surface.NewArgs(c.Args...)
	for k, v := range c.Kwargs {
		args = args.WithKeyword(k, v)
	}
	return args
}

// ApplyPipeline registers every call of p, in file order. Operations are
// registered as-is with the in-place flag forced, exactly like the named
// builder methods; parameter names are validated against the catalog the
// way Measure validates them, with unknown identifiers surfaced at Execute.
func (b *Batch) ApplyPipeline(p *Pipeline) *Batch {
	for _, op := range p.Operations {
		b.registerOperation(op.Name, op.surfaceArgs())
	}
	for _, pc := range p.Parameters {
		if !b.catalogHas(pc.Name) {
			b.deferred = append(b.deferred, &surface.UnknownCapabilityError{Name: pc.Name})
			continue
		}
		b.parameters = append(b.parameters, Parameter{
			Identifier: pc.Name,
			Args:       pc.surfaceArgs(),
		})
	}
	return b
}
