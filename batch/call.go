package batch

import (
	"fmt"

	"github.com/surfbatch/surfbatch/surface"
)

// inplaceKeyword is forced into every operation's keyword arguments so the
// surface updates its own state instead of producing a new object.
const inplaceKeyword = "inplace"

// Operation is a deferred call to a surface capability that mutates the
// surface in place. It is immutable once constructed; the same identifier
// may be registered any number of times and re-executes in order.
type Operation struct {
	Identifier string
	Args       surface.Args
}

// NewOperation returns an Operation for the named capability. The in-place
// keyword is always forced true, regardless of what args carries.
func NewOperation(identifier string, args surface.Args) Operation {
	return Operation{
		Identifier: identifier,
		Args:       args.WithKeyword(inplaceKeyword, true),
	}
}

// executeOn invokes the operation against s. Any return value of the
// capability is discarded; only the mutated surface state matters.
func (o Operation) executeOn(s surface.Surface) error {
	return s.Operate(o.Identifier, o.Args)
}

// Parameter is a deferred call to a surface capability that computes one or
// more numeric results. Like Operation it is immutable once constructed.
type Parameter struct {
	Identifier string
	Args       surface.Args
}

// Param returns a Parameter for the named capability with the given
// positional arguments. Use the Args field directly for keyword arguments.
func Param(identifier string, positional ...any) Parameter {
	return Parameter{
		Identifier: identifier,
		Args:       surface.NewArgs(positional...),
	}
}

// calculateFrom invokes the parameter against s and converts the returned
// values into result-column entries.
//
// When the catalog registers return labels for the capability, each value is
// keyed "identifier_label" in label order; a count mismatch is a
// *ConfigError. Without labels the capability must return exactly one value,
// keyed by the bare identifier; more than one value means the capability
// was declared multi-valued without labels, which is also a *ConfigError.
func (p Parameter) calculateFrom(s surface.Surface, cat surface.Catalog) (map[string]float64, error) {
	values, err := s.Measure(p.Identifier, p.Args)
	if err != nil {
		return nil, err
	}

	labels := cat.ReturnLabels(p.Identifier)
	if labels == nil {
		if len(values) != 1 {
			return nil, &ConfigError{Msg: fmt.Sprintf(
				"parameter %q returned %d values but has no registered return labels",
				p.Identifier, len(values))}
		}
		return map[string]float64{p.Identifier: values[0]}, nil
	}

	if len(values) != len(labels) {
		return nil, &ConfigError{Msg: fmt.Sprintf(
			"parameter %q returned %d values for %d registered return labels",
			p.Identifier, len(values), len(labels))}
	}
	out := make(map[string]float64, len(values))
	for i, label := range labels {
		out[p.Identifier+"_"+label] = values[i]
	}
	return out, nil
}

// resultColumns returns the output column names this parameter produces, in
// order, based on the catalog's label metadata. It is used to pre-seed the
// result table's column order.
func (p Parameter) resultColumns(cat surface.Catalog) []string {
	labels := cat.ReturnLabels(p.Identifier)
	if labels == nil {
		return []string{p.Identifier}
	}
	cols := make([]string, len(labels))
	for i, label := range labels {
		cols[i] = p.Identifier + "_" + label
	}
	return cols
}
