package surface

import "fmt"

// Args holds the arguments of a deferred capability call: an ordered list of
// positional arguments and a keyword mapping. Both may be empty.
type Args struct {
	// Positional arguments, passed in order.
	Positional []any

	// Keyword arguments, passed by name.
	Keyword map[string]any
}

// NewArgs returns an Args with the given positional arguments and no
// keyword arguments.
func NewArgs(positional ...any) Args {
	return Args{Positional: positional}
}

// WithKeyword returns a copy of a with the named keyword argument set.
// The receiver is not modified, so Args values can be shared freely.
func (a Args) WithKeyword(name string, value any) Args {
	c := a.Clone()
	if c.Keyword == nil {
		c.Keyword = make(map[string]any, 1)
	}
	c.Keyword[name] = value
	return c
}

// Clone returns a deep copy of a. The positional slice and keyword map are
// copied; the argument values themselves are shared.
func (a Args) Clone() Args {
	c := Args{}
	if len(a.Positional) > 0 {
		c.Positional = make([]any, len(a.Positional))
		copy(c.Positional, a.Positional)
	}
	if len(a.Keyword) > 0 {
		c.Keyword = make(map[string]any, len(a.Keyword))
		for k, v := range a.Keyword {
			c.Keyword[k] = v
		}
	}
	return c
}

// Surface is one loaded measurement. Operations mutate the surface in place
// and return no meaningful value; parameters compute one or more numeric
// results from the current state.
//
// A Surface is owned by a single task and is never shared between
// goroutines, so implementations do not need to be safe for concurrent use.
type Surface interface {
	// Operate invokes the named in-place operation with the given arguments.
	// Unknown names must be reported with *UnknownCapabilityError.
	Operate(name string, args Args) error

	// Measure invokes the named parameter computation with the given
	// arguments and returns its values in order. Unknown names must be
	// reported with *UnknownCapabilityError.
	Measure(name string, args Args) ([]float64, error)
}

// Loader constructs a Surface from a measurement file.
type Loader interface {
	// Load reads the file at path. Unreadable or malformed input must be
	// reported with *LoadError so callers can distinguish data problems
	// from setup problems.
	Load(path string) (Surface, error)
}

// Catalog publishes the statically enumerable set of valid parameter
// identifiers and the return labels of multi-valued parameters. The batch
// controller consults it for bulk registration and for validating
// dynamically registered parameter names.
type Catalog interface {
	// Parameters returns every valid parameter identifier, in a stable
	// order.
	Parameters() []string

	// ReturnLabels returns the ordered result labels of the named
	// parameter, or nil when the parameter yields a single unlabeled
	// value. Labels are a static property of the capability, not of any
	// particular call.
	ReturnLabels(name string) []string
}

// LoadError reports that a measurement file could not be read or parsed.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// UnknownCapabilityError reports access to an identifier that is neither a
// known operation nor a published parameter. The batch controller returns
// the same error type for unknown identifiers, so callers see one shape
// regardless of where the lookup failed.
type UnknownCapabilityError struct {
	Name string
}

func (e *UnknownCapabilityError) Error() string {
	return fmt.Sprintf("unknown capability %q", e.Name)
}
