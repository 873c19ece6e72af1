package surface

import "fmt"

// OperationFunc applies an in-place operation to the data object produced by
// a LoadFunc.
type OperationFunc func(data any, args Args) error

// ParameterFunc computes one or more numeric results from the data object
// produced by a LoadFunc.
type ParameterFunc func(data any, args Args) ([]float64, error)

// LoadFunc reads a measurement file into an implementation-defined data
// object. Errors are wrapped in *LoadError by the registry's Loader.
type LoadFunc func(path string) (any, error)

// Registry is an explicit capability table mapping identifiers to operation
// and parameter functions. It implements Catalog, and Loader adapts a
// LoadFunc into a Loader whose surfaces dispatch through the table.
//
// Registration happens once at startup; a Registry must not be modified
// after surfaces have been created from it.
type Registry struct {
	ops    map[string]OperationFunc
	params map[string]*paramEntry
	order  []string
}

type paramEntry struct {
	labels []string
	fn     ParameterFunc
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		ops:    make(map[string]OperationFunc),
		params: make(map[string]*paramEntry),
	}
}

// RegisterOperation adds an in-place operation to the table. Registering the
// same name twice is a programming error and panics.
func (r *Registry) RegisterOperation(name string, fn OperationFunc) {
	if _, exists := r.ops[name]; exists {
		panic(fmt.Sprintf("surface: operation %q already registered", name))
	}
	r.ops[name] = fn
}

// RegisterParameter adds a parameter computation to the table. labels names
// each position of a multi-valued result, in order; pass nil for parameters
// that return a single unlabeled value. Registering the same name twice is a
// programming error and panics.
func (r *Registry) RegisterParameter(name string, labels []string, fn ParameterFunc) {
	if _, exists := r.params[name]; exists {
		panic(fmt.Sprintf("surface: parameter %q already registered", name))
	}
	r.params[name] = &paramEntry{labels: labels, fn: fn}
	r.order = append(r.order, name)
}

// Parameters implements Catalog. Identifiers are returned in registration
// order.
func (r *Registry) Parameters() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// ReturnLabels implements Catalog.
func (r *Registry) ReturnLabels(name string) []string {
	e, ok := r.params[name]
	if !ok || e.labels == nil {
		return nil
	}
	out := make([]string, len(e.labels))
	copy(out, e.labels)
	return out
}

// Loader adapts load into a Loader whose surfaces dispatch through the
// registry. Errors returned by load are wrapped in *LoadError.
func (r *Registry) Loader(load LoadFunc) Loader {
	return &registryLoader{reg: r, load: load}
}

type registryLoader struct {
	reg  *Registry
	load LoadFunc
}

func (l *registryLoader) Load(path string) (Surface, error) {
	data, err := l.load(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return &registrySurface{reg: l.reg, data: data}, nil
}

// registrySurface implements Surface by table lookup.
type registrySurface struct {
	reg  *Registry
	data any
}

func (s *registrySurface) Operate(name string, args Args) error {
	fn, ok := s.reg.ops[name]
	if !ok {
		return &UnknownCapabilityError{Name: name}
	}
	return fn(s.data, args)
}

func (s *registrySurface) Measure(name string, args Args) ([]float64, error) {
	e, ok := s.reg.params[name]
	if !ok {
		return nil, &UnknownCapabilityError{Name: name}
	}
	return e.fn(s.data, args)
}
