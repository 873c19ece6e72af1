// Package surface defines the contract between the batch harness and the
// measurement data object that knows how to load and analyze a single
// surface-topography file.
//
// The harness never implements a measurement algorithm itself. It talks to
// three small interfaces: Loader constructs a Surface from a file path,
// Surface exposes named operations and parameter computations, and Catalog
// publishes the set of valid parameter identifiers together with the return
// labels of multi-valued parameters.
//
// Registry is a concrete capability table that implements Catalog and can
// adapt plain Go functions into a Loader/Surface pair. Implementations built
// on Registry get consistent unknown-capability errors and label metadata
// without any reflection.
package surface
