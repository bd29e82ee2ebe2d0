// Package finamgrid defines the opaque grid contract the coupling runtime
// depends on: a GridSpec the scheduler can compare for equality, and a Grid
// carrying a spec plus a dense numeric payload. Concrete grid kinds
// (uniform, rectilinear, unstructured, ...) are external collaborators;
// this package only fixes the shape those collaborators must satisfy.
package finamgrid

// GridSpec is an equality-comparable grid specification.
//
// Implementations are expected to be value types (or pointers to immutable
// values) so that Equal reflects structural, not identity, equality. The
// runtime never interprets a GridSpec's internals; it only ever compares
// two of them via Equal during info-compatibility checks.
type GridSpec interface {
	// Equal reports whether other denotes the same grid specification.
	Equal(other GridSpec) bool
}

// Grid is an opaque value carrying a [GridSpec] and its dense numeric
// payload. The runtime treats Values as a flat row-major buffer; shape
// bookkeeping and reshaping are the external grid library's responsibility
// and are not re-implemented here beyond the minimal Len/Mean/Sum accessors a
// generic reduction adapter needs.
type Grid struct {
	Spec   GridSpec
	Values []float64
}

// New constructs a Grid over spec with the given values. The caller retains
// ownership of values; Grid does not copy it.
func New(spec GridSpec, values []float64) Grid {
	return Grid{Spec: spec, Values: values}
}

// Len returns the number of scalar values carried by the grid.
func (g Grid) Len() int { return len(g.Values) }

// Mean returns the arithmetic mean of the grid's values. Returns 0 for an
// empty grid (there is no meaningful mean to compute, and failing here
// would push a grid-shape concern into a package that must stay agnostic of
// grid semantics).
func (g Grid) Mean() float64 {
	if len(g.Values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range g.Values {
		sum += v
	}
	return sum / float64(len(g.Values))
}

// Sum returns the sum of the grid's values.
func (g Grid) Sum() float64 {
	sum := 0.0
	for _, v := range g.Values {
		sum += v
	}
	return sum
}

// NoGrid is the explicit GridSpec for scalar data: data that legitimately
// has no spatial grid, as opposed to an Info whose grid field is simply
// nil because it has not been filled in yet during handshake (the "None
// placeholder" state). Declare an Info's grid as NoGrid{} when the data is
// scalar; leave it nil only when you want the handshake to fill it in from
// the other side.
type NoGrid struct{}

// Equal reports whether other is also NoGrid.
func (NoGrid) Equal(other GridSpec) bool {
	_, ok := other.(NoGrid)
	return ok
}

// EqualSpec reports whether two optional GridSpec values are equal,
// treating nil == nil as equal and nil != non-nil. info.Info uses it to
// compare two declared grids; its own Compatible check treats a nil grid
// on either side as an unfilled placeholder before calling it.
func EqualSpec(a, b GridSpec) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return a.Equal(b)
}
