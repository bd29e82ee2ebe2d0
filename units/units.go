// Package units fixes the external unit-conversion contract the coupling
// runtime depends on without implementing a full unit-aware numerics
// library itself: this package only defines the seam (Converter) plus a
// passthrough default and a minimal linear converter usable for the
// metric-prefix cases exercised by tests and simple simulations.
package units

import "fmt"

// Converter converts a scalar value between two unit strings. The runtime
// treats unit names as opaque, comparable strings; it never interprets
// them itself.
type Converter interface {
	// Convert returns value expressed in from converted to to.
	Convert(value float64, from, to string) (float64, error)
}

type identity struct{}

func (identity) Convert(value float64, from, to string) (float64, error) {
	if from != to {
		return 0, fmt.Errorf("units: identity converter cannot convert %q to %q", from, to)
	}
	return value, nil
}

// Identity returns a Converter that only ever accepts requests where from
// equals to, returning the value unchanged. It is the default used when no
// real unit-aware library is wired in.
func Identity() Converter { return identity{} }

// Linear is a Converter for units related by a fixed multiplicative factor
// to a common base, e.g. metric-prefixed length or mass units. Factors maps
// a unit name to "value in that unit per one base unit"; a factor of 100
// for "cm" with a base of "m" means 1 m == 100 cm.
type Linear struct {
	factors map[string]float64
}

// NewLinear constructs a Linear converter from unit name to factor-per-base.
// The caller must include every unit it intends to convert to or from,
// including the base unit itself (with factor 1).
func NewLinear(factors map[string]float64) Linear {
	cp := make(map[string]float64, len(factors))
	for k, v := range factors {
		cp[k] = v
	}
	return Linear{factors: cp}
}

// Convert converts value from unit "from" to unit "to" via their shared
// base: value_base = value / factors[from]; result = value_base * factors[to].
func (l Linear) Convert(value float64, from, to string) (float64, error) {
	if from == to {
		return value, nil
	}
	ff, ok := l.factors[from]
	if !ok {
		return 0, fmt.Errorf("units: unknown unit %q", from)
	}
	tf, ok := l.factors[to]
	if !ok {
		return 0, fmt.Errorf("units: unknown unit %q", to)
	}
	return value / ff * tf, nil
}

// SI is a Linear converter over the common metric length prefixes, with
// "m" as the base unit. It exists purely as a convenient, self-contained
// stand-in for scenarios and tests that need a concrete conversion without
// pulling in a full unit-aware numerics library.
var SI = NewLinear(map[string]float64{
	"mm": 1000,
	"cm": 100,
	"m":  1,
	"km": 0.001,
})
