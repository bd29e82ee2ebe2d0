package units_test

import (
	"testing"

	"github.com/finam-ufz/finam-sub001/units"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentity_SameUnit(t *testing.T) {
	v, err := units.Identity().Convert(1.5, "m", "m")
	require.NoError(t, err)
	assert.Equal(t, 1.5, v)
}

func TestIdentity_DifferentUnit(t *testing.T) {
	_, err := units.Identity().Convert(1.5, "m", "cm")
	assert.Error(t, err)
}

func TestSI_MetersToCentimeters(t *testing.T) {
	v, err := units.SI.Convert(1.5, "m", "cm")
	require.NoError(t, err)
	assert.InDelta(t, 150.0, v, 1e-9)
}

func TestSI_RoundTrip(t *testing.T) {
	v, err := units.SI.Convert(150.0, "cm", "m")
	require.NoError(t, err)
	assert.InDelta(t, 1.5, v, 1e-9)
}

func TestSI_UnknownUnit(t *testing.T) {
	_, err := units.SI.Convert(1, "m", "furlong")
	assert.Error(t, err)
}

func TestLinear_SameUnitShortCircuits(t *testing.T) {
	l := units.NewLinear(nil)
	v, err := l.Convert(42, "x", "x")
	require.NoError(t, err)
	assert.Equal(t, 42.0, v)
}
