package info

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMeta_KeysSorted(t *testing.T) {
	m := NewMeta(map[string]any{"zeta": 1.0, "alpha": 2.0, "mid": 3.0})
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, m.Keys())
	assert.Equal(t, 3, m.Len())
}

func TestMeta_GetIsSet(t *testing.T) {
	m := NewMeta(map[string]any{"units": "m", "pending": nil})
	v, ok := m.Get("units")
	assert.True(t, ok)
	assert.Equal(t, "m", v)
	assert.True(t, m.IsSet("units"))

	_, ok = m.Get("pending")
	assert.True(t, ok)
	assert.False(t, m.IsSet("pending"))

	_, ok = m.Get("missing")
	assert.False(t, ok)
	assert.False(t, m.IsSet("missing"))
}

func TestMeta_Compatible(t *testing.T) {
	a := NewMeta(map[string]any{"units": "m", "pending": nil})
	b := NewMeta(map[string]any{"units": "m", "extra": "x"})
	c := NewMeta(map[string]any{"units": "km"})

	assert.True(t, a.compatible(b))
	assert.True(t, b.compatible(a))
	assert.False(t, a.compatible(c))
}

func TestMeta_Merge(t *testing.T) {
	a := NewMeta(map[string]any{"units": nil, "fixed": "x"})
	b := NewMeta(map[string]any{"units": "m"})

	merged := a.merge(b)
	v, ok := merged.Get("units")
	assert.True(t, ok)
	assert.Equal(t, "m", v)
	v, _ = merged.Get("fixed")
	assert.Equal(t, "x", v)

	assert.True(t, a.hasUnfilled())
	assert.False(t, merged.hasUnfilled())
}

func TestMeta_MergeNoUnfilled_ReturnsSameValue(t *testing.T) {
	a := NewMeta(map[string]any{"units": "m"})
	b := NewMeta(map[string]any{"units": "km"})
	merged := a.merge(b)
	v, _ := merged.Get("units")
	assert.Equal(t, "m", v)
}

func TestMeta_Clone(t *testing.T) {
	m := NewMeta(map[string]any{"a": 1.0})
	clone := m.Clone()
	clone["a"] = 2.0
	v, _ := m.Get("a")
	assert.Equal(t, 1.0, v)
}

func TestMeta_Empty(t *testing.T) {
	var m Meta
	assert.Equal(t, 0, m.Len())
	assert.Nil(t, m.Keys())
	assert.Nil(t, m.Clone())
}
