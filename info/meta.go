package info

import (
	"cmp"
	"slices"
)

// Meta is an immutable, string-keyed map of scalar metadata values
// (notably "units"). It is a simplified, domain-specific descendant of the
// teacher's immutable.Properties: the sorted-iteration and
// wrap-with-ownership-transfer ideas are kept, but the generic any-wrapping
// Value type is not needed here since meta values are plain comparable
// scalars (string, float64, int, bool), never nested structures.
//
// A declared key whose value is nil is a placeholder: the field is known to
// exist but its value is not yet fixed, and handshake logic (see
// [Info.Merge]) fills it in from the other side.
type Meta struct {
	entries    map[string]any
	sortedKeys []string
}

// NewMeta wraps m, taking ownership: the caller must not mutate m after
// calling NewMeta. Use [Meta.Clone] to get a mutable copy back out.
func NewMeta(m map[string]any) Meta {
	if len(m) == 0 {
		return Meta{}
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, cmp.Compare[string])
	return Meta{entries: m, sortedKeys: keys}
}

// Get returns the value for name and whether name was declared at all
// (regardless of whether its value is the nil placeholder).
func (m Meta) Get(name string) (any, bool) {
	v, ok := m.entries[name]
	return v, ok
}

// IsSet reports whether name is declared with a non-nil value.
func (m Meta) IsSet(name string) bool {
	v, ok := m.entries[name]
	return ok && v != nil
}

// Len returns the number of declared keys.
func (m Meta) Len() int { return len(m.entries) }

// Keys returns the declared keys in sorted order.
func (m Meta) Keys() []string { return m.sortedKeys }

// Clone returns a mutable copy of the underlying map.
func (m Meta) Clone() map[string]any {
	if len(m.entries) == 0 {
		return nil
	}
	out := make(map[string]any, len(m.entries))
	for k, v := range m.entries {
		out[k] = v
	}
	return out
}

// compatible reports whether m and other agree on every key both declare
// with a non-nil value: every shared meta key must have equal values. Keys
// declared on only one side, or with a nil placeholder on either side,
// impose no constraint.
func (m Meta) compatible(other Meta) bool {
	for k, v := range m.entries {
		if v == nil {
			continue
		}
		if ov, ok := other.entries[k]; ok && ov != nil {
			if ov != v {
				return false
			}
		}
	}
	return true
}

// merge returns a new Meta with every nil placeholder in m filled from the
// corresponding value in other, when other declares it non-nil. Keys absent
// from m are not added; keys already non-nil in m are left untouched.
func (m Meta) merge(other Meta) Meta {
	if len(m.entries) == 0 {
		return m
	}
	out := make(map[string]any, len(m.entries))
	changed := false
	for k, v := range m.entries {
		if v == nil {
			if ov, ok := other.entries[k]; ok && ov != nil {
				out[k] = ov
				changed = true
				continue
			}
		}
		out[k] = v
	}
	if !changed {
		return m
	}
	return NewMeta(out)
}

// hasUnfilled reports whether any declared key still carries the nil
// placeholder.
func (m Meta) hasUnfilled() bool {
	for _, v := range m.entries {
		if v == nil {
			return true
		}
	}
	return false
}
