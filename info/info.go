// Package info defines the metadata record exchanged between components
// during connect: a grid specification plus a bag of scalar properties
// (notably "units"). Info values travel upstream during exchange_info and
// carry nil placeholders that get filled in from whichever side declares
// them.
package info

import "github.com/finam-ufz/finam-sub001/finamgrid"

// Info is a metadata record (grid, meta). Grid is nil while it awaits a
// value from the other side of a handshake (scalar data declares
// [finamgrid.NoGrid]); Meta keys may likewise hold the nil placeholder.
type Info struct {
	Grid finamgrid.GridSpec
	Meta Meta
}

// New constructs an Info over the given grid spec (nil to leave it to the
// handshake, [finamgrid.NoGrid] for scalar data) and metadata map. See [NewMeta] for ownership semantics of meta.
func New(grid finamgrid.GridSpec, meta map[string]any) Info {
	return Info{Grid: grid, Meta: NewMeta(meta)}
}

// Compatible reports whether info and other could describe the same data
// stream: their grids are equal when both are set (a nil grid on either
// side is a placeholder and imposes no constraint) and every meta key
// declared non-nil on both sides agrees. This mirrors the original Python
// implementation's Info.accepts, collapsed to a pure predicate — the
// filling side effect lives in [Info.Merge].
func (info Info) Compatible(other Info) bool {
	gridsAgree := info.Grid == nil || other.Grid == nil || finamgrid.EqualSpec(info.Grid, other.Grid)
	return gridsAgree && info.Meta.compatible(other.Meta)
}

// Merge returns a copy of info with every unfilled ("None") meta field
// replaced by other's value for that field, and with Grid adopted from
// other when info's own Grid is nil. It does not check compatibility
// first; callers that need the metadata-mismatch error behavior should
// call Compatible before Merge and report the error themselves, since
// only they know the component/slot names to attach.
func (info Info) Merge(other Info) Info {
	merged := info
	merged.Meta = info.Meta.merge(other.Meta)
	if merged.Grid == nil {
		merged.Grid = other.Grid
	}
	return merged
}

// HasUnfilled reports whether info still has at least one meta field
// awaiting a value, or the grid is unset.
func (info Info) HasUnfilled() bool {
	return info.Grid == nil || info.Meta.hasUnfilled()
}

// Units returns the declared "units" meta value and whether it is set.
func (info Info) Units() (string, bool) {
	v, ok := info.Meta.Get("units")
	if !ok || v == nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
