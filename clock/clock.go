// Package clock provides the single Timestamp/Duration pair used for all
// scheduling arithmetic in the coupling runtime, resolving the "integer
// ticks vs. wall-clock datetime" ambiguity in favor of one total-order time
// type.
package clock

import (
	"fmt"
	"time"
)

// Duration is a simulated-time span, expressed in nanoseconds.
//
// Duration deliberately mirrors time.Duration's representation so that
// conversions to/from the standard library are exact and allocation-free,
// while keeping its own named type: simulated time and wall-clock time must
// never be implicitly interchangeable at call sites.
type Duration int64

// Common durations, named the way time's are.
const (
	Nanosecond  Duration = 1
	Microsecond          = 1000 * Nanosecond
	Millisecond          = 1000 * Microsecond
	Second               = 1000 * Millisecond
	Minute               = 60 * Second
	Hour                 = 60 * Minute
)

// Std converts d to a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// String renders d using time.Duration's formatting.
func (d Duration) String() string { return d.Std().String() }

// Timestamp is an absolute instant in simulated time, totally ordered,
// supporting addition of a [Duration]. The zero value is the epoch and is a
// valid, usable Timestamp (unlike time.Time's zero value, which callers must
// special-case).
type Timestamp struct {
	nanos int64
}

// At constructs a Timestamp n nanoseconds after the epoch.
func At(n int64) Timestamp { return Timestamp{nanos: n} }

// FromTime converts a time.Time to a Timestamp, measured as nanoseconds
// since the Unix epoch. Use this only at the boundary where wall-clock time
// genuinely needs to enter the simulation (e.g. a real-time-driven source);
// internal scheduling never depends on wall-clock semantics.
func FromTime(t time.Time) Timestamp { return Timestamp{nanos: t.UnixNano()} }

// Time converts t back to a time.Time (UTC, nanoseconds since Unix epoch).
func (t Timestamp) Time() time.Time { return time.Unix(0, t.nanos).UTC() }

// Add returns t advanced by d. d may be negative.
func (t Timestamp) Add(d Duration) Timestamp { return Timestamp{nanos: t.nanos + int64(d)} }

// Sub returns the duration from other to t (t - other). Negative if t
// precedes other.
func (t Timestamp) Sub(other Timestamp) Duration { return Duration(t.nanos - other.nanos) }

// Before reports whether t precedes other.
func (t Timestamp) Before(other Timestamp) bool { return t.nanos < other.nanos }

// After reports whether t follows other.
func (t Timestamp) After(other Timestamp) bool { return t.nanos > other.nanos }

// Equal reports whether t and other denote the same instant.
func (t Timestamp) Equal(other Timestamp) bool { return t.nanos == other.nanos }

// Compare returns -1, 0, or +1 as t is before, equal to, or after other.
// Suitable for use with slices.SortFunc and cmp-style comparisons.
func (t Timestamp) Compare(other Timestamp) int {
	switch {
	case t.nanos < other.nanos:
		return -1
	case t.nanos > other.nanos:
		return 1
	default:
		return 0
	}
}

// String renders t as nanoseconds-since-epoch, e.g. "t+5000000000ns".
// Simulated time has no inherent calendar meaning, so no calendar format is
// implied; callers that want wall-clock formatting should go through [Timestamp.Time].
func (t Timestamp) String() string {
	return fmt.Sprintf("t+%dns", t.nanos)
}
