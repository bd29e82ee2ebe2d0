// Package status defines the component lifecycle enumeration shared by
// every component, input/output slot, and the scheduler.
package status

import "fmt"

// ComponentStatus is the ordered lifecycle state of a component.
//
// ComponentStatus is a totally ordered enumeration: transitions always move
// to an equal-or-later status, except that CONNECTING and CONNECTING_IDLE
// may alternate any number of times, and UPDATED may repeat. Use [ComponentStatus.AtLeast]
// and [ComponentStatus.Before] for ordering comparisons rather than raw
// numeric comparisons, so the intent reads clearly at call sites.
type ComponentStatus uint8

const (
	// Created is the status immediately after construction, before Initialize.
	Created ComponentStatus = iota

	// Initialized indicates Initialize has completed: inputs/outputs exist.
	Initialized

	// Connecting indicates at least one required pull succeeded during
	// Connect, but at least one other failed with a no-data signal.
	Connecting

	// ConnectingIdle indicates a Connect call pulled nothing at all.
	ConnectingIdle

	// Connected indicates Connect completed successfully for every input/output.
	Connected

	// Validated indicates Validate accepted the component's configuration.
	Validated

	// Updated indicates Update advanced the component by one step. May repeat.
	Updated

	// Finished indicates the component declared no further updates.
	Finished

	// Finalized indicates Finalize released the component's resources.
	Finalized
)

// String returns the canonical upper-snake-case label for the status.
func (s ComponentStatus) String() string {
	switch s {
	case Created:
		return "CREATED"
	case Initialized:
		return "INITIALIZED"
	case Connecting:
		return "CONNECTING"
	case ConnectingIdle:
		return "CONNECTING_IDLE"
	case Connected:
		return "CONNECTED"
	case Validated:
		return "VALIDATED"
	case Updated:
		return "UPDATED"
	case Finished:
		return "FINISHED"
	case Finalized:
		return "FINALIZED"
	default:
		return fmt.Sprintf("ComponentStatus(%d)", uint8(s))
	}
}

// AtLeast reports whether s has progressed at least as far as other in the
// lifecycle ordering.
//
// CONNECTING and CONNECTING_IDLE are adjacent but do not compare equal:
// ConnectingIdle.AtLeast(Connecting) is true and the reverse is false, even
// though a component may alternate between them. Callers that need to allow
// that alternation should check both explicitly (see
// [ComponentStatus.IsConnectingPhase]).
func (s ComponentStatus) AtLeast(other ComponentStatus) bool {
	return s >= other
}

// Before reports whether s precedes other in the lifecycle ordering.
func (s ComponentStatus) Before(other ComponentStatus) bool {
	return s < other
}

// IsConnectingPhase reports whether s is one of the two statuses a
// component may oscillate between during repeated Connect calls.
func (s ComponentStatus) IsConnectingPhase() bool {
	return s == Connecting || s == ConnectingIdle
}

// CanConnect reports whether Connect may be called while in status s.
func (s ComponentStatus) CanConnect() bool {
	return s == Initialized || s.IsConnectingPhase()
}

// CanUpdate reports whether Update may be called while in status s.
func (s ComponentStatus) CanUpdate() bool {
	return s == Validated || s == Updated
}

// CanFinalize reports whether Finalize may be called while in status s.
func (s ComponentStatus) CanFinalize() bool {
	return s == Updated || s == Finished
}
