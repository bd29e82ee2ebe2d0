// Package finam provides the coupling runtime for a multi-model simulation
// framework: independently-developed components, each with its own internal
// time step and state, are wired into a single composition that advances
// simulated time coherently and exchanges data across mismatched schedules
// through interpolating/integrating adapters.
//
// # Architecture Overview
//
// The module is organized into tiers with strict dependency ordering:
//
//	Foundation tier (no internal dependencies beyond each other's leaves):
//	  - status: ordered ComponentStatus lifecycle enum
//	  - ferr: structured error taxonomy
//	  - clock: Timestamp/Duration value types
//	  - finamgrid: opaque Grid/GridSpec contract
//	  - info: metadata records, compatibility and merge
//	  - units: unit-conversion external contract
//
//	Core library tier:
//	  - port: Output/Input/Adapter slots, component lifecycle contracts
//	  - adapters: concrete time-bridging, unit, and grid-reduction adapters
//	  - sched: Composition -- validation, connect loop, run loop, finalize
//
//	Ambient tier:
//	  - internal/trace: near-zero-cost operation-boundary logging
//	  - config: JSONC-based composition construction helpers
//
// # Entry Points
//
// Build components, wire them, and run the composition:
//
//	out := port.NewOutput("temperature")
//	in := port.NewInput("temperature")
//	out.Chain(in)
//
//	comp := sched.New("FINAM", logger, producer, consumer)
//	if err := comp.Initialize(ctx); err != nil {
//	    // ...
//	}
//	if err := comp.Run(ctx, tMax); err != nil {
//	    // typed *ferr.Error identifying the offending component/slot
//	}
//
// # Subpackages
//
// See the individual package documentation for detailed usage:
//
//   - [github.com/finam-ufz/finam-sub001/status]
//   - [github.com/finam-ufz/finam-sub001/ferr]
//   - [github.com/finam-ufz/finam-sub001/clock]
//   - [github.com/finam-ufz/finam-sub001/finamgrid]
//   - [github.com/finam-ufz/finam-sub001/info]
//   - [github.com/finam-ufz/finam-sub001/units]
//   - [github.com/finam-ufz/finam-sub001/port]
//   - [github.com/finam-ufz/finam-sub001/adapters]
//   - [github.com/finam-ufz/finam-sub001/sched]
//   - [github.com/finam-ufz/finam-sub001/config]
package finam
