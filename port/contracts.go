// Package port implements the push/pull data-exchange slots (Output,
// Input, Adapter) and the component lifecycle base that the scheduler
// drives. Metadata negotiation travels upstream through exchange_info;
// data travels downstream through push_data/get_data/pull_data.
package port

import (
	"context"

	"github.com/finam-ufz/finam-sub001/clock"
	"github.com/finam-ufz/finam-sub001/info"
	"github.com/finam-ufz/finam-sub001/status"
)

// Target is what an output needs from anything registered via
// AddTarget/Chain: the ability to become linked to a source and to be
// notified when that source pushes. Both IInput and IAdapter satisfy it,
// since an adapter is just as valid a downstream target as a leaf input —
// this is the narrow seam that lets an output's
// target list hold either kind without forcing an adapter to also
// implement IInput's consumer-facing ExchangeInfo, whose *info.Info
// parameter is shaped for a different caller (see IInput's doc comment).
type Target interface {
	// SetSource sets the target's upstream source. Fails if already set.
	SetSource(source IOutput) error
	// SourceChanged is invoked by the source after a push.
	SourceChanged(ctx context.Context, t clock.Timestamp)
}

// IOutput is the contract a push-based (or callback-driven) producer slot
// satisfies.
type IOutput interface {
	// Name returns the slot's immutable name.
	Name() string
	// HasInfo reports whether an Info has been declared, without requiring
	// the handshake to be complete.
	HasInfo() bool
	// Info returns the output's currently declared Info.
	Info() info.Info
	// IsPushBased reports whether the output requires an initial push
	// during connect, as opposed to being pulled on demand.
	IsPushBased() bool
	// PushInfo declares the output's Info. Fields may be left unset to be
	// filled from downstream during handshake.
	PushInfo(i info.Info) error
	// AddTarget registers target as a downstream consumer.
	AddTarget(target Target)
	// Targets returns the registered downstream consumers.
	Targets() []Target
	// HasTargets reports whether any target has been added.
	HasTargets() bool
	// Pinged increments the connected-input count. Called once per
	// downstream Input during link construction.
	Pinged()
	// ExchangeInfo is invoked by a downstream Input with its requested
	// Info; returns the delivered Info once every unset field has been
	// filled. Increments the exchanged-info count.
	ExchangeInfo(ctx context.Context, requested info.Info) (info.Info, error)
	// PushData pushes a new value at time t and synchronously notifies
	// every target via SourceChanged. A no-op if the output has no
	// targets.
	PushData(ctx context.Context, value any, t clock.Timestamp) error
	// GetData returns the stored value for time t.
	GetData(ctx context.Context, t clock.Timestamp) (any, error)
	// Chain adds other as a target and sets this output as its source,
	// returning other so calls can be linked left to right.
	Chain(other Target) Target
}

// IInput is the contract a pull-based consumer slot satisfies.
type IInput interface {
	// Name returns the slot's immutable name.
	Name() string
	// Info returns the input's declared/expected Info.
	Info() info.Info
	// SetSource sets the input's upstream source. Fails if already set.
	SetSource(source IOutput) error
	// Source returns the input's source, or nil if unset.
	Source() IOutput
	// HasSource reports whether a source has been set.
	HasSource() bool
	// Ping informs the source that one more consumer exists.
	Ping()
	// ExchangeInfo initiates the metadata handshake with the upstream
	// source, applying the delivered Info by merging unspecified fields.
	// requested supplies the Info to request when the input has none
	// declared; passing it to an input that already declared one fails.
	// This is the consumer-facing entry point a component or the
	// scheduler calls on a leaf input to kick off a handshake; an adapter's
	// corresponding upstream exchange is reached only through IOutput's
	// differently-shaped ExchangeInfo (see IAdapter), never through this
	// method — the two are distinct operations that happen to share a name
	// at different points in the chain.
	ExchangeInfo(ctx context.Context, requested *info.Info) (info.Info, error)
	// SourceChanged is invoked by the source after a push; the default
	// implementation is a no-op, the callback variant invokes a user
	// function synchronously.
	SourceChanged(ctx context.Context, t clock.Timestamp)
	// PullData retrieves the data from the input's source at time t,
	// applying unit conversion when the declared Info has a units entry.
	PullData(ctx context.Context, t clock.Timestamp) (any, error)
}

// IAdapter is a transformation node that is simultaneously an Input
// upstream and an Output downstream, storing no full data stream itself.
// Its upstream (input) facet is spelled out rather
// than embedding IInput because IInput's ExchangeInfo is the
// consumer-facing, *info.Info-taking entry point meant for leaf inputs;
// an adapter's own ExchangeInfo is the one it shares with IOutput, invoked
// by whatever sits downstream of it (a leaf input or another adapter).
type IAdapter interface {
	IOutput
	// SetSource sets the adapter's single upstream source. Fails if already
	// set.
	SetSource(source IOutput) error
	// Source returns the adapter's upstream source, or nil if unset.
	Source() IOutput
	// HasSource reports whether a source has been set.
	HasSource() bool
	// Ping informs the source that one more consumer exists.
	Ping()
	// SourceChanged is invoked by the source after a push.
	SourceChanged(ctx context.Context, t clock.Timestamp)
	// PullData retrieves the data from the adapter's source at time t.
	PullData(ctx context.Context, t clock.Timestamp) (any, error)
}

// NoBranchAdapter marks an adapter whose cached or cursor state forbids
// downstream fan-out: validation fails if more than one target is added
// along a no-branch sub-path.
type NoBranchAdapter interface {
	IAdapter
	// NoBranch reports whether this adapter forbids multiple downstream
	// targets.
	NoBranch() bool
}

// IComponent is the lifecycle contract every component satisfies.
type IComponent interface {
	Name() string
	Status() status.ComponentStatus
	Inputs() map[string]IInput
	Outputs() map[string]IOutput
	Initialize(ctx context.Context) error
	Connect(ctx context.Context) error
	Validate(ctx context.Context) error
	Update(ctx context.Context) error
	Finalize(ctx context.Context) error
}

// ITimeComponent is a component that advances its own simulated time; the
// scheduler drives whichever ITimeComponent has the smallest Time.
type ITimeComponent interface {
	IComponent
	// Time returns the component's current simulated time.
	Time() clock.Timestamp
}

// IMpiComponent is a component that needs a dedicated worker process: rank
// 0 drives the component through the normal lifecycle, while every other
// rank in its communicator executes RunMPI instead.
type IMpiComponent interface {
	IComponent
	// RunMPI runs the worker-side loop for every process except rank 0 of
	// this component's communicator.
	RunMPI(ctx context.Context) error
}
