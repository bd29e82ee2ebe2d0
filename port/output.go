package port

import (
	"context"
	"log/slog"

	"github.com/finam-ufz/finam-sub001/clock"
	"github.com/finam-ufz/finam-sub001/ferr"
	"github.com/finam-ufz/finam-sub001/info"
	"github.com/finam-ufz/finam-sub001/internal/trace"
)

// Output is the default push-based producer slot: it stores the last
// pushed value, an optional declared Info, and the list of downstream
// targets it must notify on every push.
type Output struct {
	name string
	log  *slog.Logger

	declaredInfo info.Info
	hasInfo      bool

	value    any
	hasValue bool

	targets []Target

	connectedInputs int
	infosExchanged  int
}

// NewOutput constructs a named Output with no declared Info yet.
func NewOutput(name string) *Output {
	return &Output{name: name}
}

// NewOutputWithInfo constructs a named Output, immediately declaring i.
func NewOutputWithInfo(name string, i info.Info) *Output {
	o := NewOutput(name)
	o.declaredInfo = i
	o.hasInfo = true
	return o
}

// SetLogger attaches l as the output's logger. Component.AddOutput calls
// this with a child logger named "-> "+name so slot logs nest under their
// owning component.
func (o *Output) SetLogger(l *slog.Logger) { o.log = l }

// Name returns the output's immutable name.
func (o *Output) Name() string { return o.name }

// HasInfo reports whether an Info has been declared, regardless of whether
// the handshake with every connected input has completed.
func (o *Output) HasInfo() bool { return o.hasInfo }

// Info returns the output's currently declared Info.
func (o *Output) Info() info.Info { return o.declaredInfo }

// IsPushBased reports true: the default Output requires an initial push
// during connect. [CallbackOutput] overrides this to false.
func (o *Output) IsPushBased() bool { return true }

// PushInfo declares the output's Info.
func (o *Output) PushInfo(i info.Info) error {
	op := trace.Begin(context.Background(), o.log, "finam.port.push_info")
	o.declaredInfo = i
	o.hasInfo = true
	op.End(nil)
	return nil
}

// AddTarget registers target as a downstream consumer of this output.
func (o *Output) AddTarget(target Target) {
	o.targets = append(o.targets, target)
}

// Targets returns the output's registered downstream consumers.
func (o *Output) Targets() []Target { return o.targets }

// HasTargets reports whether any target has been added.
func (o *Output) HasTargets() bool { return len(o.targets) > 0 }

// Pinged increments the connected-input count. Called once per connected
// downstream Input via Input.Ping during link construction.
func (o *Output) Pinged() { o.connectedInputs++ }

// handshakeComplete reports whether every connected input has completed
// its info exchange with this output.
func (o *Output) handshakeComplete() bool {
	if !o.HasTargets() {
		return true
	}
	return o.infosExchanged >= o.connectedInputs
}

// ExchangeInfo is invoked by a downstream input with its requested Info.
// Every field left unset ("None") on the declared side is filled from
// requested; fields set on both sides must agree. Returns the delivered,
// merged Info.
func (o *Output) ExchangeInfo(ctx context.Context, requested info.Info) (_ info.Info, retErr error) {
	op := trace.Begin(ctx, o.log, "finam.port.exchange_info")
	defer func() { op.End(retErr) }()

	if !o.hasInfo {
		err := ferr.New(ferr.KindNoData, o.name, "", "no data info available")
		return info.Info{}, err
	}
	if !o.declaredInfo.Compatible(requested) {
		err := ferr.New(ferr.KindMetadata, o.name, "", "incoming info is incompatible with declared info")
		return info.Info{}, err
	}
	o.declaredInfo = o.declaredInfo.Merge(requested)
	if o.declaredInfo.HasUnfilled() {
		err := ferr.New(ferr.KindMetadata, o.name, "",
			"cannot set unfilled field from target info, as it is not provided")
		return info.Info{}, err
	}
	o.infosExchanged++
	return o.declaredInfo, nil
}

// PushData pushes value at time t. If the output has no targets, the push
// is silently dropped so a disconnected output never blocks its owning
// component. Otherwise it requires the handshake to be complete for every
// connected input, stores value, and synchronously notifies every target.
func (o *Output) PushData(ctx context.Context, value any, t clock.Timestamp) (retErr error) {
	op := trace.Begin(ctx, o.log, "finam.port.push_data", slog.String("time", t.String()))
	defer func() { op.End(retErr) }()

	if !o.HasTargets() {
		trace.Debug(ctx, o.log, "skipping push to unconnected output")
		return nil
	}
	if !o.handshakeComplete() {
		return ferr.New(ferr.KindNoData, o.name, "", "cannot push data before info exchange is complete")
	}
	o.value = value
	o.hasValue = true
	for _, target := range o.targets {
		target.SourceChanged(ctx, t)
	}
	return nil
}

// GetData returns the stored value for time t. Time-bridging of stored
// single values is the caller's concern; Output itself keeps only the
// latest pushed value.
func (o *Output) GetData(ctx context.Context, t clock.Timestamp) (_ any, retErr error) {
	op := trace.Begin(ctx, o.log, "finam.port.get_data", slog.String("time", t.String()))
	defer func() { op.End(retErr) }()

	if !o.hasInfo {
		return nil, ferr.New(ferr.KindNoData, o.name, "", "no data info available")
	}
	if !o.handshakeComplete() {
		return nil, ferr.New(ferr.KindNoData, o.name, "", "data info was not yet exchanged")
	}
	if !o.hasValue {
		return nil, ferr.New(ferr.KindNoData, o.name, "", "no data available")
	}
	return o.value, nil
}

// Chain adds other as a target of o and sets o as other's source,
// returning other. The result is typed as [Target], which has no Chain
// method, so a longer chain is linked one call at a time, left to right:
// producer.Chain(adapter); adapter.Chain(consumer).
func (o *Output) Chain(other Target) Target {
	o.AddTarget(other)
	_ = other.SetSource(o)
	return other
}

// CallbackOutput is a pull-driven Output variant: it stores no data of its
// own and instead computes the value on demand via callback, for
// components without an intrinsic time step.
type CallbackOutput struct {
	*Output
	callback func(ctx context.Context, t clock.Timestamp) (any, error)
}

// NewCallbackOutput constructs a CallbackOutput invoking callback on every
// GetData call.
func NewCallbackOutput(name string, callback func(ctx context.Context, t clock.Timestamp) (any, error)) *CallbackOutput {
	return &CallbackOutput{Output: NewOutput(name), callback: callback}
}

// IsPushBased reports false: a CallbackOutput never needs an initial push.
func (o *CallbackOutput) IsPushBased() bool { return false }

// PushData always fails: pushing data into a callback-driven output makes
// no sense, since the callback is the sole source of values.
func (o *CallbackOutput) PushData(context.Context, any, clock.Timestamp) error {
	return ferr.New(ferr.KindNoData, o.name, "", "callback output does not support push of data")
}

// GetData invokes the callback and returns its result, after the same
// handshake checks as [Output.GetData].
func (o *CallbackOutput) GetData(ctx context.Context, t clock.Timestamp) (_ any, retErr error) {
	op := trace.Begin(ctx, o.log, "finam.port.get_data", slog.String("time", t.String()))
	defer func() { op.End(retErr) }()

	if !o.hasInfo {
		return nil, ferr.New(ferr.KindNoData, o.name, "", "no data info available")
	}
	if !o.handshakeComplete() {
		return nil, ferr.New(ferr.KindNoData, o.name, "", "data info was not yet exchanged")
	}
	value, err := o.callback(ctx, t)
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, ferr.New(ferr.KindNoData, o.name, "", "no data available")
	}
	return value, nil
}
