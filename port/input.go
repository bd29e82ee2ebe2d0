package port

import (
	"context"
	"log/slog"

	"github.com/finam-ufz/finam-sub001/clock"
	"github.com/finam-ufz/finam-sub001/ferr"
	"github.com/finam-ufz/finam-sub001/info"
	"github.com/finam-ufz/finam-sub001/internal/trace"
	"github.com/finam-ufz/finam-sub001/units"
)

// Input is the default pull-based consumer slot: it holds exactly one
// upstream source and pulls data on demand, converting units on pull
// whenever its declared Info names a units entry that differs from the
// source's own. A chain-level conversion adapter (see the adapters
// package) remains the right tool for a conversion that needs to sit
// between two other adapters; Input's own conversion only covers the
// last leg into a leaf consumer.
type Input struct {
	name string
	log  *slog.Logger

	source    IOutput
	converter units.Converter

	declaredInfo  info.Info
	hasInfo       bool
	infoExchanged bool
}

// NewInput constructs a named Input with no declared expectations and a
// default identity unit converter.
func NewInput(name string) *Input {
	return &Input{name: name, converter: units.Identity()}
}

// SetConverter replaces the converter PullData uses when the source's
// declared units differ from this input's own. Defaults to
// [units.Identity], which only accepts already-matching units.
func (in *Input) SetConverter(c units.Converter) { in.converter = c }

// NewInputWithInfo constructs a named Input, immediately declaring its
// expected Info.
func NewInputWithInfo(name string, i info.Info) *Input {
	in := NewInput(name)
	in.declaredInfo = i
	in.hasInfo = true
	return in
}

// SetLogger attaches l as the input's logger. See [Output.SetLogger].
func (in *Input) SetLogger(l *slog.Logger) { in.log = l }

// Name returns the input's immutable name.
func (in *Input) Name() string { return in.name }

// Info returns the input's declared/expected Info.
func (in *Input) Info() info.Info { return in.declaredInfo }

// SetSource sets the input's upstream source output or adapter. Fails with
// a link error if a source is already set.
func (in *Input) SetSource(source IOutput) error {
	if in.source != nil {
		return ferr.New(ferr.KindLink, in.name, "",
			"source is already set (you probably tried to connect multiple outputs to a single input)")
	}
	in.source = source
	return nil
}

// Source returns the input's source, or nil if unset.
func (in *Input) Source() IOutput { return in.source }

// HasSource reports whether a source has been set.
func (in *Input) HasSource() bool { return in.source != nil }

// Ping informs the source that one more consumer exists. Must be called
// after linking and before the connect phase.
func (in *Input) Ping() {
	if in.source != nil {
		in.source.Pinged()
	}
}

// ExchangeInfo initiates the metadata handshake with the upstream source.
// requested supplies the Info to request when the input has no declared
// Info of its own; a non-nil requested on an input that already declared
// one, or a nil requested on an input that declared none, fails with a
// metadata error. The delivered Info is merged into the input's declared
// Info, filling any unfilled field, and the exchanged flag is set.
func (in *Input) ExchangeInfo(ctx context.Context, requested *info.Info) (_ info.Info, retErr error) {
	op := trace.Begin(ctx, in.log, "finam.port.exchange_info")
	defer func() { op.End(retErr) }()

	if in.infoExchanged {
		return info.Info{}, ferr.New(ferr.KindMetadata, in.name, "", "info was already exchanged")
	}

	want := in.declaredInfo
	if requested != nil {
		if in.hasInfo {
			return info.Info{}, ferr.New(ferr.KindMetadata, in.name, "", "an internal info was already provided")
		}
		want = *requested
	} else if !in.hasInfo {
		return info.Info{}, ferr.New(ferr.KindMetadata, in.name, "", "no metadata provided")
	}

	if in.source == nil {
		return info.Info{}, ferr.New(ferr.KindLink, in.name, "", "input has no source")
	}

	delivered, err := in.source.ExchangeInfo(ctx, want)
	if err != nil {
		return info.Info{}, ferr.Wrap(ferr.KindMetadata, in.name, "", err, "incoming info rejected")
	}
	if !want.Compatible(delivered) {
		return info.Info{}, ferr.New(ferr.KindMetadata, in.name, "", "incoming data info does not satisfy local expectations")
	}

	in.declaredInfo = want.Merge(delivered)
	in.hasInfo = true
	in.infoExchanged = true
	return delivered, nil
}

// SourceChanged is the default no-op notification hook, invoked by the
// source after every push. [CallbackInput] overrides this.
func (in *Input) SourceChanged(ctx context.Context, t clock.Timestamp) {
	trace.Debug(ctx, in.log, "source changed", slog.String("time", t.String()))
}

// PullData retrieves the data from the input's source at time t, then
// converts units if the input's declared Info has a units entry that
// differs from the source's own declared units. PullData propagates any
// no-data error from upstream unchanged.
func (in *Input) PullData(ctx context.Context, t clock.Timestamp) (_ any, retErr error) {
	op := trace.Begin(ctx, in.log, "finam.port.pull_data", slog.String("time", t.String()))
	defer func() { op.End(retErr) }()

	if in.source == nil {
		return nil, ferr.New(ferr.KindLink, in.name, "", "input has no source")
	}

	value, err := in.source.GetData(ctx, t)
	if err != nil {
		return nil, err
	}

	toUnits, ok := in.declaredInfo.Units()
	if !ok {
		return value, nil
	}
	fromUnits, ok := in.source.Info().Units()
	if !ok || fromUnits == toUnits {
		return value, nil
	}

	scalar, ok := value.(float64)
	if !ok {
		return nil, ferr.New(ferr.KindMetadata, in.name, "",
			"cannot convert units of a %T value", value)
	}
	converted, err := in.converter.Convert(scalar, fromUnits, toUnits)
	if err != nil {
		return nil, ferr.Wrap(ferr.KindMetadata, in.name, "", err, "unit conversion failed")
	}
	return converted, nil
}

// CallbackInput is an Input variant that invokes a user callback
// synchronously whenever its source notifies it of new data, instead of
// being polled.
type CallbackInput struct {
	*Input
	callback func(ctx context.Context, in *CallbackInput, t clock.Timestamp)
}

// NewCallbackInput constructs a CallbackInput invoking callback on every
// SourceChanged notification.
func NewCallbackInput(name string, callback func(ctx context.Context, in *CallbackInput, t clock.Timestamp)) *CallbackInput {
	return &CallbackInput{Input: NewInput(name), callback: callback}
}

// SourceChanged invokes the registered callback synchronously.
func (in *CallbackInput) SourceChanged(ctx context.Context, t clock.Timestamp) {
	trace.Debug(ctx, in.log, "source changed", slog.String("time", t.String()))
	if in.callback != nil {
		in.callback(ctx, in, t)
	}
}
