package adapters

import (
	"context"
	"log/slog"

	"github.com/finam-ufz/finam-sub001/clock"
	"github.com/finam-ufz/finam-sub001/ferr"
	"github.com/finam-ufz/finam-sub001/info"
	"github.com/finam-ufz/finam-sub001/internal/trace"
	"github.com/finam-ufz/finam-sub001/port"
	"github.com/finam-ufz/finam-sub001/units"
)

// Unit converts a scalar stream from its upstream declared units to the
// units requested by its downstream consumer, grounded on
// original_source/src/finam/adapters/units.py's ConvertUnits: it records
// the downstream's requested units on the first exchange and fails if a
// later exchange asks for different units, since a single adapter
// instance can only ever convert to one target unit.
type Unit struct {
	Base
	converter units.Converter

	fromUnits string
	toUnits   string
	set       bool
}

// NewUnit constructs a Unit adapter using converter to convert values.
// converter defaults to [units.Identity] if nil, which only ever accepts
// a no-op conversion.
func NewUnit(name string, converter units.Converter) *Unit {
	if converter == nil {
		converter = units.Identity()
	}
	return &Unit{Base: NewBase(name), converter: converter}
}

// ExchangeInfo requires requested to declare target units, forwards the
// request upstream with its units left as a placeholder for the upstream
// side to fill, and overrides the delivered info's units with the
// requested ones, since GetData will have already converted the value by
// the time it is observed downstream.
func (a *Unit) ExchangeInfo(ctx context.Context, requested info.Info) (_ info.Info, retErr error) {
	op := trace.Begin(ctx, a.log, "finam.adapters.exchange_info")
	defer func() { op.End(retErr) }()

	target, ok := requested.Units()
	if !ok {
		return info.Info{}, ferr.New(ferr.KindMetadata, a.name, "", "requested info has no target units")
	}
	if a.set && a.toUnits != target {
		return info.Info{}, ferr.New(ferr.KindMetadata, a.name, "",
			"target units already fixed to %q, cannot also serve %q", a.toUnits, target)
	}
	if err := a.requireSource(); err != nil {
		return info.Info{}, err
	}
	upstreamMeta := requested.Meta.Clone()
	upstreamMeta["units"] = nil
	upstreamRequest := requested
	upstreamRequest.Meta = info.NewMeta(upstreamMeta)
	delivered, err := a.source.ExchangeInfo(ctx, upstreamRequest)
	if err != nil {
		return info.Info{}, err
	}
	from, ok := delivered.Units()
	if !ok {
		return info.Info{}, ferr.New(ferr.KindMetadata, a.name, "", "upstream info has no units to convert from")
	}

	a.fromUnits = from
	a.toUnits = target
	a.set = true
	a.recordExchange()

	meta := delivered.Meta.Clone()
	if meta == nil {
		meta = map[string]any{}
	}
	meta["units"] = target
	delivered.Meta = info.NewMeta(meta)
	a.setInfo(delivered)
	return delivered, nil
}

// GetData pulls the upstream value and converts it from the upstream's
// declared units to the requested units.
func (a *Unit) GetData(ctx context.Context, t clock.Timestamp) (_ any, retErr error) {
	op := trace.Begin(ctx, a.log, "finam.adapters.get_data", slog.String("time", t.String()))
	defer func() { op.End(retErr) }()

	if err := a.requireSource(); err != nil {
		return nil, err
	}
	if !a.handshakeComplete() {
		return nil, ferr.New(ferr.KindNoData, a.name, "", "info exchange is not complete")
	}
	value, err := a.source.GetData(ctx, t)
	if err != nil {
		return nil, err
	}
	scalar, ok := value.(float64)
	if !ok {
		return nil, ferr.New(ferr.KindMetadata, a.name, "", "unit adapter requires a float64 payload")
	}
	converted, err := a.converter.Convert(scalar, a.fromUnits, a.toUnits)
	if err != nil {
		return nil, ferr.Wrap(ferr.KindMetadata, a.name, "", err, "unit conversion failed")
	}
	return converted, nil
}

// Chain adds other as a target of a and sets a as other's source.
func (a *Unit) Chain(other port.Target) port.Target {
	a.AddTarget(other)
	_ = other.SetSource(a)
	return other
}
