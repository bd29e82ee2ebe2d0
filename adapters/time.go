package adapters

import (
	"context"
	"log/slog"

	"github.com/finam-ufz/finam-sub001/clock"
	"github.com/finam-ufz/finam-sub001/ferr"
	"github.com/finam-ufz/finam-sub001/info"
	"github.com/finam-ufz/finam-sub001/internal/trace"
	"github.com/finam-ufz/finam-sub001/port"
)

// LinearInterpolation bridges a rate mismatch by linearly interpolating
// between the two buffered points bracketing the query time, clamping to
// the nearest buffered value outside the buffered range.
type LinearInterpolation struct {
	history
}

// NewLinearInterpolation constructs a LinearInterpolation adapter.
func NewLinearInterpolation(name string) *LinearInterpolation {
	return &LinearInterpolation{history: newHistory(name)}
}

// ExchangeInfo forwards the request upstream unchanged: interpolation
// changes no aspect of the data's shape, grid, or units.
func (a *LinearInterpolation) ExchangeInfo(ctx context.Context, requested info.Info) (_ info.Info, retErr error) {
	op := trace.Begin(ctx, a.log, "finam.adapters.exchange_info")
	defer func() { op.End(retErr) }()

	if err := a.requireSource(); err != nil {
		return info.Info{}, err
	}
	delivered, err := a.source.ExchangeInfo(ctx, requested)
	if err != nil {
		return info.Info{}, err
	}
	a.recordExchange()
	a.setInfo(delivered)
	return delivered, nil
}

// GetData returns the interpolated value at t.
func (a *LinearInterpolation) GetData(ctx context.Context, t clock.Timestamp) (_ any, retErr error) {
	op := trace.Begin(ctx, a.log, "finam.adapters.get_data", slog.String("time", t.String()))
	defer func() { op.End(retErr) }()

	if !a.handshakeComplete() {
		return nil, ferr.New(ferr.KindNoData, a.name, "", "info exchange is not complete")
	}
	v, err := lerpAt(a.name, a.buf, t)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Chain adds other as a target of a and sets a as other's source.
func (a *LinearInterpolation) Chain(other port.Target) port.Target {
	a.AddTarget(other)
	_ = other.SetSource(a)
	return other
}

// Step bridges a rate mismatch by reporting one of the two buffered values
// bracketing the query: the later value while the query lies before the
// configured breakpoint fraction of the interval, and the earlier value
// from the breakpoint on (see stepAt).
type Step struct {
	history
	step float64
}

// NewStep constructs a Step adapter with the given breakpoint fraction,
// clamped to [0, 1].
func NewStep(name string, step float64) *Step {
	switch {
	case step < 0:
		step = 0
	case step > 1:
		step = 1
	}
	return &Step{history: newHistory(name), step: step}
}

// NewNextValue constructs a Step adapter equivalent to step=1: the value
// reported for any query strictly inside an interval is always the
// upcoming (not yet reached) point, falling back to the last buffered
// value once the query moves past every buffered point.
func NewNextValue(name string) *Step {
	return NewStep(name, 1)
}

// ExchangeInfo forwards the request upstream unchanged.
func (a *Step) ExchangeInfo(ctx context.Context, requested info.Info) (_ info.Info, retErr error) {
	op := trace.Begin(ctx, a.log, "finam.adapters.exchange_info")
	defer func() { op.End(retErr) }()

	if err := a.requireSource(); err != nil {
		return info.Info{}, err
	}
	delivered, err := a.source.ExchangeInfo(ctx, requested)
	if err != nil {
		return info.Info{}, err
	}
	a.recordExchange()
	a.setInfo(delivered)
	return delivered, nil
}

// GetData returns the step-interpolated value at t.
func (a *Step) GetData(ctx context.Context, t clock.Timestamp) (_ any, retErr error) {
	op := trace.Begin(ctx, a.log, "finam.adapters.get_data", slog.String("time", t.String()))
	defer func() { op.End(retErr) }()

	if !a.handshakeComplete() {
		return nil, ferr.New(ferr.KindNoData, a.name, "", "info exchange is not complete")
	}
	v, err := stepAt(a.name, a.buf, t, a.step)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Chain adds other as a target of a and sets a as other's source.
func (a *Step) Chain(other port.Target) port.Target {
	a.AddTarget(other)
	_ = other.SetSource(a)
	return other
}
