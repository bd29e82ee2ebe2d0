package adapters

import (
	"context"
	"log/slog"

	"github.com/finam-ufz/finam-sub001/clock"
	"github.com/finam-ufz/finam-sub001/ferr"
	"github.com/finam-ufz/finam-sub001/finamgrid"
	"github.com/finam-ufz/finam-sub001/info"
	"github.com/finam-ufz/finam-sub001/internal/trace"
	"github.com/finam-ufz/finam-sub001/port"
)

// GridReduction is a reducer from a [finamgrid.Grid]-valued payload to a
// [finamgrid.Grid].Mean or .Sum, used to connect a spatially resolved
// producer to a scalar-expecting consumer. It advertises [finamgrid.NoGrid]
// downstream and requires the upstream info to declare a real grid.
type GridReduction struct {
	Base
	mean bool
}

// NewGridMean constructs a GridReduction that reports the mean of the
// upstream grid's values.
func NewGridMean(name string) *GridReduction {
	return &GridReduction{Base: NewBase(name), mean: true}
}

// NewGridSum constructs a GridReduction that reports the sum of the
// upstream grid's values.
func NewGridSum(name string) *GridReduction {
	return &GridReduction{Base: NewBase(name)}
}

// ExchangeInfo requests the upstream's real grid (requested's own grid is
// ignored since upstream must carry a grid for there to be anything to
// reduce) and declares [finamgrid.NoGrid] downstream.
func (a *GridReduction) ExchangeInfo(ctx context.Context, requested info.Info) (_ info.Info, retErr error) {
	op := trace.Begin(ctx, a.log, "finam.adapters.exchange_info")
	defer func() { op.End(retErr) }()

	if err := a.requireSource(); err != nil {
		return info.Info{}, err
	}
	upstreamRequest := requested
	upstreamRequest.Grid = nil
	delivered, err := a.source.ExchangeInfo(ctx, upstreamRequest)
	if err != nil {
		return info.Info{}, err
	}
	if delivered.Grid == nil {
		return info.Info{}, ferr.New(ferr.KindMetadata, a.name, "", "upstream did not declare a grid to reduce")
	}
	a.recordExchange()

	out := delivered
	out.Grid = finamgrid.NoGrid{}
	a.setInfo(out)
	return out, nil
}

// GetData pulls the upstream grid and reduces it to a scalar.
func (a *GridReduction) GetData(ctx context.Context, t clock.Timestamp) (_ any, retErr error) {
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
	grid, ok := value.(finamgrid.Grid)
	if !ok {
		return nil, ferr.New(ferr.KindMetadata, a.name, "", "grid reduction adapter requires a finamgrid.Grid payload")
	}
	if a.mean {
		return grid.Mean(), nil
	}
	return grid.Sum(), nil
}

// Chain adds other as a target of a and sets a as other's source.
func (a *GridReduction) Chain(other port.Target) port.Target {
	a.AddTarget(other)
	_ = other.SetSource(a)
	return other
}
