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

// Integration bridges a rate mismatch by integrating the upstream signal
// over the interval since the last pull, reporting either the running sum
// or the time-weighted mean. It maintains a cursor t_prev — the timestamp
// of the last pull — and requires every later pull to not precede it; once
// a region has been integrated over, the buffered points behind the cursor
// are pruned, since [port.NoBranchAdapter] below forbids more than one
// consumer from advancing that cursor independently.
type Integration struct {
	history
	mean bool

	hasCursor bool
	cursor    clock.Timestamp
}

// NewIntegrationSum constructs an Integration adapter that reports the
// running integral (e.g. accumulated volume from a flux) since the last
// pull.
func NewIntegrationSum(name string) *Integration {
	return &Integration{history: newHistory(name)}
}

// NewIntegrationMean constructs an Integration adapter that reports the
// time-weighted mean over the interval since the last pull.
func NewIntegrationMean(name string) *Integration {
	return &Integration{history: newHistory(name), mean: true}
}

// NoBranch reports true: an integration adapter's cursor is advanced and
// pruned as a side effect of GetData, so a second independent consumer
// pulling on its own schedule would silently see a different, inconsistent
// integration window.
func (a *Integration) NoBranch() bool { return true }

// ExchangeInfo forwards the request upstream unchanged: integration
// changes the data's values, not its grid or units.
func (a *Integration) ExchangeInfo(ctx context.Context, requested info.Info) (_ info.Info, retErr error) {
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

// GetData returns the sum or mean of the upstream signal over
// [cursor, t], then advances the cursor to t.
func (a *Integration) GetData(ctx context.Context, t clock.Timestamp) (_ any, retErr error) {
	op := trace.Begin(ctx, a.log, "finam.adapters.get_data", slog.String("time", t.String()))
	defer func() { op.End(retErr) }()

	if !a.handshakeComplete() {
		return nil, ferr.New(ferr.KindNoData, a.name, "", "info exchange is not complete")
	}
	if len(a.buf) == 0 {
		return nil, ferr.New(ferr.KindNoData, a.name, "", "no data has been pushed yet")
	}
	if !a.hasCursor {
		a.cursor = a.buf[0].t
		a.hasCursor = true
	}
	if t.Before(a.cursor) {
		return nil, ferr.New(ferr.KindTime, a.name, "",
			"pull time %s precedes the integration cursor %s", t, a.cursor)
	}

	integral, err := a.integrate(a.cursor, t)
	if err != nil {
		return nil, err
	}
	elapsed := t.Sub(a.cursor)
	a.cursor = t
	a.pruneBefore(a.cursor)

	if !a.mean {
		return integral, nil
	}
	if elapsed == 0 {
		return lerpAt(a.name, a.buf, t)
	}
	return integral / seconds(elapsed), nil
}

// integrate computes the trapezoidal integral of the buffered signal over
// [from, to], using interpolated boundary values at both ends.
func (a *Integration) integrate(from, to clock.Timestamp) (float64, error) {
	if from.Equal(to) {
		return 0, nil
	}
	vFrom, err := lerpAt(a.name, a.buf, from)
	if err != nil {
		return 0, err
	}
	vTo, err := lerpAt(a.name, a.buf, to)
	if err != nil {
		return 0, err
	}

	knots := make([]point, 0, len(a.buf)+2)
	knots = append(knots, point{t: from, v: vFrom})
	for _, p := range a.buf {
		if p.t.After(from) && p.t.Before(to) {
			knots = append(knots, p)
		}
	}
	knots = append(knots, point{t: to, v: vTo})

	var sum float64
	for i := 0; i < len(knots)-1; i++ {
		span := seconds(knots[i+1].t.Sub(knots[i].t))
		sum += (knots[i].v + knots[i+1].v) / 2 * span
	}
	return sum, nil
}

// seconds expresses d as a plain float64 count of [clock.Second]: the
// integration adapter treats one simulated second as the unit quantity
// rate, so "1.0 per second" integrated over 5 seconds comes out to 5.0.
func seconds(d clock.Duration) float64 {
	return float64(d) / float64(clock.Second)
}

// Chain adds other as a target of a and sets a as other's source.
func (a *Integration) Chain(other port.Target) port.Target {
	a.AddTarget(other)
	_ = other.SetSource(a)
	return other
}
