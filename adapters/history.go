package adapters

import (
	"context"
	"log/slog"

	"github.com/finam-ufz/finam-sub001/clock"
	"github.com/finam-ufz/finam-sub001/ferr"
	"github.com/finam-ufz/finam-sub001/internal/trace"
)

// point is a single buffered (time, value) sample.
type point struct {
	t clock.Timestamp
	v float64
}

// history is the shared buffer mechanics for the time-bridging adapters
// (linear interpolation, step, next-value, linear integration): every
// pushed upstream value is appended on SourceChanged, in ascending time
// order, since a producer's step is monotone but not necessarily regular.
//
// history embeds Base so concrete adapter types only need to embed
// history itself to get the full upstream/downstream bookkeeping plus the
// buffer.
type history struct {
	Base
	buf []point
}

func newHistory(name string) history {
	return history{Base: NewBase(name)}
}

// SourceChanged pulls the just-pushed value from the source, appends it to
// the buffer, and forwards the notification downstream. A failed or
// non-scalar pull is logged and dropped rather than propagated, since
// SourceChanged has no error return in [port.IInput]; the next GetData
// works from the points already buffered, and fails with a no-data error
// only if none are.
func (h *history) SourceChanged(ctx context.Context, t clock.Timestamp) {
	op := trace.Begin(ctx, h.log, "finam.adapters.source_changed", slog.String("time", t.String()))
	var retErr error
	defer func() { op.End(retErr) }()

	if h.source == nil {
		retErr = ferr.New(ferr.KindLink, h.name, "", "adapter has no source")
		return
	}
	value, err := h.source.GetData(ctx, t)
	if err != nil {
		trace.Debug(ctx, h.log, "dropping source_changed notification: pull failed",
			slog.String("error", err.Error()))
		retErr = err
	} else if scalar, ok := value.(float64); ok {
		h.append(t, scalar)
	} else {
		trace.Warn(ctx, h.log, "dropping non-scalar value pushed to time-bridging adapter")
	}
	h.forwardNotify(ctx, t)
}

// append records (t, v) at the end of the buffer. A repeated push at the
// timestamp of the last buffered point overwrites that point rather than
// duplicating it; any other timestamp is appended without reordering, so
// the buffer stays in ascending time order only while pushes arrive in
// time order.
func (h *history) append(t clock.Timestamp, v float64) {
	n := len(h.buf)
	if n > 0 && h.buf[n-1].t.Equal(t) {
		h.buf[n-1].v = v
		return
	}
	h.buf = append(h.buf, point{t: t, v: v})
}

// pruneBefore discards every buffered point strictly before keep, leaving
// at most one point at or before keep as the left anchor for future
// queries. Used by the integration adapter once its cursor advances past
// a point, since nothing before the cursor can ever be queried again.
func (h *history) pruneBefore(keep clock.Timestamp) {
	cut := 0
	for cut < len(h.buf)-1 && h.buf[cut+1].t.Compare(keep) <= 0 {
		cut++
	}
	if cut > 0 {
		h.buf = h.buf[cut:]
	}
}

// exactMatch returns the buffered value at exactly t, if any, satisfying
// the idempotence invariant f(tᵢ) = vᵢ for every interpolation kind.
func exactMatch(buf []point, t clock.Timestamp) (float64, bool) {
	for _, p := range buf {
		if p.t.Equal(t) {
			return p.v, true
		}
	}
	return 0, false
}

// bracket locates the unique pair of consecutive buffered points
// surrounding t, or reports that t falls before the first / after the
// last buffered point.
func bracket(buf []point, t clock.Timestamp) (lo, hi point, beforeFirst, afterLast bool) {
	if t.Before(buf[0].t) {
		return buf[0], buf[0], true, false
	}
	last := buf[len(buf)-1]
	if t.After(last.t) {
		return last, last, false, true
	}
	for i := 0; i < len(buf)-1; i++ {
		a, b := buf[i], buf[i+1]
		if !t.Before(a.t) && !t.After(b.t) {
			return a, b, false, false
		}
	}
	return last, last, false, true
}

// lerpAt returns the linearly interpolated value at t: clamped to the
// nearest buffered value outside the buffered range, exact at a buffered
// point, linear between the bracketing pair otherwise:
// v_i + (v_i+1 - v_i) * (t - t_i)/(t_i+1 - t_i).
func lerpAt(name string, buf []point, t clock.Timestamp) (float64, error) {
	if len(buf) == 0 {
		return 0, ferr.New(ferr.KindNoData, name, "", "no data has been pushed yet")
	}
	if v, ok := exactMatch(buf, t); ok {
		return v, nil
	}
	lo, hi, before, after := bracket(buf, t)
	if before || after {
		return lo.v, nil
	}
	span := hi.t.Sub(lo.t)
	frac := float64(t.Sub(lo.t)) / float64(span)
	return lo.v + (hi.v-lo.v)*frac, nil
}

// stepAt returns the step-interpolated value at t for the given
// breakpoint fraction step ∈ [0, 1]. Within an open interval (t_i,
// t_i+1), the reported value is v_i once the query has covered at least
// a step fraction of the interval measured from t_i, and v_i+1
// otherwise: step=0 therefore holds v_i throughout the interval
// (zero-order hold / "hold previous", switching only exactly at t_i+1,
// already handled by the exact-match case), and step=1 reports v_i+1 as
// soon as the interval is entered ("next value").
func stepAt(name string, buf []point, t clock.Timestamp, step float64) (float64, error) {
	if len(buf) == 0 {
		return 0, ferr.New(ferr.KindNoData, name, "", "no data has been pushed yet")
	}
	if v, ok := exactMatch(buf, t); ok {
		return v, nil
	}
	lo, hi, before, after := bracket(buf, t)
	if before || after {
		return lo.v, nil
	}
	span := hi.t.Sub(lo.t)
	frac := float64(t.Sub(lo.t)) / float64(span)
	if frac < step {
		return hi.v, nil
	}
	return lo.v, nil
}
