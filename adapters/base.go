// Package adapters implements the transformation nodes that sit between a
// producer's Output and a consumer's Input: stateless unit and grid
// conversion, and the time-bridging family (linear interpolation, step,
// next-value, linear integration) that reconciles mismatched producer and
// consumer rates.
package adapters

import (
	"context"
	"log/slog"

	"github.com/finam-ufz/finam-sub001/clock"
	"github.com/finam-ufz/finam-sub001/ferr"
	"github.com/finam-ufz/finam-sub001/info"
	"github.com/finam-ufz/finam-sub001/port"
)

// Base holds the bookkeeping every adapter shares: the single upstream
// source, the downstream target list, the connected-input/exchanged-info
// counters that gate each concrete adapter's GetData the way
// [port.Output]'s gate its GetData (Base.PushData is not gated), and
// the Info the adapter last handed downstream (an adapter simultaneously
// satisfies the input and output contracts). Concrete adapters embed Base
// and add their own GetData (the transform) and ExchangeInfo (how the
// adapter reshapes the negotiated Info, recorded via setInfo); Base's
// defaults cover everything that doesn't vary between adapter kinds.
type Base struct {
	name string
	log  *slog.Logger

	source  port.IOutput
	targets []port.Target

	declaredInfo info.Info

	connectedInputs int
	infosExchanged  int
}

// NewBase constructs a Base for an adapter named name.
func NewBase(name string) Base { return Base{name: name} }

// SetLogger attaches l as the adapter's logger; see [port.Output.SetLogger].
func (b *Base) SetLogger(l *slog.Logger) { b.log = l }

// Name returns the adapter's name.
func (b *Base) Name() string { return b.name }

// --- downstream (IOutput) side ---

// IsPushBased reports false: adapters never require an initial push of
// their own, they are driven by upstream pushes.
func (b *Base) IsPushBased() bool { return false }

// HasInfo reports whether the adapter is wired to a source that could, in
// principle, supply an Info. The actual Info only becomes available once
// ExchangeInfo succeeds.
func (b *Base) HasInfo() bool { return b.source != nil }

// Info returns the adapter's current declared Info, as last recorded by
// its own ExchangeInfo via setInfo.
func (b *Base) Info() info.Info { return b.declaredInfo }

// PushInfo always fails: an adapter's Info flows from upstream through
// ExchangeInfo, not from an externally pushed declaration.
func (b *Base) PushInfo(info.Info) error {
	return ferr.New(ferr.KindMetadata, b.name, "",
		"adapters derive their info from upstream exchange, not an external push")
}

// AddTarget registers target as a downstream consumer.
func (b *Base) AddTarget(target port.Target) { b.targets = append(b.targets, target) }

// Targets returns the adapter's registered downstream consumers.
func (b *Base) Targets() []port.Target { return b.targets }

// HasTargets reports whether any target has been added.
func (b *Base) HasTargets() bool { return len(b.targets) > 0 }

// Pinged increments the connected-input count.
func (b *Base) Pinged() { b.connectedInputs++ }

// PushData notifies every downstream target without storing value itself:
// an adapter never keeps the full product stream.
func (b *Base) PushData(ctx context.Context, _ any, t clock.Timestamp) error {
	b.forwardNotify(ctx, t)
	return nil
}

func (b *Base) forwardNotify(ctx context.Context, t clock.Timestamp) {
	for _, target := range b.targets {
		target.SourceChanged(ctx, t)
	}
}

// handshakeComplete reports whether every connected downstream input has
// completed its info exchange with this adapter.
func (b *Base) handshakeComplete() bool {
	if !b.HasTargets() {
		return true
	}
	return b.infosExchanged >= b.connectedInputs
}

// recordExchange increments the exchanged-info count; concrete adapters
// call this once their own ExchangeInfo logic succeeds.
func (b *Base) recordExchange() { b.infosExchanged++ }

// setInfo records i as the adapter's current declared Info; concrete
// adapters call this from their own ExchangeInfo once they've computed
// the Info they hand downstream.
func (b *Base) setInfo(i info.Info) { b.declaredInfo = i }

// --- upstream (IInput) side ---

// SetSource sets the adapter's single upstream source. Fails with a link
// error if a source is already set.
func (b *Base) SetSource(source port.IOutput) error {
	if b.source != nil {
		return ferr.New(ferr.KindLink, b.name, "", "source is already set")
	}
	b.source = source
	return nil
}

// Source returns the adapter's upstream source, or nil if unset.
func (b *Base) Source() port.IOutput { return b.source }

// HasSource reports whether a source has been set.
func (b *Base) HasSource() bool { return b.source != nil }

// Ping informs the source that one more consumer exists.
func (b *Base) Ping() {
	if b.source != nil {
		b.source.Pinged()
	}
}

// SourceChanged is the default notification hook: it simply forwards to
// every downstream target, matching a stateless adapter (unit conversion,
// grid reduction). Time-bridging adapters override this to pull and
// record the new value in their history buffer first.
func (b *Base) SourceChanged(ctx context.Context, t clock.Timestamp) {
	b.forwardNotify(ctx, t)
}

// PullData retrieves data directly from the adapter's own source, bypassing
// this adapter's transform. It satisfies [port.IAdapter]'s input facet;
// nothing in this package's own chain-building calls it, since GetData
// (which applies the transform) is what a downstream Input actually
// invokes when it pulls through an adapter.
func (b *Base) PullData(ctx context.Context, t clock.Timestamp) (any, error) {
	if err := b.requireSource(); err != nil {
		return nil, err
	}
	return b.source.GetData(ctx, t)
}

// requireSource returns a link error if the adapter has no source yet.
func (b *Base) requireSource() error {
	if b.source == nil {
		return ferr.New(ferr.KindLink, b.name, "", "adapter has no source")
	}
	return nil
}
