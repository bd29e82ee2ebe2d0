package port_test

import (
	"context"
	"testing"

	"github.com/finam-ufz/finam-sub001/clock"
	"github.com/finam-ufz/finam-sub001/ferr"
	"github.com/finam-ufz/finam-sub001/info"
	"github.com/finam-ufz/finam-sub001/port"
	"github.com/finam-ufz/finam-sub001/units"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// differingInfoOutput wraps an *port.Output to report a different Info
// from its own Info() than what it actually negotiated during
// ExchangeInfo, modeling a producer whose declared units were left
// unfilled at handshake time but whose real data is in different units.
type differingInfoOutput struct {
	*port.Output
	own info.Info
}

func (d *differingInfoOutput) Info() info.Info { return d.own }

func TestInput_SetSourceTwiceFails(t *testing.T) {
	in := port.NewInput("x")
	out1 := port.NewOutput("a")
	out2 := port.NewOutput("b")

	require.NoError(t, in.SetSource(out1))
	err := in.SetSource(out2)
	assert.ErrorIs(t, err, ferr.KindLink)
}

func TestInput_Ping_BlocksPushUntilEveryTargetExchanges(t *testing.T) {
	out := port.NewOutputWithInfo("a", scalarInfo(map[string]any{"units": "m"}))
	in1 := port.NewInputWithInfo("x1", scalarInfo(map[string]any{"units": "m"}))
	in2 := port.NewInputWithInfo("x2", scalarInfo(map[string]any{"units": "m"}))

	out.AddTarget(in1)
	out.AddTarget(in2)
	require.NoError(t, in1.SetSource(out))
	require.NoError(t, in2.SetSource(out))
	in1.Ping()
	in2.Ping()

	ctx := context.Background()
	_, err := in1.ExchangeInfo(ctx, nil)
	require.NoError(t, err)

	err = out.PushData(ctx, 1.0, clock.At(0))
	assert.True(t, ferr.IsNoData(err))

	_, err = in2.ExchangeInfo(ctx, nil)
	require.NoError(t, err)

	require.NoError(t, out.PushData(ctx, 1.0, clock.At(0)))
}

func TestInput_ExchangeInfo_NoSourceFails(t *testing.T) {
	in := port.NewInputWithInfo("x", scalarInfo(map[string]any{"units": "m"}))
	_, err := in.ExchangeInfo(context.Background(), nil)
	assert.ErrorIs(t, err, ferr.KindLink)
}

func TestInput_ExchangeInfo_TwiceFails(t *testing.T) {
	out := port.NewOutputWithInfo("a", scalarInfo(map[string]any{"units": "m"}))
	in := port.NewInputWithInfo("x", scalarInfo(map[string]any{"units": "m"}))
	out.AddTarget(in)
	require.NoError(t, in.SetSource(out))
	in.Ping()

	ctx := context.Background()
	_, err := in.ExchangeInfo(ctx, nil)
	require.NoError(t, err)

	_, err = in.ExchangeInfo(ctx, nil)
	assert.ErrorIs(t, err, ferr.KindMetadata)
}

func TestInput_PullData_PropagatesNoData(t *testing.T) {
	out := port.NewOutputWithInfo("a", scalarInfo(map[string]any{"units": "m"}))
	in := port.NewInputWithInfo("x", scalarInfo(map[string]any{"units": "m"}))
	out.AddTarget(in)
	require.NoError(t, in.SetSource(out))
	in.Ping()

	_, err := in.ExchangeInfo(context.Background(), nil)
	require.NoError(t, err)

	_, err = in.PullData(context.Background(), clock.At(0))
	assert.True(t, ferr.IsNoData(err))
}

func TestInput_PullData_ReturnsPushedValue(t *testing.T) {
	out := port.NewOutputWithInfo("a", scalarInfo(map[string]any{"units": "m"}))
	in := port.NewInputWithInfo("x", scalarInfo(map[string]any{"units": "m"}))
	out.AddTarget(in)
	require.NoError(t, in.SetSource(out))
	in.Ping()

	ctx := context.Background()
	_, err := in.ExchangeInfo(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, out.PushData(ctx, 3.5, clock.At(0)))

	v, err := in.PullData(ctx, clock.At(0))
	require.NoError(t, err)
	assert.Equal(t, 3.5, v)
}

func TestInput_PullData_ConvertsUnitsWhenSourceDiffersFromDeclared(t *testing.T) {
	out := port.NewOutputWithInfo("a", scalarInfo(map[string]any{"units": "m"}))
	wrapped := &differingInfoOutput{Output: out, own: scalarInfo(map[string]any{"units": "cm"})}

	in := port.NewInputWithInfo("x", scalarInfo(map[string]any{"units": "m"}))
	in.SetConverter(units.SI)

	wrapped.AddTarget(in)
	require.NoError(t, in.SetSource(wrapped))
	in.Ping()

	ctx := context.Background()
	_, err := in.ExchangeInfo(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, out.PushData(ctx, 250.0, clock.At(0)))

	v, err := in.PullData(ctx, clock.At(0))
	require.NoError(t, err)
	assert.Equal(t, 2.5, v)
}

func TestInput_PullData_IdentityConverterFailsOnUnitMismatch(t *testing.T) {
	out := port.NewOutputWithInfo("a", scalarInfo(map[string]any{"units": "m"}))
	wrapped := &differingInfoOutput{Output: out, own: scalarInfo(map[string]any{"units": "cm"})}

	in := port.NewInputWithInfo("x", scalarInfo(map[string]any{"units": "m"}))

	wrapped.AddTarget(in)
	require.NoError(t, in.SetSource(wrapped))
	in.Ping()

	ctx := context.Background()
	_, err := in.ExchangeInfo(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, out.PushData(ctx, 250.0, clock.At(0)))

	_, err = in.PullData(ctx, clock.At(0))
	assert.ErrorIs(t, err, ferr.KindMetadata)
}

func TestCallbackInput_SourceChangedInvokesCallback(t *testing.T) {
	var gotTime clock.Timestamp
	called := false
	in := port.NewCallbackInput("x", func(_ context.Context, _ *port.CallbackInput, t clock.Timestamp) {
		called = true
		gotTime = t
	})

	in.SourceChanged(context.Background(), clock.At(42))
	assert.True(t, called)
	assert.Equal(t, clock.At(42), gotTime)
}
