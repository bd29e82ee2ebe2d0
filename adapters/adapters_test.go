package adapters_test

import (
	"context"
	"testing"

	"github.com/finam-ufz/finam-sub001/adapters"
	"github.com/finam-ufz/finam-sub001/clock"
	"github.com/finam-ufz/finam-sub001/finamgrid"
	"github.com/finam-ufz/finam-sub001/info"
	"github.com/finam-ufz/finam-sub001/port"
	"github.com/finam-ufz/finam-sub001/units"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scalarInfo(meta map[string]any) info.Info {
	return info.New(finamgrid.NoGrid{}, meta)
}

// link wires producer -> adapter -> consumer, drives Ping and a single
// ExchangeInfo round trip, and returns the consumer input ready to pull.
func link(t *testing.T, producer *port.Output, adapter port.IAdapter, reqUnits string) *port.Input {
	t.Helper()
	consumer := port.NewInputWithInfo("consumer", scalarInfo(map[string]any{"units": reqUnits}))

	producer.Chain(adapter)
	adapter.Chain(consumer)
	consumer.Ping()

	_, err := consumer.ExchangeInfo(context.Background(), nil)
	require.NoError(t, err)
	return consumer
}

func TestLinearInterpolation_RateMismatch(t *testing.T) {
	producer := port.NewOutputWithInfo("producer", scalarInfo(map[string]any{"units": "m"}))
	lerp := adapters.NewLinearInterpolation("lerp")
	consumer := link(t, producer, lerp, "m")

	ctx := context.Background()
	require.NoError(t, producer.PushData(ctx, 0.0, clock.At(0)))
	require.NoError(t, producer.PushData(ctx, 10.0, clock.At(int64(10*clock.Second))))

	v, err := consumer.PullData(ctx, clock.At(int64(5*clock.Second)))
	require.NoError(t, err)
	assert.InDelta(t, 5.0, v.(float64), 1e-9)

	v, err = consumer.PullData(ctx, clock.At(0))
	require.NoError(t, err)
	assert.InDelta(t, 0.0, v.(float64), 1e-9)

	v, err = consumer.PullData(ctx, clock.At(int64(20*clock.Second)))
	require.NoError(t, err)
	assert.InDelta(t, 10.0, v.(float64), 1e-9)
}

func TestStep_HoldPrevious(t *testing.T) {
	producer := port.NewOutputWithInfo("producer", scalarInfo(map[string]any{"units": "m"}))
	step := adapters.NewStep("step", 0)
	consumer := link(t, producer, step, "m")

	ctx := context.Background()
	require.NoError(t, producer.PushData(ctx, 10.0, clock.At(0)))
	require.NoError(t, producer.PushData(ctx, 20.0, clock.At(int64(3*clock.Second))))

	v, err := consumer.PullData(ctx, clock.At(int64(1*clock.Second)))
	require.NoError(t, err)
	assert.Equal(t, 10.0, v)

	v, err = consumer.PullData(ctx, clock.At(int64(3*clock.Second)))
	require.NoError(t, err)
	assert.Equal(t, 20.0, v)
}

func TestNextValue_Scenario(t *testing.T) {
	producer := port.NewOutputWithInfo("producer", scalarInfo(map[string]any{"units": "m"}))
	next := adapters.NewNextValue("next")
	consumer := link(t, producer, next, "m")

	ctx := context.Background()
	require.NoError(t, producer.PushData(ctx, 10.0, clock.At(0)))
	require.NoError(t, producer.PushData(ctx, 20.0, clock.At(int64(3*clock.Second))))
	require.NoError(t, producer.PushData(ctx, 30.0, clock.At(int64(6*clock.Second))))

	cases := []struct {
		t    int64
		want float64
	}{
		{1, 20.0},
		{3, 20.0},
		{4, 30.0},
		{7, 30.0},
	}
	for _, c := range cases {
		v, err := consumer.PullData(ctx, clock.At(c.t*int64(clock.Second)))
		require.NoError(t, err)
		assert.Equal(t, c.want, v, "t=%d", c.t)
	}
}

func TestIntegrationSum_ConstantRate(t *testing.T) {
	producer := port.NewOutputWithInfo("producer", scalarInfo(map[string]any{"units": "m"}))
	integ := adapters.NewIntegrationSum("integral")
	consumer := link(t, producer, integ, "m")

	ctx := context.Background()
	for i := int64(0); i <= 10; i++ {
		require.NoError(t, producer.PushData(ctx, 1.0, clock.At(i*int64(clock.Second))))
	}

	v, err := consumer.PullData(ctx, clock.At(5*int64(clock.Second)))
	require.NoError(t, err)
	assert.InDelta(t, 5.0, v.(float64), 1e-9)

	v, err = consumer.PullData(ctx, clock.At(10*int64(clock.Second)))
	require.NoError(t, err)
	assert.InDelta(t, 5.0, v.(float64), 1e-9)
}

func TestIntegrationMean_ConstantRate(t *testing.T) {
	producer := port.NewOutputWithInfo("producer", scalarInfo(map[string]any{"units": "m"}))
	integ := adapters.NewIntegrationMean("mean")
	consumer := link(t, producer, integ, "m")

	ctx := context.Background()
	for i := int64(0); i <= 10; i++ {
		require.NoError(t, producer.PushData(ctx, 2.0, clock.At(i*int64(clock.Second))))
	}

	v, err := consumer.PullData(ctx, clock.At(5*int64(clock.Second)))
	require.NoError(t, err)
	assert.InDelta(t, 2.0, v.(float64), 1e-9)
}

func TestIntegration_PullBeforeCursorIsTimeError(t *testing.T) {
	producer := port.NewOutputWithInfo("producer", scalarInfo(map[string]any{"units": "m"}))
	integ := adapters.NewIntegrationSum("integral")
	consumer := link(t, producer, integ, "m")

	ctx := context.Background()
	for i := int64(0); i <= 10; i++ {
		require.NoError(t, producer.PushData(ctx, 1.0, clock.At(i*int64(clock.Second))))
	}
	_, err := consumer.PullData(ctx, clock.At(5*int64(clock.Second)))
	require.NoError(t, err)

	_, err = consumer.PullData(ctx, clock.At(2*int64(clock.Second)))
	require.Error(t, err)
}

func TestIntegration_IsNoBranchAdapter(t *testing.T) {
	var _ port.NoBranchAdapter = adapters.NewIntegrationSum("integral")
	assert.True(t, adapters.NewIntegrationSum("integral").NoBranch())
}

func TestUnitAdapter_Converts(t *testing.T) {
	producer := port.NewOutputWithInfo("producer", scalarInfo(map[string]any{"units": "m"}))
	conv := adapters.NewUnit("to-cm", units.SI)
	consumer := link(t, producer, conv, "cm")

	ctx := context.Background()
	require.NoError(t, producer.PushData(ctx, 2.0, clock.At(0)))

	v, err := consumer.PullData(ctx, clock.At(0))
	require.NoError(t, err)
	assert.InDelta(t, 200.0, v.(float64), 1e-9)
}

func TestUnitAdapter_RejectsSecondDifferentTarget(t *testing.T) {
	producer := port.NewOutputWithInfo("producer", scalarInfo(map[string]any{"units": "m"}))
	conv := adapters.NewUnit("to-cm", units.SI)

	in1 := port.NewInputWithInfo("x1", scalarInfo(map[string]any{"units": "cm"}))
	in2 := port.NewInputWithInfo("x2", scalarInfo(map[string]any{"units": "mm"}))
	producer.Chain(conv)
	conv.AddTarget(in1)
	conv.AddTarget(in2)
	require.NoError(t, in1.SetSource(conv))
	require.NoError(t, in2.SetSource(conv))
	in1.Ping()
	in2.Ping()

	ctx := context.Background()
	_, err := in1.ExchangeInfo(ctx, nil)
	require.NoError(t, err)

	_, err = in2.ExchangeInfo(ctx, nil)
	assert.Error(t, err)
}

func TestGridReduction_Mean(t *testing.T) {
	producer := port.NewOutputWithInfo("producer", info.New(gridSpec{}, map[string]any{"units": "m"}))
	reducer := adapters.NewGridMean("mean")
	consumer := link(t, producer, reducer, "m")

	ctx := context.Background()
	require.NoError(t, producer.PushData(ctx, finamgrid.New(gridSpec{}, []float64{1, 2, 3, 4}), clock.At(0)))

	v, err := consumer.PullData(ctx, clock.At(0))
	require.NoError(t, err)
	assert.InDelta(t, 2.5, v.(float64), 1e-9)
}

type gridSpec struct{}

func (gridSpec) Equal(other finamgrid.GridSpec) bool {
	_, ok := other.(gridSpec)
	return ok
}
