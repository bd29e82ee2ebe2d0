package config_test

import (
	"testing"

	"github.com/finam-ufz/finam-sub001/clock"
	"github.com/finam-ufz/finam-sub001/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ParsesJSONCWithCommentsAndTrailingCommas(t *testing.T) {
	doc := []byte(`{
		// logger name for the run
		"logger": "demo",
		"t_max": 10,
		"components": {
			"ocean": {"start": 0, "step": 1},
		},
	}`)

	cfg, err := config.Load(doc)
	require.NoError(t, err)

	assert.Equal(t, "demo", cfg.LoggerName)
	assert.Equal(t, clock.At(int64(10*clock.Second)), cfg.TMax)

	override, ok := cfg.Overrides["ocean"]
	require.True(t, ok)
	assert.Equal(t, clock.At(0), override.Start())
	assert.Equal(t, clock.Second, override.Step())
	assert.Nil(t, cfg.Topology)
}

func TestLoad_DefaultsLoggerNameWhenAbsent(t *testing.T) {
	cfg, err := config.Load([]byte(`{"t_max": 5}`))
	require.NoError(t, err)
	assert.Equal(t, "composition", cfg.LoggerName)
}

func TestLoad_RejectsNonPositiveTMax(t *testing.T) {
	_, err := config.Load([]byte(`{"t_max": 0}`))
	assert.ErrorIs(t, err, config.ErrInvalidTMax)

	_, err = config.Load([]byte(`{"t_max": -1}`))
	assert.ErrorIs(t, err, config.ErrInvalidTMax)
}

func TestLoad_BuildsWorkerTopology(t *testing.T) {
	doc := []byte(`{
		"t_max": 1,
		"total_processes": 4,
		"workers": [
			{"name": "ocean", "count": 3}
		]
	}`)

	cfg, err := config.Load(doc)
	require.NoError(t, err)
	require.NotNil(t, cfg.Topology)

	assert.True(t, cfg.Topology.IsWorkerRank("ocean", 1))
	assert.False(t, cfg.Topology.IsWorkerRank("ocean", 0))
}

func TestLoad_RejectsMismatchedWorkerCount(t *testing.T) {
	doc := []byte(`{
		"t_max": 1,
		"total_processes": 4,
		"workers": [
			{"name": "ocean", "count": 1}
		]
	}`)

	_, err := config.Load(doc)
	assert.Error(t, err)
}

func TestLoad_RejectsMalformedJSON(t *testing.T) {
	_, err := config.Load([]byte(`not json at all`))
	assert.Error(t, err)
}
