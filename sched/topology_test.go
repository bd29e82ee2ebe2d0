package sched_test

import (
	"testing"

	"github.com/finam-ufz/finam-sub001/sched"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWorkerTopology_AssignsContiguousRanges(t *testing.T) {
	topo, err := sched.NewWorkerTopology(6, []sched.ComponentProcesses{
		{Name: "ocean", Count: 3},
		{Name: "land", Count: 2},
	})
	require.NoError(t, err)

	start, end, ok := topo.RankRange("ocean")
	require.True(t, ok)
	assert.Equal(t, 1, start)
	assert.Equal(t, 4, end)

	start, end, ok = topo.RankRange("land")
	require.True(t, ok)
	assert.Equal(t, 4, start)
	assert.Equal(t, 6, end)

	_, _, ok = topo.RankRange("atmosphere")
	assert.False(t, ok)
}

func TestNewWorkerTopology_IsWorkerRank(t *testing.T) {
	topo, err := sched.NewWorkerTopology(4, []sched.ComponentProcesses{
		{Name: "ocean", Count: 3},
	})
	require.NoError(t, err)

	assert.False(t, topo.IsWorkerRank("ocean", 0))
	assert.True(t, topo.IsWorkerRank("ocean", 1))
	assert.True(t, topo.IsWorkerRank("ocean", 3))
	assert.False(t, topo.IsWorkerRank("ocean", 4))
	assert.False(t, topo.IsWorkerRank("land", 1))
}

func TestNewWorkerTopology_RejectsMismatchedProcessCount(t *testing.T) {
	_, err := sched.NewWorkerTopology(4, []sched.ComponentProcesses{
		{Name: "ocean", Count: 1},
	})
	assert.Error(t, err)
}
