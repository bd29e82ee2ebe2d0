package status_test

import (
	"testing"

	"github.com/finam-ufz/finam-sub001/status"
	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	cases := []struct {
		s    status.ComponentStatus
		want string
	}{
		{status.Created, "CREATED"},
		{status.Initialized, "INITIALIZED"},
		{status.Connecting, "CONNECTING"},
		{status.ConnectingIdle, "CONNECTING_IDLE"},
		{status.Connected, "CONNECTED"},
		{status.Validated, "VALIDATED"},
		{status.Updated, "UPDATED"},
		{status.Finished, "FINISHED"},
		{status.Finalized, "FINALIZED"},
	}
	for _, c := range cases {
		t.Run(c.want, func(t *testing.T) {
			assert.Equal(t, c.want, c.s.String())
		})
	}
}

func TestString_Unknown(t *testing.T) {
	assert.Equal(t, "ComponentStatus(255)", status.ComponentStatus(255).String())
}

func TestOrdering(t *testing.T) {
	assert.True(t, status.Connected.AtLeast(status.Initialized))
	assert.False(t, status.Initialized.AtLeast(status.Connected))
	assert.True(t, status.Created.Before(status.Finalized))
	assert.False(t, status.Finalized.Before(status.Created))
}

func TestIsConnectingPhase(t *testing.T) {
	assert.True(t, status.Connecting.IsConnectingPhase())
	assert.True(t, status.ConnectingIdle.IsConnectingPhase())
	assert.False(t, status.Connected.IsConnectingPhase())
	assert.False(t, status.Initialized.IsConnectingPhase())
}

func TestCanConnect(t *testing.T) {
	assert.True(t, status.Initialized.CanConnect())
	assert.True(t, status.Connecting.CanConnect())
	assert.True(t, status.ConnectingIdle.CanConnect())
	assert.False(t, status.Created.CanConnect())
	assert.False(t, status.Connected.CanConnect())
}

func TestCanUpdate(t *testing.T) {
	assert.True(t, status.Validated.CanUpdate())
	assert.True(t, status.Updated.CanUpdate())
	assert.False(t, status.Connected.CanUpdate())
	assert.False(t, status.Finished.CanUpdate())
}

func TestCanFinalize(t *testing.T) {
	assert.True(t, status.Updated.CanFinalize())
	assert.True(t, status.Finished.CanFinalize())
	assert.False(t, status.Validated.CanFinalize())
	assert.False(t, status.Finalized.CanFinalize())
}
