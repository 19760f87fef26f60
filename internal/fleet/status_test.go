package fleet

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet_console/internal/models"
)

func TestTransitions(t *testing.T) {
	cases := []struct {
		from, event, to string
	}{
		{models.VehicleAvailable, EventAssign, models.VehicleInUse},
		{models.VehicleInUse, EventRelease, models.VehicleAvailable},
		{models.VehicleAvailable, EventService, models.VehicleMaintenance},
		{models.VehicleMaintenance, EventRestore, models.VehicleAvailable},
		{models.VehicleAvailable, EventRetire, models.VehicleRetired},
		{models.VehicleMaintenance, EventRetire, models.VehicleRetired},
	}
	for _, tc := range cases {
		got, err := Transition(context.Background(), tc.from, tc.event)
		require.NoError(t, err, "%s on %s", tc.event, tc.from)
		assert.Equal(t, tc.to, got)
	}
}

func TestInvalidTransitions(t *testing.T) {
	cases := []struct {
		from, event string
	}{
		{models.VehicleInUse, EventAssign},
		{models.VehicleMaintenance, EventAssign},
		{models.VehicleInUse, EventService},
		{models.VehicleInUse, EventRetire},
	}
	for _, tc := range cases {
		got, err := Transition(context.Background(), tc.from, tc.event)
		require.Error(t, err, "%s on %s", tc.event, tc.from)
		assert.Equal(t, tc.from, got, "a rejected event leaves the status unchanged")
	}
}

func TestRetiredIsTerminal(t *testing.T) {
	for _, event := range []string{EventAssign, EventRelease, EventService, EventRestore, EventRetire} {
		_, err := Transition(context.Background(), models.VehicleRetired, event)
		assert.Error(t, err, event)
	}
}

func TestCanAssign(t *testing.T) {
	assert.True(t, CanAssign(models.VehicleAvailable))
	assert.True(t, CanAssign("")) // new vehicles default to available
	assert.False(t, CanAssign(models.VehicleInUse))
	assert.False(t, CanAssign(models.VehicleMaintenance))
	assert.False(t, CanAssign(models.VehicleRetired))
}
