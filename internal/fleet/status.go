// Package fleet guards the vehicle status lifecycle. Assignment drives the
// available/in_use pair; maintenance vehicles cannot be assigned and retired
// is terminal.
package fleet

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"

	"fleet_console/internal/models"
)

// Lifecycle events.
const (
	EventAssign  = "assign"
	EventRelease = "release"
	EventService = "service"
	EventRestore = "restore"
	EventRetire  = "retire"
)

func newStatusFSM(current string) *fsm.FSM {
	if current == "" {
		current = models.VehicleAvailable
	}
	return fsm.NewFSM(
		current,
		fsm.Events{
			{Name: EventAssign, Src: []string{models.VehicleAvailable}, Dst: models.VehicleInUse},
			{Name: EventRelease, Src: []string{models.VehicleInUse}, Dst: models.VehicleAvailable},
			{Name: EventService, Src: []string{models.VehicleAvailable}, Dst: models.VehicleMaintenance},
			{Name: EventRestore, Src: []string{models.VehicleMaintenance}, Dst: models.VehicleAvailable},
			{Name: EventRetire, Src: []string{models.VehicleAvailable, models.VehicleMaintenance}, Dst: models.VehicleRetired},
		},
		fsm.Callbacks{},
	)
}

// Transition applies event to the current status and returns the new one.
func Transition(ctx context.Context, current, event string) (string, error) {
	m := newStatusFSM(current)
	if err := m.Event(ctx, event); err != nil {
		return current, fmt.Errorf("vehicle status %q: %w", current, err)
	}
	return m.Current(), nil
}

// CanAssign reports whether a vehicle in the given status may take a driver.
func CanAssign(current string) bool {
	return newStatusFSM(current).Can(EventAssign)
}
