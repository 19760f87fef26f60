// Package relation coordinates the vehicle<->driver assignment, whose foreign
// keys mirror each other. The two sides are written as a best-effort two-phase
// sequence with no server transaction: if the mirror write fails after the
// first side committed, the inconsistency is reported as a PartialFailure,
// never masked as success.
package relation

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"fleet_console/internal/fleet"
	"fleet_console/internal/models"
	"fleet_console/internal/repository"
)

// Assigner keeps both sides of the vehicle<->driver relation consistent.
type Assigner struct {
	db *gorm.DB
}

func NewAssigner(db *gorm.DB) *Assigner {
	return &Assigner{db: db}
}

// Assign links vehicle and driver in both directions. Previously assigned
// counterparts on either side are released first. Phase A writes the vehicle
// side, phase B mirrors it onto the driver; a phase B failure is reported as
// PartialFailure naming the vehicle side as committed.
func (a *Assigner) Assign(ctx context.Context, orgID, vehicleID, driverID uint) error {
	vehicle, err := a.vehicle(ctx, orgID, vehicleID)
	if err != nil {
		return err
	}
	driver, err := a.driver(ctx, orgID, driverID)
	if err != nil {
		return err
	}
	if vehicle.DriverID != nil && *vehicle.DriverID == driverID {
		return nil
	}

	// Release existing counterparts before touching the pair itself; a
	// failure here leaves everything consistent. Releasing the vehicle's
	// current driver also walks its status back, so a reassignment is
	// judged against the released status, not the occupied one.
	status := vehicle.Status
	if vehicle.DriverID != nil {
		if err := a.clearDriverSide(ctx, *vehicle.DriverID); err != nil {
			return &repository.TransportError{Op: "release previous driver", Err: err}
		}
		if next, err := fleet.Transition(ctx, status, fleet.EventRelease); err == nil {
			status = next
		}
	}
	if driver.VehicleID != nil && *driver.VehicleID != vehicleID {
		if err := a.releaseVehicle(ctx, orgID, *driver.VehicleID); err != nil {
			return &repository.TransportError{Op: "release previous vehicle", Err: err}
		}
	}

	if !fleet.CanAssign(status) {
		return &repository.ConflictError{
			Entity: "vehicles",
			ID:     vehicleID,
			Reason: "vehicle is " + status + " and cannot take a driver",
		}
	}
	status, err = fleet.Transition(ctx, status, fleet.EventAssign)
	if err != nil {
		return &repository.ConflictError{Entity: "vehicles", ID: vehicleID, Reason: err.Error()}
	}

	// Phase A: vehicle side.
	err = a.db.WithContext(ctx).Model(&models.Vehicle{}).
		Where("id = ?", vehicleID).
		Updates(map[string]any{"driver_id": driverID, "status": status}).Error
	if err != nil {
		return &repository.TransportError{Op: "assign vehicle side", Err: err}
	}

	// Phase B: mirror onto the driver.
	err = a.db.WithContext(ctx).Model(&models.Driver{}).
		Where("id = ?", driverID).
		Update("vehicle_id", vehicleID).Error
	if err != nil {
		return &repository.PartialFailureError{CompletedSide: "vehicle", Err: err}
	}
	return nil
}

// Unassign clears both sides of the vehicle's assignment. Phase A clears the
// vehicle and releases its status, phase B clears the driver mirror.
func (a *Assigner) Unassign(ctx context.Context, orgID, vehicleID uint) error {
	vehicle, err := a.vehicle(ctx, orgID, vehicleID)
	if err != nil {
		return err
	}
	if vehicle.DriverID == nil {
		return nil
	}
	driverID := *vehicle.DriverID

	status := vehicle.Status
	if next, err := fleet.Transition(ctx, vehicle.Status, fleet.EventRelease); err == nil {
		status = next
	}

	err = a.db.WithContext(ctx).Model(&models.Vehicle{}).
		Where("id = ?", vehicleID).
		Updates(map[string]any{"driver_id": nil, "status": status}).Error
	if err != nil {
		return &repository.TransportError{Op: "unassign vehicle side", Err: err}
	}

	err = a.db.WithContext(ctx).Model(&models.Driver{}).
		Where("id = ?", driverID).
		Update("vehicle_id", nil).Error
	if err != nil {
		return &repository.PartialFailureError{CompletedSide: "vehicle", Err: err}
	}
	return nil
}

// Options lists the selectable counterparts for the picker: assignable
// vehicles without a driver and drivers without a vehicle.
func (a *Assigner) Options(ctx context.Context, orgID uint) ([]models.Vehicle, []models.Driver, error) {
	vehicles := make([]models.Vehicle, 0)
	err := a.db.WithContext(ctx).
		Where("organization_id = ? AND driver_id IS NULL AND status = ?", orgID, models.VehicleAvailable).
		Order("id").Find(&vehicles).Error
	if err != nil {
		return nil, nil, &repository.TransportError{Op: "list unassigned vehicles", Err: err}
	}
	drivers := make([]models.Driver, 0)
	err = a.db.WithContext(ctx).
		Where("organization_id = ? AND vehicle_id IS NULL", orgID).
		Order("id").Find(&drivers).Error
	if err != nil {
		return nil, nil, &repository.TransportError{Op: "list unassigned drivers", Err: err}
	}
	return vehicles, drivers, nil
}

func (a *Assigner) vehicle(ctx context.Context, orgID, id uint) (*models.Vehicle, error) {
	var v models.Vehicle
	err := a.db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		First(&v, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &repository.NotFoundError{Entity: "vehicles", ID: id}
		}
		return nil, &repository.TransportError{Op: "load vehicle", Err: err}
	}
	return &v, nil
}

func (a *Assigner) driver(ctx context.Context, orgID, id uint) (*models.Driver, error) {
	var d models.Driver
	err := a.db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		First(&d, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &repository.NotFoundError{Entity: "drivers", ID: id}
		}
		return nil, &repository.TransportError{Op: "load driver", Err: err}
	}
	return &d, nil
}

func (a *Assigner) clearDriverSide(ctx context.Context, driverID uint) error {
	return a.db.WithContext(ctx).Model(&models.Driver{}).
		Where("id = ?", driverID).
		Update("vehicle_id", nil).Error
}

// releaseVehicle clears a vehicle's driver and moves it back to available.
func (a *Assigner) releaseVehicle(ctx context.Context, orgID, vehicleID uint) error {
	vehicle, err := a.vehicle(ctx, orgID, vehicleID)
	if err != nil {
		return err
	}
	status := vehicle.Status
	if next, err := fleet.Transition(ctx, vehicle.Status, fleet.EventRelease); err == nil {
		status = next
	}
	return a.db.WithContext(ctx).Model(&models.Vehicle{}).
		Where("id = ?", vehicleID).
		Updates(map[string]any{"driver_id": nil, "status": status}).Error
}
