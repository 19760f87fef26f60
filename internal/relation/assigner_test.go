package relation

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"fleet_console/internal/config"
	"fleet_console/internal/models"
	"fleet_console/internal/repository"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	return db
}

type fixture struct {
	db    *gorm.DB
	orgID uint
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := setupTestDB(t)
	org := models.Organization{Name: "Acme Fleet"}
	require.NoError(t, db.Create(&org).Error)
	return &fixture{db: db, orgID: org.ID}
}

func (f *fixture) vehicle(t *testing.T, plate, status string) *models.Vehicle {
	t.Helper()
	v := models.Vehicle{OrganizationID: f.orgID, Make: "Toyota", LicensePlate: plate, Status: status}
	require.NoError(t, f.db.Create(&v).Error)
	return &v
}

func (f *fixture) driver(t *testing.T, name string) *models.Driver {
	t.Helper()
	d := models.Driver{OrganizationID: f.orgID, FullName: name}
	require.NoError(t, f.db.Create(&d).Error)
	return &d
}

func (f *fixture) reloadVehicle(t *testing.T, id uint) *models.Vehicle {
	t.Helper()
	var v models.Vehicle
	require.NoError(t, f.db.First(&v, id).Error)
	return &v
}

func (f *fixture) reloadDriver(t *testing.T, id uint) *models.Driver {
	t.Helper()
	var d models.Driver
	require.NoError(t, f.db.First(&d, id).Error)
	return &d
}

func TestAssignSetsBothSides(t *testing.T) {
	f := newFixture(t)
	v := f.vehicle(t, "KDA 123X", models.VehicleAvailable)
	d := f.driver(t, "Jane Wanjiru")

	a := NewAssigner(f.db)
	require.NoError(t, a.Assign(context.Background(), f.orgID, v.ID, d.ID))

	v = f.reloadVehicle(t, v.ID)
	d = f.reloadDriver(t, d.ID)
	require.NotNil(t, v.DriverID)
	require.NotNil(t, d.VehicleID)
	assert.Equal(t, d.ID, *v.DriverID)
	assert.Equal(t, v.ID, *d.VehicleID)
	assert.Equal(t, models.VehicleInUse, v.Status)
}

func TestAssignIsIdempotent(t *testing.T) {
	f := newFixture(t)
	v := f.vehicle(t, "KDA 123X", models.VehicleAvailable)
	d := f.driver(t, "Jane Wanjiru")

	a := NewAssigner(f.db)
	require.NoError(t, a.Assign(context.Background(), f.orgID, v.ID, d.ID))
	require.NoError(t, a.Assign(context.Background(), f.orgID, v.ID, d.ID))

	v = f.reloadVehicle(t, v.ID)
	assert.Equal(t, models.VehicleInUse, v.Status)
}

func TestAssignReleasesPreviousCounterparts(t *testing.T) {
	f := newFixture(t)
	v1 := f.vehicle(t, "KDA 111A", models.VehicleAvailable)
	v2 := f.vehicle(t, "KDB 222B", models.VehicleAvailable)
	d1 := f.driver(t, "Jane Wanjiru")
	d2 := f.driver(t, "Peter Otieno")

	a := NewAssigner(f.db)
	require.NoError(t, a.Assign(context.Background(), f.orgID, v1.ID, d1.ID))
	require.NoError(t, a.Assign(context.Background(), f.orgID, v2.ID, d2.ID))

	// Moving d2 onto v1 must release both d1 and v2.
	require.NoError(t, a.Assign(context.Background(), f.orgID, v1.ID, d2.ID))

	assert.Nil(t, f.reloadDriver(t, d1.ID).VehicleID)
	v2 = f.reloadVehicle(t, v2.ID)
	assert.Nil(t, v2.DriverID)
	assert.Equal(t, models.VehicleAvailable, v2.Status)

	v1 = f.reloadVehicle(t, v1.ID)
	require.NotNil(t, v1.DriverID)
	assert.Equal(t, d2.ID, *v1.DriverID)
	assert.Equal(t, models.VehicleInUse, v1.Status)
	assert.Equal(t, v1.ID, *f.reloadDriver(t, d2.ID).VehicleID)
}

func TestReassignSwapsDriverOnBusyVehicle(t *testing.T) {
	f := newFixture(t)
	v := f.vehicle(t, "KDA 123X", models.VehicleAvailable)
	d1 := f.driver(t, "Jane Wanjiru")
	d2 := f.driver(t, "Peter Otieno")

	a := NewAssigner(f.db)
	require.NoError(t, a.Assign(context.Background(), f.orgID, v.ID, d1.ID))

	// The vehicle is in_use now; assigning a new driver must still succeed
	// by releasing the current one first.
	require.NoError(t, a.Assign(context.Background(), f.orgID, v.ID, d2.ID))

	v = f.reloadVehicle(t, v.ID)
	require.NotNil(t, v.DriverID)
	assert.Equal(t, d2.ID, *v.DriverID)
	assert.Equal(t, models.VehicleInUse, v.Status)
	assert.Nil(t, f.reloadDriver(t, d1.ID).VehicleID)
	assert.Equal(t, v.ID, *f.reloadDriver(t, d2.ID).VehicleID)
}

func TestAssignRejectsUnassignableVehicle(t *testing.T) {
	f := newFixture(t)
	v := f.vehicle(t, "KDA 123X", models.VehicleMaintenance)
	d := f.driver(t, "Jane Wanjiru")

	a := NewAssigner(f.db)
	err := a.Assign(context.Background(), f.orgID, v.ID, d.ID)
	var conflict *repository.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Contains(t, conflict.Reason, models.VehicleMaintenance)

	assert.Nil(t, f.reloadVehicle(t, v.ID).DriverID)
	assert.Nil(t, f.reloadDriver(t, d.ID).VehicleID)
}

func TestAssignUnknownRecords(t *testing.T) {
	f := newFixture(t)
	v := f.vehicle(t, "KDA 123X", models.VehicleAvailable)

	a := NewAssigner(f.db)
	var nf *repository.NotFoundError
	require.ErrorAs(t, a.Assign(context.Background(), f.orgID, v.ID, 999), &nf)
	require.ErrorAs(t, a.Assign(context.Background(), f.orgID, 999, 1), &nf)
}

func TestAssignReportsPartialFailure(t *testing.T) {
	f := newFixture(t)
	v := f.vehicle(t, "KDA 123X", models.VehicleAvailable)
	d := f.driver(t, "Jane Wanjiru")

	// A stray row already claims the vehicle on the driver side, so the
	// mirror write in phase B hits the unique index after phase A committed.
	stray := f.driver(t, "Ghost Entry")
	require.NoError(t, f.db.Model(&models.Driver{}).
		Where("id = ?", stray.ID).
		Update("vehicle_id", v.ID).Error)

	a := NewAssigner(f.db)
	err := a.Assign(context.Background(), f.orgID, v.ID, d.ID)
	var partial *repository.PartialFailureError
	require.ErrorAs(t, err, &partial)
	assert.Equal(t, "vehicle", partial.CompletedSide)

	// The vehicle side committed; the inconsistency is visible, not hidden.
	v = f.reloadVehicle(t, v.ID)
	require.NotNil(t, v.DriverID)
	assert.Equal(t, d.ID, *v.DriverID)
	assert.Nil(t, f.reloadDriver(t, d.ID).VehicleID)
}

func TestUnassignClearsBothSides(t *testing.T) {
	f := newFixture(t)
	v := f.vehicle(t, "KDA 123X", models.VehicleAvailable)
	d := f.driver(t, "Jane Wanjiru")

	a := NewAssigner(f.db)
	require.NoError(t, a.Assign(context.Background(), f.orgID, v.ID, d.ID))
	require.NoError(t, a.Unassign(context.Background(), f.orgID, v.ID))

	v = f.reloadVehicle(t, v.ID)
	assert.Nil(t, v.DriverID)
	assert.Equal(t, models.VehicleAvailable, v.Status)
	assert.Nil(t, f.reloadDriver(t, d.ID).VehicleID)

	// Unassigning an unassigned vehicle is a no-op.
	require.NoError(t, a.Unassign(context.Background(), f.orgID, v.ID))
}

func TestOptionsListsUnassignedOnly(t *testing.T) {
	f := newFixture(t)
	free := f.vehicle(t, "KDA 111A", models.VehicleAvailable)
	f.vehicle(t, "KDB 222B", models.VehicleMaintenance)
	taken := f.vehicle(t, "KDC 333C", models.VehicleAvailable)
	idle := f.driver(t, "Jane Wanjiru")
	busy := f.driver(t, "Peter Otieno")

	a := NewAssigner(f.db)
	require.NoError(t, a.Assign(context.Background(), f.orgID, taken.ID, busy.ID))

	vehicles, drivers, err := a.Options(context.Background(), f.orgID)
	require.NoError(t, err)
	require.Len(t, vehicles, 1)
	assert.Equal(t, free.ID, vehicles[0].ID)
	require.Len(t, drivers, 1)
	assert.Equal(t, idle.ID, drivers[0].ID)
}
