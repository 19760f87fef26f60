// internal/models/vehicle.go
package models

// Vehicle status lifecycle values; transitions are guarded in internal/fleet.
const (
	VehicleAvailable   = "available"
	VehicleInUse       = "in_use"
	VehicleMaintenance = "maintenance"
	VehicleRetired     = "retired"
)

// VehicleStatuses lists every accepted vehicle status, in display order.
var VehicleStatuses = []string{
	VehicleAvailable,
	VehicleInUse,
	VehicleMaintenance,
	VehicleRetired,
}

type Vehicle struct {
	Base
	OrganizationID uint   `json:"organization_id" gorm:"index"`
	Make           string `json:"make"`
	ModelName      string `json:"model" gorm:"column:model"`
	Year           int    `json:"year"`
	Color          string `json:"color"`
	VIN            string `json:"vin" gorm:"column:vin"`
	LicensePlate   string `json:"license_plate"`
	Status         string `json:"status" gorm:"default:available"`
	Mileage        int    `json:"mileage"`
	Observations   string `json:"observations"`

	// Photo slots; URLs are written by the editor after upload.
	FrontImageURL     string `json:"front_image_url"`
	RearImageURL      string `json:"rear_image_url"`
	LeftImageURL      string `json:"left_image_url"`
	RightImageURL     string `json:"right_image_url"`
	DashboardImageURL string `json:"dashboard_image_url"`

	// Mirrored by Driver.VehicleID; both sides are kept consistent by the
	// relation assigner, never written independently.
	DriverID *uint   `json:"driver_id" gorm:"uniqueIndex"`
	Driver   *Driver `json:"driver,omitempty" gorm:"foreignKey:DriverID"`
}
