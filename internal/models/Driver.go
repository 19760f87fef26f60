// internal/models/driver.go
package models

type Driver struct {
	Base
	OrganizationID uint   `json:"organization_id" gorm:"index"`
	FullName       string `json:"full_name"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	Address        string `json:"address"`
	LicenseNumber  string `json:"license_number"`
	LicenseExpiry  string `json:"drivers_license_expiry" gorm:"column:drivers_license_expiry"`

	// Document photo slots.
	ProfilePhotoURL         string `json:"profile_photo" gorm:"column:profile_photo"`
	LicensePhotoURL         string `json:"drivers_license_photo" gorm:"column:drivers_license_photo"`
	CriminalRecordsPhotoURL string `json:"criminal_records_photo" gorm:"column:criminal_records_photo"`
	PoliceRecordsPhotoURL   string `json:"police_records_photo" gorm:"column:police_records_photo"`

	// Mirror of Vehicle.DriverID, maintained by the relation assigner.
	VehicleID *uint    `json:"vehicle_id" gorm:"uniqueIndex"`
	Vehicle   *Vehicle `json:"vehicle,omitempty" gorm:"foreignKey:VehicleID"`
}
