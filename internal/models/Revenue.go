package models

type Revenue struct {
	Base
	OrganizationID uint    `json:"organization_id" gorm:"index"`
	Date           string  `json:"date" gorm:"type:date"`
	Amount         float64 `json:"amount"`
	Description    string  `json:"description"`
	Status         string  `json:"status" gorm:"default:Pending"`

	ActivityID *uint     `json:"activity_id" gorm:"index"`
	Activity   *Activity `json:"activity,omitempty" gorm:"foreignKey:ActivityID"`
	VehicleID  *uint     `json:"vehicle_id" gorm:"index"`
	Vehicle    *Vehicle  `json:"vehicle,omitempty" gorm:"foreignKey:VehicleID"`
	DriverID   *uint     `json:"driver_id" gorm:"index"`
	Driver     *Driver   `json:"driver,omitempty" gorm:"foreignKey:DriverID"`
}

// TableName keeps the singular table name the console's original schema used.
func (Revenue) TableName() string { return "revenue" }
