package models

// Activity types offered by the console; free text in storage, closed set in
// the schema registry.
var ActivityTypes = []string{
	"maintenance",
	"carwash",
	"fee payment",
	"fueling",
	"inspection",
	"other",
}

// Activity is a dated fleet event, optionally tied to a vehicle and a driver.
type Activity struct {
	Base
	OrganizationID uint    `json:"organization_id" gorm:"index"`
	Date           string  `json:"date" gorm:"type:date"`
	ActivityType   string  `json:"activity_type"`
	Description    string  `json:"description"`
	Amount         float64 `json:"amount"`
	Status         string  `json:"status" gorm:"default:Pending"`
	AttachmentURL  string  `json:"attachment_url"`

	VehicleID *uint    `json:"vehicle_id" gorm:"index"`
	Vehicle   *Vehicle `json:"vehicle,omitempty" gorm:"foreignKey:VehicleID"`
	DriverID  *uint    `json:"driver_id" gorm:"index"`
	Driver    *Driver  `json:"driver,omitempty" gorm:"foreignKey:DriverID"`
}
