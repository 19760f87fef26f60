package schema

import "fleet_console/internal/models"

// Registry holds every entity the console manages, keyed by route name.
var registry = map[string]Entity{}

func register(e Entity) Entity {
	registry[e.Name] = e
	return e
}

// Lookup returns the entity registered under name.
func Lookup(name string) (Entity, bool) {
	e, ok := registry[name]
	return e, ok
}

// Names returns every registered entity name.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}

var (
	// Vehicles covers the fleet's vehicles, including the five photo slots
	// and the mirrored driver assignment.
	Vehicles = register(Entity{
		Name:  "vehicles",
		Title: "Vehicles",
		Fields: []Field{
			{Key: "make", Label: "Make", Type: Text, Sortable: true, Required: true},
			{Key: "model", Label: "Model", Type: Text, Sortable: true},
			{Key: "year", Label: "Year", Type: Number, Sortable: true},
			{Key: "color", Label: "Color", Type: Text},
			{Key: "vin", Label: "VIN", Type: Text},
			{Key: "license_plate", Label: "License Plate", Type: Text, Sortable: true},
			{Key: "status", Label: "Status", Type: Select, Sortable: true, Options: options(models.VehicleStatuses)},
			{Key: "mileage", Label: "Mileage", Type: Number, Sortable: true},
			{Key: "observations", Label: "Observations", Type: Textarea},
			{Key: "front_image_url", Label: "Front Photo", Type: File},
			{Key: "rear_image_url", Label: "Rear Photo", Type: File},
			{Key: "left_image_url", Label: "Left Photo", Type: File},
			{Key: "right_image_url", Label: "Right Photo", Type: File},
			{Key: "dashboard_image_url", Label: "Dashboard Photo", Type: File},
			{Key: "driver_id", Label: "Driver", Type: Select, Relation: &Relation{Entity: "drivers", DisplayField: "full_name"}},
		},
	})

	Drivers = register(Entity{
		Name:  "drivers",
		Title: "Drivers",
		Fields: []Field{
			{Key: "full_name", Label: "Full Name", Type: Text, Sortable: true, Required: true},
			{Key: "phone", Label: "Phone", Type: Text},
			{Key: "email", Label: "Email", Type: Text, Sortable: true},
			{Key: "address", Label: "Address", Type: Text},
			{Key: "license_number", Label: "License Number", Type: Text, Sortable: true},
			{Key: "drivers_license_expiry", Label: "License Expiry", Type: Date, Sortable: true},
			{Key: "profile_photo", Label: "Profile Photo", Type: File},
			{Key: "drivers_license_photo", Label: "License Photo", Type: File},
			{Key: "criminal_records_photo", Label: "Criminal Records", Type: File},
			{Key: "police_records_photo", Label: "Police Records", Type: File},
			{Key: "vehicle_id", Label: "Vehicle", Type: Select, Relation: &Relation{Entity: "vehicles", DisplayField: "license_plate"}},
		},
	})

	Activities = register(Entity{
		Name:  "activities",
		Title: "Activities",
		Fields: []Field{
			{Key: "date", Label: "Date", Type: Date, Sortable: true, Required: true},
			{Key: "activity_type", Label: "Type", Type: Select, Sortable: true, Options: options(models.ActivityTypes)},
			{Key: "description", Label: "Description", Type: Textarea},
			{Key: "amount", Label: "Amount", Type: Number, Sortable: true},
			{Key: "status", Label: "Status", Type: Select, Sortable: true, Options: options(models.PaymentStatuses)},
			{Key: "attachment_url", Label: "Attachment", Type: File},
			{Key: "vehicle_id", Label: "Vehicle", Type: Select, Relation: &Relation{Entity: "vehicles", DisplayField: "license_plate"}},
			{Key: "driver_id", Label: "Driver", Type: Select, Relation: &Relation{Entity: "drivers", DisplayField: "full_name"}},
		},
	})

	Revenue = register(Entity{
		Name:  "revenue",
		Title: "Revenue",
		Fields: []Field{
			{Key: "date", Label: "Date", Type: Date, Sortable: true, Required: true},
			{Key: "amount", Label: "Amount", Type: Number, Sortable: true},
			{Key: "description", Label: "Description", Type: Textarea},
			{Key: "status", Label: "Status", Type: Select, Sortable: true, Options: options(models.PaymentStatuses)},
			{Key: "activity_id", Label: "Activity", Type: Select, Relation: &Relation{Entity: "activities", DisplayField: "description"}},
			{Key: "vehicle_id", Label: "Vehicle", Type: Select, Relation: &Relation{Entity: "vehicles", DisplayField: "license_plate"}},
			{Key: "driver_id", Label: "Driver", Type: Select, Relation: &Relation{Entity: "drivers", DisplayField: "full_name"}},
		},
	})

	Expenses = register(Entity{
		Name:  "expenses",
		Title: "Expenses",
		Fields: []Field{
			{Key: "date", Label: "Date", Type: Date, Sortable: true, Required: true},
			{Key: "amount", Label: "Amount", Type: Number, Sortable: true},
			{Key: "category", Label: "Category", Type: Text, Sortable: true},
			{Key: "description", Label: "Description", Type: Textarea},
			{Key: "status", Label: "Status", Type: Select, Sortable: true, Options: options(models.PaymentStatuses)},
			{Key: "activity_id", Label: "Activity", Type: Select, Relation: &Relation{Entity: "activities", DisplayField: "description"}},
			{Key: "vehicle_id", Label: "Vehicle", Type: Select, Relation: &Relation{Entity: "vehicles", DisplayField: "license_plate"}},
			{Key: "driver_id", Label: "Driver", Type: Select, Relation: &Relation{Entity: "drivers", DisplayField: "full_name"}},
		},
	})

	Users = register(Entity{
		Name:  "users",
		Title: "Users",
		Fields: []Field{
			{Key: "name", Label: "Name", Type: Text, Sortable: true, Required: true},
			{Key: "email", Label: "Email", Type: Text, Sortable: true, Required: true},
			{Key: "password", Label: "Password", Type: Text},
			{Key: "role", Label: "Role", Type: Select, Sortable: true, Options: options(models.Roles)},
			{Key: "owner", Label: "Owner", Type: Checkbox},
		},
	})
)
