package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"fleet_console/internal/controllers"
	"fleet_console/internal/middleware"
	"fleet_console/internal/models"
	"fleet_console/internal/repository"
	"fleet_console/internal/schema"
	"fleet_console/internal/storage"
)

// RecordRoutes mounts the generic CRUD surface for every entity. Vehicles,
// drivers and users are admin-only; the finance screens take any
// authenticated role.
func RecordRoutes(r *gin.Engine, db *gorm.DB, store storage.Store) {
	admin := r.Group("/", middleware.RequireAuthWithRole(models.RoleAdmin))
	authed := r.Group("/", middleware.RequireAuth())

	vehicles := repository.New[models.Vehicle](db, schema.Vehicles,
		repository.WithPreloads[models.Vehicle]("Driver"),
		repository.WithGuards[models.Vehicle](
			repository.ReferentialGuard{Table: "drivers", Column: "vehicle_id", Reason: "vehicle still has an assigned driver"},
			repository.ReferentialGuard{Table: "activities", Column: "vehicle_id", Reason: "vehicle is still referenced by activities"},
			repository.ReferentialGuard{Table: "revenue", Column: "vehicle_id", Reason: "vehicle is still referenced by revenue records"},
			repository.ReferentialGuard{Table: "expenses", Column: "vehicle_id", Reason: "vehicle is still referenced by expenses"},
		),
	)
	mount(admin, "vehicles", controllers.NewRecordController(vehicles, store, "vehicle-photos"))

	drivers := repository.New[models.Driver](db, schema.Drivers,
		repository.WithPreloads[models.Driver]("Vehicle"),
		repository.WithGuards[models.Driver](
			repository.ReferentialGuard{Table: "vehicles", Column: "driver_id", Reason: "driver is still assigned to a vehicle"},
			repository.ReferentialGuard{Table: "activities", Column: "driver_id", Reason: "driver is still referenced by activities"},
			repository.ReferentialGuard{Table: "revenue", Column: "driver_id", Reason: "driver is still referenced by revenue records"},
			repository.ReferentialGuard{Table: "expenses", Column: "driver_id", Reason: "driver is still referenced by expenses"},
		),
	)
	mount(admin, "drivers", controllers.NewRecordController(drivers, store, "driver-documents"))

	users := repository.New[models.User](db, schema.Users)
	mount(admin, "users", controllers.NewRecordController(users, store, "user-files",
		controllers.WithPrepare[models.User](controllers.PrepareUserPayload),
		controllers.WithRedact[models.User]("password"),
	))

	activities := repository.New[models.Activity](db, schema.Activities,
		repository.WithPreloads[models.Activity]("Vehicle", "Driver"),
		repository.WithGuards[models.Activity](
			repository.ReferentialGuard{Table: "expenses", Column: "activity_id", Reason: "activity is still referenced by expenses"},
			repository.ReferentialGuard{Table: "revenue", Column: "activity_id", Reason: "activity is still referenced by revenue records"},
		),
	)
	mount(authed, "activities", controllers.NewRecordController(activities, store, "activity-attachments"))

	revenue := repository.New[models.Revenue](db, schema.Revenue,
		repository.WithPreloads[models.Revenue]("Activity", "Vehicle", "Driver"),
	)
	mount(authed, "revenue", controllers.NewRecordController(revenue, store, "revenue-files"))

	expenses := repository.New[models.Expense](db, schema.Expenses,
		repository.WithPreloads[models.Expense]("Activity", "Vehicle", "Driver"),
	)
	mount(authed, "expenses", controllers.NewRecordController(expenses, store, "expense-files"))
}

func mount[T any](g *gin.RouterGroup, path string, rc *controllers.RecordController[T]) {
	grp := g.Group(path)
	{
		grp.GET("", rc.List)
		grp.POST("", rc.Create)
		grp.GET("/:id", rc.Get)
		grp.PATCH("/:id", rc.Update)
		grp.DELETE("/:id", rc.Delete)
	}
}
