package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"fleet_console/internal/controllers"
	"fleet_console/internal/middleware"
	"fleet_console/internal/models"
)

func AdminRoutes(r *gin.Engine, db *gorm.DB) {
	dc := controllers.NewDashboardController(db)

	admin := r.Group("/dashboard", middleware.RequireAuthWithRole(models.RoleAdmin))
	{
		admin.GET("/summary", dc.Summary)
	}
}
