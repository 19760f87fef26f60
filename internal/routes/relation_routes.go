package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"fleet_console/internal/controllers"
	"fleet_console/internal/middleware"
	"fleet_console/internal/models"
	"fleet_console/internal/relation"
)

func RelationRoutes(r *gin.Engine, db *gorm.DB) {
	rc := controllers.NewRelationController(relation.NewAssigner(db))

	rel := r.Group("/relations", middleware.RequireAuthWithRole(models.RoleAdmin))
	{
		rel.PUT("/vehicle-driver", rc.Assign)
		rel.DELETE("/vehicle-driver", rc.Unassign)
		rel.GET("/vehicle-driver/options", rc.Options)
	}
}
