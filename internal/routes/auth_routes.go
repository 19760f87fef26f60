package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"fleet_console/internal/controllers"
)

func AuthRoutes(r *gin.Engine, db *gorm.DB) {
	a := controllers.NewAuthController(db)

	auth := r.Group("/auth")
	{
		auth.POST("/signup", a.Signup)
		auth.POST("/login", a.Login)
	}
}
