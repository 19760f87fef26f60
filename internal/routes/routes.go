package routes

import (
	ginlogger "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"fleet_console/internal/storage"
)

// Deps is everything the route tree needs wired in.
type Deps struct {
	DB         *gorm.DB
	Store      storage.Store
	FilesRoute string
	FilesDir   string
}

func SetupRouter(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), ginlogger.SetLogger())

	AuthRoutes(r, deps.DB)
	RecordRoutes(r, deps.DB, deps.Store)
	RelationRoutes(r, deps.DB)
	AdminRoutes(r, deps.DB)

	// Uploaded objects are served straight from the store's root.
	r.Static(deps.FilesRoute, deps.FilesDir)

	return r
}
