package main

import (
	"log"
	"net/http"

	"fleet_console/internal/config"
	"fleet_console/internal/logger"
	"fleet_console/internal/middleware"
	"fleet_console/internal/routes"
	"fleet_console/internal/storage"
)

func main() {
	// Structured logging to a rotating file
	logger.Setup()

	cfg := config.Load()

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	store, err := storage.NewDiskStore(cfg.StorageDir, cfg.StorageBaseURL)
	if err != nil {
		log.Fatalf("storage init: %v", err)
	}

	r := routes.SetupRouter(routes.Deps{
		DB:         db,
		Store:      store,
		FilesRoute: cfg.StorageBaseURL,
		FilesDir:   cfg.StorageDir,
	})

	// Wrap with CORS
	handler := middleware.EnableCORS(r)

	log.Printf("🚀 Server running at %s", cfg.HTTPAddr)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, handler))
}
