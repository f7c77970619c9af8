package main

import (
	"log"

	"github.com/duopot/duopot/config"
	"github.com/duopot/duopot/db"
	"github.com/duopot/duopot/internal/auth"
	"github.com/duopot/duopot/internal/router"
)

func main() {
	cfg := config.Load()

	if err := db.ConnectDatabase(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	if err := auth.InitJWTSecret(cfg.JWTSecret); err != nil {
		log.Fatalf("Failed to initialize JWT secret: %v", err)
	}

	r := router.NewRouter()

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
