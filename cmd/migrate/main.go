package main

import (
	"context"
	"log"
	"time"

	"tv-keuzehulp-be/internal/config"
	pgrepo "tv-keuzehulp-be/internal/repository/postgres"
	"tv-keuzehulp-be/pkg/database"
)

func main() {
	cfg := config.Load()
	if cfg.App.DatabaseURL == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.NewGormDBFromDSN(ctx, cfg.App.DatabaseURL, true)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}
	defer database.Close(db)

	log.Println("Migrating keuzehulp_sessions...")
	if err := pgrepo.Migrate(db); err != nil {
		log.Fatal("Error: Migration failed:", err)
	}

	purged, err := pgrepo.NewSessionRepository(db, cfg.Session.TTL).PurgeExpired(ctx)
	if err != nil {
		log.Fatal("Error: Failed to purge expired sessions:", err)
	}
	log.Printf("Done. Purged %d expired sessions.", purged)
}
