// Command migrate applies the database schema explicitly. Production
// deploys run this instead of relying on boot-time auto-migration.
package main

import (
	"log"

	"pulse/internal/config"
	"pulse/internal/database"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("schema migrated")
}
