// Command seed populates the database with demo data for development.
package main

import (
	"flag"
	"log"

	"pulse/internal/config"
	"pulse/internal/database"
	"pulse/internal/seed"
)

func main() {
	users := flag.Int("users", 20, "number of users to create")
	posts := flag.Int("posts", 200, "number of posts to create")
	clean := flag.Bool("clean", false, "delete existing rows first")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}

	if err := seed.Run(db, seed.Options{
		NumUsers:    *users,
		NumPosts:    *posts,
		ShouldClean: *clean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
