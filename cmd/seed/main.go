package main

import (
	"context"
	"flag"
	"log"

	"workpackage-be/internal/config"
	"workpackage-be/internal/repository/unitofwork"
	"workpackage-be/internal/seed"
	"workpackage-be/pkg/database"

	"github.com/fatih/color"
)

func main() {
	path := flag.String("file", "cmd/seed/seed.yaml", "seed file")
	flag.Parse()

	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	f, err := seed.LoadFile(*path)
	if err != nil {
		color.Red("Failed: %v", err)
		log.Fatal(err)
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, cfg.Database.Verbose)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Yellow("Seeding %d types, %d users, %d projects", len(f.Types), len(f.Users), len(f.Projects))
	if err := seed.Apply(context.Background(), unitofwork.NewRepositoryFactory(db), f); err != nil {
		color.Red("Failed: %v", err)
		log.Fatal(err)
	}
	color.Green("Seed complete")
}
