package main

import (
	"log"

	"workpackage-be/internal/config"
	"workpackage-be/internal/model"
	"workpackage-be/pkg/database"

	"github.com/fatih/color"
)

func main() {
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, cfg.Database.Verbose)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Starting GORM migration...")

	models := []interface{}{
		&model.User{},
		&model.Type{},
		&model.Status{},
		&model.Priority{},
		&model.Project{},
		&model.Member{},
		&model.Query{},
		&model.WorkPackage{},
		&model.Notification{},
	}

	for _, m := range models {
		if err := db.AutoMigrate(m); err != nil {
			color.Red("Failed to migrate %T: %v", m, err)
			log.Fatal(err)
		}
		color.Green("Migrated %T", m)
	}

	color.Cyan("Migration complete")
}
