package main

import (
	"flag"
	"log"

	"quizforge/internal/config"
	"quizforge/internal/database"
)

func main() {
	migrationsDir := flag.String("dir", "database/migrations", "directory holding .up.sql migration files")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewMigrateOracleDB(cfg.GetDSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db, *migrationsDir); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
}
