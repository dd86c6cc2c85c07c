package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/pageza/mealfinder/backend/config"
	"github.com/pageza/mealfinder/backend/internal/database"
	"github.com/pageza/mealfinder/backend/internal/logging"
)

func main() {
	// Parse command line flags
	rollback := flag.Bool("rollback", false, "Drop the search history tables")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	db, err := database.New(cfg)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close(db)

	if *rollback {
		err = database.RollbackMigrations(db)
	} else {
		err = database.RunMigrations(db)
	}
	if err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}
	slog.Info("migrations complete", "rollback", *rollback)
}
