// @title Football Assistance API
// @version 1.0
// @description Personal development tracker for football players: goals, training, match reflections, team lineups and an AI coach.

// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"log"

	"football_assistance_backend/internal/app"
	"football_assistance_backend/internal/config"
	"football_assistance_backend/pkg/logger"

	"github.com/joho/godotenv"
)

func main() {
	configDir := flag.String("config", "configs", "directory holding config.yaml")
	migrateOnly := flag.Bool("migrate-only", false, "run database migrations and exit")
	migrate := flag.Bool("migrate", false, "run database migrations on start even in release mode")
	watch := flag.Bool("watch-config", true, "reload log level and AI models when config.yaml changes")
	flag.Parse()

	// .env is only for local development
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cfg.ForceMigrate = *migrate || *migrateOnly
	cfg.MigrateOnly = *migrateOnly

	watchDir := ""
	if *watch {
		watchDir = *configDir
	}
	application := app.NewApp(cfg, watchDir)
	defer logger.Log.Sync()

	if *migrateOnly {
		logger.Log.Info("Database migration finished, exiting")
		return
	}

	application.Run()
}
