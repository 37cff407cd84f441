package main

import (
	"flag"
	"os"

	"dawaksahl-api/config"
	"dawaksahl-api/internal/infrastructure/database"

	"github.com/sirupsen/logrus"
)

func main() {
	steps := flag.Int("steps", 1, "number of migrations to roll back with down")
	flag.Parse()

	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	command := flag.Arg(0)
	if command == "" {
		command = "up"
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	migrator, err := database.NewMigrator(cfg.DB, log)
	if err != nil {
		log.Fatalf("Failed to init migrator: %v", err)
	}
	defer migrator.Close()

	switch command {
	case "up":
		err = migrator.Up()
	case "down":
		err = migrator.Down(*steps)
	case "version":
	default:
		log.Fatalf("Unknown command %q, expected up, down or version", command)
	}
	if err != nil {
		log.Fatalf("Migration %s failed: %v", command, err)
	}

	version, dirty, err := migrator.Version()
	if err != nil {
		log.Fatalf("Failed to read migration version: %v", err)
	}
	log.WithFields(logrus.Fields{"version": version, "dirty": dirty}).Infof("Migration %s done", command)
}
