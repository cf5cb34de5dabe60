package main

import (
	"travel_api/internal/config" // Custom import path (Config)
	"travel_api/internal/db"     // Custom import path (Database)

	"github.com/sirupsen/logrus"
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration

	gdb, err := db.Connect(cfg.DSN(), true)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		logrus.Fatalf("migration failed: %v", err)
	}
}
