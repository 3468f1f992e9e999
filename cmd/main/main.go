package main

import (
	"context"
	"os"
	"strings"

	"relist/engine/internal/config"
	"relist/engine/internal/container"

	log "github.com/sirupsen/logrus"
)

func main() {
	log.Info("Starting listing engine...")

	if len(os.Args) < 2 {
		log.Fatal("Usage: engine <item title>")
	}
	title := strings.Join(os.Args[1:], " ")

	// Load configuration using viper
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log.Info("Configuration loaded successfully")

	// Initialize container with all dependencies
	app, err := container.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	defer app.Close()

	// Run the analysis
	if err := app.Run(context.Background(), title, ""); err != nil {
		log.Fatalf("Application exited with error: %v", err)
	}

	log.Info("Application finished successfully")
}
