package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/logeshwaran0404/Albany-VSM-sub001/internal/app"
	"github.com/logeshwaran0404/Albany-VSM-sub001/internal/config"
)

func main() {
	// Optional .env for local development; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := app.Run(cfg); err != nil {
		log.Fatalf("app: %v", err)
	}
}
