package main

import (
	"log"

	"github.com/codyseavey/mymanabox/internal/app"
	"github.com/codyseavey/mymanabox/internal/config"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := app.RunServer(cfg); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
