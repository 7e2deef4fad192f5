package main

import (
	"context"
	"errors"
	"io/fs"
	"log"

	"github.com/MrSidSir/sidEstate/internal/server"
	"github.com/MrSidSir/sidEstate/internal/server/config"
	"github.com/joho/godotenv"
)

func main() {
	// a missing .env is fine, the environment may already be set
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()
	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
