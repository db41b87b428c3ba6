package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/gokatarajesh/quiz-uploader/internal/app"
	"github.com/gokatarajesh/quiz-uploader/internal/config"
)

func main() {
	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load("configs/.env"); err != nil {
			log.Printf("Warning: could not load .env file: %v", err)
		}
	}

	cfg, err := config.Load(context.Background())
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	bootCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	instance, err := app.New(bootCtx, cfg)
	cancel()
	if err != nil {
		log.Fatalf("failed to build app: %v", err)
	}

	if err := instance.Run(context.Background()); err != nil {
		log.Fatalf("runtime error: %v", err)
	}
}
