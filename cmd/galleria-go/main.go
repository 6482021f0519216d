package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/lumenworks/galleria-go/internal/application/startup"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found -- config defaults will be used")
	}

	if err := startup.Initialize(); err != nil {
		log.Fatalf("Application startup failed: %v", err)
		os.Exit(1)
	}

	log.Println("Application has shut down gracefully.")
}
