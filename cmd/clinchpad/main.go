package main

import (
	"github.com/joho/godotenv"

	"github.com/clinchpad/clinchpad-go/internal/cli"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	cli.Execute()
}
