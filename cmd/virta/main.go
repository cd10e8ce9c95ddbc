package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/opencourse-labs/virta/internal/adapters/driving/cli"
)

func main() {
	// A .env in the working directory is optional; environment
	// variables already set take precedence.
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
