package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// loadDotEnv loads variables from ENV_FILE (default .env) when the file
// exists. Variables already set in the process environment win.
func loadDotEnv() error {
	path := getenv("ENV_FILE", ".env")

	err := godotenv.Load(path)
	if err == nil || errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return fmt.Errorf("load %s: %w", path, err)
}
