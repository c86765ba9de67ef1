package config

import (
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
)

var loadEnv sync.Once

// Config returns the named variable, loading .env once if present.
func Config(key string) string {
	loadEnv.Do(func() {
		if err := godotenv.Load(".env"); err != nil {
			log.Println("No .env file found, reading configuration from the environment")
		}
	})
	return os.Getenv(key)
}
