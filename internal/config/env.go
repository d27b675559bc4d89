package config

import (
	"log"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
)

var envOnce sync.Once

// LoadEnvOnce loads the .env file only once during the application lifecycle.
func LoadEnvOnce() {
	envOnce.Do(loadEnvironment)
}

func loadEnvironment() {
	envPaths := []string{".env", "../.env", "../../.env"}

	for _, path := range envPaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				log.Printf("Environment loaded from: %s", path)
				return
			}
		}
	}

	log.Println(".env file not found - using environment variables or defaults")
}

// GetEnvWithFallback gets an environment variable with a fallback value.
func GetEnvWithFallback(key, fallback string) string {
	LoadEnvOnce()

	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// GetEnvInt gets an environment variable as an integer with a fallback.
func GetEnvInt(key string, fallback int) int {
	LoadEnvOnce()

	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("invalid integer for %s: %q, using %d", key, value, fallback)
		return fallback
	}
	return n
}
