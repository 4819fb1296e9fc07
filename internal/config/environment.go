package config

import (
	"os"

	"github.com/joho/godotenv"
)

// LoadEnv loads a .env file into the process environment when present, so
// viper's AutomaticEnv picks the values up. Missing files are not an error
// outside of development.
func LoadEnv(paths ...string) {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		_ = godotenv.Load(path)
	}
}
