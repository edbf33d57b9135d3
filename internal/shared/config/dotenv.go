package config

import (
	"os"

	"github.com/joho/godotenv"
)

// LoadEnvFiles loads .env and cmd/.env for commands that read the
// environment without a full Load.
func LoadEnvFiles() {
	loadEnvFiles(".env", "cmd/.env")
}

// loadEnvFiles loads KEY=VALUE pairs from the given files if they exist.
// Variables already present in the environment win.
func loadEnvFiles(paths ...string) {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		_ = godotenv.Load(path)
	}
}
