package config

import (
	"path/filepath"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads ./.env and then <dir>/.env into the process environment.
// Variables that are already set win, and missing files are ignored.
func LoadDotEnv(dir string) {
	_ = godotenv.Load()
	if dir != "" {
		_ = godotenv.Load(filepath.Join(dir, ".env"))
	}
}
