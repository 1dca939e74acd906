package config

import (
	"github.com/joho/godotenv"
)

// LoadEnv loads .env into the environment. A missing file is fine in
// deployed environments where variables are set externally.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		Logger.Warn("No .env file found, using environment variables:", err)
	}
}
