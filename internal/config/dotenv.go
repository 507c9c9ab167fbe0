package config

import (
	"os"

	"github.com/joho/godotenv"
)

// dotenvFiles are checked in priority order. godotenv never
// overwrites variables that are already set, so loading .env.local
// first gives it priority over .env, and real environment variables
// (the deployment's source of truth) always win over both.
var dotenvFiles = []string{".env.local", ".env"}

// LoadDotEnv loads local env files ahead of config resolution and
// returns the files it actually loaded, for startup logging.
func LoadDotEnv() []string {
	var loaded []string
	for _, name := range dotenvFiles {
		if _, err := os.Stat(name); err != nil {
			continue
		}
		if godotenv.Load(name) == nil {
			loaded = append(loaded, name)
		}
	}
	return loaded
}
