package config

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/microsoft/teams-sdk/internal/logfields"
)

// envFiles are loaded in order; a variable set by an earlier file or by the
// process environment is never overridden.
var envFiles = []string{".env.local", ".env"}

func loadEnvFiles(dir string) {
	for _, name := range envFiles {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			slog.Warn("Failed to load env file", logfields.Path(path), logfields.Error(err))
			continue
		}
		slog.Debug("Loaded environment variables", logfields.Path(path))
	}
}
