// Package config loads application configuration from the environment.
package config

import (
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string
	Env  string

	// StateDir is where the mode store and the embedded database live.
	StateDir string

	// Storage defaults, used when no persisted mode exists yet or when a
	// mode is forced from the environment.
	StorageMode     string
	LocalDBPath     string
	DatabaseURL     string
	SupabaseURL     string
	SupabaseAnonKey string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	stateDir := getEnv("STATE_DIR", defaultStateDir())

	config := &Config{
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		StateDir: stateDir,

		StorageMode:     os.Getenv("STORAGE_MODE"),
		LocalDBPath:     getEnv("LOCAL_DB_PATH", filepath.Join(stateDir, "financecontroll.db")),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		SupabaseURL:     os.Getenv("SUPABASE_URL"),
		SupabaseAnonKey: os.Getenv("SUPABASE_ANON_KEY"),
	}

	return config, nil
}

// defaultStateDir places state under the user config dir, falling back to the
// working directory when none is resolvable.
func defaultStateDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ".financecontroll"
	}
	return filepath.Join(base, "financecontroll")
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
