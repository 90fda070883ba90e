package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr         string
	DatabaseURL  string
	LogLevel     string
	CatalogPath  string // empty means the built-in reference catalog
	RivalEnabled bool
	RivalSeed    uint64 // 0 means seed from the clock
}

func Default() Config {
	return Config{
		Addr:         ":8080",
		DatabaseURL:  "file:draft.db",
		LogLevel:     "info",
		RivalEnabled: true,
	}
}

// Load reads an optional .env file and then the process environment.
// Variables already set in the environment win over .env.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	cfg := Default()
	if v := os.Getenv("ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	cfg.CatalogPath = os.Getenv("CATALOG_PATH")

	if v := os.Getenv("RIVAL_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid RIVAL_ENABLED %q: %w", v, err)
		}
		cfg.RivalEnabled = b
	}
	if v := os.Getenv("RIVAL_SEED"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid RIVAL_SEED %q: %w", v, err)
		}
		cfg.RivalSeed = n
	}
	return cfg, nil
}
