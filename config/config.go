// Package config loads run defaults from an optional .env file before
// command-line flags are parsed, so a deployment can pin output
// locations or the monitor address without repeating flags on every
// invocation.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds the values a .env file (or the process environment) may
// supply. OutDir and SQLitePath are overridden by the --out-dir and
// --sqlite CLI flags; MonitorAddr has no flag and is set only here.
type Config struct {
	OutDir       string
	MonitorAddr  string
	SQLitePath   string
}

// Load reads envPath if it exists (a missing .env file is not an
// error, most runs won't have one) and returns the resulting defaults.
func Load(envPath string) (Config, error) {
	if envPath == "" {
		envPath = ".env"
	}

	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			return Config{}, err
		}
	}

	return Config{
		OutDir:      envOr("SPIMDF_OUT_DIR", "."),
		MonitorAddr: envOr("SPIMDF_MONITOR_ADDR", ":0"),
		SQLitePath:  os.Getenv("SPIMDF_SQLITE_PATH"),
	}, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
