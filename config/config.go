package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	AllowedOrigins []string
	Debug          bool
}

// Load reads configuration from the environment, after a best-effort .env
// load for local development.
func Load() (Config, error) {
	godotenv.Load()

	cfg := Config{
		Port:  "3000",
		Debug: os.Getenv("DEBUG") == "true",
	}

	if port, ok := os.LookupEnv("PORT"); ok && port != "" {
		cfg.Port = port
	}

	origins, ok := os.LookupEnv("ALLOWED_ORIGINS")
	if !ok {
		return Config{}, fmt.Errorf("missing ALLOWED_ORIGINS")
	}
	for _, origin := range strings.Split(origins, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
		}
	}
	if len(cfg.AllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("ALLOWED_ORIGINS is empty")
	}

	return cfg, nil
}
