package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	PostgresURL    string
	JWTKey         string
	AllowedOrigins []string
	ClassifierURL  string
	Debug          bool
}

// Load reads configuration from the environment, with a .env file as a
// development convenience.
func Load() (Config, error) {
	// Missing .env is fine, real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := Config{
		ClassifierURL: os.Getenv("CLASSIFIER_URL"),
		Debug:         os.Getenv("DEBUG") == "true",
	}

	var exists bool
	if cfg.PostgresURL, exists = os.LookupEnv("POSTGRES_URL"); !exists {
		return Config{}, fmt.Errorf("missing POSTGRES_URL")
	}
	if cfg.JWTKey, exists = os.LookupEnv("JWT_KEY"); !exists {
		return Config{}, fmt.Errorf("missing JWT_KEY")
	}

	origins, exists := os.LookupEnv("ALLOWED_ORIGINS")
	if !exists {
		return Config{}, fmt.Errorf("missing ALLOWED_ORIGINS")
	}
	cfg.AllowedOrigins = strings.Split(origins, ",")

	return cfg, nil
}
