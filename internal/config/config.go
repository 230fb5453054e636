package config

import (
	"fmt"
	"os"
)

// Config holds process-level configuration read from the environment.
// Business settings (API token, sync intervals) live in the settings
// table instead and are managed through the settings service.
type Config struct {
	Port             string
	JWTSecret        string
	VoicenterBaseURL string
	ExportsDir       string
}

// Load reads the process configuration from the environment
func Load() (*Config, error) {
	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		VoicenterBaseURL: os.Getenv("VOICENTER_BASE_URL"),
		ExportsDir:       getEnv("EXPORTS_DIR", "exports"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
