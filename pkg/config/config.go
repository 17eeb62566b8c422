package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	Port            int      `yaml:"port"`
	FrontendOrigins []string `yaml:"frontend_origins"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type AIConfig struct {
	CRMURL     string `yaml:"crm_url"`
	InsightURL string `yaml:"insight_url"`
}

type StorageConfig struct {
	URL    string `yaml:"url"`
	APIKey string `yaml:"api_key"`
}

type AppConfig struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	AI       AIConfig       `yaml:"ai"`
	Storage  StorageConfig  `yaml:"storage"`
}

// Default returns the config used when no file is supplied.
func Default() AppConfig {
	return AppConfig{
		Server: ServerConfig{
			Port:            4000,
			FrontendOrigins: []string{"http://localhost:3000"},
		},
		Database: DatabaseConfig{
			URL: "postgres://localhost:5432/crm?sslmode=disable",
		},
	}
}

// LoadFile loads YAML config from path, layered over the defaults.
func LoadFile(path string) (AppConfig, error) {
	cfg := Default()

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides config values from the environment. Every deployment
// knob has an env var so the config file stays optional.
func (cfg *AppConfig) ApplyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("FRONTEND_URLS"); v != "" {
		cfg.Server.FrontendOrigins = splitOrigins(v)
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("AI_SERVICE_CRM_URL"); v != "" {
		cfg.AI.CRMURL = v
	}
	if v := os.Getenv("AI_SERVICE_INSIGHT_URL"); v != "" {
		cfg.AI.InsightURL = v
	}
	if v := os.Getenv("STORAGE_URL"); v != "" {
		cfg.Storage.URL = v
	}
	if v := os.Getenv("STORAGE_API_KEY"); v != "" {
		cfg.Storage.APIKey = v
	}
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
