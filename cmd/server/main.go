package main

import (
	"flag"
	"log"

	"github.com/transformellica/crm-api/pkg/api"
	"github.com/transformellica/crm-api/pkg/config"
)

func main() {

	cfgPath := flag.String("config", "", "Path to YAML config file")
	port := flag.Int("port", 0, "Server port (overrides config)")
	dbURL := flag.String("db-url", "", "PostgreSQL connection URL (overrides config)")
	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.LoadFile(*cfgPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}

	cfg.ApplyEnv()

	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *dbURL != "" {
		cfg.Database.URL = *dbURL
	}

	server, err := api.New(cfg)

	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	if err := server.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
