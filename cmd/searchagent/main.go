package main

import (
	"flag"
	"log"
	"os"

	"github.com/openfloor-dev/searchagent"
)

var (
	// Version information (set via ldflags)
	Version = "dev"

	configFile = flag.String("config", getEnv("CONFIG_FILE", ""), "Agent configuration file (YAML)")
)

func main() {
	flag.Parse()

	log.Printf("Starting Open Floor search agent v%s", Version)
	if *configFile != "" {
		log.Printf("Config: %s", *configFile)
	}

	searchagent.RunOrExit(*configFile)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
