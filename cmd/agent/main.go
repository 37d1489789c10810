package main

import (
	"fmt"
	"os"

	"github.com/MKhiriev/go-mgmt-agent/internal/config"
	"github.com/MKhiriev/go-mgmt-agent/internal/logger"
	"github.com/MKhiriev/go-mgmt-agent/internal/server"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("agent")

	overrides, err := config.CollectOverrides(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error collecting agent options")
	}

	cfg, err := config.NewAgentConfig(overrides)
	if err != nil {
		// fail fast: a deployment with a typo must refuse to start
		log.Fatal().Err(err).Msg("invalid agent configuration")
	}

	log.Debug().Str("agentId", cfg.AgentID()).Msg("agent configuration validated")

	server.NewServer(cfg, log).RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
