package main

import (
	"flag"
	"os"

	"github.com/cakeshelf/cakeshelf/cakeservice"
	"github.com/cakeshelf/cakeshelf/internal/config"
	"github.com/cakeshelf/cakeshelf/internal/logger"
)

func main() {
	// Optional driver flag override (postgres | sqlite)
	dbDriver := flag.String("db-driver", "", "Override CAKESHELF_DB_DRIVER (postgres, sqlite)")
	flag.Parse()

	log := logger.New("cakeshelf")

	cfg, err := config.New()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if *dbDriver != "" {
		cfg.DBDriver = *dbDriver
		if err := cfg.ResolveDefaults(); err != nil {
			log.Fatal().Err(err).Msg("Invalid db-driver override")
		}
	}

	if err := cakeservice.Run(cfg); err != nil {
		os.Exit(1)
	}
}
