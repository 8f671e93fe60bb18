package main

import (
	"flag"
	"fmt"
	"os"

	"wallet-service/config"
	pgStorage "wallet-service/internal/adapter/storage/postgres"
	"wallet-service/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "config file path")
	steps := flag.Int("steps", 1, "number of migrations to roll back (down only)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: migrate [-config path] [-steps n] up|down\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)
	dsn := cfg.Database.DSN()

	switch flag.Arg(0) {
	case "up":
		err = pgStorage.Migrate(dsn, log)
	case "down":
		err = pgStorage.MigrateDown(dsn, *steps, log)
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
}
