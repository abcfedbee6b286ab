package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/google/subcommands"

	"github.com/mmynk/qitta/internal/cli"
	"github.com/mmynk/qitta/internal/config"
	"github.com/mmynk/qitta/pkg/logging"
)

var dbPath = flag.String("db", "", "Path to the SQLite database. Overrides DB_PATH.")

func main() {
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(int(subcommands.ExitFailure))
	}

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	cli.Register(commander, cfg, os.Stdout)

	flag.Parse()
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	os.Exit(int(commander.Execute(context.Background())))
}
