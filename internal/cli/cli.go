// Package cli implements the qitta command line tool. Commands work directly
// on the trip collection stored in the SQLite database, without a server.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"

	"github.com/mmynk/qitta/internal/config"
	"github.com/mmynk/qitta/internal/storage/sqlite"
	"github.com/mmynk/qitta/internal/tripstore"
)

// Commands returns the subcommands bound to cfg. Output goes to out.
func Commands(cfg *config.Config, out io.Writer) []subcommands.Command {
	return []subcommands.Command{
		&tripsCmd{cfg: cfg, out: out},
		&reportCmd{cfg: cfg, out: out},
		&rosterCmd{cfg: cfg, out: out},
		&exportCmd{cfg: cfg, out: out},
		&importCmd{cfg: cfg, out: out},
	}
}

// Register adds the commands to c, grouped like the help output shows them.
func Register(c *subcommands.Commander, cfg *config.Config, out io.Writer) {
	for _, cmd := range Commands(cfg, out) {
		group := "trips"
		if cmd.Name() == "roster" {
			group = "roster"
		}
		c.Register(cmd, group)
	}
	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
	c.Register(c.CommandsCommand(), "")
}

// openTrips opens the trip collection. The returned func closes the database.
func openTrips(ctx context.Context, cfg *config.Config) (*tripstore.TripStore, func(), error) {
	backend, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	store, err := tripstore.Open(ctx, backend, cfg.StorageKey)
	if err != nil {
		backend.Close()
		return nil, nil, err
	}
	return store, func() { backend.Close() }, nil
}

func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, err)
	return subcommands.ExitFailure
}
