package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/google/subcommands"

	"github.com/mmynk/qitta/internal/config"
	"github.com/mmynk/qitta/internal/report"
	"github.com/mmynk/qitta/internal/settlement"
)

type tripsCmd struct {
	cfg *config.Config
	out io.Writer
}

func (*tripsCmd) Name() string     { return "trips" }
func (*tripsCmd) Synopsis() string { return "list the stored trips, newest first" }
func (*tripsCmd) Usage() string {
	return `qitta trips

  Lists every trip with its participant count, how many paid, and the fund balance.
`
}

func (*tripsCmd) SetFlags(*flag.FlagSet) {}

func (c *tripsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, closeStore, err := openTrips(ctx, c.cfg)
	if err != nil {
		return fail(err)
	}
	defer closeStore()

	trips := store.List()
	if len(trips) == 0 {
		fmt.Fprintln(c.out, "no trips")
		return subcommands.ExitSuccess
	}

	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tDATE\tPARTICIPANTS\tPAID\tBALANCE")
	for i := range trips {
		s := settlement.Summarize(&trips[i])
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n",
			trips[i].ID, trips[i].Name, trips[i].TripDate, s.Participants, s.Paid, report.Amount(s.NetBalance))
	}
	if err := w.Flush(); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}

type reportCmd struct {
	cfg  *config.Config
	out  io.Writer
	trip string
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "print the shareable report of a trip" }
func (*reportCmd) Usage() string {
	return `qitta report -trip <id>

  Prints the Arabic text report of the trip, ready to paste into a chat.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.trip, "trip", "", "ID of the trip to report on.")
}

func (c *reportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.trip == "" {
		fmt.Fprintln(c.out, c.Usage())
		return subcommands.ExitUsageError
	}

	store, closeStore, err := openTrips(ctx, c.cfg)
	if err != nil {
		return fail(err)
	}
	defer closeStore()

	trip, err := store.Get(c.trip)
	if err != nil {
		return fail(err)
	}
	fmt.Fprintln(c.out, report.Generate(&trip))
	return subcommands.ExitSuccess
}
