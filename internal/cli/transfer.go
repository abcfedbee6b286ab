package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"

	"github.com/mmynk/qitta/internal/config"
)

type exportCmd struct {
	cfg  *config.Config
	out  io.Writer
	file string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "write the whole trip collection as JSON" }
func (*exportCmd) Usage() string {
	return `qitta export [-o <file>]

  Writes every trip as a JSON array, to stdout unless -o is given. The output
  can be loaded back with qitta import.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "o", "", "Output file. Defaults to stdout.")
}

func (c *exportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, closeStore, err := openTrips(ctx, c.cfg)
	if err != nil {
		return fail(err)
	}
	defer closeStore()

	data, err := store.Export()
	if err != nil {
		return fail(err)
	}

	if c.file == "" {
		if _, err := c.out.Write(append(data, '\n')); err != nil {
			return fail(err)
		}
		return subcommands.ExitSuccess
	}
	if err := os.WriteFile(c.file, data, 0o644); err != nil {
		return fail(err)
	}
	fmt.Fprintf(c.out, "exported %d trips to %s\n", store.Len(), c.file)
	return subcommands.ExitSuccess
}

type importCmd struct {
	cfg  *config.Config
	out  io.Writer
	file string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "replace the trip collection with a JSON export" }
func (*importCmd) Usage() string {
	return `qitta import -file <export.json>

  Replaces every stored trip with the content of an export. The file is
  validated before anything is overwritten.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "file", "", "JSON export to load.")
}

func (c *importCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.file == "" {
		fmt.Fprintln(c.out, c.Usage())
		return subcommands.ExitUsageError
	}

	data, err := os.ReadFile(c.file)
	if err != nil {
		return fail(err)
	}

	store, closeStore, err := openTrips(ctx, c.cfg)
	if err != nil {
		return fail(err)
	}
	defer closeStore()

	n, err := store.Import(ctx, data)
	if err != nil {
		return fail(err)
	}
	fmt.Fprintf(c.out, "imported %d trips\n", n)
	return subcommands.ExitSuccess
}
