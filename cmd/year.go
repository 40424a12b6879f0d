package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/fhfischer/rechnung"
	"github.com/google/subcommands"
)

type yearCmd struct{}

func (*yearCmd) Name() string     { return "year" }
func (*yearCmd) Synopsis() string { return "show or switch the program year" }
func (*yearCmd) Usage() string {
	return `rp year [<jahr>]

  Without an argument, shows the program year. With one, switches to it:
  every year has its own invoice folder and summary file, so switching
  never touches another year's invoices.
`
}

func (c *yearCmd) SetFlags(f *flag.FlagSet) {}

func (c *yearCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := LoadProperties()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if f.NArg() == 0 {
		fmt.Printf("Program year: %d\n", p.ProgramYear)
		return subcommands.ExitSuccess
	}

	year, err := strconv.Atoi(f.Arg(0))
	if err != nil || year < 2000 || year > 2100 {
		fmt.Fprintf(os.Stderr, "Error: %q is not a plausible year\n", f.Arg(0))
		return subcommands.ExitUsageError
	}
	p.ProgramYear = year
	if err := rechnung.SaveProperties(propertiesPath(), p); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	// Bootstrap the new year's folders right away.
	if _, err := OpenStore(p); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Switched to program year %d\n", year)
	return subcommands.ExitSuccess
}
