package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/fhfischer/rechnung"
	"github.com/google/subcommands"
)

// listCmd holds the flags for the 'rechnungen' subcommand.
type listCmd struct {
	filter string
}

func (*listCmd) Name() string     { return "rechnungen" }
func (*listCmd) Synopsis() string { return "list the invoices of the program year" }
func (*listCmd) Usage() string {
	return `rp rechnungen [-f alle|kg|hp|entwuerfe]

  Lists the finalized invoices of the program year, or the pending drafts.
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.filter, "f", "alle", "Filter: alle, kg, hp or entwuerfe")
}

func (c *listCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := LoadProperties()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	s, err := OpenStore(p)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Rechnungen %d\n\n", s.Year())

	if c.filter == "entwuerfe" {
		drafts, err := s.ListDrafts()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		if len(drafts) == 0 {
			b.WriteString("Keine Entwürfe.\n")
		}
		for _, nr := range drafts {
			fmt.Fprintf(&b, "- %s (Entwurf)\n", nr)
		}
		printMarkdown(b.String())
		return subcommands.ExitSuccess
	}

	rows, err := s.Rows()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	b.WriteString("| Nummer | Kürzel | Art | km | Betrag |\n")
	b.WriteString("|---|---|---|---:|---:|\n")
	count := 0
	for _, row := range rows {
		switch c.filter {
		case "kg":
			if row.Kind() != rechnung.KG {
				continue
			}
		case "hp":
			if row.Kind() != rechnung.HP {
				continue
			}
		case "alle":
		default:
			fmt.Fprintf(os.Stderr, "Error: unknown filter %q\n", c.filter)
			return subcommands.ExitUsageError
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			row.Number(), row.Kuerzel(), row.Kind(), row.KmTotal(), row.Total())
		count++
	}
	fmt.Fprintf(&b, "\n%d Rechnung(en).\n", count)
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}
