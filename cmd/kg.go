package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/fhfischer/rechnung"
	"github.com/fhfischer/rechnung/date"
	"github.com/google/subcommands"
)

// kgCmd holds the flags for the 'kg' subcommand.
type kgCmd struct {
	kuerzel string
	datum   string
	dates   string
	arten   string
	preise  string
	draft   bool
}

func (*kgCmd) Name() string     { return "kg" }
func (*kgCmd) Synopsis() string { return "create a Krankengymnastik invoice" }
func (*kgCmd) Usage() string {
	return `rp kg -k <kürzel> [-d <datum>] -dates <d1,d2,...> -arten <a1,a2,...> -preise <p1,p2,...> [-draft]

  Creates the KG invoice for a patient: every treatment type is billed once
  per treatment date. With -draft the form content is stored as a draft
  instead of being finalized.

Usage Examples:
$ rp kg -k ABCD -d 05.03.24 -dates 01.03.24,04.03.24 -arten Krankengymnastik -preise 25.50
`
}

func (c *kgCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.kuerzel, "k", "", "Kürzel of the patient")
	f.StringVar(&c.datum, "d", date.Today().String(), "Invoice date (defaults to today)")
	f.StringVar(&c.dates, "dates", "", "Comma-separated treatment dates")
	f.StringVar(&c.arten, "arten", "", "Comma-separated treatment types")
	f.StringVar(&c.preise, "preise", "", "Comma-separated unit prices, one per treatment type")
	f.BoolVar(&c.draft, "draft", false, "Store the form content as a draft instead of finalizing")
}

func (c *kgCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	e, u, err := NewEngine(s)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if c.draft {
		maybeBackup(p)
		snap := &rechnung.Snapshot{
			Form:    rechnung.FormKG,
			Kuerzel: c.kuerzel,
			Datum:   c.datum,
			Dates:   splitList(c.dates),
			Arten:   splitList(c.arten),
			Preise:  splitList(c.preise),
		}
		msg, err := storeDraft(e, s, snap)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		fmt.Println(msg)
		return subcommands.ExitSuccess
	}

	datum, err := date.Parse(c.datum)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing invoice date: %v\n", err)
		return subcommands.ExitUsageError
	}
	dates, err := parseDates(c.dates)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing treatment dates: %v\n", err)
		return subcommands.ExitUsageError
	}
	behandlungen, err := parseBehandlungen(c.arten, c.preise)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	if p.BehandlungsartenLimiter && len(behandlungen) > p.BehandlungsartenLimit {
		fmt.Fprintf(os.Stderr, "Error: %d Behandlungsarten exceed the configured limit of %d\n", len(behandlungen), p.BehandlungsartenLimit)
		return subcommands.ExitFailure
	}

	if !confirmBankDetails(u) {
		fmt.Fprintln(os.Stderr, "Abgebrochen.")
		return subcommands.ExitFailure
	}
	maybeBackup(p)

	inv := rechnung.KGInvoice{
		Kuerzel:          c.kuerzel,
		Date:             datum,
		Dates:            dates,
		Behandlungsarten: behandlungen,
	}
	path, err := e.Finalize(inv)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Created invoice %s: %s\n", inv.Number(), path)
	return subcommands.ExitSuccess
}
