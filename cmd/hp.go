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

// hpCmd holds the flags for the 'hp' subcommand.
type hpCmd struct {
	kuerzel  string
	datum    string
	diagnose string
	rows     rowList
	draft    bool
}

func (*hpCmd) Name() string     { return "hp" }
func (*hpCmd) Synopsis() string { return "create a Heilpraktiker invoice" }
func (*hpCmd) Usage() string {
	return `rp hp -k <kürzel> [-d <datum>] -diagnose <text> -row <block> [-row <block> ...] [-draft]

  Creates the HP invoice for a patient. Each -row is one treatment block:
  the date followed by code|description|price triples, all separated by
  pipes. With -draft the form content is stored as a draft instead of
  being finalized.

Usage Examples:
$ rp hp -k ABCD -d 05.03.24 -diagnose Lumbalgie \
    -row "01.03.24|12.1|Beratung|30.00|20.1|Massage|19.90"
`
}

func (c *hpCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.kuerzel, "k", "", "Kürzel of the patient")
	f.StringVar(&c.datum, "d", date.Today().String(), "Invoice date (defaults to today)")
	f.StringVar(&c.diagnose, "diagnose", "", "Free-text diagnosis")
	f.Var(&c.rows, "row", "Treatment block, repeatable")
	f.BoolVar(&c.draft, "draft", false, "Store the form content as a draft instead of finalizing")
}

func (c *hpCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
			Form:     rechnung.FormHP,
			Kuerzel:  c.kuerzel,
			Datum:    c.datum,
			Rows:     snapshotRows(c.rows),
			Diagnose: c.diagnose,
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
	if !confirmBankDetails(u) {
		fmt.Fprintln(os.Stderr, "Abgebrochen.")
		return subcommands.ExitFailure
	}
	maybeBackup(p)

	inv := rechnung.HPInvoice{
		Kuerzel:  c.kuerzel,
		Date:     datum,
		Rows:     c.rows,
		Diagnose: c.diagnose,
	}
	path, err := e.Finalize(inv)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Created invoice %s: %s\n", inv.Number(), path)
	return subcommands.ExitSuccess
}
