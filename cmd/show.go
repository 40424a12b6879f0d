package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/fhfischer/rechnung"
	"github.com/fhfischer/rechnung/renderer"
	"github.com/google/subcommands"
)

// showCmd holds the flags for the 'show' subcommand.
type showCmd struct {
	draft bool
}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "display one invoice on the terminal" }
func (*showCmd) Usage() string {
	return `rp show [-draft] <nummer>

  Rebuilds the invoice document from its summary row and displays it.
  With -draft the pending draft is shown instead.
`
}

func (c *showCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.draft, "draft", false, "Show the draft instead of the finalized invoice")
}

func (c *showCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one invoice number")
		return subcommands.ExitUsageError
	}
	nr, err := rechnung.ParseNumber(strings.ToUpper(f.Arg(0)))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

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

	var row rechnung.Row
	if c.draft {
		row, err = s.Draft(nr)
	} else {
		row, err = s.RowForInvoice(nr)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if row == nil {
		fmt.Fprintf(os.Stderr, "Error: no invoice %s\n", nr)
		return subcommands.ExitFailure
	}

	inv, err := rechnung.DecodeInvoice(row)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	sd, err := s.LoadStammdaten(inv.Who())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	u, err := rechnung.LoadUserData(userDataPath())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	var md string
	switch v := inv.(type) {
	case rechnung.KGInvoice:
		doc, err := renderer.NewKGDocument(v, sd, u)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		md = renderer.RenderKG(doc)
	case rechnung.HPInvoice:
		doc, err := renderer.NewHPDocument(v, sd, u)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		md = renderer.RenderHP(doc)
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}
