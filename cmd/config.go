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

// configCmd holds the flags for the 'config' subcommand.
type configCmd struct {
	steuerID  string
	iban      string
	bic       string
	priceFrom string
	priceTo   string
}

func (*configCmd) Name() string     { return "config" }
func (*configCmd) Synopsis() string { return "show the configuration and set the owner's details" }
func (*configCmd) Usage() string {
	return `rp config [-steuer-id <id>] [-iban <iban>] [-bic <bic>] [-price-from <n>] [-price-to <n>]

  Without flags, shows the configuration and the owner's details. Flags
  update the owner's details printed on every invoice.
`
}

func (c *configCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.steuerID, "steuer-id", "", "Tax number printed on invoices")
	f.StringVar(&c.iban, "iban", "", "IBAN printed on invoices")
	f.StringVar(&c.bic, "bic", "", "BIC printed on invoices")
	f.StringVar(&c.priceFrom, "price-from", "", "Lower bound of the suggested HP price range")
	f.StringVar(&c.priceTo, "price-to", "", "Upper bound of the suggested HP price range")
}

func (c *configCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := LoadProperties()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	u, err := rechnung.LoadUserData(userDataPath())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	changed := false
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
			changed = true
		}
	}
	set(&u.SteuerID, c.steuerID)
	set(&u.IBAN, c.iban)
	set(&u.BIC, c.bic)
	set(&u.PriceFrom, c.priceFrom)
	set(&u.PriceTo, c.priceTo)
	if changed {
		if err := rechnung.SaveUserData(userDataPath(), u); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		fmt.Println("Saved owner details.")
		return subcommands.ExitSuccess
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Konfiguration\n\n")
	fmt.Fprintf(&b, "| | |\n|---|---|\n")
	fmt.Fprintf(&b, "| Programmjahr | %d |\n", p.ProgramYear)
	fmt.Fprintf(&b, "| Rechnungen | %s |\n", p.RechnungenLocation)
	fmt.Fprintf(&b, "| Stammdaten | %s |\n", p.StammdatenLocation)
	fmt.Fprintf(&b, "| Backups | %s (aktiv: %t) |\n", p.BackupLocation, p.BackupsEnabled)
	fmt.Fprintf(&b, "| Behandlungsarten-Limit | %d (aktiv: %t) |\n", p.BehandlungsartenLimit, p.BehandlungsartenLimiter)
	fmt.Fprintf(&b, "| Steuernummer | %s |\n", u.SteuerID)
	fmt.Fprintf(&b, "| IBAN | %s |\n", u.IBAN)
	fmt.Fprintf(&b, "| BIC | %s |\n", u.BIC)
	fmt.Fprintf(&b, "| Preisspanne | %s bis %s |\n", u.PriceFrom, u.PriceTo)
	if !u.HasBankDetails() {
		b.WriteString("\nDie Bankdaten sind unvollständig, sie fehlen auf den Rechnungen.\n")
	}
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}
