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

// stammdatenCmd holds the flags for the 'stammdaten' subcommand.
type stammdatenCmd struct {
	remove bool
	create bool

	sd struct {
		gender    string
		lastName  string
		firstName string
		street    string
		houseNr   string
		plz       string
		city      string
		birthdate string
		km        string
		physician string
		email     string
		kind      string
		phone     string
	}
}

func (*stammdatenCmd) Name() string     { return "stammdaten" }
func (*stammdatenCmd) Synopsis() string { return "list, show, create or remove patient master records" }
func (*stammdatenCmd) Usage() string {
	return `rp stammdaten
rp stammdaten <kürzel>
rp stammdaten -new <kürzel> -name <n> -vorname <v> ...
rp stammdaten -rm <kürzel>

  Without arguments, lists all Kürzel. With a Kürzel, shows that record.
  -new creates or replaces a record, -rm deletes one.
`
}

func (c *stammdatenCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.create, "new", false, "Create or replace the record for the given Kürzel")
	f.BoolVar(&c.remove, "rm", false, "Remove the record for the given Kürzel")

	f.StringVar(&c.sd.gender, "anrede", "Frau", "Anrede: Mann or Frau")
	f.StringVar(&c.sd.lastName, "name", "", "Last name")
	f.StringVar(&c.sd.firstName, "vorname", "", "First name")
	f.StringVar(&c.sd.street, "strasse", "", "Street")
	f.StringVar(&c.sd.houseNr, "hausnummer", "", "House number")
	f.StringVar(&c.sd.plz, "plz", "", "Postal code")
	f.StringVar(&c.sd.city, "ort", "", "City")
	f.StringVar(&c.sd.birthdate, "geburtsdatum", "", "Birthdate (optional)")
	f.StringVar(&c.sd.km, "km", "", "One-way distance for house calls, km")
	f.StringVar(&c.sd.physician, "arzt", "", "Prescribing physician (optional)")
	f.StringVar(&c.sd.email, "email", "", "E-mail (optional)")
	f.StringVar(&c.sd.kind, "art", "KG", "Default invoice kind: KG or HP")
	f.StringVar(&c.sd.phone, "telefon", "", "Phone (optional)")
}

func (c *stammdatenCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	switch {
	case c.create:
		return c.executeCreate(s, f)
	case c.remove:
		return c.executeRemove(s, f)
	case f.NArg() == 1:
		return c.executeShow(s, f.Arg(0))
	default:
		return c.executeList(s)
	}
}

func (c *stammdatenCmd) executeList(s *rechnung.Store) subcommands.ExitStatus {
	kuerzel, err := s.ListStammdaten()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	var b strings.Builder
	b.WriteString("# Stammdaten\n\n")
	for _, k := range kuerzel {
		sd, err := s.LoadStammdaten(k)
		if err != nil {
			fmt.Fprintf(&b, "- %s (unreadable: %v)\n", k, err)
			continue
		}
		fmt.Fprintf(&b, "- %s: %s %s, %s (%s)\n", k, sd.FirstName, sd.LastName, sd.City, sd.Kind)
	}
	fmt.Fprintf(&b, "\n%d Stammdatei(en).\n", len(kuerzel))
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}

func (c *stammdatenCmd) executeShow(s *rechnung.Store, kuerzel string) subcommands.ExitStatus {
	sd, err := s.LoadStammdaten(strings.ToUpper(kuerzel))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Println(sd.Encode())
	return subcommands.ExitSuccess
}

func (c *stammdatenCmd) executeCreate(s *rechnung.Store, f *flag.FlagSet) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: -new expects exactly one Kürzel")
		return subcommands.ExitUsageError
	}
	gender, err := rechnung.ParseGender(c.sd.gender)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	kind, err := rechnung.ParseKind(c.sd.kind)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	sd := rechnung.Stammdaten{
		Kuerzel:     strings.ToUpper(f.Arg(0)),
		Gender:      gender,
		LastName:    c.sd.lastName,
		FirstName:   c.sd.firstName,
		Street:      c.sd.street,
		HouseNumber: c.sd.houseNr,
		PostalCode:  c.sd.plz,
		City:        c.sd.city,
		Birthdate:   c.sd.birthdate,
		Kilometers:  c.sd.km,
		Physician:   c.sd.physician,
		Email:       c.sd.email,
		Kind:        kind,
		Phone:       c.sd.phone,
	}
	if err := sd.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	if err := s.SaveStammdaten(sd); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Saved Stammdatei %s\n", sd.Kuerzel)
	return subcommands.ExitSuccess
}

func (c *stammdatenCmd) executeRemove(s *rechnung.Store, f *flag.FlagSet) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: -rm expects exactly one Kürzel")
		return subcommands.ExitUsageError
	}
	kuerzel := strings.ToUpper(f.Arg(0))
	if askTerminal("Warnung", fmt.Sprintf("Beim Fortfahren wird die Stammdatei %s gelöscht!", kuerzel)) != rechnung.AnswerYes {
		fmt.Fprintln(os.Stderr, "Abgebrochen.")
		return subcommands.ExitFailure
	}
	if err := s.DeleteStammdaten(kuerzel); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Removed Stammdatei %s\n", kuerzel)
	return subcommands.ExitSuccess
}
