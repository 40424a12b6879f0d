package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fhfischer/rechnung/renderer"
	"github.com/google/subcommands"
)

// agreementsCmd holds the flags for the 'docs' subcommand.
type agreementsCmd struct {
	print bool
}

func (*agreementsCmd) Name() string     { return "docs" }
func (*agreementsCmd) Synopsis() string { return "generate the privacy and treatment agreements" }
func (*agreementsCmd) Usage() string {
	return `rp docs [-print] <kürzel>

  Generates the privacy agreement and the treatment agreement for a
  patient, next to the Stammdatei. With -print both documents are
  displayed instead of written.
`
}

func (c *agreementsCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.print, "print", false, "Display the documents instead of writing files")
}

func (c *agreementsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one Kürzel")
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
	sd, err := s.LoadStammdaten(strings.ToUpper(f.Arg(0)))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	privacy := renderer.RenderPrivacy(sd)
	therapy := renderer.RenderTherapy(sd)

	if c.print {
		printMarkdown(privacy)
		printMarkdown(therapy)
		return subcommands.ExitSuccess
	}

	for name, content := range map[string]string{
		sd.Kuerzel + "-datenschutz.md": privacy,
		sd.Kuerzel + "-vertrag.md":     therapy,
	} {
		path := filepath.Join(p.StammdatenLocation, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", path, err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Created %s\n", path)
	}
	return subcommands.ExitSuccess
}
