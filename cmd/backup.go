package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/fhfischer/rechnung"
	"github.com/google/subcommands"
)

type backupCmd struct{}

func (*backupCmd) Name() string     { return "backup" }
func (*backupCmd) Synopsis() string { return "zip the whole invoice tree into the backup folder" }
func (*backupCmd) Usage() string {
	return `rp backup

  Zips the whole rechnungen folder, all years included, into the
  configured backup location. Every backup gets a fresh timestamped name.
`
}

func (c *backupCmd) SetFlags(f *flag.FlagSet) {}

func (c *backupCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := LoadProperties()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if _, err := OpenStore(p); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	path, err := rechnung.CreateBackup(p.RechnungenLocation, p.BackupLocation)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Created %s\n", path)
	return subcommands.ExitSuccess
}
