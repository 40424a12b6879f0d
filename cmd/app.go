// Package cmd implements the CLI application to manage the practice's
// invoices.
package cmd

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fhfischer/rechnung"
	"github.com/fhfischer/rechnung/renderer"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&kgCmd{}, "rechnungen")
	c.Register(&hpCmd{}, "rechnungen")
	c.Register(&listCmd{}, "rechnungen")
	c.Register(&showCmd{}, "rechnungen")
	c.Register(&rmCmd{}, "rechnungen")

	c.Register(&stammdatenCmd{}, "stammdaten")
	c.Register(&agreementsCmd{}, "stammdaten")

	c.Register(&configCmd{}, "verwaltung")
	c.Register(&yearCmd{}, "verwaltung")
	c.Register(&backupCmd{}, "verwaltung")
	c.Register(&topicCmd{}, "verwaltung")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var baseDir = flag.String("base-dir", ".", "Path to the folder holding rechnungen/, stammdaten/ and system/")

func propertiesPath() string { return filepath.Join(*baseDir, "system", "properties.yml") }
func userDataPath() string   { return filepath.Join(*baseDir, "system", "user_data.yml") }

// LoadProperties reads the app configuration, creating it with defaults on
// first start.
func LoadProperties() (rechnung.Properties, error) {
	return rechnung.LoadProperties(propertiesPath(), rechnung.DefaultProperties(*baseDir))
}

// OpenStore is the central function to open the record store for the
// configured program year.
func OpenStore(p rechnung.Properties) (*rechnung.Store, error) {
	s := rechnung.NewStore(p.RechnungenLocation, p.StammdatenLocation, p.ProgramYear)
	if err := s.Bootstrap(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewEngine wires a reconciliation engine with the bundled document
// renderer and a confirmer that asks on the terminal. It also returns the
// user data so callers can check it before finalizing.
func NewEngine(s *rechnung.Store) (*rechnung.Engine, rechnung.UserData, error) {
	u, err := rechnung.LoadUserData(userDataPath())
	if err != nil {
		return nil, rechnung.UserData{}, err
	}
	e := &rechnung.Engine{
		Store:    s,
		Renderer: &renderer.Renderer{User: u},
		Confirm:  rechnung.ConfirmerFunc(askTerminal),
	}
	return e, u, nil
}

// confirmBankDetails warns when the Steuernummer or the bank details are
// still unset. The invoice footer would render with blanks, so the user has
// to confirm explicitly.
func confirmBankDetails(u rechnung.UserData) bool {
	if u.HasBankDetails() {
		return true
	}
	return askTerminal("Benutzerdaten unvollständig", "Steuernummer oder Bankverbindung fehlen noch. Rechnung trotzdem erstellen?") == rechnung.AnswerYes
}

// maybeBackup snapshots the rechnungen tree before a command mutates it.
// A failing backup is reported but does not block the command.
func maybeBackup(p rechnung.Properties) {
	if !p.BackupsEnabled {
		return
	}
	if _, err := rechnung.CreateBackup(p.RechnungenLocation, p.BackupLocation); err != nil {
		fmt.Fprintf(os.Stderr, "Warnung: Backup fehlgeschlagen: %v\n", err)
	}
}

// storeDraft routes a form snapshot through the engine with the draft
// question pre-answered and reports what actually happened: the engine
// proceeds without writing when the invoice is already finalized or the
// stored draft is unchanged.
func storeDraft(e *rechnung.Engine, s *rechnung.Store, snap *rechnung.Snapshot) (string, error) {
	nr := snap.Number()
	if !snap.HasContent() {
		return fmt.Sprintf("Leeres Formular, kein Entwurf für %s gespeichert", nr), nil
	}
	if s.DocumentExists(nr) {
		return fmt.Sprintf("Rechnung %s existiert bereits, kein Entwurf gespeichert", nr), nil
	}
	before, err := s.Draft(nr)
	if err != nil {
		return "", err
	}
	// An explicit -draft is already the answer to "save a draft?".
	e.Confirm = rechnung.ConfirmerFunc(func(string, string) rechnung.Answer { return rechnung.AnswerYes })
	if _, err := e.StoreDraftOrProceed(snap); err != nil {
		return "", err
	}
	if before != nil && before.Equal(snap.Row()) {
		return fmt.Sprintf("Entwurf für %s ist unverändert", nr), nil
	}
	return fmt.Sprintf("Entwurf für %s gespeichert", nr), nil
}

// askTerminal asks a yes/no/cancel question on the terminal. Anything but
// j(a) or n(ein) cancels.
func askTerminal(title, message string) rechnung.Answer {
	fmt.Fprintf(os.Stderr, "%s: %s [j/n/abbruch] ", title, message)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return rechnung.AnswerCancel
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "j", "ja":
		return rechnung.AnswerYes
	case "n", "nein":
		return rechnung.AnswerNo
	default:
		return rechnung.AnswerCancel
	}
}
