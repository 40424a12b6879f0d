package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fhfischer/rechnung"
)

func draftTestStore(t *testing.T) *rechnung.Store {
	t.Helper()
	dir := t.TempDir()
	s := rechnung.NewStore(filepath.Join(dir, "rechnungen"), filepath.Join(dir, "stammdaten"), 2024)
	if err := s.Bootstrap(); err != nil {
		t.Fatalf("Bootstrap() returned an unexpected error: %v", err)
	}
	return s
}

func TestStoreDraftWritesAndReportsUnchanged(t *testing.T) {
	s := draftTestStore(t)
	e := &rechnung.Engine{Store: s}
	snap := &rechnung.Snapshot{Form: rechnung.FormKG, Kuerzel: "TEST", Datum: "01.01.24", Dates: []string{"02.01.24"}}

	msg, err := storeDraft(e, s, snap)
	if err != nil {
		t.Fatalf("storeDraft() returned an unexpected error: %v", err)
	}
	if !strings.Contains(msg, "gespeichert") || strings.Contains(msg, "kein Entwurf") {
		t.Errorf("first storeDraft() = %q, want a stored-draft message", msg)
	}
	if row, err := s.Draft(snap.Number()); err != nil || row == nil {
		t.Fatalf("Draft() after storeDraft = %v, %v, want the stored row", row, err)
	}

	// The same form state again rewrites nothing.
	msg, err = storeDraft(e, s, snap)
	if err != nil {
		t.Fatalf("second storeDraft() returned an unexpected error: %v", err)
	}
	if !strings.Contains(msg, "unverändert") {
		t.Errorf("second storeDraft() = %q, want an unchanged message", msg)
	}
}

func TestStoreDraftSkipsFinalizedInvoice(t *testing.T) {
	s := draftTestStore(t)
	e := &rechnung.Engine{Store: s}
	snap := &rechnung.Snapshot{Form: rechnung.FormKG, Kuerzel: "TEST", Datum: "01.01.24", Dates: []string{"02.01.24"}}

	if err := os.WriteFile(s.DocumentPath(snap.Number()), []byte("doc"), 0644); err != nil {
		t.Fatal(err)
	}
	msg, err := storeDraft(e, s, snap)
	if err != nil {
		t.Fatalf("storeDraft() returned an unexpected error: %v", err)
	}
	if !strings.Contains(msg, "existiert bereits") {
		t.Errorf("storeDraft() = %q, want an already-finalized message", msg)
	}
	if row, err := s.Draft(snap.Number()); err != nil || row != nil {
		t.Errorf("Draft() = %v, %v, want no draft for a finalized invoice", row, err)
	}
}

func TestStoreDraftSkipsEmptyForm(t *testing.T) {
	s := draftTestStore(t)
	e := &rechnung.Engine{Store: s}
	snap := &rechnung.Snapshot{Form: rechnung.FormKG, Kuerzel: "TEST", Datum: "01.01.24"}

	msg, err := storeDraft(e, s, snap)
	if err != nil {
		t.Fatalf("storeDraft() returned an unexpected error: %v", err)
	}
	if !strings.Contains(msg, "Leeres Formular") {
		t.Errorf("storeDraft() = %q, want an empty-form message", msg)
	}
	if row, err := s.Draft(snap.Number()); err != nil || row != nil {
		t.Errorf("Draft() = %v, %v, want no draft for an empty form", row, err)
	}
}
