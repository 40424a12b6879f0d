package rechnung

import (
	"errors"
	"os"
	"testing"
)

func TestRowForInvoice(t *testing.T) {
	s := newTestStore(t)
	row, _ := EncodeKGRow(testKG(), testStammdaten())
	if err := s.AppendRow(row); err != nil {
		t.Fatalf("AppendRow() returned an unexpected error: %v", err)
	}

	got, err := s.RowForInvoice("TEST010124")
	if err != nil {
		t.Fatalf("RowForInvoice() returned an unexpected error: %v", err)
	}
	if got == nil || !got.Equal(row) {
		t.Errorf("RowForInvoice() did not return the stored row")
	}

	// Absent numbers are nil, nil: not an error, there is simply no row.
	got, err = s.RowForInvoice("ABCD010124")
	if err != nil || got != nil {
		t.Errorf("RowForInvoice(absent) = %v, %v, want nil, nil", got, err)
	}
}

func TestRowForInvoiceCorruptSummary(t *testing.T) {
	s := newTestStore(t)
	row, _ := EncodeKGRow(KGInvoice{
		Kuerzel:          "ABCD",
		Date:             testKG().Date,
		Dates:            testKG().Dates,
		Behandlungsarten: testKG().Behandlungsarten,
	}, func() Stammdaten { sd := testStammdaten(); sd.Kuerzel = "ABCD"; return sd }())

	// Two rows for the same number is an ambiguous state: it must surface
	// as an error, never as an arbitrary pick.
	if err := s.AppendRow(row); err != nil {
		t.Fatal(err)
	}
	if err := s.AppendRow(row); err != nil {
		t.Fatal(err)
	}

	_, err := s.RowForInvoice("ABCD010124")
	if !errors.Is(err, ErrCorruptSummary) {
		t.Errorf("RowForInvoice(duplicated) = %v, want ErrCorruptSummary", err)
	}
}

func TestRemoveRows(t *testing.T) {
	s := newTestStore(t)
	sd := testStammdaten()
	kgRow, _ := EncodeKGRow(testKG(), sd)
	hpRow, _ := EncodeHPRow(testHP(), sd)
	if err := s.AppendRow(kgRow); err != nil {
		t.Fatal(err)
	}
	if err := s.AppendRow(hpRow); err != nil {
		t.Fatal(err)
	}

	// The KG number is a prefix of the HP number. Removal matches the
	// field, not a substring, so the HP row must survive.
	removed, err := s.RemoveRows("TEST010124")
	if err != nil {
		t.Fatalf("RemoveRows() returned an unexpected error: %v", err)
	}
	if removed != 1 {
		t.Errorf("RemoveRows() removed %d rows, want 1", removed)
	}
	rows, err := s.Rows()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0].Number() != "TEST010124H" {
		t.Errorf("remaining rows = %v, want only TEST010124H", rows)
	}
}

func TestRemoveRowsKeepsFileMode(t *testing.T) {
	s := newTestStore(t)
	sd := testStammdaten()
	kgRow, _ := EncodeKGRow(testKG(), sd)
	hpRow, _ := EncodeHPRow(testHP(), sd)
	if err := s.AppendRow(kgRow); err != nil {
		t.Fatal(err)
	}
	if err := s.AppendRow(hpRow); err != nil {
		t.Fatal(err)
	}

	if _, err := s.RemoveRows("TEST010124"); err != nil {
		t.Fatalf("RemoveRows() returned an unexpected error: %v", err)
	}
	fi, err := os.Stat(s.summaryPath())
	if err != nil {
		t.Fatal(err)
	}
	if got := fi.Mode().Perm(); got != 0644 {
		t.Errorf("summary mode after rewrite = %o, want 644", got)
	}
}

func TestRemoveRowsZeroMatchesIsNoOp(t *testing.T) {
	s := newTestStore(t)
	row, _ := EncodeKGRow(testKG(), testStammdaten())
	if err := s.AppendRow(row); err != nil {
		t.Fatal(err)
	}
	before, err := os.ReadFile(s.summaryPath())
	if err != nil {
		t.Fatal(err)
	}

	removed, err := s.RemoveRows("XXXX010124")
	if err != nil {
		t.Fatalf("RemoveRows() returned an unexpected error: %v", err)
	}
	if removed != 0 {
		t.Errorf("RemoveRows() removed %d rows, want 0", removed)
	}

	after, err := os.ReadFile(s.summaryPath())
	if err != nil {
		t.Fatal(err)
	}
	if string(before) != string(after) {
		t.Errorf("RemoveRows() with zero matches rewrote the file")
	}
}

func TestRemoveRowsMissingFileIsNoOp(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.RemoveRows("TEST010124"); err != nil {
		t.Errorf("RemoveRows() on a missing summary file = %v, want nil", err)
	}
}

func TestDraftLifecycle(t *testing.T) {
	s := newTestStore(t)
	snap := &Snapshot{Form: FormKG, Kuerzel: "TEST", Datum: "01.01.24", Dates: []string{"02.01.24"}}
	row := snap.Row()

	if err := s.WriteDraft(row); err != nil {
		t.Fatalf("WriteDraft() returned an unexpected error: %v", err)
	}
	got, err := s.Draft("TEST010124")
	if err != nil {
		t.Fatalf("Draft() returned an unexpected error: %v", err)
	}
	if got == nil || !got.Equal(row) {
		t.Errorf("Draft() did not return the stored row")
	}

	nrs, err := s.ListDrafts()
	if err != nil {
		t.Fatal(err)
	}
	if len(nrs) != 1 || nrs[0] != "TEST010124" {
		t.Errorf("ListDrafts() = %v, want [TEST010124]", nrs)
	}

	if err := s.DeleteDraft("TEST010124"); err != nil {
		t.Fatalf("DeleteDraft() returned an unexpected error: %v", err)
	}
	if got, _ := s.Draft("TEST010124"); got != nil {
		t.Errorf("draft still present after DeleteDraft()")
	}
	// Deleting again is a no-op.
	if err := s.DeleteDraft("TEST010124"); err != nil {
		t.Errorf("second DeleteDraft() = %v, want nil", err)
	}
}

func TestDraftLookupIsExactButCaseInsensitive(t *testing.T) {
	s := newTestStore(t)
	snap := &Snapshot{Form: FormKG, Kuerzel: "TEST", Datum: "01.01.24", Dates: []string{"02.01.24"}}
	if err := s.WriteDraft(snap.Row()); err != nil {
		t.Fatal(err)
	}

	// Case differences in the filename are tolerated.
	if got, err := s.Draft("test010124"); err != nil || got == nil {
		t.Errorf("Draft(lowercase) = %v, %v, want the stored draft", got, err)
	}
	// A number that merely contains the stored one as a substring is a
	// different invoice and must not match or be deleted.
	if got, _ := s.Draft("TEST010124H"); got != nil {
		t.Errorf("Draft() matched a different number by substring")
	}
	if err := s.DeleteDraft("TEST010124H"); err != nil {
		t.Fatal(err)
	}
	if got, _ := s.Draft("TEST010124"); got == nil {
		t.Errorf("DeleteDraft() of a different number removed this draft")
	}
}

func TestDocumentAndInvoiceListing(t *testing.T) {
	s := newTestStore(t)
	if s.DocumentExists("TEST010124") {
		t.Errorf("DocumentExists() on an empty store")
	}
	if err := os.WriteFile(s.DocumentPath("TEST010124"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(s.DocumentPath("TEST010124H"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if !s.DocumentExists("TEST010124") {
		t.Errorf("DocumentExists() = false for an existing document")
	}

	nrs, err := s.ListInvoices()
	if err != nil {
		t.Fatal(err)
	}
	if len(nrs) != 2 || nrs[0] != "TEST010124" || nrs[1] != "TEST010124H" {
		t.Errorf("ListInvoices() = %v, want [TEST010124 TEST010124H]", nrs)
	}
}
