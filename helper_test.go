package rechnung

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fhfischer/rechnung/date"
	"github.com/shopspring/decimal"
)

// newTestStore is a helper that creates a bootstrapped store over a fresh
// temp directory, for the program year 2024.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	s := NewStore(filepath.Join(dir, "rechnungen"), filepath.Join(dir, "stammdaten"), 2024)
	if err := s.Bootstrap(); err != nil {
		t.Fatalf("Bootstrap() returned an unexpected error: %v", err)
	}
	return s
}

// testStammdaten is a complete, valid master record for the test patient.
func testStammdaten() Stammdaten {
	return Stammdaten{
		Kuerzel:     "TEST",
		Gender:      Frau,
		LastName:    "Musterfrau",
		FirstName:   "Erika",
		Street:      "Heidestraße",
		HouseNumber: "17",
		PostalCode:  "51147",
		City:        "Köln",
		Birthdate:   "12.08.64",
		Kilometers:  "3.5",
		Physician:   "Dr. Sommer",
		Email:       "erika@example.org",
		Kind:        KG,
		Phone:       "0221 1234",
	}
}

// testKG is a small two-visit, two-treatment KG invoice for TEST on 01.01.24.
func testKG() KGInvoice {
	return KGInvoice{
		Kuerzel: "TEST",
		Date:    date.MustParse("01.01.24"),
		Dates:   []date.Date{date.MustParse("02.01.24"), date.MustParse("09.01.24")},
		Behandlungsarten: []Behandlung{
			{Art: "Krankengymnastik", Einzelpreis: decimal.RequireFromString("25.50")},
			{Art: "Massage", Einzelpreis: decimal.RequireFromString("19.90")},
		},
	}
}

// testHP is a one-row HP invoice for TEST on 01.01.24.
func testHP() HPInvoice {
	return HPInvoice{
		Kuerzel: "TEST",
		Date:    date.MustParse("01.01.24"),
		Rows: []HPRow{{
			Date:           date.MustParse("02.01.24"),
			Codes:          []string{"12.1", "20.1"},
			Beschreibungen: []string{"Beratung", "Massage"},
			Einzelpreise:   []decimal.Decimal{decimal.RequireFromString("30.00"), decimal.RequireFromString("19.90")},
		}},
		Diagnose: "Lumbalgie",
	}
}

// scriptedConfirmer answers confirmations from a fixed script and records
// how often it was asked.
type scriptedConfirmer struct {
	answers []Answer
	asked   int
}

func (c *scriptedConfirmer) Confirm(title, message string) Answer {
	c.asked++
	if len(c.answers) == 0 {
		return AnswerNo
	}
	a := c.answers[0]
	if len(c.answers) > 1 {
		c.answers = c.answers[1:]
	}
	return a
}

// stubRenderer writes a marker file, or fails when told to.
type stubRenderer struct {
	fail   bool
	called int
}

func (r *stubRenderer) Render(inv Invoice, s Stammdaten, path string) error {
	r.called++
	if r.fail {
		return os.ErrPermission
	}
	return os.WriteFile(path, []byte("document for "+string(inv.Number())), 0644)
}

// newTestEngine wires a store, stub renderer and scripted confirmer.
func newTestEngine(t *testing.T, answers ...Answer) (*Engine, *scriptedConfirmer, *stubRenderer) {
	t.Helper()
	c := &scriptedConfirmer{answers: answers}
	r := &stubRenderer{}
	e := &Engine{Store: newTestStore(t), Renderer: r, Confirm: c}
	return e, c, r
}
