package rechnung

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/fhfischer/rechnung/date"
	"github.com/shopspring/decimal"
)

// maxKGDates is the number of treatment date slots on a KG invoice. The
// printed form has exactly ten cells, the summary row always carries all
// ten (empty ones included).
const maxKGDates = 10

// Invoice defines the common interface of both invoice kinds.
type Invoice interface {
	What() Kind      // What returns the invoice kind (KG or HP).
	Who() string     // Who returns the patient code the invoice refers to.
	When() date.Date // When returns the invoice date.
	Number() Number  // Number returns the derived invoice number.
	// Validate checks the invoice against the patient master record it
	// belongs to. It assumes field-level input validation (date formats,
	// numbers) already happened at the form boundary.
	Validate(s Stammdaten) error
}

// Behandlung is one treatment-type line item on a KG invoice.
type Behandlung struct {
	Art         string          // treatment type, e.g. "Krankengymnastik"
	Einzelpreis decimal.Decimal // unit price per visit, in euro
}

// KGInvoice is a Krankengymnastik invoice: a list of visit dates and a list
// of treatment types, each billed once per visit.
type KGInvoice struct {
	Kuerzel          string
	Date             date.Date
	Dates            []date.Date // treatment dates, at most ten
	Behandlungsarten []Behandlung
}

func (v KGInvoice) What() Kind      { return KG }
func (v KGInvoice) Who() string     { return v.Kuerzel }
func (v KGInvoice) When() date.Date { return v.Date }
func (v KGInvoice) Number() Number  { return ComputeNumber(v.Kuerzel, v.Date, KG) }

// Visits returns the number of treatment dates.
func (v KGInvoice) Visits() int { return len(v.Dates) }

// Total returns the invoice total: the sum of all unit prices, each billed
// once per visit.
func (v KGInvoice) Total() decimal.Decimal {
	visits := decimal.NewFromInt(int64(v.Visits()))
	total := decimal.Zero
	for _, b := range v.Behandlungsarten {
		total = total.Add(b.Einzelpreis.Mul(visits))
	}
	return total
}

// KmTotal returns the total distance driven: there and back per visit.
func (v KGInvoice) KmTotal(s Stammdaten) (decimal.Decimal, error) {
	km, err := s.Km()
	if err != nil {
		return decimal.Zero, err
	}
	return km.Mul(decimal.NewFromInt(2)).Mul(decimal.NewFromInt(int64(v.Visits()))), nil
}

func (v KGInvoice) Validate(s Stammdaten) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if v.Kuerzel != s.Kuerzel {
		return fmt.Errorf("invoice kürzel %q does not match stammdatei %q", v.Kuerzel, s.Kuerzel)
	}
	if v.Date.IsZero() {
		return fmt.Errorf("invoice has no date")
	}
	if len(v.Dates) > maxKGDates {
		return fmt.Errorf("too many treatment dates: %d, the form has %d", len(v.Dates), maxKGDates)
	}
	if len(v.Behandlungsarten) == 0 {
		return fmt.Errorf("invoice has no Behandlungsarten")
	}
	for i, b := range v.Behandlungsarten {
		if b.Art == "" {
			return fmt.Errorf("behandlungsart %d has no value", i+1)
		}
	}
	return nil
}

// HPRow is one treatment block on an HP invoice: one date, and parallel
// lists of service codes, descriptions, and prices.
type HPRow struct {
	Date           date.Date
	Codes          []string
	Beschreibungen []string
	Einzelpreise   []decimal.Decimal
}

// Total returns the sum of the row's prices.
func (r HPRow) Total() decimal.Decimal {
	total := decimal.Zero
	for _, p := range r.Einzelpreise {
		total = total.Add(p)
	}
	return total
}

// HPInvoice is a Heilpraktiker invoice: per-date treatment rows plus a
// free-text diagnosis.
type HPInvoice struct {
	Kuerzel  string
	Date     date.Date
	Rows     []HPRow
	Diagnose string
}

func (v HPInvoice) What() Kind      { return HP }
func (v HPInvoice) Who() string     { return v.Kuerzel }
func (v HPInvoice) When() date.Date { return v.Date }
func (v HPInvoice) Number() Number  { return ComputeNumber(v.Kuerzel, v.Date, HP) }

// Total returns the invoice total: the sum of all line prices.
func (v HPInvoice) Total() decimal.Decimal {
	total := decimal.Zero
	for _, r := range v.Rows {
		total = total.Add(r.Total())
	}
	return total
}

// KmTotal returns the total distance driven: there and back per row.
func (v HPInvoice) KmTotal(s Stammdaten) (decimal.Decimal, error) {
	km, err := s.Km()
	if err != nil {
		return decimal.Zero, err
	}
	return km.Mul(decimal.NewFromInt(2)).Mul(decimal.NewFromInt(int64(len(v.Rows)))), nil
}

func (v HPInvoice) Validate(s Stammdaten) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if v.Kuerzel != s.Kuerzel {
		return fmt.Errorf("invoice kürzel %q does not match stammdatei %q", v.Kuerzel, s.Kuerzel)
	}
	if v.Date.IsZero() {
		return fmt.Errorf("invoice has no date")
	}
	if len(v.Rows) == 0 {
		return fmt.Errorf("invoice has no treatment rows")
	}
	for i, r := range v.Rows {
		if r.Date.IsZero() {
			return fmt.Errorf("row %d has no date", i+1)
		}
		if len(r.Codes) == 0 {
			return fmt.Errorf("row %d has no entries", i+1)
		}
		if len(r.Beschreibungen) != len(r.Codes) || len(r.Einzelpreise) != len(r.Codes) {
			return fmt.Errorf("row %d entry counts do not match", i+1)
		}
	}
	return nil
}

// EUR formats an amount as euro for display, e.g. "€123.40".
func EUR(d decimal.Decimal) string {
	cents := d.Shift(2).Round(0).IntPart()
	return money.New(cents, money.EUR).Display()
}
