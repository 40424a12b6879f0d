package renderer

import (
	"github.com/fhfischer/rechnung"
	"github.com/shopspring/decimal"
)

// KGDocument is a struct to represent a Krankengymnastik invoice for
// rendering. All amounts are pre-formatted strings so the templates stay
// free of arithmetic.
type KGDocument struct {
	// Number is the invoice number printed in the title.
	Number string
	// Date of the invoice.
	Date string
	// Patient block.
	Patient Patient
	// Dates is the list of treatment dates, in form order.
	Dates []string
	// Visits is the number of treatment dates.
	Visits int
	// Positions is the list of billed treatment types.
	Positions []KGPosition
	// Kilometers per visit, there and back, and the total over all visits.
	Kilometers string
	KmTotal    string
	// Total is the formatted invoice total.
	Total string
	// Footer carries the practice owner's tax and bank details.
	Footer Footer
}

// KGPosition represents a single treatment type line.
type KGPosition struct {
	Art         string
	Visits      int
	Einzelpreis string
	Gesamt      string
}

// Patient is the shared address block of all documents.
type Patient struct {
	Anrede      string // "Herr" or "Frau"
	Briefanrede string // "Sehr geehrter Herr ..." respectively "Sehr geehrte Frau ..."
	FirstName   string
	LastName    string
	Street      string
	HouseNumber string
	PostalCode  string
	City        string
	Birthdate   string
	Physician   string
}

// Footer carries the bank details printed under every invoice. Empty
// fields render as empty lines, matching an installation where the owner
// has not filled in the settings yet.
type Footer struct {
	SteuerID string
	IBAN     string
	BIC      string
}

// NewPatient builds the address block from a master record.
func NewPatient(s rechnung.Stammdaten) Patient {
	p := Patient{
		Anrede:      s.Gender.String(),
		FirstName:   s.FirstName,
		LastName:    s.LastName,
		Street:      s.Street,
		HouseNumber: s.HouseNumber,
		PostalCode:  s.PostalCode,
		City:        s.City,
		Birthdate:   s.Birthdate,
		Physician:   s.Physician,
	}
	if s.Gender == rechnung.Mann {
		p.Anrede = "Herr"
		p.Briefanrede = "Sehr geehrter Herr " + s.LastName
	} else {
		p.Anrede = "Frau"
		p.Briefanrede = "Sehr geehrte Frau " + s.LastName
	}
	return p
}

// NewFooter builds the footer block from the owner's user data.
func NewFooter(u rechnung.UserData) Footer {
	return Footer{SteuerID: u.SteuerID, IBAN: u.IBAN, BIC: u.BIC}
}

// NewKGDocument populates a KGDocument from a validated invoice, its
// master record and the owner's user data.
func NewKGDocument(inv rechnung.KGInvoice, s rechnung.Stammdaten, u rechnung.UserData) (*KGDocument, error) {
	kmTotal, err := inv.KmTotal(s)
	if err != nil {
		return nil, err
	}

	doc := &KGDocument{
		Number:     string(inv.Number()),
		Date:       inv.Date.String(),
		Patient:    NewPatient(s),
		Visits:     inv.Visits(),
		Kilometers: s.Kilometers,
		KmTotal:    kmTotal.String(),
		Total:      rechnung.EUR(inv.Total()),
		Footer:     NewFooter(u),
	}
	for _, d := range inv.Dates {
		doc.Dates = append(doc.Dates, d.String())
	}
	for _, b := range inv.Behandlungsarten {
		doc.Positions = append(doc.Positions, KGPosition{
			Art:         b.Art,
			Visits:      inv.Visits(),
			Einzelpreis: rechnung.EUR(b.Einzelpreis),
			Gesamt:      rechnung.EUR(b.Einzelpreis.Mul(visitsDecimal(inv.Visits()))),
		})
	}
	return doc, nil
}

func visitsDecimal(n int) decimal.Decimal { return decimal.NewFromInt(int64(n)) }
