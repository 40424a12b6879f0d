package renderer

import (
	"github.com/fhfischer/rechnung"
)

// HPDocument is a struct to represent a Heilpraktiker invoice for
// rendering.
type HPDocument struct {
	Number  string
	Date    string
	Patient Patient
	// Diagnose is the free-text diagnosis block.
	Diagnose string
	// Blocks is the list of per-date treatment blocks.
	Blocks []HPBlock
	// Kilometers per visit, there and back, and the total over all blocks.
	Kilometers string
	KmTotal    string
	Total      string
	Footer     Footer
}

// HPBlock represents the treatments of a single date.
type HPBlock struct {
	Date      string
	Positions []HPPosition
	Gesamt    string
}

// HPPosition represents a single service on an HP invoice, identified by
// its Gebührenverzeichnis code.
type HPPosition struct {
	Code         string
	Beschreibung string
	Einzelpreis  string
}

// NewHPDocument populates an HPDocument from a validated invoice, its
// master record and the owner's user data.
func NewHPDocument(inv rechnung.HPInvoice, s rechnung.Stammdaten, u rechnung.UserData) (*HPDocument, error) {
	kmTotal, err := inv.KmTotal(s)
	if err != nil {
		return nil, err
	}

	doc := &HPDocument{
		Number:     string(inv.Number()),
		Date:       inv.Date.String(),
		Patient:    NewPatient(s),
		Diagnose:   inv.Diagnose,
		Kilometers: s.Kilometers,
		KmTotal:    kmTotal.String(),
		Total:      rechnung.EUR(inv.Total()),
		Footer:     NewFooter(u),
	}
	for _, r := range inv.Rows {
		block := HPBlock{Date: r.Date.String(), Gesamt: rechnung.EUR(r.Total())}
		for i := range r.Codes {
			block.Positions = append(block.Positions, HPPosition{
				Code:         r.Codes[i],
				Beschreibung: r.Beschreibungen[i],
				Einzelpreis:  rechnung.EUR(r.Einzelpreise[i]),
			})
		}
		doc.Blocks = append(doc.Blocks, block)
	}
	return doc, nil
}
