package rechnung

import "strings"

// Form identifies which editing form a snapshot was taken from.
type Form int

const (
	FormKG Form = iota
	FormHP
	FormSettings
)

// Snapshot is the raw state of an in-progress form, exactly as the user
// left it. Nothing in here has passed validation: dates and prices are the
// literal cell contents, possibly empty or malformed. A snapshot can be
// serialized to a draft row and compared against a stored draft without
// ever interpreting the values.
type Snapshot struct {
	Form    Form
	Kuerzel string
	Datum   string // raw invoice date cell, "dd.mm.yy"

	// KG form content.
	Dates  []string // raw treatment date cells
	Arten  []string // raw treatment type cells
	Preise []string // raw unit price cells

	// HP form content.
	Rows     [][4]string // raw cells per row: date, codes, descriptions, prices
	Diagnose string

	// Settings form content.
	SettingsChanged bool
	SaveSettings    func() error
}

// Number derives the draft's invoice number from the raw kürzel and date
// cells. Like the original form, it does not validate: a half-typed date
// yields a half-formed number, which simply never matches a real one.
func (s *Snapshot) Number() Number {
	n := s.Kuerzel + strings.ReplaceAll(s.Datum, ".", "")
	if s.Form == FormHP {
		n += "H"
	}
	return Number(strings.ToUpper(n))
}

// HasContent reports whether the form's variable-length sections hold
// anything worth drafting. An empty form is never worth a draft, whatever
// the kürzel and date fields say.
func (s *Snapshot) HasContent() bool {
	switch s.Form {
	case FormKG:
		for _, c := range s.Dates {
			if c != "" {
				return true
			}
		}
		for _, c := range s.Arten {
			if c != "" {
				return true
			}
		}
		for _, c := range s.Preise {
			if c != "" {
				return true
			}
		}
	case FormHP:
		for _, row := range s.Rows {
			for _, c := range row {
				if strings.ReplaceAll(c, "\n", "") != "" {
					return true
				}
			}
		}
		if strings.ReplaceAll(s.Diagnose, "\n", "") != "" {
			return true
		}
	case FormSettings:
		return s.SettingsChanged
	}
	return false
}

// Row serializes the snapshot to its draft row. The header carries the
// "km"/"Euro" placeholders instead of computed values, since nothing is
// validated yet.
func (s *Snapshot) Row() Row {
	row := Row{s.Kuerzel, string(s.Number()), "km", "km", "km", "km", "Euro", "Euro"}
	switch s.Form {
	case FormKG:
		// The form has a fixed number of date slots; empty ones serialize
		// as empty cells so the row always decodes like a finalized one.
		dates := make([]string, maxKGDates)
		copy(dates, s.Dates)
		row = append(row, dates...)
		// Guard against nil slices so the JSON cells are stable ("[]", never "null").
		row = append(row, marshalCell(notNil(s.Arten)), marshalCell(notNil(s.Preise)))
	case FormHP:
		rows := s.Rows
		if rows == nil {
			rows = [][4]string{}
		}
		row = append(row, marshalCell(rows), strings.TrimSuffix(s.Diagnose, "\n"))
	}
	return row
}

func notNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
