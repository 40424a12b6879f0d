package rechnung

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrStammdatenNotFound reports that no master record exists for a patient
// code. This is a normal, user-correctable condition: the caller reports it
// and lets the user retry, it never aborts the program.
var ErrStammdatenNotFound = errors.New("stammdatei not found")

// stammdatenLines is the fixed number of lines in a stammdatei.
const stammdatenLines = 14

// Stammdaten is a patient master record, one file per patient code.
//
// The file layout is positional: one field per line, in the order of the
// struct fields below, with no trailing newline after the last line.
// Birthdate, Physician, Email and Phone may be empty.
type Stammdaten struct {
	Kuerzel     string // 4 uppercase alphanumeric characters, the primary key
	Gender      Gender
	LastName    string
	FirstName   string
	Street      string
	HouseNumber string
	PostalCode  string
	City        string
	Birthdate   string // "dd.mm.yy", may be empty
	Kilometers  string // distance to the patient one way, numeric string
	Physician   string // treating physician, may be empty
	Email       string // may be empty
	Kind        Kind   // default invoice kind for this patient
	Phone       string // may be empty
}

// lines returns the positional file representation of the record.
func (s Stammdaten) lines() []string {
	return []string{
		s.Kuerzel,
		s.Gender.String(),
		s.LastName,
		s.FirstName,
		s.Street,
		s.HouseNumber,
		s.PostalCode,
		s.City,
		s.Birthdate,
		s.Kilometers,
		s.Physician,
		s.Email,
		s.Kind.String(),
		s.Phone,
	}
}

// Encode returns the file content of the record.
func (s Stammdaten) Encode() string {
	return strings.Join(s.lines(), "\n")
}

// ParseStammdaten parses the content of a stammdatei.
//
// The shape of the file is validated here, once, at the parse boundary:
// line count, gender and kind. Field-level requirements that only matter
// when creating an invoice (non-empty required fields, numeric kilometers)
// are checked separately by Validate.
func ParseStammdaten(content string) (Stammdaten, error) {
	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	// A trailing newline after the last field is tolerated.
	if n := len(lines); n == stammdatenLines+1 && lines[n-1] == "" {
		lines = lines[:stammdatenLines]
	}
	if len(lines) < stammdatenLines {
		return Stammdaten{}, fmt.Errorf("stammdatei has %d lines, want %d", len(lines), stammdatenLines)
	}
	lines = lines[:stammdatenLines]

	gender, err := ParseGender(lines[1])
	if err != nil {
		return Stammdaten{}, fmt.Errorf("stammdatei line 2: %w", err)
	}
	kind, err := ParseKind(lines[12])
	if err != nil {
		return Stammdaten{}, fmt.Errorf("stammdatei line 13: %w", err)
	}

	return Stammdaten{
		Kuerzel:     lines[0],
		Gender:      gender,
		LastName:    lines[2],
		FirstName:   lines[3],
		Street:      lines[4],
		HouseNumber: lines[5],
		PostalCode:  lines[6],
		City:        lines[7],
		Birthdate:   lines[8],
		Kilometers:  lines[9],
		Physician:   lines[10],
		Email:       lines[11],
		Kind:        kind,
		Phone:       lines[13],
	}, nil
}

// Km returns the one-way distance as an exact decimal.
func (s Stammdaten) Km() (decimal.Decimal, error) {
	km, err := decimal.NewFromString(strings.ReplaceAll(s.Kilometers, ",", "."))
	if err != nil {
		return decimal.Zero, fmt.Errorf("stammdatei kilometers is not a number: %q", s.Kilometers)
	}
	return km, nil
}

// Validate checks the record the way invoice creation needs it: the code
// well-formed, every required field non-empty and the distance numeric.
// The reported line numbers are 1-based, matching what the user sees in
// the file.
func (s Stammdaten) Validate() error {
	if !kuerzelRegex.MatchString(s.Kuerzel) {
		return fmt.Errorf("kürzel %q is not 4 uppercase letters/digits", s.Kuerzel)
	}
	if _, err := s.Km(); err != nil {
		return err
	}
	// Birthdate (9), physician (11), email (12) and phone (14) may be empty.
	for i, f := range s.lines() {
		switch i {
		case 8, 10, 11, 13:
			continue
		}
		if f == "" {
			return fmt.Errorf("stammdatei has no value in line %d", i+1)
		}
	}
	return nil
}

// Name returns the patient's full name.
func (s Stammdaten) Name() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}
