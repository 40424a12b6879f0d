package rechnung

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/fhfischer/rechnung/date"
)

// kuerzelRegex checks the format of a patient code: 4 uppercase alphanumeric characters.
var kuerzelRegex = regexp.MustCompile(`^[A-Z0-9]{4}$`)

// Number is the unique identifier of an invoice.
//
// It is derived, never chosen: the patient code, followed by the six digits
// of the invoice date ("ddmmyy"), followed by a trailing "H" if and only if
// the invoice is an HP invoice. Two invoices of the same kind for the same
// patient on the same date therefore share the same Number, which is what
// the overwrite reconciliation relies on.
type Number string

// ComputeNumber derives the invoice number from the patient code, the
// invoice date, and the invoice kind. It is pure and deterministic.
func ComputeNumber(kuerzel string, on date.Date, kind Kind) Number {
	n := kuerzel + on.Digits()
	if kind == HP {
		n += "H"
	}
	return Number(n)
}

// ParseNumber validates a string as an invoice number and returns it.
func ParseNumber(s string) (Number, error) {
	n := Number(s)
	if _, err := n.Date(); err != nil {
		return "", err
	}
	return n, nil
}

func (n Number) String() string { return string(n) }

// Kuerzel returns the patient code part of the number.
func (n Number) Kuerzel() string {
	if len(n) < 4 {
		return ""
	}
	return string(n[:4])
}

// Kind returns the invoice kind encoded in the number.
func (n Number) Kind() Kind {
	if strings.HasSuffix(string(n), "H") {
		return HP
	}
	return KG
}

// digits returns the six date digits of the number.
func (n Number) digits() string {
	s := string(n)
	if n.Kind() == HP {
		s = s[:len(s)-1]
	}
	if len(s) != 10 {
		return ""
	}
	return s[4:]
}

// Date returns the invoice date encoded in the number.
func (n Number) Date() (date.Date, error) {
	if !kuerzelRegex.MatchString(n.Kuerzel()) {
		return date.Date{}, fmt.Errorf("invalid invoice number %q: want a 4 character patient code", string(n))
	}
	d, err := date.FromDigits(n.digits())
	if err != nil {
		return date.Date{}, fmt.Errorf("invalid invoice number %q: %w", string(n), err)
	}
	return d, nil
}

// Equal reports whether two numbers identify the same invoice. Filenames on
// some filesystems are case-insensitive, so the comparison is too.
func (n Number) Equal(m Number) bool {
	return strings.EqualFold(string(n), string(m))
}
