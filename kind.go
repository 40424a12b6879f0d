package rechnung

import "fmt"

// Kind defines the kind of an invoice.
type Kind int

const (
	// KG is a Krankengymnastik (physiotherapy) invoice.
	KG Kind = iota
	// HP is a Heilpraktiker (alternative practitioner) invoice.
	HP
)

func (k Kind) String() string {
	switch k {
	case KG:
		return "KG"
	case HP:
		return "HP"
	default:
		return "unknown"
	}
}

// ParseKind parses a string into a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "KG":
		return KG, nil
	case "HP":
		return HP, nil
	default:
		return 0, fmt.Errorf("unknown invoice kind: %q", s)
	}
}

// Gender is the gender recorded in a patient master record.
type Gender int

const (
	Mann Gender = iota
	Frau
)

func (g Gender) String() string {
	switch g {
	case Mann:
		return "Mann"
	case Frau:
		return "Frau"
	default:
		return "unknown"
	}
}

// ParseGender parses a string into a Gender.
func ParseGender(s string) (Gender, error) {
	switch s {
	case "Mann":
		return Mann, nil
	case "Frau":
		return Frau, nil
	default:
		return 0, fmt.Errorf("unknown gender: %q", s)
	}
}
