package rechnung

import (
	"testing"

	"github.com/fhfischer/rechnung/date"
)

func TestComputeNumberKG(t *testing.T) {
	nr := ComputeNumber("TEST", date.MustParse("01.01.24"), KG)
	if nr != "TEST010124" {
		t.Errorf("ComputeNumber(TEST, 01.01.24, KG) = %q, want %q", nr, "TEST010124")
	}
}

func TestComputeNumberHP(t *testing.T) {
	nr := ComputeNumber("TEST", date.MustParse("01.01.24"), HP)
	if nr != "TEST010124H" {
		t.Errorf("ComputeNumber(TEST, 01.01.24, HP) = %q, want %q", nr, "TEST010124H")
	}
}

func TestComputeNumberDeterministicAndInjective(t *testing.T) {
	a := ComputeNumber("ABCD", date.MustParse("05.11.24"), KG)
	b := ComputeNumber("ABCD", date.MustParse("05.11.24"), KG)
	if a != b {
		t.Errorf("same inputs gave different numbers: %q vs %q", a, b)
	}

	// Distinct (code, date) pairs never collide within a kind, and the two
	// kinds never collide with each other thanks to the H suffix.
	seen := map[Number]bool{}
	for _, code := range []string{"ABCD", "TEST", "AB12"} {
		for _, on := range []string{"01.01.24", "02.01.24", "01.02.24"} {
			for _, kind := range []Kind{KG, HP} {
				nr := ComputeNumber(code, date.MustParse(on), kind)
				if seen[nr] {
					t.Errorf("number %q generated twice", nr)
				}
				seen[nr] = true
			}
		}
	}
}

func TestNumberParseBack(t *testing.T) {
	nr := ComputeNumber("TEST", date.MustParse("05.11.24"), HP)
	if got := nr.Kuerzel(); got != "TEST" {
		t.Errorf("Kuerzel() = %q, want %q", got, "TEST")
	}
	if got := nr.Kind(); got != HP {
		t.Errorf("Kind() = %v, want HP", got)
	}
	on, err := nr.Date()
	if err != nil {
		t.Fatalf("Date() returned an unexpected error: %v", err)
	}
	if on != date.MustParse("05.11.24") {
		t.Errorf("Date() = %v, want 05.11.24", on)
	}
}

func TestParseNumberRejectsMalformed(t *testing.T) {
	for _, in := range []string{
		"",
		"TEST",         // no date digits
		"TEST0101",     // too few digits
		"TEST320124",   // day out of range
		"te st010124",  // bad code
		"TEST010124HH", // date digits shifted by the extra suffix
	} {
		if _, err := ParseNumber(in); err == nil {
			t.Errorf("ParseNumber(%q) = nil error, want error", in)
		}
	}
}

func TestNumberEqualIsCaseInsensitive(t *testing.T) {
	if !Number("TEST010124H").Equal(Number("test010124h")) {
		t.Errorf("Equal() should ignore case, filenames do")
	}
	if Number("TEST010124").Equal(Number("TEST010124H")) {
		t.Errorf("Equal() must distinguish KG from HP numbers")
	}
}
