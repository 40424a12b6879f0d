package date

import (
	"testing"
	"time"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2024, 7, 31)
	d2 := New(2024, 7, 31)

	if d1.time() != d2.time() {
		// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
		// tests also checks that the property remain true
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestParse(t *testing.T) {
	d, err := Parse("01.01.24")
	if err != nil {
		t.Fatalf("Parse(01.01.24) returned an unexpected error: %v", err)
	}
	if d.Year() != 2024 || d.Month() != time.January || d.Day() != 1 {
		t.Errorf("Parse(01.01.24) = %v, want 2024-01-01", d)
	}
	if got := d.String(); got != "01.01.24" {
		t.Errorf("String() = %q, want %q", got, "01.01.24")
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	for _, in := range []string{
		"1.01.24",    // single digit day
		"01.1.24",    // single digit month
		"01.01.2024", // four digit year
		"32.01.24",   // day out of range
		"01.13.24",   // month out of range
		"31.02.24",   // does not exist, must not be normalized
		"010124",     // missing separators
		"",
	} {
		if _, err := Parse(in); err == nil {
			t.Errorf("Parse(%q) = nil error, want error", in)
		}
	}
}

func TestDigits(t *testing.T) {
	d := MustParse("05.11.24")
	if got := d.Digits(); got != "051124" {
		t.Errorf("Digits() = %q, want %q", got, "051124")
	}

	back, err := FromDigits("051124")
	if err != nil {
		t.Fatalf("FromDigits(051124) returned an unexpected error: %v", err)
	}
	if back != d {
		t.Errorf("FromDigits(Digits()) = %v, want %v", back, d)
	}
}

func TestFromDigitsRejectsMalformed(t *testing.T) {
	for _, in := range []string{"01012", "0101245", "ab0124", ""} {
		if _, err := FromDigits(in); err == nil {
			t.Errorf("FromDigits(%q) = nil error, want error", in)
		}
	}
}

func TestOrdering(t *testing.T) {
	a, b := MustParse("01.01.24"), MustParse("02.01.24")
	if !a.Before(b) || b.Before(a) {
		t.Errorf("Before() ordering wrong for %v and %v", a, b)
	}
	if !b.After(a) {
		t.Errorf("After() ordering wrong for %v and %v", a, b)
	}
}
