package cmd

import (
	"testing"
)

func TestParseDates(t *testing.T) {
	dates, err := parseDates("02.01.24, 09.01.24")
	if err != nil {
		t.Fatalf("parseDates() returned an unexpected error: %v", err)
	}
	if len(dates) != 2 || dates[0].String() != "02.01.24" || dates[1].String() != "09.01.24" {
		t.Errorf("parseDates() = %v", dates)
	}

	if dates, err := parseDates(""); err != nil || dates != nil {
		t.Errorf("parseDates(empty) = %v, %v", dates, err)
	}
	if _, err := parseDates("31.02.24"); err == nil {
		t.Error("parseDates() accepted an impossible date")
	}
}

func TestParseBehandlungen(t *testing.T) {
	bs, err := parseBehandlungen("Krankengymnastik, Massage", "25.50, 19.90")
	if err != nil {
		t.Fatalf("parseBehandlungen() returned an unexpected error: %v", err)
	}
	if len(bs) != 2 || bs[0].Art != "Krankengymnastik" || bs[1].Einzelpreis.StringFixed(2) != "19.90" {
		t.Errorf("parseBehandlungen() = %v", bs)
	}

	if _, err := parseBehandlungen("a,b", "1.00"); err == nil {
		t.Error("parseBehandlungen() accepted mismatched lengths")
	}
}

func TestRowListSet(t *testing.T) {
	var rows rowList
	if err := rows.Set("02.01.24|12.1|Beratung|30.00|20.1|Massage|19.90"); err != nil {
		t.Fatalf("Set() returned an unexpected error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	r := rows[0]
	if r.Date.String() != "02.01.24" || len(r.Codes) != 2 || r.Codes[1] != "20.1" {
		t.Errorf("parsed row = %+v", r)
	}
	if r.Total().StringFixed(2) != "49.90" {
		t.Errorf("row total = %s, want 49.90", r.Total().StringFixed(2))
	}

	if err := rows.Set("02.01.24|12.1|Beratung"); err == nil {
		t.Error("Set() accepted a truncated block")
	}
	if err := rows.Set("nonsense|12.1|Beratung|30.00"); err == nil {
		t.Error("Set() accepted a malformed date")
	}
}

func TestSnapshotRows(t *testing.T) {
	var rows rowList
	if err := rows.Set("02.01.24|12.1|Beratung|30.00|20.1|Massage|19.90"); err != nil {
		t.Fatal(err)
	}
	cells := snapshotRows(rows)
	if len(cells) != 1 {
		t.Fatalf("got %d cell rows, want 1", len(cells))
	}
	want := [4]string{"02.01.24", "12.1\n20.1", "Beratung\nMassage", "30.00\n19.90"}
	if cells[0] != want {
		t.Errorf("snapshotRows() = %q, want %q", cells[0], want)
	}
}
