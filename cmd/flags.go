package cmd

import (
	"fmt"
	"strings"

	"github.com/fhfischer/rechnung"
	"github.com/fhfischer/rechnung/date"
	"github.com/shopspring/decimal"
)

// parseDates parses a comma-separated list of treatment dates.
func parseDates(s string) ([]date.Date, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var dates []date.Date
	for _, part := range strings.Split(s, ",") {
		d, err := date.Parse(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, nil
}

// parseBehandlungen zips the comma-separated treatment types with their
// comma-separated unit prices.
func parseBehandlungen(arten, preise string) ([]rechnung.Behandlung, error) {
	as := splitList(arten)
	ps := splitList(preise)
	if len(as) != len(ps) {
		return nil, fmt.Errorf("%d Behandlungsarten but %d prices", len(as), len(ps))
	}
	var out []rechnung.Behandlung
	for i := range as {
		p, err := decimal.NewFromString(ps[i])
		if err != nil {
			return nil, fmt.Errorf("cannot parse price %q: %w", ps[i], err)
		}
		out = append(out, rechnung.Behandlung{Art: as[i], Einzelpreis: p})
	}
	return out, nil
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// rowList is a repeatable -row flag. Each value is one treatment block:
// the date followed by code, description and price triples, all separated
// by pipes, e.g. "02.01.24|12.1|Beratung|30.00|20.1|Massage|19.90".
type rowList []rechnung.HPRow

func (r *rowList) String() string { return fmt.Sprintf("%d row(s)", len(*r)) }

func (r *rowList) Set(value string) error {
	parts := strings.Split(value, "|")
	if len(parts) < 4 || (len(parts)-1)%3 != 0 {
		return fmt.Errorf("row %q: want date followed by code|description|price triples", value)
	}
	d, err := date.Parse(strings.TrimSpace(parts[0]))
	if err != nil {
		return err
	}
	row := rechnung.HPRow{Date: d}
	for i := 1; i < len(parts); i += 3 {
		p, err := decimal.NewFromString(strings.TrimSpace(parts[i+2]))
		if err != nil {
			return fmt.Errorf("cannot parse price %q: %w", parts[i+2], err)
		}
		row.Codes = append(row.Codes, strings.TrimSpace(parts[i]))
		row.Beschreibungen = append(row.Beschreibungen, strings.TrimSpace(parts[i+1]))
		row.Einzelpreise = append(row.Einzelpreise, p)
	}
	*r = append(*r, row)
	return nil
}

// snapshotRows converts parsed treatment blocks back to the raw form
// cells a draft snapshot carries: one line per entry within each cell.
func snapshotRows(rows rowList) [][4]string {
	var out [][4]string
	for _, r := range rows {
		var preise []string
		for _, p := range r.Einzelpreise {
			preise = append(preise, p.StringFixed(2))
		}
		out = append(out, [4]string{
			r.Date.String(),
			strings.Join(r.Codes, "\n"),
			strings.Join(r.Beschreibungen, "\n"),
			strings.Join(preise, "\n"),
		})
	}
	return out
}
