package rechnung

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fhfischer/rechnung/date"
	"github.com/shopspring/decimal"
)

// This file contains the codec for the ";"-delimited summary rows, the only
// representation shared by the per-year summary file and the draft files.
//
// Both invoice kinds share the same 8-field header:
//
//	code;number;km;"km";km_total;"km";total;"Euro"
//
// followed by the kind-specific payload:
//
//	KG: ten treatment date cells, then a JSON array of treatment types and
//	    a JSON array of unit prices.
//	HP: a JSON array of 4-element rows (date, codes, descriptions, prices,
//	    each a newline-joined cell), then the diagnosis text.
//
// The nested cells are JSON on purpose: drafts are compared by decoding and
// re-encoding through this very codec, so there is exactly one
// serialization both ways and no ad hoc string comparison.

// Field counts per kind, header included.
const (
	kgRowFields = 8 + maxKGDates + 2
	hpRowFields = 8 + 2
)

// draftMark is the filename marker of a draft row.
const draftMark = "DRAFT"

// Row is the raw field list of one summary or draft line.
type Row []string

// Kuerzel returns the patient code of the row.
func (r Row) Kuerzel() string {
	if len(r) < 1 {
		return ""
	}
	return r[0]
}

// Number returns the invoice number of the row.
func (r Row) Number() Number {
	if len(r) < 2 {
		return ""
	}
	return Number(r[1])
}

// Kind returns the invoice kind encoded in the row's number.
func (r Row) Kind() Kind { return r.Number().Kind() }

// Total returns the formatted invoice total of the row.
func (r Row) Total() string {
	if len(r) < 7 {
		return ""
	}
	return r[6]
}

// KmTotal returns the formatted total distance of the row.
func (r Row) KmTotal() string {
	if len(r) < 5 {
		return ""
	}
	return r[4]
}

// Equal reports whether two rows carry the identical field list.
func (r Row) Equal(o Row) bool {
	if len(r) != len(o) {
		return false
	}
	for i := range r {
		if r[i] != o[i] {
			return false
		}
	}
	return true
}

// marshalCell encodes a nested payload value into a single CSV cell.
func marshalCell(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		// Only slices of strings go through here, they cannot fail to marshal.
		panic(err)
	}
	return string(data)
}

func unmarshalCell(cell string, v any) error {
	if err := json.Unmarshal([]byte(cell), v); err != nil {
		return fmt.Errorf("cannot parse nested cell %q: %w", cell, err)
	}
	return nil
}

// header builds the shared 8-field row header.
func header(kuerzel string, nr Number, km, kmTotal, total string) Row {
	return Row{kuerzel, string(nr), km, "km", kmTotal, "km", total, "Euro"}
}

// EncodeKGRow builds the summary row of a KG invoice.
func EncodeKGRow(v KGInvoice, s Stammdaten) (Row, error) {
	kmTotal, err := v.KmTotal(s)
	if err != nil {
		return nil, err
	}
	row := header(v.Kuerzel, v.Number(), s.Kilometers, kmTotal.String(), v.Total().String())

	// Always ten date cells, empty ones included.
	for i := 0; i < maxKGDates; i++ {
		if i < len(v.Dates) {
			row = append(row, v.Dates[i].String())
		} else {
			row = append(row, "")
		}
	}

	arten := make([]string, 0, len(v.Behandlungsarten))
	preise := make([]string, 0, len(v.Behandlungsarten))
	for _, b := range v.Behandlungsarten {
		arten = append(arten, b.Art)
		preise = append(preise, b.Einzelpreis.String())
	}
	row = append(row, marshalCell(arten), marshalCell(preise))
	return row, nil
}

// EncodeHPRow builds the summary row of an HP invoice.
func EncodeHPRow(v HPInvoice, s Stammdaten) (Row, error) {
	kmTotal, err := v.KmTotal(s)
	if err != nil {
		return nil, err
	}
	row := header(v.Kuerzel, v.Number(), s.Kilometers, kmTotal.String(), v.Total().String())

	cells := make([][]string, 0, len(v.Rows))
	for _, r := range v.Rows {
		preise := make([]string, 0, len(r.Einzelpreise))
		for _, p := range r.Einzelpreise {
			preise = append(preise, p.StringFixed(2))
		}
		cells = append(cells, []string{
			r.Date.String(),
			strings.Join(r.Codes, "\n"),
			strings.Join(r.Beschreibungen, "\n"),
			strings.Join(preise, "\n"),
		})
	}
	row = append(row, marshalCell(cells), strings.ReplaceAll(v.Diagnose, "\n", " "))
	return row, nil
}

// EncodeRow builds the summary row of either invoice kind.
func EncodeRow(inv Invoice, s Stammdaten) (Row, error) {
	switch v := inv.(type) {
	case KGInvoice:
		return EncodeKGRow(v, s)
	case HPInvoice:
		return EncodeHPRow(v, s)
	default:
		return nil, fmt.Errorf("unknown invoice type %T", inv)
	}
}

// DecodeKGInvoice rebuilds a KG invoice from its summary row.
func DecodeKGInvoice(row Row) (KGInvoice, error) {
	if len(row) != kgRowFields {
		return KGInvoice{}, fmt.Errorf("KG row for %q has %d fields, want %d", row.Number(), len(row), kgRowFields)
	}
	on, err := row.Number().Date()
	if err != nil {
		return KGInvoice{}, err
	}
	v := KGInvoice{Kuerzel: row.Kuerzel(), Date: on}

	for i, cell := range row[8 : 8+maxKGDates] {
		if cell == "" {
			continue
		}
		d, err := date.Parse(cell)
		if err != nil {
			return KGInvoice{}, fmt.Errorf("KG row for %q date %d: %w", row.Number(), i+1, err)
		}
		v.Dates = append(v.Dates, d)
	}

	var arten, preise []string
	if err := unmarshalCell(row[8+maxKGDates], &arten); err != nil {
		return KGInvoice{}, err
	}
	if err := unmarshalCell(row[8+maxKGDates+1], &preise); err != nil {
		return KGInvoice{}, err
	}
	if len(arten) != len(preise) {
		return KGInvoice{}, fmt.Errorf("KG row for %q has %d Behandlungsarten but %d prices", row.Number(), len(arten), len(preise))
	}
	for i := range arten {
		p, err := decimal.NewFromString(preise[i])
		if err != nil {
			return KGInvoice{}, fmt.Errorf("KG row for %q price %d: %w", row.Number(), i+1, err)
		}
		v.Behandlungsarten = append(v.Behandlungsarten, Behandlung{Art: arten[i], Einzelpreis: p})
	}
	return v, nil
}

// DecodeHPInvoice rebuilds an HP invoice from its summary row.
func DecodeHPInvoice(row Row) (HPInvoice, error) {
	if len(row) != hpRowFields {
		return HPInvoice{}, fmt.Errorf("HP row for %q has %d fields, want %d", row.Number(), len(row), hpRowFields)
	}
	on, err := row.Number().Date()
	if err != nil {
		return HPInvoice{}, err
	}
	v := HPInvoice{Kuerzel: row.Kuerzel(), Date: on, Diagnose: row[9]}

	var cells [][]string
	if err := unmarshalCell(row[8], &cells); err != nil {
		return HPInvoice{}, err
	}
	for i, c := range cells {
		if len(c) != 4 {
			return HPInvoice{}, fmt.Errorf("HP row for %q block %d has %d cells, want 4", row.Number(), i+1, len(c))
		}
		d, err := date.Parse(c[0])
		if err != nil {
			return HPInvoice{}, fmt.Errorf("HP row for %q block %d: %w", row.Number(), i+1, err)
		}
		r := HPRow{
			Date:           d,
			Codes:          splitCell(c[1]),
			Beschreibungen: splitCell(c[2]),
		}
		for j, p := range splitCell(c[3]) {
			price, err := decimal.NewFromString(strings.ReplaceAll(p, ",", "."))
			if err != nil {
				return HPInvoice{}, fmt.Errorf("HP row for %q block %d price %d: %w", row.Number(), i+1, j+1, err)
			}
			r.Einzelpreise = append(r.Einzelpreise, price)
		}
		v.Rows = append(v.Rows, r)
	}
	return v, nil
}

// DecodeInvoice rebuilds either invoice kind from its summary row.
func DecodeInvoice(row Row) (Invoice, error) {
	if row.Kind() == HP {
		return DecodeHPInvoice(row)
	}
	return DecodeKGInvoice(row)
}

func splitCell(cell string) []string {
	if cell == "" {
		return nil
	}
	return strings.Split(cell, "\n")
}

// writeRows writes rows in the summary format: ";"-delimited CSV.
func writeRows(w io.Writer, rows ...Row) error {
	cw := csv.NewWriter(w)
	cw.Comma = ';'
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("cannot write row for %q: %w", row.Number(), err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// readRows reads all rows of a summary or draft file. Rows have no fixed
// field count (the two kinds differ), so the reader is told not to care.
func readRows(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	var rows []Row
	for {
		record, err := cr.Read()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, fmt.Errorf("cannot parse summary row: %w", err)
		}
		if len(record) == 0 || (len(record) == 1 && record[0] == "") {
			continue
		}
		rows = append(rows, Row(record))
	}
}
