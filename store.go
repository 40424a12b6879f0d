package rechnung

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// ErrCorruptSummary reports that a summary file holds more than one row for
// the same invoice number. This is an ambiguous on-disk state that must be
// surfaced to the user, never silently resolved by picking a row.
var ErrCorruptSummary = errors.New("summary file is corrupt")

// DocumentExt is the extension of rendered invoice documents.
const DocumentExt = ".pdf"

// Store gives access to the three on-disk representations of an invoice:
// the per-year summary row, the rendered document, and the draft file, plus
// the patient master files. All operations side-effect the filesystem
// directly; the store is not safe for concurrent processes pointed at the
// same directories.
type Store struct {
	rechnungenDir string // root holding rechnungen-{year}/, rechnungen-csv/ and drafts/
	stammdatenDir string // one {code}.txt per patient
	year          int    // program year, scopes documents and the summary file
	ext           string // document extension
}

// NewStore creates a store over the given locations for one program year.
func NewStore(rechnungenDir, stammdatenDir string, year int) *Store {
	return &Store{
		rechnungenDir: rechnungenDir,
		stammdatenDir: stammdatenDir,
		year:          year,
		ext:           DocumentExt,
	}
}

// Year returns the program year the store is scoped to.
func (s *Store) Year() int { return s.year }

func (s *Store) yearDir() string {
	return filepath.Join(s.rechnungenDir, "rechnungen-"+strconv.Itoa(s.year))
}

func (s *Store) draftsDir() string { return filepath.Join(s.rechnungenDir, "drafts") }

func (s *Store) summaryPath() string {
	return filepath.Join(s.rechnungenDir, "rechnungen-csv", "rechnungen-"+strconv.Itoa(s.year)+".csv")
}

// Bootstrap creates the directories the store works in. It runs at startup
// and is idempotent.
func (s *Store) Bootstrap() error {
	for _, dir := range []string{
		s.yearDir(),
		filepath.Dir(s.summaryPath()),
		s.draftsDir(),
		s.stammdatenDir,
	} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("cannot create directory %q: %w", dir, err)
		}
	}
	return nil
}

// DocumentPath returns the path the rendered document of an invoice lives at.
func (s *Store) DocumentPath(nr Number) string {
	return filepath.Join(s.yearDir(), string(nr)+s.ext)
}

// DocumentExists reports whether a finalized document exists for the number.
func (s *Store) DocumentExists(nr Number) bool {
	_, err := os.Stat(s.DocumentPath(nr))
	return err == nil
}

// Rows returns all rows of the year's summary file. A missing file is an
// empty summary, not an error.
func (s *Store) Rows() ([]Row, error) {
	f, err := os.Open(s.summaryPath())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open summary file %q: %w", s.summaryPath(), err)
	}
	defer f.Close()

	rows, err := readRows(f)
	if err != nil {
		return nil, fmt.Errorf("summary file %q: %w", s.summaryPath(), err)
	}
	return rows, nil
}

// RowForInvoice returns the summary row of an invoice, or nil if there is
// none. More than one matching row wraps ErrCorruptSummary.
func (s *Store) RowForInvoice(nr Number) (Row, error) {
	rows, err := s.Rows()
	if err != nil {
		return nil, err
	}
	var found Row
	for _, row := range rows {
		if !row.Number().Equal(nr) {
			continue
		}
		if found != nil {
			return nil, fmt.Errorf("%w: invoice %q found multiple times in %q", ErrCorruptSummary, nr, s.summaryPath())
		}
		found = row
	}
	return found, nil
}

// AppendRow appends a row to the summary file, creating file and directory
// when absent.
func (s *Store) AppendRow(row Row) error {
	if err := os.MkdirAll(filepath.Dir(s.summaryPath()), 0755); err != nil {
		return fmt.Errorf("cannot create directory for %q: %w", s.summaryPath(), err)
	}
	f, err := os.OpenFile(s.summaryPath(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("cannot open summary file %q: %w", s.summaryPath(), err)
	}
	defer f.Close()
	return writeRows(f, row)
}

// RemoveRows rewrites the summary file, dropping every row whose invoice
// number field matches nr exactly. A missing summary file is a no-op. It
// returns the number of rows dropped.
func (s *Store) RemoveRows(nr Number) (int, error) {
	rows, err := s.Rows()
	if err != nil {
		return 0, err
	}
	kept := rows[:0]
	removed := 0
	for _, row := range rows {
		if row.Number().Equal(nr) {
			removed++
			continue
		}
		kept = append(kept, row)
	}
	if removed == 0 {
		return 0, nil
	}
	if err := writeRowsFile(s.summaryPath(), kept); err != nil {
		return 0, err
	}
	return removed, nil
}

// writeRowsFile rewrites a row file through a temp file and a rename, so a
// crash mid-write never leaves a truncated summary behind.
func writeRowsFile(path string, rows []Row) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("cannot create temp file for %q: %w", path, err)
	}
	if err := writeRows(tmp, rows...); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("cannot finish temp file for %q: %w", path, err)
	}
	// CreateTemp makes the file 0600; keep the usual file mode through
	// the rename.
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("cannot finish temp file for %q: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("cannot replace %q: %w", path, err)
	}
	return nil
}

// draftPath returns the path a draft for nr is written to.
func (s *Store) draftPath(nr Number) string {
	return filepath.Join(s.draftsDir(), strings.ToUpper(string(nr))+draftMark+".csv")
}

// findDraft returns the path of an existing draft for nr, matching the
// invoice number exactly but the filename case-insensitively, since older
// drafts were not always written upper-cased.
func (s *Store) findDraft(nr Number) (string, error) {
	entries, err := os.ReadDir(s.draftsDir())
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("cannot list drafts directory %q: %w", s.draftsDir(), err)
	}
	want := strings.ToUpper(string(nr) + draftMark + ".csv")
	for _, e := range entries {
		if strings.ToUpper(e.Name()) == want {
			return filepath.Join(s.draftsDir(), e.Name()), nil
		}
	}
	return "", nil
}

// Draft returns the stored draft row for nr, or nil if there is none.
func (s *Store) Draft(nr Number) (Row, error) {
	path, err := s.findDraft(nr)
	if err != nil || path == "" {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open draft %q: %w", path, err)
	}
	defer f.Close()

	rows, err := readRows(f)
	if err != nil {
		return nil, fmt.Errorf("draft %q: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	// A draft file holds a single row; anything after it is ignored.
	return rows[0], nil
}

// WriteDraft stores the row as the draft for its invoice number,
// overwriting any prior draft.
func (s *Store) WriteDraft(row Row) error {
	if err := os.MkdirAll(s.draftsDir(), 0755); err != nil {
		return fmt.Errorf("cannot create drafts directory %q: %w", s.draftsDir(), err)
	}
	return writeRowsFile(s.draftPath(row.Number()), []Row{row})
}

// DeleteDraft removes the draft for nr. No draft is a no-op.
func (s *Store) DeleteDraft(nr Number) error {
	path, err := s.findDraft(nr)
	if err != nil || path == "" {
		return err
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("cannot remove draft %q: %w", path, err)
	}
	return nil
}

// ListDrafts returns the invoice numbers of all stored drafts, sorted.
func (s *Store) ListDrafts() ([]Number, error) {
	entries, err := os.ReadDir(s.draftsDir())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot list drafts directory %q: %w", s.draftsDir(), err)
	}
	var nrs []Number
	for _, e := range entries {
		name := e.Name()
		upper := strings.ToUpper(name)
		if !strings.HasSuffix(upper, draftMark+".csv") {
			continue
		}
		nrs = append(nrs, Number(strings.TrimSuffix(upper, draftMark+".csv")))
	}
	sort.Slice(nrs, func(i, j int) bool { return nrs[i] < nrs[j] })
	return nrs, nil
}

// ListInvoices returns the invoice numbers of all finalized documents of
// the year, sorted.
func (s *Store) ListInvoices() ([]Number, error) {
	entries, err := os.ReadDir(s.yearDir())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot list invoices directory %q: %w", s.yearDir(), err)
	}
	var nrs []Number
	for _, e := range entries {
		name := e.Name()
		if !strings.HasSuffix(name, s.ext) {
			continue
		}
		nrs = append(nrs, Number(strings.TrimSuffix(name, s.ext)))
	}
	sort.Slice(nrs, func(i, j int) bool { return nrs[i] < nrs[j] })
	return nrs, nil
}

// stammdatenPath returns the path of the master file for a patient code.
func (s *Store) stammdatenPath(kuerzel string) string {
	return filepath.Join(s.stammdatenDir, kuerzel+".txt")
}

// StammdatenExists reports whether a master file exists for the code.
func (s *Store) StammdatenExists(kuerzel string) bool {
	_, err := os.Stat(s.stammdatenPath(kuerzel))
	return err == nil
}

// LoadStammdaten reads and parses the master file for a patient code.
// A missing file wraps ErrStammdatenNotFound.
func (s *Store) LoadStammdaten(kuerzel string) (Stammdaten, error) {
	content, err := os.ReadFile(s.stammdatenPath(kuerzel))
	if errors.Is(err, fs.ErrNotExist) {
		return Stammdaten{}, fmt.Errorf("%w: %q", ErrStammdatenNotFound, kuerzel)
	}
	if err != nil {
		return Stammdaten{}, fmt.Errorf("cannot read stammdatei for %q: %w", kuerzel, err)
	}
	sd, err := ParseStammdaten(string(content))
	if err != nil {
		return Stammdaten{}, fmt.Errorf("stammdatei for %q: %w", kuerzel, err)
	}
	return sd, nil
}

// SaveStammdaten writes the master file for the record's code, overwriting
// any prior one. Whether overwriting is wanted is the caller's question to
// ask; the store just writes.
func (s *Store) SaveStammdaten(sd Stammdaten) error {
	if err := os.MkdirAll(s.stammdatenDir, 0755); err != nil {
		return fmt.Errorf("cannot create stammdaten directory %q: %w", s.stammdatenDir, err)
	}
	path := s.stammdatenPath(sd.Kuerzel)
	if err := os.WriteFile(path, []byte(sd.Encode()), 0644); err != nil {
		return fmt.Errorf("cannot write stammdatei %q: %w", path, err)
	}
	return nil
}

// DeleteStammdaten removes the master file for a patient code.
func (s *Store) DeleteStammdaten(kuerzel string) error {
	if err := os.Remove(s.stammdatenPath(kuerzel)); err != nil {
		return fmt.Errorf("cannot remove stammdatei for %q: %w", kuerzel, err)
	}
	return nil
}

// ListStammdaten returns all patient codes that have a master file, sorted.
func (s *Store) ListStammdaten() ([]string, error) {
	entries, err := os.ReadDir(s.stammdatenDir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot list stammdaten directory %q: %w", s.stammdatenDir, err)
	}
	var codes []string
	for _, e := range entries {
		name := e.Name()
		if !strings.HasSuffix(name, ".txt") {
			continue
		}
		codes = append(codes, strings.TrimSuffix(name, ".txt"))
	}
	sort.Strings(codes)
	return codes, nil
}
