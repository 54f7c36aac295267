// Package workbook implements the registration store on a single .xlsx
// workbook, the dataset of record for the portal. The whole dataset is read
// on every operation and written back through a temp-file rename so a failed
// save never corrupts previously stored rows.
package workbook

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/xuri/excelize/v2"

	"regportal/internal/registration"
	"regportal/internal/registration/store"
)

// SheetName is the sheet holding the raw records.
const SheetName = "Registrations"

// Store is the workbook-backed registration store. All appends are serialized
// behind a single mutex, which closes the read-modify-write race between two
// concurrent submissions.
type Store struct {
	path string
	mu   sync.Mutex
	now  func() time.Time
}

func New(path string) *Store {
	return &Store{path: path, now: time.Now}
}

// WithClock replaces the timestamp source, for tests.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// Init creates the workbook with the fixed column header when it is absent.
// An existing workbook is left untouched.
func (s *Store) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat workbook: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create data directory: %w", err)
		}
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}
	header := make([]any, len(registration.Columns))
	for i, c := range registration.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	return s.save(f)
}

// Append scans every stored national ID for a case-insensitive match before
// stamping and persisting the candidate. The dataset on disk is replaced
// wholesale on success and untouched on any failure.
func (s *Store) Append(_ context.Context, candidate registration.Registrant) (registration.Registrant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return registration.Registrant{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	if err != nil {
		return registration.Registrant{}, fmt.Errorf("read rows: %w", err)
	}

	candidate.NationalID = registration.NormalizeNationalID(candidate.NationalID)
	for i := 1; i < len(rows); i++ {
		if registration.NormalizeNationalID(cell(rows[i], 2)) == candidate.NationalID {
			return registration.Registrant{}, store.ErrDuplicateID
		}
	}

	candidate.RegisteredAt = s.now().Truncate(time.Second)

	anchor, err := excelize.CoordinatesToCellName(1, len(rows)+1)
	if err != nil {
		return registration.Registrant{}, fmt.Errorf("compute row anchor: %w", err)
	}
	row := []any{
		candidate.LastName,
		candidate.FirstName,
		candidate.NationalID,
		candidate.Phone,
		candidate.Organization,
		candidate.PreferredPeriod,
		string(candidate.Sex),
		candidate.Age,
		string(candidate.Level),
		string(candidate.AttendanceMode),
		candidate.RegisteredAt.Format(registration.TimestampLayout),
	}
	if err := f.SetSheetRow(SheetName, anchor, &row); err != nil {
		return registration.Registrant{}, fmt.Errorf("write row: %w", err)
	}
	if err := s.save(f); err != nil {
		return registration.Registrant{}, err
	}
	return candidate, nil
}

// ListAll loads the full dataset in insertion order. A missing workbook reads
// as empty.
func (s *Store) ListAll(_ context.Context) ([]registration.Registrant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []registration.Registrant{}, nil
		}
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}

	records := make([]registration.Registrant, 0, max(0, len(rows)-1))
	for i := 1; i < len(rows); i++ {
		rec, err := parseRow(rows[i])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func (s *Store) save(f *excelize.File) error {
	// The temp name keeps the .xlsx suffix: excelize validates the target
	// extension on save.
	tmp := s.path + ".tmp.xlsx"
	if err := f.SaveAs(tmp); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("save workbook: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace workbook: %w", err)
	}
	return nil
}

func parseRow(row []string) (registration.Registrant, error) {
	age, err := strconv.Atoi(cell(row, 7))
	if err != nil {
		return registration.Registrant{}, fmt.Errorf("parse age %q: %w", cell(row, 7), err)
	}
	registeredAt, err := time.ParseInLocation(registration.TimestampLayout, cell(row, 10), time.Local)
	if err != nil {
		return registration.Registrant{}, fmt.Errorf("parse timestamp %q: %w", cell(row, 10), err)
	}
	return registration.Registrant{
		LastName:        cell(row, 0),
		FirstName:       cell(row, 1),
		NationalID:      cell(row, 2),
		Phone:           cell(row, 3),
		Organization:    cell(row, 4),
		PreferredPeriod: cell(row, 5),
		Sex:             registration.Sex(cell(row, 6)),
		Age:             age,
		Level:           registration.Level(cell(row, 8)),
		AttendanceMode:  registration.AttendanceMode(cell(row, 9)),
		RegisteredAt:    registeredAt,
	}, nil
}

// cell tolerates rows whose trailing empty cells were trimmed by the reader.
func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
