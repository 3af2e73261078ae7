package store

import (
	"fmt"
	"os"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/lysyi3m/draw-comb/app/draw"
)

// XLSXStore persists records in a single-sheet xlsx workbook. Appends are
// whole-file rewrites; callers must not assume partial-write atomicity across
// a crash mid-write.
type XLSXStore struct {
	path string
	loc  *time.Location
}

// OpenXLSXStore opens the workbook at path, creating it with the canonical
// header when missing. A file that exists but cannot be read or parsed is an
// error, never treated as empty. An existing sheet with a non-canonical
// header is rebuilt in place: rows are reinterpreted by column name and
// rewritten under the canonical header order.
func OpenXLSXStore(path string, loc *time.Location) (*XLSXStore, error) {
	s := &XLSXStore{path: path, loc: loc}

	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to stat store file: %w", err)
		}
		if err := s.write(nil); err != nil {
			return nil, fmt.Errorf("failed to create store file: %w", err)
		}
		return s, nil
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open store file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	if err != nil {
		// Workbook exists but lacks the Results sheet (e.g. legacy file):
		// rebuild it empty rather than failing every subsequent run.
		if err := s.write(nil); err != nil {
			return nil, fmt.Errorf("failed to rebuild store file: %w", err)
		}
		return s, nil
	}

	if !headerCanonical(rows) {
		records := recordsFromRows(rows)
		if err := s.write(records); err != nil {
			return nil, fmt.Errorf("failed to repair store header: %w", err)
		}
	}

	return s, nil
}

func (s *XLSXStore) Records() ([]Record, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open store file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read store rows: %w", err)
	}

	return recordsFromRows(rows), nil
}

func (s *XLSXStore) ExistingKeys() (map[string]struct{}, error) {
	records, err := s.Records()
	if err != nil {
		return nil, err
	}

	keys := make(map[string]struct{}, len(records))
	for _, r := range records {
		if r.Game != "" && r.Phase != "" {
			keys[Key(r.Game, r.Phase)] = struct{}{}
		}
	}

	return keys, nil
}

func (s *XLSXStore) AppendNew(results []draw.Result, now time.Time) (int, error) {
	if len(results) == 0 {
		return 0, nil
	}

	records, err := s.Records()
	if err != nil {
		return 0, err
	}

	keys := make(map[string]struct{}, len(records))
	for _, r := range records {
		if r.Game != "" && r.Phase != "" {
			keys[Key(r.Game, r.Phase)] = struct{}{}
		}
	}

	insertedAt := now.In(s.loc).Format(time.RFC3339)
	appended := 0

	for _, res := range results {
		key := Key(res.Game, res.Phase)
		if _, ok := keys[key]; ok {
			continue
		}
		keys[key] = struct{}{}
		records = append(records, Record{
			Date:       res.DateISO,
			Game:       res.Game,
			Phase:      res.Phase,
			Result:     res.Numbers,
			InsertedAt: insertedAt,
		})
		appended++
	}

	if appended == 0 {
		return 0, nil
	}

	if err := s.write(records); err != nil {
		return 0, fmt.Errorf("failed to persist store: %w", err)
	}

	return appended, nil
}

func (s *XLSXStore) Close() error {
	return nil
}

// write rewrites the whole workbook: canonical header first, then records in
// append order.
func (s *XLSXStore) write(records []Record) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]interface{}, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to compute cell name: %w", err)
		}
		row := []interface{}{r.Date, r.Game, r.Phase, r.Result, r.InsertedAt}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(s.path); err != nil {
		return fmt.Errorf("failed to save store file: %w", err)
	}

	return nil
}

func headerCanonical(rows [][]string) bool {
	if len(rows) == 0 {
		return false
	}
	if len(rows[0]) != len(Header) {
		return false
	}
	for i, h := range Header {
		if rows[0][i] != h {
			return false
		}
	}
	return true
}

// recordsFromRows reinterprets sheet rows by column name so legacy or
// manually-edited files with reordered or missing columns still round-trip.
// Columns absent from the sheet default to empty strings.
func recordsFromRows(rows [][]string) []Record {
	if len(rows) < 2 {
		return nil
	}

	colIndex := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		colIndex[name] = i
	}

	cell := func(row []string, name string) string {
		idx, ok := colIndex[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return row[idx]
	}

	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}
		records = append(records, Record{
			Date:       cell(row, "Date"),
			Game:       cell(row, "Game"),
			Phase:      cell(row, "Phase"),
			Result:     cell(row, "Result"),
			InsertedAt: cell(row, "InsertedAt"),
		})
	}

	return records
}
