// Package export renders the registrant collection as downloadable buffers.
// Nothing here touches disk: both formats are built in memory and handed to
// the HTTP layer.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"regportal/internal/registration"
)

const (
	// RecordsSheet holds the raw rows in the workbook export.
	RecordsSheet = "Registrations"
	// SummarySheet holds the fixed aggregate summary.
	SummarySheet = "Summary"
)

// CSV renders all records as CSV text, header first.
func CSV(records []registration.Registrant) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(registration.Columns); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	for _, r := range records {
		row := []string{
			r.LastName,
			r.FirstName,
			r.NationalID,
			r.Phone,
			r.Organization,
			r.PreferredPeriod,
			string(r.Sex),
			strconv.Itoa(r.Age),
			string(r.Level),
			string(r.AttendanceMode),
			r.RegisteredAt.Format(registration.TimestampLayout),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// Workbook renders a two-sheet .xlsx: raw records plus the aggregate summary.
func Workbook(records []registration.Registrant) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", RecordsSheet); err != nil {
		return nil, fmt.Errorf("name records sheet: %w", err)
	}
	if err := writeRecords(f, records); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return nil, fmt.Errorf("create summary sheet: %w", err)
	}
	if err := writeSummary(f, registration.ComputeStats(records)); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRecords(f *excelize.File, records []registration.Registrant) error {
	header := make([]any, len(registration.Columns))
	for i, c := range registration.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(RecordsSheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, r := range records {
		anchor, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("compute row anchor: %w", err)
		}
		row := []any{
			r.LastName, r.FirstName, r.NationalID, r.Phone, r.Organization,
			r.PreferredPeriod, string(r.Sex), r.Age, string(r.Level),
			string(r.AttendanceMode), r.RegisteredAt.Format(registration.TimestampLayout),
		}
		if err := f.SetSheetRow(RecordsSheet, anchor, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	return nil
}

// writeSummary lays the aggregate document out as label/value rows. Category
// order is fixed so two exports of the same dataset are byte-comparable.
func writeSummary(f *excelize.File, stats registration.Stats) error {
	rows := [][]any{
		{"Total registrants", stats.Total},
		{},
		{"By sex"},
	}
	for _, sex := range []registration.Sex{registration.SexMale, registration.SexFemale} {
		rows = append(rows, []any{string(sex), stats.BySex[string(sex)]})
	}
	rows = append(rows, []any{}, []any{"By level"})
	for _, level := range []registration.Level{registration.LevelBeginner, registration.LevelIntermediate, registration.LevelAdvanced} {
		rows = append(rows, []any{string(level), stats.ByLevel[string(level)]})
	}
	rows = append(rows, []any{}, []any{"By attendance mode"})
	for _, mode := range []registration.AttendanceMode{registration.AttendanceOnSite, registration.AttendanceOnline, registration.AttendanceHybrid} {
		rows = append(rows, []any{string(mode), stats.ByAttendanceMode[string(mode)]})
	}
	rows = append(rows, []any{}, []any{"Top organizations"})
	for _, org := range stats.TopOrganizations {
		rows = append(rows, []any{org.Organization, org.Count})
	}
	rows = append(rows,
		[]any{},
		[]any{"Age mean", stats.Ages.Mean},
		[]any{"Age min", stats.Ages.Min},
		[]any{"Age max", stats.Ages.Max},
	)

	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		anchor, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("compute summary anchor: %w", err)
		}
		row := row
		if err := f.SetSheetRow(SummarySheet, anchor, &row); err != nil {
			return fmt.Errorf("write summary row %d: %w", i+1, err)
		}
	}
	return nil
}
