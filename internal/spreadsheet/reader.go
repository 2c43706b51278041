// Package spreadsheet reads tabular import files (XLSX, CSV) into the
// generic records the import pipeline consumes. The first row is always
// treated as the header row; every following row becomes one Record keyed
// by the header cells.
package spreadsheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/mariana/cct-importer/internal/importer"
)

// ReadXLSX parses the first sheet of an XLSX workbook into records.
func ReadXLSX(r io.Reader) ([]importer.Record, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}

	return rowsToRecords(rows), nil
}

// ReadCSV parses comma-separated input with the same header contract as
// ReadXLSX.
func ReadCSV(r io.Reader) ([]importer.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}

	return rowsToRecords(rows), nil
}

// ReadFile dispatches on the file extension. Anything that is not .csv is
// treated as a workbook, matching how users actually name exports.
func ReadFile(name string, r io.Reader) ([]importer.Record, error) {
	if strings.HasSuffix(strings.ToLower(name), ".csv") {
		return ReadCSV(r)
	}
	return ReadXLSX(r)
}

// rowsToRecords converts a header row plus data rows into records. Blank
// header cells are skipped so stray empty columns in hand-edited sheets do
// not produce "" keys. Rows shorter than the header simply omit the
// trailing keys.
func rowsToRecords(rows [][]string) []importer.Record {
	if len(rows) < 2 {
		return nil
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	records := make([]importer.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		rec := make(importer.Record, len(headers))
		for i, cell := range row {
			if i >= len(headers) || headers[i] == "" {
				continue
			}
			rec[headers[i]] = strings.TrimSpace(cell)
		}
		records = append(records, rec)
	}
	return records
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
