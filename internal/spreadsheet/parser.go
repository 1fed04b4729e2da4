// Package spreadsheet turns uploaded workbook or CSV files into loosely typed rows
// keyed by the header row.
package spreadsheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/mamadbah2/retailsheet/internal/domain/models"
)

// ErrNoSheet indicates the workbook does not contain any worksheet.
var ErrNoSheet = errors.New("no sheet found")

// ErrUnsupportedFormat indicates the upload extension is not a workbook or CSV file.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Parse reads the upload according to its file name extension. Files without an
// extension are treated as workbooks.
func Parse(r io.Reader, filename string) ([]models.Row, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm", "":
		return ParseWorkbook(r)
	case ".csv":
		return ParseCSV(r)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filename)
	}
}

// ParseWorkbook reads the first worksheet of an xlsx workbook. Cells are returned
// unformatted so numeric values keep their raw representation.
func ParseWorkbook(r io.Reader) ([]models.Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheet
	}

	grid, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}

	return RowsFromGrid(grid), nil
}

// ParseCSV reads a comma separated file whose first record is the header.
func ParseCSV(r io.Reader) ([]models.Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	grid, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(grid) > 0 && len(grid[0]) > 0 {
		grid[0][0] = strings.TrimPrefix(grid[0][0], "\ufeff")
	}

	return RowsFromGrid(grid), nil
}

// RowsFromGrid keys every data row by the header row. Blank rows are skipped, blank
// cells are left out of the row and repeated headers get a numeric suffix.
func RowsFromGrid(grid [][]string) []models.Row {
	if len(grid) == 0 {
		return nil
	}

	headers := uniqueHeaders(grid[0])
	rows := make([]models.Row, 0, len(grid)-1)

	for _, cells := range grid[1:] {
		row := models.Row{}
		for i, cell := range cells {
			if i >= len(headers) || headers[i] == "" {
				continue
			}
			if strings.TrimSpace(cell) == "" {
				continue
			}
			row[headers[i]] = cell
		}
		if len(row) == 0 {
			continue
		}
		rows = append(rows, row)
	}

	return rows
}

func uniqueHeaders(raw []string) []string {
	headers := make([]string, len(raw))
	used := make(map[string]bool, len(raw))
	next := make(map[string]int, len(raw))

	// Literal headers keep their name; repeats take the first free suffix.
	for _, h := range raw {
		if h = strings.TrimSpace(h); h != "" {
			used[h] = true
		}
	}

	claimed := make(map[string]bool, len(raw))
	for i, h := range raw {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		if !claimed[h] {
			claimed[h] = true
			headers[i] = h
			continue
		}
		name := h
		for used[name] {
			next[h]++
			name = h + "_" + strconv.Itoa(next[h])
		}
		used[name] = true
		claimed[name] = true
		headers[i] = name
	}

	return headers
}
