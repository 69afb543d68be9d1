package spreadsheet

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// HighlightColor fills flagged cells.
const HighlightColor = "#FFFF00"

const (
	// maxXLSRows bounds how many rows are read from a legacy workbook.
	maxXLSRows = 100000
	// xlsMaxCols is the column limit of the BIFF8 format.
	xlsMaxCols = 256
)

var (
	ErrNoWorksheet       = errors.New("no worksheet found")
	ErrEmptyWorksheet    = errors.New("worksheet is empty")
	ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")
)

// Cell addresses a cell of the written matrix, zero-based, header row included.
type Cell struct {
	Row int
	Col int
}

// IsSupported reports whether filename has a readable spreadsheet extension.
func IsSupported(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xls":
		return true
	}
	return false
}

// Read returns the rows of the first worksheet. The format is chosen by the
// extension of filename: .xls goes through the legacy reader, .xlsx through excelize.
func Read(reader io.Reader, filename string) ([][]string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xls":
		return readXLS(data)
	case ".xlsx":
		return readXLSX(data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(filename))
	}
}

func readXLS(data []byte) ([][]string, error) {
	workbook, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, err
	}
	if workbook == nil {
		return nil, ErrNoWorksheet
	}
	sheet := workbook.GetSheet(0)
	if sheet == nil {
		return nil, ErrNoWorksheet
	}

	return collectRows(int(sheet.MaxRow), func(i int) sheetRow {
		if row := xlsRow(sheet, i); row != nil {
			return row
		}
		return nil
	})
}

// xlsRow returns row i of sheet, or nil when the sheet has no such row.
func xlsRow(sheet *xls.WorkSheet, i int) (row *xls.Row) {
	// WorkSheet.Row dereferences missing rows.
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()
	return sheet.Row(i)
}

type sheetRow interface {
	Col(i int) string
}

// collectRows reads rows 0..maxRow, keeping missing rows as empty ones so
// row positions match the sheet. Trailing blank cells are dropped.
func collectRows(maxRow int, row func(i int) sheetRow) ([][]string, error) {
	if maxRow >= maxXLSRows {
		maxRow = maxXLSRows - 1
	}

	rows := make([][]string, 0, maxRow+1)
	filled := false
	for i := 0; i <= maxRow; i++ {
		r := row(i)
		if r == nil {
			rows = append(rows, nil)
			continue
		}

		cells := make([]string, xlsMaxCols)
		last := -1
		for c := range cells {
			cells[c] = r.Col(c)
			if cells[c] != "" {
				last = c
			}
		}
		if last >= 0 {
			filled = true
		}
		rows = append(rows, cells[:last+1])
	}

	if !filled {
		return nil, ErrEmptyWorksheet
	}
	return rows, nil
}

func readXLSX(data []byte) ([][]string, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	sheet := file.GetSheetName(0)
	if sheet == "" {
		return nil, ErrNoWorksheet
	}
	rows, err := file.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrEmptyWorksheet
	}
	return rows, nil
}

// Write renders rows into a single-sheet xlsx workbook, filling the
// highlighted cells yellow.
func Write(w io.Writer, rows [][]string, highlights []Cell) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)

	for r, cells := range rows {
		for c, value := range cells {
			name, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, name, value); err != nil {
				return err
			}
		}
	}

	if len(highlights) > 0 {
		style, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{HighlightColor}, Pattern: 1},
		})
		if err != nil {
			return err
		}
		for _, h := range highlights {
			name, err := excelize.CoordinatesToCellName(h.Col+1, h.Row+1)
			if err != nil {
				return err
			}
			if err := f.SetCellStyle(sheet, name, name, style); err != nil {
				return err
			}
		}
	}

	return f.Write(w)
}

// Encode is Write into memory.
func Encode(rows [][]string, highlights []Cell) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, rows, highlights); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
