package service

import (
	"bytes"
	"context"
	"fmt"

	"tokkun-notice/internal/config"
	"tokkun-notice/internal/models"

	"github.com/xuri/excelize/v2"
)

// SheetDecoder turns workbook bytes into the raw rows of one sheet. Rows up to and
// including models.KeyRow and entirely blank rows are not returned.
type SheetDecoder interface {
	Decode(ctx context.Context, data []byte, sheet string) ([]models.RawRow, error)
}

// NewDecoder returns the decoder configured by name.
func NewDecoder(name string) (SheetDecoder, error) {
	switch name {
	case "", config.DecoderExcelize:
		return NewExcelService(), nil
	case config.DecoderStream:
		return NewStreamDecoder(), nil
	}
	return nil, fmt.Errorf("unknown sheet decoder %q", name)
}

// ExcelService decodes workbooks with excelize.
type ExcelService struct{}

func NewExcelService() *ExcelService {
	return &ExcelService{}
}

// Decode reads sheet from an xlsx workbook held in memory.
func (s *ExcelService) Decode(ctx context.Context, data []byte, sheet string) ([]models.RawRow, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, newImportError(ErrFileRead, MsgFileRead, fmt.Errorf("failed to open Excel file: %w", err))
	}
	defer f.Close()

	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, newImportError(ErrMissingSheet, MsgMissingSheet, nil)
	}

	// Raw values keep numbers as stored; date cells are rendered below.
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, newImportError(ErrFileRead, MsgFileRead, fmt.Errorf("failed to read rows: %w", err))
	}

	dates := newDateStyles(f)
	var result []models.RawRow
	for i := models.KeyRow; i < len(rows); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		for col, value := range rows[i] {
			if value == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(col+1, i+1)
			if err != nil || !dates.isDate(sheet, cell) {
				continue
			}
			if text, ok := serialText(value); ok {
				rows[i][col] = text
			}
		}

		raw := rowFromCells(i+1, rows[i])
		if raw.IsBlank() {
			continue
		}
		result = append(result, raw)
	}

	return result, nil
}

// dateStyles remembers which cell styles carry a date or time number format.
type dateStyles struct {
	f     *excelize.File
	known map[int]bool
}

func newDateStyles(f *excelize.File) *dateStyles {
	return &dateStyles{f: f, known: make(map[int]bool)}
}

func (d *dateStyles) isDate(sheet, cell string) bool {
	id, err := d.f.GetCellStyle(sheet, cell)
	if err != nil || id == 0 {
		return false
	}
	if date, ok := d.known[id]; ok {
		return date
	}

	style, err := d.f.GetStyle(id)
	date := err == nil && (isDateNumFmt(style.NumFmt) ||
		(style.CustomNumFmt != nil && isDateFormatCode(*style.CustomNumFmt)))
	d.known[id] = date
	return date
}

// rowFromCells builds a RawRow from positional cell text, skipping empty cells.
func rowFromCells(number int, cells []string) models.RawRow {
	raw := models.RawRow{Number: number, Cells: make(map[int]string, len(cells))}
	for col, value := range cells {
		if value == "" {
			continue
		}
		raw.Cells[col] = value
	}
	return raw
}
