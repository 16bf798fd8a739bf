package service

import (
	"context"
	"fmt"
	"time"

	"tokkun-notice/internal/models"

	"github.com/thedatashed/xlsxreader"
)

// StreamDecoder decodes workbooks row by row with xlsxreader. It holds only the
// shared strings table and the current row, which suits large exports.
type StreamDecoder struct{}

func NewStreamDecoder() *StreamDecoder {
	return &StreamDecoder{}
}

func (d *StreamDecoder) Decode(ctx context.Context, data []byte, sheet string) ([]models.RawRow, error) {
	xl, err := xlsxreader.NewReader(data)
	if err != nil {
		return nil, newImportError(ErrFileRead, MsgFileRead, fmt.Errorf("failed to open Excel file: %w", err))
	}

	found := false
	for _, name := range xl.Sheets {
		if name == sheet {
			found = true
			break
		}
	}
	if !found {
		return nil, newImportError(ErrMissingSheet, MsgMissingSheet, nil)
	}

	var (
		result  []models.RawRow
		stopErr error
	)
	// The reader goroutine blocks until the channel is drained, so keep
	// receiving after a failure.
	for row := range xl.ReadRows(sheet) {
		if stopErr != nil {
			continue
		}
		if row.Error != nil {
			stopErr = newImportError(ErrFileRead, MsgFileRead, fmt.Errorf("failed to read row: %w", row.Error))
			continue
		}
		if err := ctx.Err(); err != nil {
			stopErr = err
			continue
		}
		if row.Index <= models.KeyRow {
			continue
		}

		raw := models.RawRow{Number: row.Index, Cells: make(map[int]string, len(row.Cells))}
		for _, cell := range row.Cells {
			value := cellText(cell)
			if value == "" {
				continue
			}
			raw.Cells[cell.ColumnIndex()] = value
		}
		if raw.IsBlank() {
			continue
		}
		result = append(result, raw)
	}

	if stopErr != nil {
		return nil, stopErr
	}
	return result, nil
}

// timestampLayouts are the forms xlsxreader reports date/time cells in.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// cellText renders date/time cells through sheetTimeText.
func cellText(cell xlsxreader.Cell) string {
	if cell.Type != xlsxreader.TypeDateTime {
		return cell.Value
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, cell.Value); err == nil {
			return sheetTimeText(t)
		}
	}
	if text, ok := serialText(cell.Value); ok {
		return text
	}
	return cell.Value
}
