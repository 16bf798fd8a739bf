package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"tokkun-notice/internal/models"

	"github.com/extrame/xls"
	"github.com/richardlehane/mscfb"
)

// oleSignature opens every OLE2 compound document.
var oleSignature = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// isLegacyWorkbook reports whether data is a BIFF (.xls) workbook. Encrypted
// OOXML packages share the container format but carry no Workbook stream.
func isLegacyWorkbook(data []byte) bool {
	if !bytes.HasPrefix(data, oleSignature) {
		return false
	}

	doc, err := mscfb.New(bytes.NewReader(data))
	if err != nil {
		return false
	}

	for entry, err := doc.Next(); err == nil; entry, err = doc.Next() {
		switch entry.Name {
		case "Workbook", "Book":
			return true
		}
	}
	return false
}

// LegacyDecoder reads BIFF (.xls) workbooks with extrame/xls. Cells come back
// as the text the library formats them to.
type LegacyDecoder struct{}

func NewLegacyDecoder() *LegacyDecoder {
	return &LegacyDecoder{}
}

func (d *LegacyDecoder) Decode(ctx context.Context, data []byte, sheet string) (rows []models.RawRow, err error) {
	// The BIFF parser panics on truncated records.
	defer func() {
		if r := recover(); r != nil {
			rows = nil
			err = newImportError(ErrFileRead, MsgFileRead, fmt.Errorf("failed to parse BIFF workbook: %v", r))
		}
	}()

	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, newImportError(ErrFileRead, MsgFileRead, fmt.Errorf("failed to open Excel file: %w", err))
	}
	if wb == nil {
		return nil, newImportError(ErrFileRead, MsgFileRead, errors.New("no workbook stream"))
	}

	var ws *xls.WorkSheet
	for i := 0; i < wb.NumSheets(); i++ {
		if s := wb.GetSheet(i); s != nil && s.Name == sheet {
			ws = s
			break
		}
	}
	if ws == nil {
		return nil, newImportError(ErrMissingSheet, MsgMissingSheet, nil)
	}

	var result []models.RawRow
	for i := models.KeyRow; i <= int(ws.MaxRow); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row := ws.Row(i)
		if row == nil {
			continue
		}

		width := row.LastCol() + 1
		if width < models.ColumnCount {
			width = models.ColumnCount
		}
		cells := make([]string, width)
		for col := range cells {
			cells[col] = row.Col(col)
		}

		raw := rowFromCells(i+1, cells)
		if raw.IsBlank() {
			continue
		}
		result = append(result, raw)
	}

	return result, nil
}
