package service

import (
	"testing"

	"tokkun-notice/internal/models"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// sheetFixture describes a 特訓リスト-style workbook built in memory.
type sheetFixture struct {
	sheet  string
	header bool
	rows   [][]string
	// cells overrides single cells with typed values, keyed by cell name.
	cells map[string]interface{}
}

func (fx sheetFixture) bytes(t *testing.T) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := fx.sheet
	if sheet == "" {
		sheet = models.SheetName
	}
	if sheet != "Sheet1" {
		idx, err := f.NewSheet(sheet)
		require.NoError(t, err)
		f.SetActiveSheet(idx)
		require.NoError(t, f.DeleteSheet("Sheet1"))
	}

	// Rows 1-2 hold a title; row 3 is the (blank) key row.
	require.NoError(t, f.SetCellValue(sheet, "A1", "特訓リスト 10月17日"))

	next := models.KeyRow + 1
	if fx.header {
		for i, title := range models.ColumnTitles {
			cell, _ := excelize.CoordinatesToCellName(i+1, next)
			require.NoError(t, f.SetCellValue(sheet, cell, title))
		}
		next++
	}
	for r, row := range fx.rows {
		for c, value := range row {
			if value == "" {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(c+1, next+r)
			require.NoError(t, f.SetCellValue(sheet, cell, value))
		}
	}

	for cell, value := range fx.cells {
		require.NoError(t, f.SetCellValue(sheet, cell, value))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

// studentRow returns a 14-column row.
func studentRow(name, campus, regStart, teachEnd, subject, teacher string) []string {
	row := make([]string, models.ColumnCount)
	row[1] = "1"
	row[2] = regStart
	row[3] = regStart
	row[4] = teachEnd
	row[5] = name
	row[6] = teacher
	row[7] = "個別"
	row[8] = subject
	row[11] = campus
	return row
}
