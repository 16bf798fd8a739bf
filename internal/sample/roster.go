// Package sample builds 特訓リスト workbooks for demos and tests.
package sample

import (
	"fmt"

	"tokkun-notice/internal/models"

	"github.com/xuri/excelize/v2"
)

// Roster describes one generated workbook.
type Roster struct {
	// Sheet defaults to models.SheetName.
	Sheet string
	// Title is written to A1.
	Title string
	Rows  [][]string
}

// Student returns a 14-column row in sheet order.
func Student(no, name, campus, regStart, teachEnd, subject, teacher string) []string {
	row := make([]string, models.ColumnCount)
	row[0] = "□"
	row[1] = no
	row[2] = regStart
	row[3] = regStart
	row[4] = teachEnd
	row[5] = name
	row[6] = teacher
	row[7] = "個別"
	row[8] = subject
	row[9] = "確定"
	row[10] = "高2"
	row[11] = campus
	row[12] = "通常"
	row[13] = "特訓"
	return row
}

// DemoRows is a mixed-campus roster with a blank-name row and a blank line.
func DemoRows() [][]string {
	return [][]string{
		Student("1", "山田 太郎", "新宿校", "18:00", "19:30", "数学", "佐藤"),
		Student("2", "鈴木 花子", "渋谷校", "18:00", "19:30", "英語", "田中"),
		Student("3", "高橋 一郎", "新宿校A", "19:40", "21:10", "物理", "伊藤"),
		Student("4", "  ", "新宿校", "19:40", "21:10", "化学", "渡辺"),
		nil,
		Student("5", "O'Brien \"Ken\" <帰国生>", "新宿校", "20:00", "21:30", "英語 & 小論文", "中村"),
	}
}

// Build lays out r the way the roster export does: a title in rows 1-2, a blank
// key row, the column titles, then one student per row.
func Build(r Roster) (*excelize.File, error) {
	sheet := r.Sheet
	if sheet == "" {
		sheet = models.SheetName
	}

	f := excelize.NewFile()

	index, err := f.NewSheet(sheet)
	if err != nil {
		f.Close()
		return nil, err
	}
	f.SetActiveSheet(index)
	if sheet != "Sheet1" {
		f.DeleteSheet("Sheet1")
	}

	title := r.Title
	if title == "" {
		title = "特訓リスト"
	}
	f.SetCellValue(sheet, "A1", title)

	headerRow := models.KeyRow + 1
	for i, header := range models.ColumnTitles {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		f.SetCellValue(sheet, cell, header)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	last, _ := excelize.CoordinatesToCellName(models.ColumnCount, headerRow)
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", headerRow), last, headerStyle)

	for rowIdx, rowData := range r.Rows {
		for colIdx, value := range rowData {
			if value == "" {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, headerRow+1+rowIdx)
			f.SetCellValue(sheet, cell, value)
		}
	}

	f.SetColWidth(sheet, "F", "F", 24)
	f.SetColWidth(sheet, "L", "L", 12)

	return f, nil
}

// Bytes is Build followed by serialisation.
func Bytes(r Roster) ([]byte, error) {
	f, err := Build(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
