package service

import (
	"fmt"
	"io"

	"tokkun-notice/internal/models"

	"github.com/xuri/excelize/v2"
)

// SentAtLayout formats send times the way the page shows them.
const SentAtLayout = "2006/1/2 15:04:05"

const reportSheet = "送信状況"

var reportHeaders = []string{
	"No", "生徒氏名", "reg開始", "指導終了", "科目", "担当", "コピー", "LINE送信", "送信日時",
}

// BuildProgressReport lays out one batch's copy/send progress as a workbook.
// progress must be indexed like batch.Items.
func (s *ExcelService) BuildProgressReport(batch *models.Batch, progress []models.RowProgress, summary models.ProgressSummary) (*excelize.File, error) {
	if len(progress) != batch.Len() {
		return nil, fmt.Errorf("progress has %d rows, batch has %d items", len(progress), batch.Len())
	}

	f := excelize.NewFile()

	index, err := f.NewSheet(reportSheet)
	if err != nil {
		f.Close()
		return nil, err
	}
	f.SetActiveSheet(index)

	// Style headers
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})

	for i, header := range reportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(reportSheet, cell, header)
		f.SetCellStyle(reportSheet, cell, cell, headerStyle)
	}

	doneStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D4EDDA"}, Pattern: 1},
	})
	pendingStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#FFF3CD"}, Pattern: 1},
	})

	for i, item := range batch.Items {
		row := i + 2
		p := progress[i]

		sentAt := ""
		if p.SentAt != nil {
			sentAt = p.SentAt.Format(SentAtLayout)
		}

		values := []interface{}{
			item.Index + 1,
			item.DisplayName,
			item.Record.RegStart,
			item.Record.TeachEnd,
			item.Record.Subject,
			item.Record.Teacher,
			yesNo(p.Copied, "コピー済み", "未コピー"),
			yesNo(p.Sent, "送信済み", "未送信"),
			sentAt,
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(reportSheet, cell, value)
		}

		// Status-based styling
		copyCell, _ := excelize.CoordinatesToCellName(7, row)
		sentCell, _ := excelize.CoordinatesToCellName(8, row)
		f.SetCellStyle(reportSheet, copyCell, copyCell, pick(p.Copied, doneStyle, pendingStyle))
		f.SetCellStyle(reportSheet, sentCell, sentCell, pick(p.Sent, doneStyle, pendingStyle))
	}

	f.SetColWidth(reportSheet, "A", "A", 6)
	f.SetColWidth(reportSheet, "B", "B", 20)
	f.SetColWidth(reportSheet, "C", "F", 12)
	f.SetColWidth(reportSheet, "G", "H", 14)
	f.SetColWidth(reportSheet, "I", "I", 20)

	// Add summary at the bottom
	summaryRow := batch.Len() + 3
	summaryStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#F0F0F0"}, Pattern: 1},
	})
	f.SetCellValue(reportSheet, fmt.Sprintf("A%d", summaryRow), "集計")
	f.SetCellStyle(reportSheet, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("A%d", summaryRow), summaryStyle)
	f.SetCellValue(reportSheet, fmt.Sprintf("B%d", summaryRow), fmt.Sprintf("対象: %d名", summary.Total))
	f.SetCellValue(reportSheet, fmt.Sprintf("B%d", summaryRow+1), fmt.Sprintf("コピー済み: %d/%d", summary.Copied, summary.Total))
	f.SetCellValue(reportSheet, fmt.Sprintf("B%d", summaryRow+2), fmt.Sprintf("LINE送信済み: %d/%d", summary.Sent, summary.Total))
	f.SetCellValue(reportSheet, fmt.Sprintf("B%d", summaryRow+3), fmt.Sprintf("ファイル: %s (%s)", batch.Filename, batch.ID))

	f.DeleteSheet("Sheet1")

	return f, nil
}

// WriteProgressReport streams the report workbook to w.
func (s *ExcelService) WriteProgressReport(w io.Writer, batch *models.Batch, progress []models.RowProgress, summary models.ProgressSummary) error {
	f, err := s.BuildProgressReport(batch, progress, summary)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.WriteTo(w)
	return err
}

// ExportProgressReport saves the report workbook to outputPath.
func (s *ExcelService) ExportProgressReport(outputPath string, batch *models.Batch, progress []models.RowProgress, summary models.ProgressSummary) error {
	f, err := s.BuildProgressReport(batch, progress, summary)
	if err != nil {
		return err
	}
	defer f.Close()

	return f.SaveAs(outputPath)
}

func yesNo(ok bool, yes, no string) string {
	if ok {
		return yes
	}
	return no
}

func pick(ok bool, a, b int) int {
	if ok {
		return a
	}
	return b
}
