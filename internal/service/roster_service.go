package service

import (
	"strings"

	"tokkun-notice/internal/models"
)

// MapRows maps positional cells to named fields. Absent cells become "".
func MapRows(rows []models.RawRow) []models.StudentRecord {
	records := make([]models.StudentRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, models.StudentRecord{
			Check:        row.Cell(0),
			No:           row.Cell(1),
			RegStart:     row.Cell(2),
			TeachStart:   row.Cell(3),
			TeachEnd:     row.Cell(4),
			Name:         row.Cell(5),
			Teacher:      row.Cell(6),
			Format:       row.Cell(7),
			Subject:      row.Cell(8),
			Status:       row.Cell(9),
			Grade:        row.Cell(10),
			Campus:       row.Cell(11),
			Base:         row.Cell(12),
			SubjectTitle: row.Cell(13),
		})
	}
	return records
}

// FilterCampus keeps records whose campus contains token and whose trimmed name is
// non-empty, in their original order.
func FilterCampus(records []models.StudentRecord, token string) ([]models.StudentRecord, error) {
	var kept []models.StudentRecord
	for _, r := range records {
		if !strings.Contains(r.Campus, token) {
			continue
		}
		if strings.TrimSpace(r.Name) == "" {
			continue
		}
		kept = append(kept, r)
	}

	if len(kept) == 0 {
		return nil, newImportError(ErrNoMatchingRows, MsgNoMatchingRows, nil)
	}
	return kept, nil
}
