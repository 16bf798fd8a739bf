package service

import (
	"testing"

	"tokkun-notice/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapRows(t *testing.T) {
	rows := []models.RawRow{
		{Number: 5, Cells: map[int]string{0: "✓", 2: "10:00", 4: "11:00", 5: "山田太郎", 11: "新宿校", 13: "数学特訓", 14: "ignored", 20: "ignored"}},
		{Number: 6},
	}

	records := MapRows(rows)
	require.Len(t, records, 2)
	assert.Equal(t, models.StudentRecord{
		Check:        "✓",
		RegStart:     "10:00",
		TeachEnd:     "11:00",
		Name:         "山田太郎",
		Campus:       "新宿校",
		SubjectTitle: "数学特訓",
	}, records[0])
	assert.Equal(t, models.StudentRecord{}, records[1])
}

func TestFilterCampus(t *testing.T) {
	records := []models.StudentRecord{
		{Name: "A", Campus: "新宿校"},
		{Name: "B", Campus: "渋谷校"},
		{Name: "  ", Campus: "新宿校"},
		{Name: "C", Campus: "東京新宿校舎"},
		{Name: "　", Campus: "新宿校"},
		{Name: "D", Campus: ""},
		{Name: "E", Campus: "新宿"},
		{Name: "F", Campus: "新宿校"},
	}

	kept, err := FilterCampus(records, models.CampusToken)
	require.NoError(t, err)

	names := make([]string, len(kept))
	for i, r := range kept {
		names[i] = r.Name
	}
	assert.Equal(t, []string{"A", "C", "F"}, names)
}

func TestFilterCampusIsCaseSensitive(t *testing.T) {
	records := []models.StudentRecord{{Name: "A", Campus: "shinjuku"}}

	_, err := FilterCampus(records, "Shinjuku")
	assert.ErrorIs(t, err, ErrNoMatchingRows)

	kept, err := FilterCampus(records, "shinjuku")
	require.NoError(t, err)
	assert.Len(t, kept, 1)
}

func TestFilterCampusNoMatch(t *testing.T) {
	_, err := FilterCampus([]models.StudentRecord{{Name: "A", Campus: "渋谷校"}}, models.CampusToken)
	assert.ErrorIs(t, err, ErrNoMatchingRows)
	assert.Equal(t, "no_matching_rows", ErrorKind(err))

	_, err = FilterCampus(nil, models.CampusToken)
	assert.ErrorIs(t, err, ErrNoMatchingRows)
}
