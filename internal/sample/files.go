package sample

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultDir is where sample rosters are written unless told otherwise.
var DefaultDir = filepath.Join("storage", "samples")

// File is one named sample workbook.
type File struct {
	Name   string
	Note   string
	Roster Roster
}

// Files lists the sample rosters: one that imports cleanly and one for each
// ingestion failure a user can run into.
func Files() []File {
	return []File{
		{
			Name:   "tokkun_list.xlsx",
			Note:   "3 matching students, mixed campuses, one unnamed row",
			Roster: Roster{Title: "特訓リスト（サンプル）", Rows: DemoRows()},
		},
		{
			Name: "tokkun_list_other_campus.xlsx",
			Note: "no 新宿校 rows",
			Roster: Roster{Rows: [][]string{
				Student("1", "鈴木 花子", "渋谷校", "18:00", "19:30", "英語", "田中"),
				Student("2", "佐々木 健", "池袋校", "19:40", "21:10", "数学", "小林"),
			}},
		},
		{
			Name:   "tokkun_list_wrong_sheet.xlsx",
			Note:   "roster on the wrong sheet",
			Roster: Roster{Sheet: "Sheet1", Rows: DemoRows()},
		},
		{
			Name:   "tokkun_list_header_only.xlsx",
			Note:   "column titles but no data rows",
			Roster: Roster{},
		},
	}
}

// WriteAll saves every sample under dir, creating it if needed, and returns
// the paths written in order.
func WriteAll(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", dir, err)
	}

	var paths []string
	for _, file := range Files() {
		f, err := Build(file.Roster)
		if err != nil {
			return paths, fmt.Errorf("failed to build %s: %w", file.Name, err)
		}

		path := filepath.Join(dir, file.Name)
		err = f.SaveAs(path)
		f.Close()
		if err != nil {
			return paths, fmt.Errorf("failed to save %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
