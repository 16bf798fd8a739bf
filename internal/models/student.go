package models

// Sheet layout of the 特訓リスト export.
const (
	SheetName   = "特訓リスト"
	CampusToken = "新宿校"

	// KeyRow is the 1-based row the decoder starts reading from. It carries the
	// column keys; the first non-blank row after it is the column-title header.
	KeyRow = 3

	// ColumnCount is the number of meaningful leading columns (A through N).
	ColumnCount = 14
)

// RawRow is one decoded sheet row keyed by 0-based column position.
type RawRow struct {
	Number int            `json:"number"`
	Cells  map[int]string `json:"cells"`
}

// Cell returns the text at col, or "" when absent.
func (r RawRow) Cell(col int) string {
	if r.Cells == nil {
		return ""
	}
	return r.Cells[col]
}

// IsBlank reports whether every cell is empty.
func (r RawRow) IsBlank() bool {
	for _, v := range r.Cells {
		if v != "" {
			return false
		}
	}
	return true
}

// StudentRecord is one 特訓リスト row mapped to named fields.
type StudentRecord struct {
	Check        string `json:"check"`
	No           string `json:"no"`
	RegStart     string `json:"reg_start"`
	TeachStart   string `json:"teach_start"`
	TeachEnd     string `json:"teach_end"`
	Name         string `json:"name"`
	Teacher      string `json:"teacher"`
	Format       string `json:"format"`
	Subject      string `json:"subject"`
	Status       string `json:"status"`
	Grade        string `json:"grade"`
	Campus       string `json:"campus"`
	Base         string `json:"base"`
	SubjectTitle string `json:"subject_title"`
}

// ColumnTitles are the sheet headings of columns A through N.
var ColumnTitles = [ColumnCount]string{
	"チェック", "No", "reg開始", "指導開始", "指導終了", "生徒氏名", "担当",
	"形式", "科目", "状態", "学年", "校舎", "基本", "件名",
}
