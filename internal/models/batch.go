package models

import "time"

// UnnamedStudent is shown in place of an empty name.
const UnnamedStudent = "名前なし"

// TemplateItem is one rendered notification in a batch.
type TemplateItem struct {
	Index       int           `json:"index"`
	Record      StudentRecord `json:"record"`
	DisplayName string        `json:"display_name"`
	Text        string        `json:"text"`
}

// Batch is the result of one successful import. Items are indexed from 0 in sheet
// order and the index is stable for the lifetime of the batch.
type Batch struct {
	ID         string         `json:"id"`
	Filename   string         `json:"filename"`
	ImportedAt time.Time      `json:"imported_at"`
	TotalRows  int            `json:"total_rows"`
	Items      []TemplateItem `json:"items"`
}

// Len returns the number of items.
func (b *Batch) Len() int {
	if b == nil {
		return 0
	}
	return len(b.Items)
}

// Item returns the item at index.
func (b *Batch) Item(index int) (TemplateItem, bool) {
	if b == nil || index < 0 || index >= len(b.Items) {
		return TemplateItem{}, false
	}
	return b.Items[index], true
}
