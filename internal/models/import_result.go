package models

import "time"

// RowProgress is the copy/send state of one item.
type RowProgress struct {
	Index       int        `json:"index"`
	StudentName string     `json:"student_name"`
	Copied      bool       `json:"copied"`
	Sent        bool       `json:"sent"`
	SentAt      *time.Time `json:"sent_at,omitempty"`
}

// ProgressSummary holds the aggregate counters shown above the items.
type ProgressSummary struct {
	Total  int `json:"total"`
	Copied int `json:"copied"`
	Sent   int `json:"sent"`
}

// ImportResult is returned to the page after an import.
type ImportResult struct {
	BatchID    string          `json:"batch_id"`
	Filename   string          `json:"filename"`
	TotalRows  int             `json:"total_rows"`
	Summary    ProgressSummary `json:"summary"`
	Message    string          `json:"message"`
	Items      []ItemView      `json:"items"`
	ImportTime time.Time       `json:"import_time"`
}

// ItemView is an item together with its progress and its pre-escaped markup.
type ItemView struct {
	TemplateItem
	Progress RowProgress `json:"progress"`
	HTML     string      `json:"html"`
}
