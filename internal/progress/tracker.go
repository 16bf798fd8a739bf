// Package progress tracks per-row copy and send state for one imported batch.
//
// The two flags are independent. Sent is reversible: unmarking deletes the stored
// entry. Copied is one-way: once a copy succeeds the row stays copied for the life
// of the tracker.
package progress

import (
	"errors"
	"fmt"
	"time"

	"tokkun-notice/internal/models"
)

// ErrUnknownRow is returned for an index outside the batch.
var ErrUnknownRow = errors.New("unknown row")

// Entry records a completed send.
type Entry struct {
	StudentName string
	SentAt      time.Time
}

// Tracker is not safe for concurrent use; its owner serialises access.
type Tracker struct {
	size   int
	names  []string
	sent   map[int]Entry
	copied map[int]struct{}
}

// NewTracker returns an empty tracker for the items of one batch.
func NewTracker(items []models.TemplateItem) *Tracker {
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.DisplayName
	}
	return &Tracker{
		size:   len(items),
		names:  names,
		sent:   make(map[int]Entry),
		copied: make(map[int]struct{}),
	}
}

func (t *Tracker) check(index int) error {
	if index < 0 || index >= t.size {
		return fmt.Errorf("%w: %d (batch has %d rows)", ErrUnknownRow, index, t.size)
	}
	return nil
}

// SetSent marks or unmarks index as sent. Marking stores who and when;
// unmarking removes the entry.
func (t *Tracker) SetSent(index int, studentName string, sent bool, now time.Time) error {
	if err := t.check(index); err != nil {
		return err
	}
	if sent {
		t.sent[index] = Entry{StudentName: studentName, SentAt: now}
	} else {
		delete(t.sent, index)
	}
	return nil
}

// MarkCopied records a successful copy. Repeating it is a no-op.
func (t *Tracker) MarkCopied(index int) error {
	if err := t.check(index); err != nil {
		return err
	}
	t.copied[index] = struct{}{}
	return nil
}

// State returns the progress of one row.
func (t *Tracker) State(index int) (models.RowProgress, error) {
	if err := t.check(index); err != nil {
		return models.RowProgress{}, err
	}

	state := models.RowProgress{Index: index, StudentName: t.names[index]}
	_, state.Copied = t.copied[index]
	if e, ok := t.sent[index]; ok {
		state.Sent = true
		state.StudentName = e.StudentName
		at := e.SentAt
		state.SentAt = &at
	}
	return state, nil
}

// States returns the progress of every row in index order.
func (t *Tracker) States() []models.RowProgress {
	states := make([]models.RowProgress, t.size)
	for i := range states {
		states[i], _ = t.State(i)
	}
	return states
}

// Summary recomputes the aggregate counters.
func (t *Tracker) Summary() models.ProgressSummary {
	return models.ProgressSummary{
		Total:  t.size,
		Copied: len(t.copied),
		Sent:   len(t.sent),
	}
}
