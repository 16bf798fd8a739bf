package progress

import (
	"testing"
	"time"

	"tokkun-notice/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTracker(names ...string) *Tracker {
	items := make([]models.TemplateItem, len(names))
	for i, n := range names {
		items[i] = models.TemplateItem{Index: i, DisplayName: n}
	}
	return NewTracker(items)
}

func TestSetSentRoundTrip(t *testing.T) {
	tr := newTestTracker("山田", "佐藤")
	before, err := tr.State(1)
	require.NoError(t, err)
	beforeSummary := tr.Summary()

	now := time.Date(2026, 10, 16, 18, 30, 0, 0, time.Local)
	require.NoError(t, tr.SetSent(1, "佐藤", true, now))

	state, err := tr.State(1)
	require.NoError(t, err)
	assert.True(t, state.Sent)
	require.NotNil(t, state.SentAt)
	assert.Equal(t, now, *state.SentAt)
	assert.Equal(t, 1, tr.Summary().Sent)
	assert.Equal(t, "佐藤", state.StudentName)

	require.NoError(t, tr.SetSent(1, "佐藤", false, now.Add(time.Minute)))

	after, err := tr.State(1)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, beforeSummary, tr.Summary())
	assert.Nil(t, after.SentAt)
}

func TestMarkCopiedIsIdempotent(t *testing.T) {
	tr := newTestTracker("山田", "佐藤", "鈴木")

	require.NoError(t, tr.MarkCopied(2))
	assert.Equal(t, 1, tr.Summary().Copied)

	require.NoError(t, tr.MarkCopied(2))
	assert.Equal(t, 1, tr.Summary().Copied)

	state, err := tr.State(2)
	require.NoError(t, err)
	assert.True(t, state.Copied)
	assert.False(t, state.Sent)
}

func TestCopiedSurvivesSendToggle(t *testing.T) {
	tr := newTestTracker("山田")
	now := time.Now()

	require.NoError(t, tr.MarkCopied(0))
	require.NoError(t, tr.SetSent(0, "山田", true, now))
	require.NoError(t, tr.SetSent(0, "山田", false, now))

	state, err := tr.State(0)
	require.NoError(t, err)
	assert.True(t, state.Copied)
	assert.Equal(t, models.ProgressSummary{Total: 1, Copied: 1, Sent: 0}, tr.Summary())
}

func TestUnknownRow(t *testing.T) {
	tr := newTestTracker("山田")

	assert.ErrorIs(t, tr.MarkCopied(1), ErrUnknownRow)
	assert.ErrorIs(t, tr.SetSent(-1, "x", true, time.Now()), ErrUnknownRow)
	_, err := tr.State(5)
	assert.ErrorIs(t, err, ErrUnknownRow)
	assert.Equal(t, 0, tr.Summary().Copied)
}

func TestStatesInIndexOrder(t *testing.T) {
	tr := newTestTracker("a", "b", "c")
	now := time.Now()
	require.NoError(t, tr.SetSent(2, "c", true, now))
	require.NoError(t, tr.SetSent(0, "a", true, now))

	states := tr.States()
	require.Len(t, states, 3)
	for i, state := range states {
		assert.Equal(t, i, state.Index)
	}
	assert.True(t, states[0].Sent)
	assert.False(t, states[1].Sent)
	assert.True(t, states[2].Sent)
	assert.Equal(t, "b", states[1].StudentName)
}
