package tui

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"tokkun-notice/internal/app"
	"tokkun-notice/internal/clipboard"
	"tokkun-notice/internal/markup"
	"tokkun-notice/internal/models"
	"tokkun-notice/internal/sample"
	"tokkun-notice/internal/service"
	"tokkun-notice/internal/utils"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClipboard struct {
	texts []string
	err   error
}

func (s *stubClipboard) Name() string { return "stub" }

func (s *stubClipboard) Write(text string) error {
	if s.err != nil {
		return s.err
	}
	s.texts = append(s.texts, text)
	return nil
}

func key(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func loadedModel(t *testing.T, clip clipboard.Writer) (Model, app.View) {
	t.Helper()

	data, err := sample.Bytes(sample.Roster{Rows: sample.DemoRows()})
	require.NoError(t, err)

	logger := utils.ComponentLogger("test")
	ctrl := app.NewController(service.NewImportService(service.NewExcelService(), logger), logger)
	view, err := ctrl.Import(context.Background(), "demo.xlsx", bytes.NewReader(data))
	require.NoError(t, err)

	m := New(ctrl, clip)
	next, _ := m.Update(loadingMsg{filename: "demo.xlsx"})
	next, _ = next.Update(renderedMsg{view: view})
	return next.(Model), view
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestRenderedShowsSummary(t *testing.T) {
	m, view := loadedModel(t, &stubClipboard{})

	assert.Equal(t, view.Batch.ID, m.batchID)
	assert.Len(t, m.list.Items(), 3)
	out := m.View()
	assert.Contains(t, out, "✅ 3名の新宿校生徒のテンプレートを生成しました")
	assert.Contains(t, out, "📋 コピー済み: 0/3")
}

func TestCopyMarksRowAndRevertsLabel(t *testing.T) {
	clip := &stubClipboard{}
	m, view := loadedModel(t, clip)

	m, cmd := send(t, m, key('c'))
	require.NotNil(t, cmd)
	require.Len(t, clip.texts, 1)
	assert.Equal(t, view.Batch.Items[0].Text, clip.texts[0])

	assert.Equal(t, 1, m.summary.Copied)
	assert.Equal(t, markup.LabelCopied, m.CopyLabel(0))
	sel, ok := m.selected()
	require.True(t, ok)
	assert.True(t, sel.progress.Copied)

	// A stale revert from an earlier flash leaves the label alone.
	m, _ = send(t, m, revertMsg{index: 0, seq: m.flashSeq - 1})
	assert.Equal(t, markup.LabelCopied, m.CopyLabel(0))

	m, _ = send(t, m, revertMsg{index: 0, seq: m.flashSeq})
	assert.Equal(t, markup.LabelCopyBtn, m.CopyLabel(0))

	sel, _ = m.selected()
	assert.True(t, sel.progress.Copied)
	assert.Equal(t, 1, m.summary.Copied)
}

func TestCopyFailureShowsBlockingAlert(t *testing.T) {
	clip := &stubClipboard{err: errors.New("no display")}
	m, _ := loadedModel(t, clip)

	m, _ = send(t, m, key('c'))
	assert.Equal(t, clipboard.MsgClipboardFailure, m.alert)
	assert.Contains(t, m.View(), clipboard.MsgClipboardFailure)
	assert.Equal(t, 0, m.summary.Copied)

	// The next key only dismisses the alert.
	m, _ = send(t, m, key(' '))
	assert.Empty(t, m.alert)
	assert.Equal(t, 0, m.summary.Sent)
}

func TestSpaceTogglesSent(t *testing.T) {
	m, _ := loadedModel(t, &stubClipboard{})

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	sel, ok := m.selected()
	require.True(t, ok)
	assert.Equal(t, 1, sel.item.Index)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	sel, _ = m.selected()
	assert.True(t, sel.progress.Sent)
	require.NotNil(t, sel.progress.SentAt)
	assert.Equal(t, 1, m.summary.Sent)

	m, _ = send(t, m, key('s'))
	sel, _ = m.selected()
	assert.False(t, sel.progress.Sent)
	assert.Nil(t, sel.progress.SentAt)
	assert.Equal(t, 0, m.summary.Sent)
}

func TestFailedClearsList(t *testing.T) {
	m, _ := loadedModel(t, &stubClipboard{})

	m, _ = send(t, m, failedMsg{message: "ファイル処理エラー: " + service.MsgMissingSheet})
	assert.Empty(t, m.list.Items())
	assert.Empty(t, m.batchID)
	assert.Contains(t, m.View(), service.MsgMissingSheet)

	// Keys do nothing without a batch.
	m, cmd := send(t, m, key('c'))
	assert.Nil(t, cmd)
	assert.Empty(t, m.alert)
}

func TestImportFileMissingPath(t *testing.T) {
	logger := utils.ComponentLogger("test")
	ctrl := app.NewController(service.NewImportService(service.NewExcelService(), logger), logger)

	msg := ImportFile(ctrl, "/nonexistent/roster.xlsx")()
	failed, ok := msg.(failedMsg)
	require.True(t, ok)
	assert.Equal(t, "ファイル処理エラー: "+service.MsgFileRead, failed.message)
}

func TestPortForwardsImportEvents(t *testing.T) {
	var got []tea.Msg
	p := &Port{send: func(msg tea.Msg) { got = append(got, msg) }}

	p.Loading("a.xlsx")
	p.Failed("boom", nil)
	p.Updated("B", models.RowProgress{Index: 0}, models.ProgressSummary{Total: 1})

	require.Len(t, got, 2)
	assert.Equal(t, loadingMsg{filename: "a.xlsx"}, got[0])
	assert.Equal(t, failedMsg{message: "boom"}, got[1])
}

func TestWrongExtensionKeepsList(t *testing.T) {
	m, view := loadedModel(t, &stubClipboard{})

	var got []tea.Msg
	m.ctrl.Attach(&Port{send: func(msg tea.Msg) { got = append(got, msg) }})

	_, err := m.ctrl.Import(context.Background(), "notes.csv", bytes.NewReader([]byte("a,b")))
	require.ErrorIs(t, err, service.ErrInvalidFileType)
	require.Len(t, got, 1)
	assert.Equal(t, failedMsg{message: service.MsgInvalidFileType, keep: true}, got[0])

	m, _ = send(t, m, got[0])
	assert.Equal(t, view.Batch.ID, m.batchID)
	assert.Len(t, m.list.Items(), 3)
	out := m.View()
	assert.Contains(t, out, service.MsgInvalidFileType)
	assert.Contains(t, out, "✅ 3名の新宿校生徒のテンプレートを生成しました")

	m, _ = send(t, m, key('s'))
	assert.Equal(t, 1, m.summary.Sent)
}
