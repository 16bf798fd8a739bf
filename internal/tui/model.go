// Package tui is a terminal view of one imported roster: a list of rendered
// notices with copy and send tracking.
package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"tokkun-notice/internal/app"
	"tokkun-notice/internal/clipboard"
	"tokkun-notice/internal/markup"
	"tokkun-notice/internal/models"
	"tokkun-notice/internal/service"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// CopyFlash is how long the copy button shows its confirmation.
const CopyFlash = 2 * time.Second

type revertMsg struct {
	index int
	seq   int
}

// noticeItem adapts a template item to list.Item.
type noticeItem struct {
	item     models.TemplateItem
	progress models.RowProgress
}

func (i noticeItem) Title() string {
	return fmt.Sprintf("%d人目: %s", i.item.Index+1, i.item.DisplayName)
}

func (i noticeItem) Description() string {
	copyLabel, _ := markup.CopyStatus(i.progress)
	lineLabel, _ := markup.LineStatus(i.progress)
	return copyLabel + "  " + lineLabel
}

func (i noticeItem) FilterValue() string { return i.item.DisplayName }

// Model is the roster screen.
type Model struct {
	ctrl *app.Controller
	clip clipboard.Writer

	width  int
	height int

	list     list.Model
	viewport viewport.Model
	spinner  spinner.Model
	styles   Styles

	loading  string
	banner   string
	alert    string
	batchID  string
	summary  models.ProgressSummary
	flash    map[int]int
	flashSeq int

	initial tea.Cmd
}

func New(ctrl *app.Controller, clip clipboard.Writer) Model {
	l := list.New(nil, list.NewDefaultDelegate(), 80, 16)
	l.Title = models.SheetName
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))

	vp := viewport.New(80, 8)

	return Model{
		ctrl:     ctrl,
		clip:     clip,
		width:    80,
		height:   24,
		list:     l,
		viewport: vp,
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		styles:   DefaultStyles(),
		flash:    make(map[int]int),
	}
}

// ImportFile returns a command that imports path through the controller. The
// outcome reaches the model through the attached Port.
func ImportFile(ctrl *app.Controller, path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return failedMsg{message: service.BannerMessage(service.FileReadError(err))}
		}
		defer f.Close()

		// Errors are already reported through the port.
		_, _ = ctrl.Import(context.Background(), filepath.Base(path), f)
		return nil
	}
}

// Open makes the model import path as soon as the program starts.
func (m Model) Open(path string) Model {
	m.initial = ImportFile(m.ctrl, path)
	return m
}

func (m Model) Init() tea.Cmd {
	return m.initial
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case loadingMsg:
		m.loading = msg.filename
		m.banner = ""
		m.batchID = ""
		m.summary = models.ProgressSummary{}
		m.flash = make(map[int]int)
		cmd := m.list.SetItems(nil)
		m.viewport.SetContent("")
		return m, tea.Batch(cmd, m.spinner.Tick)

	case spinner.TickMsg:
		if m.loading == "" {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case renderedMsg:
		m.loading = ""
		m.banner = ""
		return m, m.render(msg.view)

	case failedMsg:
		m.loading = ""
		m.banner = msg.message
		if msg.keep {
			return m, nil
		}
		m.batchID = ""
		m.summary = models.ProgressSummary{}
		cmd := m.list.SetItems(nil)
		m.viewport.SetContent("")
		return m, cmd

	case revertMsg:
		if m.flash[msg.index] == msg.seq {
			delete(m.flash, msg.index)
			m.refreshDetail()
		}
		return m, nil

	case tea.KeyMsg:
		// The alert blocks the screen until acknowledged.
		if m.alert != "" {
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			m.alert = ""
			return m, nil
		}

		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "c", "y":
			return m, m.copySelected()
		case " ", "s":
			return m, m.toggleSent()
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	cmds = append(cmds, cmd)
	m.refreshDetail()
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *Model) render(view app.View) tea.Cmd {
	m.batchID = view.Batch.ID
	m.summary = view.Summary
	m.flash = make(map[int]int)

	items := make([]list.Item, 0, view.Batch.Len())
	for i, item := range view.Batch.Items {
		items = append(items, noticeItem{item: item, progress: view.Progress[i]})
	}
	cmd := m.list.SetItems(items)
	m.list.Select(0)
	m.refreshDetail()
	return cmd
}

func (m *Model) selected() (noticeItem, bool) {
	sel := m.list.SelectedItem()
	if sel == nil {
		return noticeItem{}, false
	}
	item, ok := sel.(noticeItem)
	return item, ok
}

func (m *Model) copySelected() tea.Cmd {
	sel, ok := m.selected()
	if !ok {
		return nil
	}

	if err := m.clip.Write(sel.item.Text); err != nil {
		m.alert = clipboard.MsgClipboardFailure
		return nil
	}

	row, summary, err := m.ctrl.MarkCopied(m.batchID, sel.item.Index)
	if err != nil {
		m.banner = mutationMessage(err)
		return nil
	}
	cmd := m.apply(row, summary)

	m.flashSeq++
	seq, index := m.flashSeq, sel.item.Index
	m.flash[index] = seq
	m.refreshDetail()

	return tea.Batch(cmd, tea.Tick(CopyFlash, func(time.Time) tea.Msg {
		return revertMsg{index: index, seq: seq}
	}))
}

func (m *Model) toggleSent() tea.Cmd {
	sel, ok := m.selected()
	if !ok {
		return nil
	}

	row, summary, err := m.ctrl.SetSent(m.batchID, sel.item.Index, !sel.progress.Sent)
	if err != nil {
		m.banner = mutationMessage(err)
		return nil
	}
	return m.apply(row, summary)
}

func (m *Model) apply(row models.RowProgress, summary models.ProgressSummary) tea.Cmd {
	m.summary = summary
	for i, it := range m.list.Items() {
		item := it.(noticeItem)
		if item.item.Index == row.Index {
			item.progress = row
			cmd := m.list.SetItem(i, item)
			m.refreshDetail()
			return cmd
		}
	}
	return nil
}

func (m *Model) refreshDetail() {
	sel, ok := m.selected()
	if !ok {
		m.viewport.SetContent("")
		return
	}

	button := markup.LabelCopyBtn
	if _, flashing := m.flash[sel.item.Index]; flashing {
		button = m.styles.Success.Render(markup.LabelCopied)
	}

	sentAt := ""
	if sel.progress.SentAt != nil {
		sentAt = m.styles.Muted.Render(sel.progress.SentAt.Format(service.SentAtLayout))
	}

	m.viewport.SetContent(lipgloss.JoinVertical(
		lipgloss.Left,
		m.styles.Button.Render("[c] ")+button+"   "+m.styles.Muted.Render("[space] 📱 LINE送信完了 ")+sentAt,
		"",
		sel.item.DisplayName,
		sel.item.Text,
	))
}

// SetSize lays the list out above the detail pane.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height

	detail := 10
	listHeight := height - detail - 4
	if listHeight < 4 {
		listHeight = 4
	}
	m.list.SetSize(width, listHeight)
	m.viewport.Width = width - 4
	m.viewport.Height = detail - 2
}

// CopyLabel is the label the copy button currently shows for index.
func (m Model) CopyLabel(index int) string {
	if _, ok := m.flash[index]; ok {
		return markup.LabelCopied
	}
	return markup.LabelCopyBtn
}

func (m Model) View() string {
	if m.alert != "" {
		return m.styles.Alert.Render(m.alert) + "\n" + m.styles.Muted.Render("press any key")
	}

	var sections []string
	if m.banner != "" {
		sections = append(sections, m.styles.Banner.Render(m.banner))
	}

	if m.loading != "" {
		sections = append(sections, m.spinner.View()+" "+m.loading+" を読み込み中...")
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	if m.batchID == "" {
		if len(sections) == 0 {
			sections = append(sections, m.styles.Muted.Render("ファイルが読み込まれていません"))
		}
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	sections = append(sections,
		m.styles.Success.Render(fmt.Sprintf("✅ %d名の%s生徒のテンプレートを生成しました", m.summary.Total, models.CampusToken)),
		m.styles.Summary.Render(summaryLine(m.summary)),
		m.list.View(),
		m.styles.Detail.Render(m.viewport.View()),
		m.styles.Muted.Render("↑/↓ 選択 • c コピー • space 送信済み切替 • q 終了"),
	)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func summaryLine(s models.ProgressSummary) string {
	return fmt.Sprintf("📋 コピー済み: %d/%d   📱 LINE送信済み: %d/%d", s.Copied, s.Total, s.Sent, s.Total)
}

func mutationMessage(err error) string {
	if errors.Is(err, app.ErrStaleBatch) {
		return "リストが新しいファイルで置き換えられました"
	}
	return err.Error()
}
