package markup

import (
	"fmt"
	"strings"

	"tokkun-notice/internal/models"
)

// Status labels.
const (
	LabelNotCopied = "📝 未コピー"
	LabelCopied    = "✅ コピー済み"
	LabelNotSent   = "⏳ LINE未送信"
	LabelSent      = "✅ LINE送信済み"
	LabelCopyBtn   = "📋 コピー"
)

// CopyStatus returns the copy label and class for a row.
func CopyStatus(p models.RowProgress) (string, string) {
	if p.Copied {
		return LabelCopied, "copy-status copied"
	}
	return LabelNotCopied, "copy-status"
}

// LineStatus returns the send label and class for a row.
func LineStatus(p models.RowProgress) (string, string) {
	if p.Sent {
		return LabelSent, "line-status sent"
	}
	return LabelNotSent, "line-status pending"
}

// ItemHTML renders one template item with its current progress.
func ItemHTML(batchID string, item models.TemplateItem, p models.RowProgress) string {
	copyLabel, copyClass := CopyStatus(p)
	lineLabel, lineClass := LineStatus(p)

	checked := ""
	if p.Sent {
		checked = " checked"
	}

	var sb strings.Builder
	sb.WriteString(`<div class="template-item" data-batch="`)
	sb.WriteString(EscapeAttribute(batchID))
	fmt.Fprintf(&sb, `" data-index="%d">`, item.Index)
	sb.WriteString(`<div class="template-header"><div class="student-info">`)
	fmt.Fprintf(&sb, `<div class="student-name">%d人目: %s</div>`, item.Index+1, EscapeHTML(item.DisplayName))
	sb.WriteString(`<div class="student-status">`)
	fmt.Fprintf(&sb, `<span class="%s" id="copyStatus_%d">%s</span>`, copyClass, item.Index, copyLabel)
	fmt.Fprintf(&sb, `<span class="%s" id="lineStatus_%d">%s</span>`, lineClass, item.Index, lineLabel)
	sb.WriteString(`</div></div><div class="action-buttons">`)
	fmt.Fprintf(&sb, `<button type="button" class="copy-btn" data-index="%d" data-template="%s">%s</button>`,
		item.Index, EscapeAttribute(item.Text), LabelCopyBtn)
	sb.WriteString(`<label class="line-checkbox-label">`)
	fmt.Fprintf(&sb, `<input type="checkbox" class="line-checkbox" data-index="%d" data-student="%s"%s>`,
		item.Index, EscapeAttribute(item.DisplayName), checked)
	sb.WriteString(`<span class="checkbox-text">📱 LINE送信完了</span></label>`)
	sb.WriteString(`</div></div>`)
	sb.WriteString(`<div class="template-content">`)
	sb.WriteString(EscapeHTML(item.DisplayName))
	sb.WriteString("\n")
	sb.WriteString(EscapeHTML(item.Text))
	sb.WriteString(`</div></div>`)
	return sb.String()
}
