package service

import (
	"strings"

	"tokkun-notice/internal/models"
)

// RenderTemplate builds the notification body for one student. It reads only the
// registration start, lesson end, subject and teacher fields.
func RenderTemplate(r models.StudentRecord) string {
	var sb strings.Builder
	sb.WriteString("明日の特訓の詳細です。\n")
	sb.WriteString(r.RegStart)
	sb.WriteString("‐")
	sb.WriteString(r.TeachEnd)
	sb.WriteString("\n教科：")
	sb.WriteString(r.Subject)
	sb.WriteString("\n担当：")
	sb.WriteString(r.Teacher)
	sb.WriteString("\nお待ちしております。\nこの通知に返信不要です。")
	return sb.String()
}

// DisplayName is the name shown in item headers.
func DisplayName(r models.StudentRecord) string {
	if r.Name == "" {
		return models.UnnamedStudent
	}
	return r.Name
}
