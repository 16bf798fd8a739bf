package service

import (
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// sheetTimeText renders a date/time cell: "15:04" for a bare time, "2006/01/02"
// for a bare date and "2006/01/02 15:04" otherwise. Every decoder goes through
// it so a roster reads the same whichever one is configured.
func sheetTimeText(t time.Time) string {
	t = t.Round(time.Second)
	// Time-only cells carry the spreadsheet epoch as their date.
	if t.Year() <= 1900 {
		return t.Format("15:04")
	}
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
		return t.Format("2006/01/02")
	}
	return t.Format("2006/01/02 15:04")
}

// serialText renders an Excel serial date number.
func serialText(value string) (string, bool) {
	serial, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return "", false
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return "", false
	}
	return sheetTimeText(t), true
}

// isDateNumFmt reports whether a built-in number format shows a date or time.
func isDateNumFmt(id int) bool {
	switch {
	case id >= 14 && id <= 22,
		id >= 27 && id <= 36,
		id >= 45 && id <= 47,
		id >= 50 && id <= 58:
		return true
	}
	return false
}

// isDateFormatCode reports whether a custom number format shows a date or
// time. Quoted literals, escaped characters and bracketed sections such as
// [Red] or [$-411] are ignored.
func isDateFormatCode(code string) bool {
	var b strings.Builder
	quoted, bracketed := false, false
	for i := 0; i < len(code); i++ {
		c := code[i]
		switch {
		case quoted:
			quoted = c != '"'
		case bracketed:
			bracketed = c != ']'
		case c == '"':
			quoted = true
		case c == '[':
			bracketed = true
		case c == '\\':
			i++
		default:
			b.WriteByte(c)
		}
	}
	return strings.ContainsAny(strings.ToLower(b.String()), "ymdhs")
}
