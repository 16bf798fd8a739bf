// Package markup builds the HTML fragments the page inserts for each item.
//
// Text content and attribute values use separate escapers. EscapeHTML is for
// element bodies; EscapeAttribute is for values inside double-quoted attributes
// and keeps newlines intact as character references.
package markup

import "strings"

var htmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&#34;",
	"'", "&#39;",
)

var attributeReplacer = strings.NewReplacer(
	"&", "&amp;",
	`"`, "&quot;",
	"'", "&#39;",
	"\n", "&#10;",
)

// EscapeHTML escapes s for use as element text.
func EscapeHTML(s string) string {
	return htmlReplacer.Replace(s)
}

// EscapeAttribute escapes s for use inside a quoted attribute value.
func EscapeAttribute(s string) string {
	return attributeReplacer.Replace(s)
}
