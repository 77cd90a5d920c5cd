package cli

import (
	"html"
	"strings"
)

// Terminal emphasis codes for highlighted spans.
const (
	boldOn  = "\x1b[1m"
	boldOff = "\x1b[0m"
)

// renderSnippet translates an engine highlight fragment into terminal
// form: HTML entities are decoded first, then the <mark> emphasis tags
// become bold on/off codes. Everything else passes through verbatim.
func renderSnippet(snippet string) string {
	decoded := html.UnescapeString(snippet)
	decoded = strings.ReplaceAll(decoded, "<mark>", boldOn)
	return strings.ReplaceAll(decoded, "</mark>", boldOff)
}
