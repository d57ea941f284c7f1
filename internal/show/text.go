// Package show renders solver results for the terminal.
package show

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultWidth is the line width used when none is configured.
const DefaultWidth = 72

const (
	bold   = "\033[1;93m"
	italic = "\033[3m"
	reset  = "\033[0m"
)

// Casers are stateful, so each call gets its own.
func upper(s string) string { return cases.Upper(language.Und).String(s) }

func title(s string) string { return cases.Title(language.English).String(s) }

// Highlight wraps s in bold yellow ANSI codes.
func Highlight(s string) string {
	return bold + s + reset
}

func ital(s string) string {
	return italic + s + reset
}

// Wrap fills text to width, prefixing the first line with indent and the
// following lines with subsequent. Words longer than a line are not split.
func Wrap(text string, width int, indent, subsequent string) string {
	if width <= 0 {
		width = DefaultWidth
	}
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}

	var b strings.Builder
	line := indent
	empty := true
	for _, f := range fields {
		if !empty && len(line)+1+len(f) > width {
			b.WriteString(line)
			b.WriteByte('\n')
			line = subsequent
			empty = true
		}
		if !empty {
			line += " "
		}
		line += f
		empty = false
	}
	b.WriteString(line)
	return b.String()
}
