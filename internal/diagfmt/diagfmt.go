// Package diagfmt renders script diagnostics for terminals.
package diagfmt

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"shython/internal/script"
)

// ParseError formats a syntax error with the offending source line and
// a caret under the error column. Column math is display-width aware so
// the caret lines up even when the line contains wide runes.
func ParseError(e *script.ParseError) string {
	var sb strings.Builder
	sb.WriteString(e.Error())
	sb.WriteByte('\n')
	if e.Src == "" {
		return sb.String()
	}

	line := strings.ReplaceAll(e.Src, "\t", " ")
	fmt.Fprintf(&sb, "    %s\n", line)

	rs := []rune(line)
	col := e.Col
	if col < 1 {
		col = 1
	}
	if col > len(rs)+1 {
		col = len(rs) + 1
	}
	pad := runewidth.StringWidth(string(rs[:col-1]))
	fmt.Fprintf(&sb, "    %s^\n", strings.Repeat(" ", pad))
	return sb.String()
}
