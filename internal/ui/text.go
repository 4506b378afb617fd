package ui

import (
	"strings"

	"github.com/rivo/uniseg"
)

// TruncateWidth cuts s to at most width display cells, breaking only on
// grapheme cluster boundaries so multi-rune glyph sequences are never split
// mid-cluster.
func TruncateWidth(s string, width int) string {
	if uniseg.StringWidth(s) <= width {
		return s
	}
	var b strings.Builder
	used := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		w := g.Width()
		if used+w > width {
			break
		}
		b.WriteString(g.Str())
		used += w
	}
	return b.String()
}
