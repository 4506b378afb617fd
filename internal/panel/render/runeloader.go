package render

import (
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/lhoarau/glyphdeck/internal/panel/gridlayout"
)

// RuneLoader animates a cycle of glyph strings, one per frame. This covers
// spinner-style custom sets where each frame is a plain grapheme cluster.
type RuneLoader struct {
	Glyphs []string
	Every  time.Duration
}

// Interval implements Loader.
func (l *RuneLoader) Interval() time.Duration {
	return l.Every
}

// Preview implements Loader; the first glyph stands in for the animation.
func (l *RuneLoader) Preview() string {
	if len(l.Glyphs) == 0 {
		return ""
	}
	return l.Glyphs[0]
}

// Load implements Loader. Each glyph is centered in the cell on the first
// row; any extra cell rows are blank.
func (l *RuneLoader) Load(cell gridlayout.Size) ([]Frame, error) {
	frames := make([]Frame, 0, len(l.Glyphs))
	for _, glyph := range l.Glyphs {
		lines := make([]string, cell.Height)
		lines[0] = CenterGlyph(glyph, cell.Width)
		for i := 1; i < cell.Height; i++ {
			lines[i] = strings.Repeat(" ", cell.Width)
		}
		frames = append(frames, Frame{Lines: lines})
	}
	return frames, nil
}

// CenterGlyph pads glyph with spaces to the given display width, splitting
// the padding around it. Glyphs wider than the cell are returned as is.
func CenterGlyph(glyph string, width int) string {
	w := runewidth.StringWidth(glyph)
	if w >= width {
		return glyph
	}
	left := (width - w) / 2
	right := width - w - left
	return strings.Repeat(" ", left) + glyph + strings.Repeat(" ", right)
}
