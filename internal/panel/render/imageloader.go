package render

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	_ "image/png" // still-image fallback for custom sets
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/nfnt/resize"

	"github.com/lhoarau/glyphdeck/internal/panel/gridlayout"
)

// ImageLoader decodes raster animation data (animated GIF or a single
// still) into half-block cell art. Two image pixels stack per terminal
// row, painted as an upper-half block with distinct foreground and
// background colors.
type ImageLoader struct {
	Data  []byte
	Every time.Duration
	Hint  string // placeholder glyph while undecoded
}

// Interval implements Loader.
func (l *ImageLoader) Interval() time.Duration {
	return l.Every
}

// Preview implements Loader.
func (l *ImageLoader) Preview() string {
	return l.Hint
}

// Load implements Loader.
func (l *ImageLoader) Load(cell gridlayout.Size) ([]Frame, error) {
	if g, err := gif.DecodeAll(bytes.NewReader(l.Data)); err == nil {
		frames := make([]Frame, 0, len(g.Image))
		for _, img := range g.Image {
			frames = append(frames, renderHalfBlocks(img, cell))
		}
		return frames, nil
	}
	img, _, err := image.Decode(bytes.NewReader(l.Data))
	if err != nil {
		return nil, fmt.Errorf("decode custom glyph image: %w", err)
	}
	return []Frame{renderHalfBlocks(img, cell)}, nil
}

// renderHalfBlocks scales img to cell.Width columns by cell.Height*2 pixel
// rows and renders each column pair as a "▀" with the upper pixel as
// foreground and the lower as background.
func renderHalfBlocks(img image.Image, cell gridlayout.Size) Frame {
	scaled := resize.Resize(uint(cell.Width), uint(cell.Height*2), img, resize.Bilinear)
	bounds := scaled.Bounds()

	lines := make([]string, 0, cell.Height)
	var row bytes.Buffer
	for y := 0; y < cell.Height; y++ {
		row.Reset()
		for x := 0; x < cell.Width; x++ {
			upper := hexAt(scaled, bounds.Min.X+x, bounds.Min.Y+y*2)
			lower := hexAt(scaled, bounds.Min.X+x, bounds.Min.Y+y*2+1)
			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(upper)).
				Background(lipgloss.Color(lower))
			row.WriteString(style.Render("▀"))
		}
		lines = append(lines, row.String())
	}
	return Frame{Lines: lines}
}

func hexAt(img image.Image, x, y int) string {
	c, ok := colorful.MakeColor(img.At(x, y))
	if !ok {
		// Fully transparent pixel.
		return "#000000"
	}
	return c.Hex()
}
