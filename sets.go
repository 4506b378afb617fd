package main

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"time"

	"github.com/lhoarau/glyphdeck/internal/catalog"
	"github.com/lhoarau/glyphdeck/internal/panel/render"
)

// demoProvider supplies the bundled custom sets: two glyph-cycle sets and
// one image-backed set rendered from generated GIF data.
func demoProvider() catalog.Provider {
	return staticProvider{sets: []catalog.SetDescriptor{
		runeSet(1, "Spinners", 120*time.Millisecond,
			[]string{"◐", "◓", "◑", "◒"},
			[]string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
			[]string{"▁", "▃", "▅", "▇", "▅", "▃"},
		),
		runeSet(2, "Moons", 250*time.Millisecond,
			[]string{"🌑", "🌒", "🌓", "🌔", "🌕", "🌖", "🌗", "🌘"},
			[]string{"🌍", "🌎", "🌏"},
		),
		badgeSet(3),
	}}
}

type staticProvider struct {
	sets []catalog.SetDescriptor
}

func (p staticProvider) Sets() []catalog.SetDescriptor {
	return p.sets
}

func runeSet(id uint64, title string, every time.Duration, cycles ...[]string) catalog.SetDescriptor {
	desc := catalog.SetDescriptor{ID: id, Title: title}
	for i, glyphs := range cycles {
		glyphs := glyphs
		desc.Docs = append(desc.Docs, catalog.Document{
			ID: render.ContentID(id<<16 | uint64(i)),
			NewLoader: func() render.Loader {
				return &render.RuneLoader{Glyphs: glyphs, Every: every}
			},
		})
	}
	return desc
}

// badgeSet builds an image-backed set from small generated GIF animations,
// one pulsing color badge per item.
func badgeSet(id uint64) catalog.SetDescriptor {
	desc := catalog.SetDescriptor{ID: id, Title: "Badges"}
	badges := []color.RGBA{
		{R: 0xa7, G: 0x8b, B: 0xfa, A: 0xff},
		{R: 0x4a, G: 0xde, B: 0x80, A: 0xff},
		{R: 0xfb, G: 0x92, B: 0x3c, A: 0xff},
		{R: 0x38, G: 0xbd, B: 0xf8, A: 0xff},
	}
	for i, c := range badges {
		data := badgeGIF(c)
		desc.Docs = append(desc.Docs, catalog.Document{
			ID: render.ContentID(id<<16 | uint64(i)),
			NewLoader: func() render.Loader {
				return &render.ImageLoader{Data: data, Every: 400 * time.Millisecond, Hint: "●"}
			},
		})
	}
	return desc
}

// badgeGIF encodes a two-frame pulse between the full color and a dimmed
// version of it.
func badgeGIF(c color.RGBA) []byte {
	dim := color.RGBA{R: c.R / 2, G: c.G / 2, B: c.B / 2, A: 0xff}
	g := &gif.GIF{}
	for _, fill := range []color.RGBA{c, dim} {
		pal := color.Palette{color.RGBA{A: 0xff}, fill}
		img := image.NewPaletted(image.Rect(0, 0, 8, 8), pal)
		for y := 1; y < 7; y++ {
			for x := 1; x < 7; x++ {
				img.SetColorIndex(x, y, 1)
			}
		}
		g.Image = append(g.Image, img)
		g.Delay = append(g.Delay, 40)
	}
	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, g); err != nil {
		return nil
	}
	return buf.Bytes()
}
