package mock

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"github.com/studiowebux/lifeweeks/internal/types"
)

const (
	// placeholderScale shrinks the requested screen size so previews stay small
	placeholderScale = 8
	// maxPlaceholderSide caps each side whatever size the request asks for
	maxPlaceholderSide = 1024
)

type palette struct {
	background color.RGBA
	past       color.RGBA
	current    color.RGBA
	future     color.RGBA
}

var palettes = map[types.Theme]palette{
	types.ThemeMinimal: {
		background: color.RGBA{250, 245, 235, 255},
		past:       color.RGBA{30, 30, 30, 255},
		current:    color.RGBA{220, 60, 60, 255},
		future:     color.RGBA{200, 195, 185, 255},
	},
	types.ThemeTerminal: {
		background: color.RGBA{15, 15, 15, 255},
		past:       color.RGBA{0, 180, 80, 255},
		current:    color.RGBA{0, 255, 120, 255},
		future:     color.RGBA{40, 60, 45, 255},
	},
	types.ThemeDark: {
		background: color.RGBA{28, 28, 32, 255},
		past:       color.RGBA{140, 140, 160, 255},
		current:    color.RGBA{255, 120, 100, 255},
		future:     color.RGBA{55, 55, 65, 255},
	},
	types.ThemeSunset: {
		background: color.RGBA{25, 25, 35, 255},
		past:       color.RGBA{255, 140, 90, 255},
		current:    color.RGBA{255, 220, 100, 255},
		future:     color.RGBA{60, 60, 90, 255},
	},
}

// renderPlaceholder draws a scaled-down week grid and returns it as base64 PNG.
// Week elapsed is highlighted as the current one.
func renderPlaceholder(theme types.Theme, width, height, columns, rows, elapsed int) (string, error) {
	pal, ok := palettes[theme]
	if !ok {
		pal = palettes[types.ThemeDark]
	}

	w := min(max(width/placeholderScale, 1), maxPlaceholderSide)
	h := min(max(height/placeholderScale, 1), maxPlaceholderSide)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: pal.background}, image.Point{}, draw.Src)

	if columns > 0 && rows > 0 {
		cell := min(w/(columns+2), h/(rows+2))
		if cell >= 1 {
			offX := (w - cell*columns) / 2
			offY := (h - cell*rows) / 2
			for i := 0; i < columns*rows; i++ {
				c := pal.future
				switch {
				case i < elapsed:
					c = pal.past
				case i == elapsed:
					c = pal.current
				}
				x := offX + (i%columns)*cell
				y := offY + (i/columns)*cell
				r := image.Rect(x, y, x+max(cell-1, 1), y+max(cell-1, 1))
				draw.Draw(img, r, &image.Uniform{C: c}, image.Point{}, draw.Src)
			}
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
