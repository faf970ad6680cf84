package presenter

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/draw"
)

// Thumbnail renders a PNG as half-block characters that fit within
// maxCols x maxRows terminal cells, keeping the aspect ratio. Each cell
// carries two vertically stacked pixels.
func Thumbnail(data []byte, maxCols, maxRows int) (string, error) {
	if maxCols <= 0 || maxRows <= 0 {
		return "", nil
	}

	src, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to decode preview image: %w", err)
	}

	cols, pixRows := fitSize(src.Bounds().Dx(), src.Bounds().Dy(), maxCols, maxRows*2)
	if cols == 0 || pixRows == 0 {
		return "", nil
	}
	if pixRows%2 == 1 {
		pixRows++
	}

	dst := image.NewRGBA(image.Rect(0, 0, cols, pixRows))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	var b strings.Builder
	for y := 0; y < pixRows; y += 2 {
		for x := 0; x < cols; x++ {
			top := hexColor(dst, x, y)
			bottom := hexColor(dst, x, y+1)
			b.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(top)).
				Background(lipgloss.Color(bottom)).
				Render("▀"))
		}
		if y+2 < pixRows {
			b.WriteByte('\n')
		}
	}
	return b.String(), nil
}

// fitSize scales w x h down to fit in maxW x maxH preserving aspect ratio
func fitSize(w, h, maxW, maxH int) (int, int) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	if w*maxH > h*maxW {
		return maxW, max(1, h*maxW/w)
	}
	return max(1, w*maxH/h), maxH
}

func hexColor(img *image.RGBA, x, y int) string {
	c := img.RGBAAt(x, y)
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
