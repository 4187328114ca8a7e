package export

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/san-kum/scisim/internal/surface"
)

// Braille dot-to-bit mapping, row by row.
var pixelMap = [4][2]int{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

func eachDot(b *surface.Braille, fn func(x, y int)) {
	for row := 0; row < b.Rows; row++ {
		for col := 0; col < b.Cols; col++ {
			r := b.Grid[row][col]
			if r < 0x2800 {
				continue
			}
			pattern := int(r - 0x2800)
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] != 0 {
						fn(col*2+dx, row*4+dy)
					}
				}
			}
		}
	}
}

// BrailleToSVG draws every set dot of a terminal frame as a circle.
func BrailleToSVG(b *surface.Braille, scale float64, fg, bg color.Color) string {
	if b == nil {
		return ""
	}
	width := float64(b.Cols) * scale * 2
	height := float64(b.Rows) * scale * 4
	fgCSS, _ := surface.CSS(fg)
	bgCSS, _ := surface.CSS(bg)

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
<g fill="%s">
`, width, height, width, height, bgCSS, fgCSS)

	dotRadius := scale * 0.4
	eachDot(b, func(x, y int) {
		cx := float64(x)*scale + scale/2
		cy := float64(y)*scale + scale/2
		fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", cx, cy, dotRadius)
	})

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// BrailleToImage paints a terminal frame as a two-colour bitmap, charW×charH
// pixels per cell.
func BrailleToImage(b *surface.Braille, charW, charH int, fg, bg color.Color) *image.Paletted {
	imgW, imgH := b.Cols*charW, b.Rows*charH
	img := image.NewPaletted(image.Rect(0, 0, imgW, imgH), color.Palette{bg, fg})
	dotW, dotH := charW/2, charH/4
	eachDot(b, func(x, y int) {
		for py := 0; py < dotH; py++ {
			for px := 0; px < dotW; px++ {
				img.SetColorIndex(x*dotW+px, y*dotH+py, 1)
			}
		}
	})
	return img
}
