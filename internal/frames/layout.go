package frames

import (
	"image/color"
	"strings"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
)

// Layout boxes in canvas pixels for the 1440x2560 QHD portrait design:
// big day number top-left, month and date details top-right, main text in
// the center, footer along the bottom.
var (
	boxDayBig   = box{120, 120, 500, 500}
	boxMonthCN  = box{800, 120, 520, 80}
	boxMonthEN  = box{800, 200, 520, 80}
	boxWeekday  = box{800, 280, 520, 70}
	boxLunar    = box{800, 350, 520, 70}
	boxMainText = box{120, 600, 1200, 1400}
	boxFooter   = box{120, 2300, 1200, 200}
)

// Fixed face sizes for the header cells; the main text auto-fits instead.
const (
	sizeDayBig  = 400
	sizeMonthCN = 56
	sizeMonthEN = 48
	sizeDetail  = 40
)

var (
	colorText   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	colorHeader = color.RGBA{R: 220, G: 220, B: 255, A: 255}
)

type box struct {
	x, y, w, h int
}

type alignment int

const (
	alignLeft alignment = iota
	alignCenter
	alignRight
)

// drawLines paints lines into b from the top, stepping by the face's line
// height plus spacing. Lines that would overflow the box bottom are dropped;
// blank lines are skipped without advancing.
func drawLines(dc *gg.Context, face font.Face, b box, lines []string, fill color.Color, align alignment, spacing int) {
	m := face.Metrics()
	ascent := m.Ascent.Ceil()
	lineH := ascent + m.Descent.Ceil() + spacing

	dc.SetFontFace(face)
	dc.SetColor(fill)

	yy := b.y
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if yy+lineH > b.y+b.h {
			break
		}
		xx := b.x
		switch align {
		case alignRight:
			if x := b.x + b.w - textWidth(face, line); x > xx {
				xx = x
			}
		case alignCenter:
			if pad := (b.w - textWidth(face, line)) / 2; pad > 0 {
				xx = b.x + pad
			}
		}
		dc.DrawString(line, float64(xx), float64(yy+ascent))
		yy += lineH
	}
}
