package monitor

import (
	"fmt"
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"f1midi/lib/surface"
)

const (
	padSize = 64
	gap     = 8
	barW    = 24
	barH    = surface.Rows*padSize + (surface.Rows-1)*gap

	gridW = surface.Cols*padSize + (surface.Cols-1)*gap

	ImageWidth  = gap + gridW + 2*gap + surface.Analogs*(barW+gap)
	ImageHeight = gap + barH + 2*gap + 13
)

var (
	colorBG       = color.RGBA{24, 24, 28, 255}
	colorPad      = color.RGBA{60, 60, 70, 255}
	colorPressed  = color.RGBA{230, 120, 40, 255}
	colorBar      = color.RGBA{60, 160, 220, 255}
	colorBarTrack = color.RGBA{45, 45, 52, 255}
	colorUnknown  = color.RGBA{90, 50, 50, 255}
	colorText     = color.White
)

func fill(img *image.RGBA, r image.Rectangle, c color.Color) {
	xdraw.Draw(img, r, &image.Uniform{c}, image.Point{}, xdraw.Src)
}

func drawCentered(img *image.RGBA, r image.Rectangle, c color.Color, s string) {
	face := basicfont.Face7x13
	metrics := face.Metrics()
	width := font.MeasureString(face, s).Ceil()
	x := r.Min.X + (r.Dx()-width)/2
	y := r.Min.Y + (r.Dy()-metrics.Height.Ceil())/2 + metrics.Ascent.Ceil()

	d := &font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{c},
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// Render draws the matrix with note numbers and one bar per knob and fader.
func Render(snap Snapshot) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, ImageWidth, ImageHeight))
	fill(img, img.Bounds(), colorBG)

	for _, cell := range snap.Cells {
		x := gap + (cell.Col-1)*(padSize+gap)
		y := gap + (cell.Row-1)*(padSize+gap)
		r := image.Rect(x, y, x+padSize, y+padSize)
		c := colorPad
		if cell.Pressed {
			c = colorPressed
		}
		fill(img, r, c)
		drawCentered(img, r, colorText, fmt.Sprintf("%d", cell.Note))
	}

	x0 := gap + gridW + 2*gap
	for i, a := range snap.Analog {
		x := x0 + i*(barW+gap)
		track := image.Rect(x, gap, x+barW, gap+barH)
		if !a.Known {
			fill(img, track, colorUnknown)
		} else {
			fill(img, track, colorBarTrack)
			h := int(a.Value) * barH / surface.MaxValue
			fill(img, image.Rect(x, gap+barH-h, x+barW, gap+barH), colorBar)
		}
		label := image.Rect(x, gap+barH+gap, x+barW, ImageHeight-gap/2)
		drawCentered(img, label, colorText, fmt.Sprintf("%d", a.CC))
	}

	return img
}
