package overlay

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// basicfont.Face7x13 glyph metrics.
const (
	glyphWidth  = 7
	glyphHeight = 13
	badgePad    = 6
)

// RenderBadge draws the overlay's held value onto a small banner image:
// white text with a black outline on a translucent dark background. With no
// held value the badge reads "(no reports)".
func (o *Overlay) RenderBadge() *image.RGBA {
	text, ok := o.Value()
	if !ok {
		text = "(no reports)"
	}

	w := len(text)*glyphWidth + 2*badgePad
	h := glyphHeight + 2*badgePad
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	bg := color.RGBA{R: 20, G: 20, B: 20, A: 220}
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	textColor := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	outlineColor := color.RGBA{R: 0, G: 0, B: 0, A: 200}
	// Dot is the text baseline, not the glyph top.
	drawTextWithOutline(img, text, badgePad, badgePad+glyphHeight-2, textColor, outlineColor)
	return img
}

// drawTextWithOutline draws text at (x, y) with a 1px outline in all eight
// directions for visibility on any background.
func drawTextWithOutline(img *image.RGBA, text string, x, y int, textColor, outlineColor color.Color) {
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			d := &font.Drawer{
				Dst:  img,
				Src:  image.NewUniform(outlineColor),
				Face: basicfont.Face7x13,
				Dot: fixed.Point26_6{
					X: fixed.Int26_6((x + dx) * 64),
					Y: fixed.Int26_6((y + dy) * 64),
				},
			}
			d.DrawString(text)
		}
	}

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(textColor),
		Face: basicfont.Face7x13,
		Dot: fixed.Point26_6{
			X: fixed.Int26_6(x * 64),
			Y: fixed.Int26_6(y * 64),
		},
	}
	d.DrawString(text)
}
