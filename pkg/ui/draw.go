package ui

import (
	"image/color"

	"github.com/hajimehoshi/bitmapfont/v4"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

var (
	face  = text.NewGoXFace(bitmapfont.Face)
	white *ebiten.Image
)

// pixel is a 1x1 white image that rectangles are stretched from
func pixel() *ebiten.Image {
	if white == nil {
		white = ebiten.NewImage(1, 1)
		white.Fill(color.White)
	}
	return white
}

// fillRect draws a solid rectangle
func fillRect(screen *ebiten.Image, x, y, width, height float64, clr color.Color) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(width, height)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	screen.DrawImage(pixel(), op)
}

// strokeRect draws a rectangle outline of the given thickness inside the bounds
func strokeRect(screen *ebiten.Image, x, y, width, height, thickness float64, clr color.Color) {
	fillRect(screen, x, y, width, thickness, clr)
	fillRect(screen, x, y+height-thickness, width, thickness, clr)
	fillRect(screen, x, y, thickness, height, clr)
	fillRect(screen, x+width-thickness, y, thickness, height, clr)
}

// drawButton draws a button with background and text
func drawButton(screen *ebiten.Image, label string, x, y, width, height float64, bgColor, textColor color.Color) {
	fillRect(screen, x, y, width, height, bgColor)
	strokeRect(screen, x, y, width, height, 2, color.RGBA{80, 80, 100, 255})

	// Bitmap font is 16px tall, so its centre sits 8px below the origin.
	textWidth := text.Advance(label, face)
	textOp := &text.DrawOptions{}
	textOp.GeoM.Translate(x+width/2-textWidth/2, y+height/2-8)
	textOp.ColorScale.ScaleWithColor(textColor)
	text.Draw(screen, label, face, textOp)
}

// drawText draws text centred on (centerX, centerY) at size pixels tall
func drawText(screen *ebiten.Image, str string, centerX, centerY float64, size float64, clr color.Color) {
	scale := size / 16.0
	scaledWidth := text.Advance(str, face) * scale

	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(centerX-scaledWidth/2, centerY-8*scale)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, str, face, op)
}

// drawTitle draws a large title centred at (centerX, y)
func drawTitle(screen *ebiten.Image, title string, centerX, y, scale float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(centerX-text.Advance(title, face)*scale/2, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, title, face, op)
}
