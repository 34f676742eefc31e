// internal/ui/button.go
package ui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

// Button представляет собой кликабельную кнопку в UI.
type Button struct {
	Rect       image.Rectangle
	Text       string
	TextColor  color.Color
	BgColor    color.RGBA
	HoverColor color.RGBA
	Active     bool // подсвечивается рамкой, например выбранный вид башни
	Disabled   bool
}

// NewButton создает новую кнопку.
func NewButton(rect image.Rectangle, label string) *Button {
	return &Button{
		Rect:       rect,
		Text:       label,
		TextColor:  color.White,
		BgColor:    color.RGBA{60, 60, 70, 255},
		HoverColor: color.RGBA{90, 90, 105, 255},
	}
}

// Contains проверяет, попадает ли точка в кнопку.
func (b *Button) Contains(x, y int) bool {
	return image.Pt(x, y).In(b.Rect)
}

// Draw отрисовывает кнопку.
func (b *Button) Draw(screen *ebiten.Image, face font.Face) {
	bg := b.BgColor
	if mx, my := ebiten.CursorPosition(); b.Contains(mx, my) && !b.Disabled {
		bg = b.HoverColor
	}
	if b.Disabled {
		bg = color.RGBA{bg.R / 2, bg.G / 2, bg.B / 2, bg.A}
	}
	x, y := float32(b.Rect.Min.X), float32(b.Rect.Min.Y)
	w, h := float32(b.Rect.Dx()), float32(b.Rect.Dy())
	vector.DrawFilledRect(screen, x, y, w, h, bg, false)

	border := color.RGBA{30, 30, 30, 255}
	if b.Active {
		border = color.RGBA{255, 215, 0, 255}
	}
	vector.StrokeRect(screen, x, y, w, h, 2, border, false)

	bounds := text.BoundString(face, b.Text)
	tx := b.Rect.Min.X + (b.Rect.Dx()-bounds.Dx())/2
	ty := b.Rect.Min.Y + (b.Rect.Dy()+bounds.Dy())/2 - 1
	text.Draw(screen, b.Text, face, tx, ty, b.TextColor)
}
