// internal/ui/speed_button.go
package ui

import (
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// SpeedButton - кнопка "перемотки": цвет показывает множитель скорости.
type SpeedButton struct {
	X, Y          float32
	Size          float32
	LastClickTime time.Time
	StateColors   []color.Color // индекс = множитель - 1
}

func NewSpeedButton(x, y, size float32, stateColors []color.Color) *SpeedButton {
	return &SpeedButton{
		X:           x,
		Y:           y,
		Size:        size,
		StateColors: stateColors,
	}
}

func (b *SpeedButton) Draw(screen *ebiten.Image, speed int) {
	elapsed := time.Since(b.LastClickTime).Seconds()
	scale := 1.0 + 0.3*math.Exp(-elapsed*8)
	triangleSize := b.Size * float32(scale)

	idx := speed - 1
	if idx < 0 || idx >= len(b.StateColors) {
		idx = 0
	}
	c := b.StateColors[idx]

	// Параметры треугольников
	height := triangleSize * 1.2
	width := triangleSize
	offset := width * 0.8

	for _, shift := range []float32{0, offset} {
		var path vector.Path
		path.MoveTo(b.X-width+shift, b.Y-height/2)
		path.LineTo(b.X+shift, b.Y)
		path.LineTo(b.X-width+shift, b.Y+height/2)
		path.Close()
		fillPath(screen, &path, c)
	}
}

func (b *SpeedButton) IsClicked(x, y int) bool {
	// Используем круг для определения попадания, так как форма сложная
	dx, dy := float32(x)-b.X, float32(y)-b.Y
	r := b.Size * 1.5
	return dx*dx+dy*dy <= r*r
}

func (b *SpeedButton) Click() {
	b.LastClickTime = time.Now()
}
