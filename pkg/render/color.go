// pkg/render/color.go
package render

import "image/color"

// MapColors holds all the color definitions needed to render the static map background.
type MapColors struct {
	BackgroundColor color.RGBA
	BuildableColor  color.RGBA
	BlockedColor    color.RGBA
	PathColor       color.RGBA
	SpawnColor      color.RGBA
	BaseColor       color.RGBA
	GridLineColor   color.RGBA
	StrokeWidth     float32
}

// EntityColors - цвета динамических объектов поверх карты.
type EntityColors struct {
	Towers           map[string]color.RGBA
	Mobs             map[string]color.RGBA
	Projectile       color.RGBA
	Selection        color.RGBA
	Range            color.RGBA
	ValidPlacement   color.RGBA
	InvalidPlacement color.RGBA
	HealthBarBG      color.RGBA
	Slowed           color.RGBA
}

// DarkenColor reduces the brightness of a color.
func DarkenColor(c color.RGBA) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * 0.5),
		G: uint8(float64(c.G) * 0.5),
		B: uint8(float64(c.B) * 0.5),
		A: c.A,
	}
}

// HealthColor плавно переходит от зелёного к красному по доле здоровья.
func HealthColor(fraction float64) color.RGBA {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	return color.RGBA{
		R: uint8(255 * (1 - fraction)),
		G: uint8(255 * fraction),
		A: 255,
	}
}
