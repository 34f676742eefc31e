// pkg/utils/math.go
package utils

import "math"

// Vec2 - точка или вектор в мировых координатах (пиксели).
type Vec2 struct {
	X, Y float64
}

// Add returns a + b.
func (a Vec2) Add(b Vec2) Vec2 { return Vec2{X: a.X + b.X, Y: a.Y + b.Y} }

// Sub returns a - b.
func (a Vec2) Sub(b Vec2) Vec2 { return Vec2{X: a.X - b.X, Y: a.Y - b.Y} }

// Scale multiplies both components by k.
func (a Vec2) Scale(k float64) Vec2 { return Vec2{X: a.X * k, Y: a.Y * k} }

// Len returns the vector length.
func (a Vec2) Len() float64 { return math.Sqrt(a.X*a.X + a.Y*a.Y) }

// Abs returns the absolute value of x.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Distance - евклидово расстояние между точками.
func Distance(a, b Vec2) float64 {
	return math.Sqrt(DistanceSquared(a, b))
}

// DistanceSquared - квадрат расстояния, без корня (для сравнений с радиусом).
func DistanceSquared(a, b Vec2) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return dx*dx + dy*dy
}

// Normalize returns v scaled to unit length, or the zero vector for a zero input.
func Normalize(v Vec2) Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{X: v.X / l, Y: v.Y / l}
}

// Lerp выполняет стандартную линейную интерполяцию
func Lerp(from, to, t float64) float64 {
	return from + (to-from)*t
}

// LerpVec2 интерполирует обе координаты.
func LerpVec2(from, to Vec2, t float64) Vec2 {
	return Vec2{X: Lerp(from.X, to.X, t), Y: Lerp(from.Y, to.Y, t)}
}

// Clamp ограничивает value диапазоном [lo, hi].
func Clamp(value, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, value))
}

// VelocityToward возвращает вектор скорости длиной speed, направленный от from к to.
func VelocityToward(from, to Vec2, speed float64) Vec2 {
	return Normalize(to.Sub(from)).Scale(speed)
}
