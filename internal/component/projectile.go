// internal/component/projectile.go
package component

import (
	"grid-tower-defense/internal/defs"
	"grid-tower-defense/pkg/utils"
)

// Projectile представляет летящий снаряд.
type Projectile struct {
	ID            string
	OwnerID       string // башня-владелец
	TargetID      string
	TargetLastPos utils.Vec2 // последняя известная позиция цели, для взрыва после её смерти
	Position      utils.Vec2
	PrevPosition  utils.Vec2
	Velocity      utils.Vec2
	Damage        float64
	SplashRadius  float64 // в клетках, 0 - прямое попадание
	Effects       []defs.EffectType
}

// Clone returns a deep copy.
func (p *Projectile) Clone() *Projectile {
	cp := *p
	cp.Effects = append([]defs.EffectType(nil), p.Effects...)
	return &cp
}
