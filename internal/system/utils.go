// internal/system/utils.go
package system

import (
	"math"

	"grid-tower-defense/internal/component"
	"grid-tower-defense/internal/defs"
)

// CalculateDamage вычитает броню из урона. Любое попадание наносит не меньше minDamage.
func CalculateDamage(baseDamage, armor, minDamage float64) float64 {
	return math.Max(minDamage, baseDamage-armor)
}

// ApplyDamage наносит урон мобу с учётом брони и её пробития.
// Возвращает фактически снятые HP; по уже мёртвому мобу урон не проходит.
func ApplyDamage(mob *component.Mob, baseDamage, minDamage float64) float64 {
	if !mob.Alive() {
		return 0
	}
	damage := CalculateDamage(baseDamage, EffectiveArmor(mob), minDamage)
	mob.HP -= damage
	return damage
}

// EffectiveArmor - броня с учётом самого сильного пробития, не ниже нуля.
func EffectiveArmor(mob *component.Mob) float64 {
	armorBreak := component.StrongestValue(mob.Effects, defs.EffectArmorBreak)
	return math.Max(0, mob.Armor*(1-armorBreak))
}

// EffectiveSpeed - скорость с учётом самого сильного замедления.
// Замедление никогда не опускает скорость ниже floor от базовой.
func EffectiveSpeed(mob *component.Mob, floor float64) float64 {
	slow := component.StrongestValue(mob.Effects, defs.EffectSlow)
	return mob.Speed * math.Max(1-slow, floor)
}
