// internal/defs/effects.go
package defs

// EffectSpec - длительность (сек) и сила эффекта.
// Для SLOW сила - доля замедления, для DOT - урон в секунду, для ARMOR_BREAK - доля снятой брони.
type EffectSpec struct {
	Duration float64 `json:"duration"`
	Value    float64 `json:"value"`
}

// DefaultEffects - параметры эффектов, которые несут снаряды.
var DefaultEffects = map[EffectType]EffectSpec{
	EffectSlow:       {Duration: 2, Value: 0.5},
	EffectDOT:        {Duration: 3, Value: 5},
	EffectArmorBreak: {Duration: 5, Value: 0.5},
}
