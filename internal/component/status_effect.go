// internal/component/status_effect.go
package component

import "grid-tower-defense/internal/defs"

// Effect - активный статус-эффект на мобе.
type Effect struct {
	Type      defs.EffectType
	Duration  float64 // Полная длительность, сек
	Remaining float64 // Сколько осталось, сек
	Value     float64 // Сила: доля замедления, урон в секунду или доля снятой брони
	StackID   string  // Источник (обычно ID башни); пусто - без источника
}

// StrongestValue returns the largest Value among effects of type t, or 0 when none are active.
func StrongestValue(effects []Effect, t defs.EffectType) float64 {
	best := 0.0
	for _, e := range effects {
		if e.Type == t && e.Value > best {
			best = e.Value
		}
	}
	return best
}
