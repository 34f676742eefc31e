// internal/system/status_effect.go
package system

import (
	"grid-tower-defense/internal/component"
	"grid-tower-defense/internal/defs"
	"grid-tower-defense/internal/entity"
	"grid-tower-defense/internal/event"
)

// StatusEffectSystem управляет жизненным циклом эффектов: отсчёт длительности и урон от DOT.
// Замедление и пробитие брони читаются движением и боем через EffectiveSpeed / EffectiveArmor.
type StatusEffectSystem struct {
	eventDispatcher *event.Dispatcher
}

func NewStatusEffectSystem(eventDispatcher *event.Dispatcher) *StatusEffectSystem {
	return &StatusEffectSystem{eventDispatcher: eventDispatcher}
}

// Update обрабатывает все активные эффекты.
// Эффект, истёкший на этом тике, ещё действует в нём и удаляется после обработки.
func (s *StatusEffectSystem) Update(st *entity.State, deltaTime float64) {
	for _, mob := range st.Mobs.Values() {
		if len(mob.Effects) == 0 {
			continue
		}
		kept := mob.Effects[:0]
		for _, effect := range mob.Effects {
			effect.Remaining -= deltaTime
			switch effect.Type {
			case defs.EffectDOT:
				mob.HP -= effect.Value * deltaTime
			case defs.EffectSlow, defs.EffectArmorBreak:
				// читаются другими системами
			}
			if effect.Remaining > 0 {
				kept = append(kept, effect)
			}
		}
		mob.Effects = kept
	}
}

// Apply накладывает эффект на моба по правилам стакания и ставит событие в очередь.
func (s *StatusEffectSystem) Apply(mob *component.Mob, effect component.Effect) {
	ApplyEffect(mob, effect)
	s.eventDispatcher.Queue(event.EffectApplied, event.EffectAppliedData{MobID: mob.ID, Effect: effect})
}

// ApplyEffect добавляет эффект к мобу:
//   - эффект того же типа от того же источника (StackID) обновляется;
//   - иначе первый эффект того же типа заменяется, только если новый строго сильнее;
//   - иначе новый эффект добавляется рядом.
func ApplyEffect(mob *component.Mob, effect component.Effect) {
	if effect.StackID != "" {
		for i, existing := range mob.Effects {
			if existing.Type == effect.Type && existing.StackID == effect.StackID {
				mob.Effects[i] = effect
				return
			}
		}
	}
	for i, existing := range mob.Effects {
		if existing.Type == effect.Type && effect.Value > existing.Value {
			mob.Effects[i] = effect
			return
		}
	}
	mob.Effects = append(mob.Effects, effect)
}

// NewEffect строит свежий эффект из таблицы параметров.
func NewEffect(t defs.EffectType, spec defs.EffectSpec, stackID string) component.Effect {
	return component.Effect{
		Type:      t,
		Duration:  spec.Duration,
		Remaining: spec.Duration,
		Value:     spec.Value,
		StackID:   stackID,
	}
}
