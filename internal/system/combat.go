// internal/system/combat.go
package system

import (
	"grid-tower-defense/internal/component"
	"grid-tower-defense/internal/config"
	"grid-tower-defense/internal/defs"
	"grid-tower-defense/internal/entity"
	"grid-tower-defense/internal/event"
	"grid-tower-defense/internal/utils"
	geom "grid-tower-defense/pkg/utils"
)

// timeEpsilon гасит ошибку округления при сравнении времени симуляции.
const timeEpsilon = 1e-9

// CombatSystem управляет атакой башен
type CombatSystem struct {
	tuning          config.Tuning
	library         *defs.Library
	ids             *utils.IDGenerator
	eventDispatcher *event.Dispatcher
	effects         *StatusEffectSystem
}

func NewCombatSystem(tuning config.Tuning, library *defs.Library, ids *utils.IDGenerator,
	eventDispatcher *event.Dispatcher, effects *StatusEffectSystem) *CombatSystem {
	return &CombatSystem{
		tuning:          tuning,
		library:         library,
		ids:             ids,
		eventDispatcher: eventDispatcher,
		effects:         effects,
	}
}

// Update стреляет всеми башнями, у которых есть цель и истекла перезарядка.
func (s *CombatSystem) Update(st *entity.State) {
	for _, tower := range st.Towers.Values() {
		if tower.TargetID == "" {
			continue
		}
		target, ok := st.Mobs.Get(tower.TargetID)
		if !ok || !target.Alive() {
			continue
		}
		if st.SimulationTime-tower.LastAttackTime+timeEpsilon < tower.Cooldown() {
			continue
		}

		if tower.Kind.Instant() {
			s.instantAttack(tower, target)
		} else {
			s.fireProjectile(st, tower, target)
		}
		tower.LastAttackTime = st.SimulationTime
	}
}

// instantAttack - удар без снаряда: урон и замедление сразу.
func (s *CombatSystem) instantAttack(tower *component.Tower, target *component.Mob) {
	ApplyDamage(target, tower.Damage, s.tuning.MinDamage)

	slow := s.library.Effect(defs.EffectSlow)
	if tower.Slow != nil {
		slow = *tower.Slow
	}
	s.effects.Apply(target, NewEffect(defs.EffectSlow, slow, tower.ID))
	for _, t := range tower.Effects {
		if t == defs.EffectSlow {
			continue
		}
		s.effects.Apply(target, NewEffect(t, s.library.Effect(t), tower.ID))
	}
}

func (s *CombatSystem) fireProjectile(st *entity.State, tower *component.Tower, target *component.Mob) {
	origin := st.Grid.CellCenter(tower.Cell)
	p := &component.Projectile{
		ID:            s.ids.Next("proj"),
		OwnerID:       tower.ID,
		TargetID:      target.ID,
		TargetLastPos: target.Position,
		Position:      origin,
		PrevPosition:  origin,
		Velocity:      geom.VelocityToward(origin, target.Position, ProjectileSpeed(tower, s.tuning)*st.Grid.TileSize),
		Damage:        tower.Damage,
		SplashRadius:  tower.SplashRadius,
		Effects:       append([]defs.EffectType(nil), tower.Effects...),
	}
	st.Projectiles.Set(p.ID, p)
	s.eventDispatcher.Queue(event.ProjectileFired, event.ProjectileFiredData{
		ProjectileID: p.ID,
		TowerID:      tower.ID,
		TargetID:     target.ID,
	})
}

// ProjectileSpeed - скорость снарядов башни в клетках в секунду.
func ProjectileSpeed(tower *component.Tower, tuning config.Tuning) float64 {
	if tower.ProjectileSpeed > 0 {
		return tower.ProjectileSpeed
	}
	return tuning.DefaultProjectileSpeed
}
