// internal/system/projectile.go
package system

import (
	"math"

	"grid-tower-defense/internal/component"
	"grid-tower-defense/internal/config"
	"grid-tower-defense/internal/defs"
	"grid-tower-defense/internal/entity"
	"grid-tower-defense/internal/event"
	"grid-tower-defense/pkg/utils"
)

// ProjectileSystem управляет движением снарядов и нанесением урона
type ProjectileSystem struct {
	tuning          config.Tuning
	library         *defs.Library
	eventDispatcher *event.Dispatcher
	effects         *StatusEffectSystem
}

func NewProjectileSystem(tuning config.Tuning, library *defs.Library, eventDispatcher *event.Dispatcher,
	effects *StatusEffectSystem) *ProjectileSystem {
	return &ProjectileSystem{
		tuning:          tuning,
		library:         library,
		eventDispatcher: eventDispatcher,
		effects:         effects,
	}
}

func (s *ProjectileSystem) Update(st *entity.State, deltaTime float64) {
	tileSize := st.Grid.TileSize
	hitRadius := s.tuning.ProjectileHitRadius * tileSize

	for _, id := range st.Projectiles.IDs() {
		proj, _ := st.Projectiles.Get(id)
		proj.PrevPosition = proj.Position

		// Башню продали, пока снаряд летел: снаряд исчезает без эффекта
		owner, ok := st.Towers.Get(proj.OwnerID)
		if !ok {
			st.Projectiles.Delete(id)
			continue
		}

		target, ok := st.Mobs.Get(proj.TargetID)
		if !ok {
			// Цель пропала: сплэш взрывается в последней известной точке
			if proj.SplashRadius > 0 {
				s.resolve(st, proj, proj.TargetLastPos, nil)
			}
			st.Projectiles.Delete(id)
			continue
		}

		proj.TargetLastPos = target.Position
		speed := ProjectileSpeed(owner, s.tuning) * tileSize
		proj.Velocity = utils.VelocityToward(proj.Position, target.Position, speed)
		step := speed * deltaTime
		if dist := utils.Distance(proj.Position, target.Position); dist <= step {
			proj.Position = target.Position // не перелетаем цель
		} else {
			proj.Position = proj.Position.Add(proj.Velocity.Scale(deltaTime))
		}

		if utils.Distance(proj.Position, target.Position) <= hitRadius {
			s.resolve(st, proj, target.Position, target)
			st.Projectiles.Delete(id)
		}
	}
}

// resolve наносит урон в точке попадания: по площади, если у снаряда есть сплэш, иначе только цели.
// Эффекты снаряда вешаются на каждого задетого моба.
func (s *ProjectileSystem) resolve(st *entity.State, proj *component.Projectile, at utils.Vec2, target *component.Mob) {
	var hit []*component.Mob
	if proj.SplashRadius > 0 {
		radius := proj.SplashRadius * st.Grid.TileSize
		for _, mob := range st.Mobs.Values() {
			if !mob.Alive() {
				continue
			}
			dist := utils.Distance(at, mob.Position)
			if dist > radius {
				continue
			}
			ApplyDamage(mob, SplashDamage(proj.Damage, dist, radius, s.tuning.SplashFalloffFloor), s.tuning.MinDamage)
			hit = append(hit, mob)
		}
	} else if target != nil && target.Alive() {
		ApplyDamage(target, proj.Damage, s.tuning.MinDamage)
		hit = append(hit, target)
	}

	for _, mob := range hit {
		for _, t := range proj.Effects {
			s.effects.Apply(mob, NewEffect(t, s.library.Effect(t), proj.OwnerID))
		}
	}
	s.eventDispatcher.Queue(event.ProjectileHit, event.ProjectileHitData{
		ProjectileID: proj.ID,
		TargetID:     proj.TargetID,
		Position:     at,
		Splash:       proj.SplashRadius > 0,
		Radius:       proj.SplashRadius * st.Grid.TileSize,
		MobsHit:      len(hit),
	})
}

// SplashDamage - линейное затухание от центра: полный урон в центре, не меньше floor на краю.
func SplashDamage(damage, dist, radius, floor float64) float64 {
	if radius <= 0 {
		return damage
	}
	return damage * math.Max(floor, 1-dist/radius)
}
