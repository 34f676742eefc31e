// internal/system/movement.go
package system

import (
	"grid-tower-defense/internal/component"
	"grid-tower-defense/internal/entity"
	"grid-tower-defense/internal/event"
	"grid-tower-defense/pkg/utils"
)

// MovementSystem ведёт мобов по пути к базе.
type MovementSystem struct {
	eventDispatcher *event.Dispatcher
	slowFloor       float64
}

func NewMovementSystem(eventDispatcher *event.Dispatcher, slowFloor float64) *MovementSystem {
	return &MovementSystem{eventDispatcher: eventDispatcher, slowFloor: slowFloor}
}

func (s *MovementSystem) Update(st *entity.State, deltaTime float64) {
	path := st.Path
	if len(path) < 2 {
		return
	}
	for _, id := range st.Mobs.IDs() {
		mob, _ := st.Mobs.Get(id)
		mob.PrevPosition = mob.Position
		if s.advance(mob, path, EffectiveSpeed(mob, s.slowFloor)*deltaTime) {
			// Дошёл до базы: минус жизнь, награды нет
			st.Lives--
			st.Mobs.Delete(id)
			s.eventDispatcher.Queue(event.MobLeaked, event.MobLeakedData{MobID: id, LivesRemaining: st.Lives})
		}
	}
}

// advance сдвигает моба на distance вдоль пути, проходя при необходимости несколько отрезков.
// Возвращает true, если моб дошёл до последней точки.
func (s *MovementSystem) advance(mob *component.Mob, path []utils.Vec2, distance float64) bool {
	for distance > 0 {
		if mob.PathIndex >= len(path)-1 {
			return true
		}
		from, to := path[mob.PathIndex], path[mob.PathIndex+1]
		segment := utils.Distance(from, to)
		left := segment * (1 - mob.PathProgress)
		if distance >= left {
			distance -= left
			mob.PathIndex++
			mob.PathProgress = 0
			mob.Position = to
			continue
		}
		mob.PathProgress += distance / segment
		mob.Position = utils.LerpVec2(from, to, mob.PathProgress)
		distance = 0
	}
	return mob.PathIndex >= len(path)-1
}
