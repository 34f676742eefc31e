// internal/system/targeting.go
package system

import (
	"grid-tower-defense/internal/component"
	"grid-tower-defense/internal/entity"
	"grid-tower-defense/pkg/utils"
)

// TargetingSystem проверяет текущие цели башен и подбирает новые.
type TargetingSystem struct{}

func NewTargetingSystem() *TargetingSystem {
	return &TargetingSystem{}
}

func (s *TargetingSystem) Update(st *entity.State) {
	tileSize := st.Grid.TileSize
	for _, tower := range st.Towers.Values() {
		center := st.Grid.CellCenter(tower.Cell)
		rangeSq := tower.Range * tileSize * tower.Range * tileSize

		if tower.TargetID != "" {
			mob, ok := st.Mobs.Get(tower.TargetID)
			if !ok || !mob.Alive() || utils.DistanceSquared(center, mob.Position) > rangeSq {
				tower.TargetID = ""
			}
		}
		if tower.TargetID == "" {
			tower.TargetID = SelectTarget(st.Mobs.Values(), center, rangeSq, tower.Strategy)
		}
	}
}

// SelectTarget выбирает цель среди мобов в радиусе по стратегии.
// При равенстве остаётся моб, встреченный раньше, поэтому выбор зависит только от порядка входа.
func SelectTarget(mobs []*component.Mob, center utils.Vec2, rangeSq float64, strategy component.TargetingStrategy) string {
	var best *component.Mob
	var bestDist float64
	for _, mob := range mobs {
		if !mob.Alive() {
			continue
		}
		dist := utils.DistanceSquared(center, mob.Position)
		if dist > rangeSq {
			continue
		}
		if best == nil || better(strategy, mob, dist, best, bestDist) {
			best, bestDist = mob, dist
		}
	}
	if best == nil {
		return ""
	}
	return best.ID
}

// better сообщает, строго ли кандидат лучше текущего лучшего.
func better(strategy component.TargetingStrategy, cand *component.Mob, candDist float64, best *component.Mob, bestDist float64) bool {
	switch strategy {
	case component.TargetLast:
		return progressLess(cand, best)
	case component.TargetNearest:
		return candDist < bestDist
	case component.TargetStrongest:
		return cand.HP > best.HP
	case component.TargetWeakest:
		return cand.HP < best.HP
	default: // TargetFirst
		return progressLess(best, cand)
	}
}

// progressLess сравнивает продвижение по пути лексикографически: (PathIndex, PathProgress).
func progressLess(a, b *component.Mob) bool {
	if a.PathIndex != b.PathIndex {
		return a.PathIndex < b.PathIndex
	}
	return a.PathProgress < b.PathProgress
}
