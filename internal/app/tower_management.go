// internal/app/tower_management.go
package app

import (
	"fmt"
	"math"

	"grid-tower-defense/internal/component"
	"grid-tower-defense/internal/defs"
	"grid-tower-defense/internal/entity"
	"grid-tower-defense/internal/event"
	"grid-tower-defense/pkg/gridmap"
)

// SelectTowerType выбирает вид башни для постройки. Пустой вид снимает выбор.
func (s *Simulation) SelectTowerType(kind defs.TowerKind) error {
	return s.mutate("SelectTowerType", func(st *entity.State) error {
		if kind != "" && !kind.Valid() {
			return fmt.Errorf("%w: %q", ErrUnknownTowerKind, kind)
		}
		st.SelectedTowerType = kind
		if kind != "" {
			st.SelectedTowerID = ""
		}
		return nil
	})
}

// PlaceTower attempts to place the selected tower kind at the given cell.
func (s *Simulation) PlaceTower(cell gridmap.Coord) (string, error) {
	var id string
	err := s.mutate("PlaceTower", func(st *entity.State) error {
		if st.SelectedTowerType == "" {
			return ErrNoTowerSelected
		}
		var err error
		id, err = s.placeTower(st, st.SelectedTowerType, cell)
		return err
	})
	return id, err
}

func (s *Simulation) placeTower(st *entity.State, kind defs.TowerKind, cell gridmap.Coord) (string, error) {
	if st.Phase != component.PhasePlaying {
		return "", ErrNotPlaying
	}
	def, ok := s.library.Towers[kind]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTowerKind, kind)
	}
	if !st.Grid.IsValid(cell) {
		return "", fmt.Errorf("%w: %v", ErrInvalidCell, cell)
	}
	if ct, _ := st.Grid.Cell(cell); ct != gridmap.Buildable {
		return "", fmt.Errorf("%w: %v is %v", ErrNotBuildable, cell, ct)
	}
	if st.Money < def.BaseCost {
		return "", fmt.Errorf("%w: %s costs %d, have %d", ErrInsufficientFunds, kind, def.BaseCost, st.Money)
	}
	if !st.Grid.CanPlaceTower(cell) {
		return "", fmt.Errorf("%w: %v", ErrPathBlocked, cell)
	}
	stats, _ := def.Tier(1)

	tower := &component.Tower{
		ID:         s.ids.Next("tower"),
		Kind:       kind,
		Cell:       cell,
		Strategy:   component.TargetFirst,
		TotalSpent: def.BaseCost,
	}
	tower.ApplyTier(1, stats)
	// Новая башня готова стрелять сразу
	tower.LastAttackTime = st.SimulationTime - tower.Cooldown()

	st.Grid.SetCell(cell, gridmap.Tower)
	st.Path = st.Grid.Path()
	st.Towers.Set(tower.ID, tower)
	st.Money -= def.BaseCost

	s.EventDispatcher.Queue(event.TowerPlaced, event.TowerPlacedData{
		TowerID: tower.ID,
		Kind:    kind,
		Cell:    cell,
		Cost:    def.BaseCost,
	})
	return tower.ID, nil
}

// UpgradeTower поднимает башню на следующий уровень. Характеристики заменяются целиком.
func (s *Simulation) UpgradeTower(id string) error {
	return s.mutate("UpgradeTower", func(st *entity.State) error {
		if st.Phase != component.PhasePlaying {
			return ErrNotPlaying
		}
		tower, ok := st.Towers.Get(id)
		if !ok {
			return fmt.Errorf("%w: %s", ErrTowerNotFound, id)
		}
		def := s.library.Towers[tower.Kind]
		stats, ok := def.Tier(tower.Tier + 1)
		if !ok || tower.Tier >= defs.MaxTier {
			return fmt.Errorf("%w: %s", ErrMaxTier, id)
		}
		if st.Money < stats.Cost {
			return fmt.Errorf("%w: upgrade costs %d, have %d", ErrInsufficientFunds, stats.Cost, st.Money)
		}
		st.Money -= stats.Cost
		tower.ApplyTier(tower.Tier+1, stats)
		tower.TotalSpent += stats.Cost
		s.EventDispatcher.Queue(event.TowerUpgraded, event.TowerUpgradedData{TowerID: id, Tier: tower.Tier, Cost: stats.Cost})
		return nil
	})
}

// SellTower removes a tower and refunds part of everything spent on it.
// Снаряды проданной башни исчезают, не долетев.
func (s *Simulation) SellTower(id string) (refund int, err error) {
	err = s.mutate("SellTower", func(st *entity.State) error {
		if st.Phase != component.PhasePlaying {
			return ErrNotPlaying
		}
		tower, ok := st.Towers.Get(id)
		if !ok {
			return fmt.Errorf("%w: %s", ErrTowerNotFound, id)
		}
		refund = SellValue(tower, s.tuning.SellRefundRate)
		st.Money += refund
		st.Towers.Delete(id)
		st.Grid.SetCell(tower.Cell, gridmap.Buildable)
		st.Path = st.Grid.Path()
		if st.SelectedTowerID == id {
			st.SelectedTowerID = ""
		}
		s.EventDispatcher.Queue(event.TowerSold, event.TowerSoldData{TowerID: id, Cell: tower.Cell, Refund: refund})
		return nil
	})
	return refund, err
}

// SellValue - сколько вернёт продажа башни.
func SellValue(tower *component.Tower, rate float64) int {
	// 1e-9 гасит ошибку представления: 90*0.7 даёт 62.999...
	return int(math.Floor(float64(tower.TotalSpent)*rate + 1e-9))
}

// SelectTower выделяет построенную башню и снимает выбор вида для постройки.
func (s *Simulation) SelectTower(id string) error {
	return s.mutate("SelectTower", func(st *entity.State) error {
		if !st.Towers.Has(id) {
			return fmt.Errorf("%w: %s", ErrTowerNotFound, id)
		}
		st.SelectedTowerID = id
		st.SelectedTowerType = ""
		return nil
	})
}

func (s *Simulation) DeselectTower() {
	_ = s.mutate("DeselectTower", func(st *entity.State) error {
		st.SelectedTowerID = ""
		return nil
	})
}

// SetTargetingStrategy меняет правило выбора цели у башни. Текущая цель сбрасывается.
func (s *Simulation) SetTargetingStrategy(id string, strategy component.TargetingStrategy) error {
	return s.mutate("SetTargetingStrategy", func(st *entity.State) error {
		if !strategy.Valid() {
			return fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
		}
		tower, ok := st.Towers.Get(id)
		if !ok {
			return fmt.Errorf("%w: %s", ErrTowerNotFound, id)
		}
		tower.Strategy = strategy
		tower.TargetID = ""
		return nil
	})
}
