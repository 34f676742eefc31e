// internal/entity/state.go
package entity

import (
	"grid-tower-defense/internal/component"
	"grid-tower-defense/internal/config"
	"grid-tower-defense/internal/defs"
	"grid-tower-defense/pkg/gridmap"
	"grid-tower-defense/pkg/utils"
)

// State - полное состояние одной игровой сессии.
// Опубликованный снимок не меняется: тик работает над копией из Clone.
type State struct {
	SimulationTime float64 // сек
	Tick           uint64
	AccumulatorMs  float64 // неизрасходованный остаток, всегда < длительности тика
	Interpolation  float64 // AccumulatorMs / длительность тика, только для отрисовки
	Paused         bool
	Speed          int // 1 или 2
	Phase          component.Phase

	Mobs        *Registry[*component.Mob]
	Towers      *Registry[*component.Tower]
	Projectiles *Registry[*component.Projectile]

	Money int
	Lives int

	CurrentWave int
	WaveActive  bool
	WaveTimerMs float64 // обратный отсчёт до следующей волны
	SpawnQueue  []component.SpawnEntry

	Grid *gridmap.Grid
	Path []utils.Vec2

	// Поля интерфейса, на игру не влияют
	SelectedTowerType defs.TowerKind // пусто - ничего не выбрано
	SelectedTowerID   string
	HoveredCell       *gridmap.Coord
}

// NewState собирает состояние новой игры в фазе Menu.
func NewState(t config.Tuning, grid *gridmap.Grid) *State {
	return &State{
		Speed:       1,
		Phase:       component.PhaseMenu,
		Mobs:        NewRegistry[*component.Mob](),
		Towers:      NewRegistry[*component.Tower](),
		Projectiles: NewRegistry[*component.Projectile](),
		Money:       t.StartingMoney,
		Lives:       t.StartingLives,
		WaveTimerMs: t.FirstWaveDelayMs,
		Grid:        grid,
		Path:        grid.Path(),
	}
}

// Clone returns a deep copy; mutating it never affects s.
func (s *State) Clone() *State {
	cp := *s
	cp.Mobs = s.Mobs.Clone((*component.Mob).Clone)
	cp.Towers = s.Towers.Clone((*component.Tower).Clone)
	cp.Projectiles = s.Projectiles.Clone((*component.Projectile).Clone)
	cp.SpawnQueue = append([]component.SpawnEntry(nil), s.SpawnQueue...)
	cp.Grid = s.Grid.Clone()
	cp.Path = append([]utils.Vec2(nil), s.Path...)
	if s.HoveredCell != nil {
		cell := *s.HoveredCell
		cp.HoveredCell = &cell
	}
	return &cp
}

// TowerAt возвращает башню на клетке, если она есть.
func (s *State) TowerAt(cell gridmap.Coord) (*component.Tower, bool) {
	for _, t := range s.Towers.Values() {
		if t.Cell == cell {
			return t, true
		}
	}
	return nil, false
}

// MobsFromWave считает живых мобов, появившихся в указанной волне.
func (s *State) MobsFromWave(wave int) int {
	n := 0
	for _, m := range s.Mobs.Values() {
		if m.Wave == wave {
			n++
		}
	}
	return n
}
