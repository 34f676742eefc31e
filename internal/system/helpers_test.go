package system

import (
	"testing"

	"grid-tower-defense/internal/component"
	"grid-tower-defense/internal/config"
	"grid-tower-defense/internal/defs"
	"grid-tower-defense/internal/entity"
	"grid-tower-defense/internal/event"
	"grid-tower-defense/internal/utils"
	"grid-tower-defense/pkg/gridmap"
)

type testWorld struct {
	st      *entity.State
	tuning  config.Tuning
	lib     *defs.Library
	ids     *utils.IDGenerator
	events  *event.Dispatcher
	effects *StatusEffectSystem
	seen    []event.Event
}

func newTestWorld(t *testing.T) *testWorld {
	t.Helper()
	tuning := config.Default()
	lib, err := defs.DefaultLibrary()
	if err != nil {
		t.Fatalf("library: %v", err)
	}
	w := &testWorld{
		st:     entity.NewState(tuning, gridmap.NewDefaultGrid(tuning.GridWidth, tuning.GridHeight, tuning.TileSize)),
		tuning: tuning,
		lib:    lib,
		ids:    utils.NewIDGenerator(7),
		events: event.NewDispatcher(),
	}
	w.st.Phase = component.PhasePlaying
	w.effects = NewStatusEffectSystem(w.events)
	w.events.Subscribe(event.Any, event.ListenerFunc(func(e event.Event) { w.seen = append(w.seen, e) }))
	return w
}

func (w *testWorld) dt() float64 { return w.tuning.TickSeconds() }

// step продвигает время симуляции на один тик и рассылает накопленные события.
func (w *testWorld) step() {
	w.events.Flush()
	w.st.Tick++
	w.st.SimulationTime = float64(w.st.Tick) * w.dt()
}

func (w *testWorld) count(t event.EventType) int {
	n := 0
	for _, e := range w.seen {
		if e.Type == t {
			n++
		}
	}
	return n
}

// addMob ставит неподвижного моба в центр клетки на главном коридоре.
func (w *testWorld) addMob(cell gridmap.Coord, hp float64) *component.Mob {
	pos := w.st.Grid.CellCenter(cell)
	m := &component.Mob{
		ID:           w.ids.Next("mob"),
		Type:         defs.MobNormal,
		Position:     pos,
		PrevPosition: pos,
		PathIndex:    cell.Col,
		HP:           hp,
		MaxHP:        hp,
		Bounty:       5,
		Wave:         w.st.CurrentWave,
	}
	w.st.Mobs.Set(m.ID, m)
	return m
}

func (w *testWorld) addTower(kind defs.TowerKind, cell gridmap.Coord) *component.Tower {
	def := w.lib.Towers[kind]
	stats, _ := def.Tier(1)
	tw := &component.Tower{
		ID:         w.ids.Next("tower"),
		Kind:       kind,
		Cell:       cell,
		Strategy:   component.TargetFirst,
		TotalSpent: def.BaseCost,
	}
	tw.ApplyTier(1, stats)
	tw.LastAttackTime = w.st.SimulationTime - tw.Cooldown()
	w.st.Grid.SetCell(cell, gridmap.Tower)
	w.st.Towers.Set(tw.ID, tw)
	return tw
}
