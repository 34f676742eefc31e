package app

import (
	"errors"
	"io"
	"log"
	"math/rand"
	"testing"

	"grid-tower-defense/internal/component"
	"grid-tower-defense/internal/config"
	"grid-tower-defense/internal/defs"
	"grid-tower-defense/internal/entity"
	"grid-tower-defense/internal/event"
	"grid-tower-defense/pkg/gridmap"
)

const frameMs = 1000.0 / 60

func newTestSimulation(t *testing.T, tune func(*config.Tuning)) *Simulation {
	t.Helper()
	tuning := config.Default()
	if tune != nil {
		tune(&tuning)
	}
	sim, err := New(Options{Tuning: &tuning, Logger: log.New(io.Discard, "", 0)})
	if err != nil {
		t.Fatalf("new simulation: %v", err)
	}
	sim.NewGame()
	return sim
}

func TestAccumulatorBound(t *testing.T) {
	sim := newTestSimulation(t, nil)
	engine := sim.engine
	st := sim.State()
	rng := rand.New(rand.NewSource(5))
	for i := 0; i < 2000; i++ {
		elapsed := rng.Float64() * 400
		if i%50 == 0 {
			elapsed = 10_000 // длинный подвис
		}
		next, ticks := engine.Advance(st, elapsed)
		if ticks > sim.Tuning().MaxFrameSkip {
			t.Fatalf("frame %d: %d ticks exceed the frame skip cap", i, ticks)
		}
		if next.Interpolation < 0 || next.Interpolation >= 1 {
			t.Fatalf("frame %d: interpolation %v outside [0,1)", i, next.Interpolation)
		}
		if next.Phase != component.PhasePlaying {
			break
		}
		st = next
	}
}

func TestAdvanceLeavesInputUntouched(t *testing.T) {
	sim := newTestSimulation(t, nil)
	before := sim.State()
	timer := before.WaveTimerMs
	after := sim.Update(100)
	if after == before {
		t.Fatalf("update must publish a new snapshot")
	}
	if before.WaveTimerMs != timer || before.Tick != 0 {
		t.Fatalf("published snapshot was mutated")
	}
	// 100 мс - это шесть тиков, но за один вызов выполняется не больше пяти
	if after.Tick != 5 {
		t.Fatalf("expected 5 ticks for 100ms, got %d", after.Tick)
	}
}

func TestFrameSkipCapHoldsUnderSustainedStall(t *testing.T) {
	sim := newTestSimulation(t, nil)
	limit := uint64(sim.Tuning().MaxFrameSkip)
	for frame := 1; frame <= 3; frame++ {
		before := sim.State().Tick
		st := sim.Update(1000)
		if got := st.Tick - before; got != limit {
			t.Fatalf("frame %d: expected %d ticks, got %d (acc=%v)", frame, limit, got, st.AccumulatorMs)
		}
		if st.Interpolation < 0 || st.Interpolation >= 1 {
			t.Fatalf("frame %d: interpolation %v outside [0,1)", frame, st.Interpolation)
		}
	}
}

func TestUpdateIsNoOpWhenPausedOrNotPlaying(t *testing.T) {
	sim, err := New(Options{Logger: log.New(io.Discard, "", 0)})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	menu := sim.State()
	if sim.Update(500) != menu {
		t.Fatalf("menu phase must not tick")
	}

	sim.NewGame()
	if err := sim.Pause(); err != nil {
		t.Fatalf("pause: %v", err)
	}
	paused := sim.State()
	if sim.Update(500) != paused {
		t.Fatalf("paused simulation must not tick")
	}
	if err := sim.Resume(); err != nil {
		t.Fatalf("resume: %v", err)
	}
	if sim.Update(500).Tick == 0 {
		t.Fatalf("resumed simulation must tick")
	}
}

func TestSpeedMultiplierDoublesTicks(t *testing.T) {
	sim := newTestSimulation(t, nil)
	if err := sim.SetSpeed(3); !errors.Is(err, ErrInvalidSpeed) {
		t.Fatalf("expected ErrInvalidSpeed, got %v", err)
	}
	if err := sim.SetSpeed(2); err != nil {
		t.Fatalf("set speed: %v", err)
	}
	if got := sim.Update(frameMs*2 + 1).Tick; got != 4 {
		t.Fatalf("expected 4 ticks at double speed, got %d", got)
	}
}

func TestTowerLifecycle(t *testing.T) {
	sim := newTestSimulation(t, nil)
	cell := gridmap.Coord{Row: 6, Col: 3}

	if _, err := sim.PlaceTower(cell); !errors.Is(err, ErrNoTowerSelected) {
		t.Fatalf("expected ErrNoTowerSelected, got %v", err)
	}
	if err := sim.SelectTowerType(defs.TowerArrow); err != nil {
		t.Fatalf("select: %v", err)
	}
	id, err := sim.PlaceTower(cell)
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	st := sim.State()
	if st.Money != 100 || st.Towers.Len() != 1 {
		t.Fatalf("expected 100 money and one tower, got %d / %d", st.Money, st.Towers.Len())
	}
	if ct, _ := st.Grid.Cell(cell); ct != gridmap.Tower {
		t.Fatalf("cell not reclassified: %v", ct)
	}

	if err := sim.UpgradeTower(id); err != nil {
		t.Fatalf("upgrade: %v", err)
	}
	tower, _ := sim.State().Towers.Get(id)
	tier2, _ := sim.Library().Towers[defs.TowerArrow].Tier(2)
	if tower.Tier != 2 || tower.Damage != tier2.Damage || tower.Range != tier2.Range || sim.State().Money != 60 {
		t.Fatalf("tier 2 stats not applied: %+v money=%d", tower, sim.State().Money)
	}

	refund, err := sim.SellTower(id)
	if err != nil {
		t.Fatalf("sell: %v", err)
	}
	if refund != 63 || sim.State().Money != 123 {
		t.Fatalf("expected refund 63 (70%% of 90), got %d, money %d", refund, sim.State().Money)
	}
	if ct, _ := sim.State().Grid.Cell(cell); ct != gridmap.Buildable {
		t.Fatalf("sold cell must revert to buildable, got %v", ct)
	}
}

func TestDeclinedCommandsLeaveStateUntouched(t *testing.T) {
	sim := newTestSimulation(t, func(tu *config.Tuning) { tu.StartingMoney = 60 })
	_ = sim.SelectTowerType(defs.TowerArrow)
	id, err := sim.PlaceTower(gridmap.Coord{Row: 6, Col: 3})
	if err != nil {
		t.Fatalf("place: %v", err)
	}

	checks := []struct {
		name string
		run  func() error
		want error
	}{
		{"path cell", func() error { _, err := sim.PlaceTower(gridmap.Coord{Row: 7, Col: 3}); return err }, ErrNotBuildable},
		{"occupied", func() error { _, err := sim.PlaceTower(gridmap.Coord{Row: 6, Col: 3}); return err }, ErrNotBuildable},
		{"blocked", func() error { _, err := sim.PlaceTower(gridmap.Coord{Row: 1, Col: 5}); return err }, ErrNotBuildable},
		{"outside", func() error { _, err := sim.PlaceTower(gridmap.Coord{Row: -1, Col: 3}); return err }, ErrInvalidCell},
		{"unaffordable", func() error { _, err := sim.PlaceTower(gridmap.Coord{Row: 6, Col: 2}); return err }, ErrInsufficientFunds},
		{"upgrade unaffordable", func() error { return sim.UpgradeTower(id) }, ErrInsufficientFunds},
		{"upgrade unknown", func() error { return sim.UpgradeTower("tower_nope") }, ErrTowerNotFound},
		{"sell unknown", func() error { _, err := sim.SellTower("tower_nope"); return err }, ErrTowerNotFound},
		{"select unknown", func() error { return sim.SelectTower("tower_nope") }, ErrTowerNotFound},
		{"bad kind", func() error { return sim.SelectTowerType("laser") }, ErrUnknownTowerKind},
		{"bad strategy", func() error { return sim.SetTargetingStrategy(id, "random") }, ErrUnknownStrategy},
	}
	for _, c := range checks {
		before := sim.State()
		if err := c.run(); !errors.Is(err, c.want) {
			t.Fatalf("%s: expected %v, got %v", c.name, c.want, err)
		}
		if sim.State() != before {
			t.Fatalf("%s: declined command published a new state", c.name)
		}
	}
}

func TestUpgradeStopsAtMaxTier(t *testing.T) {
	sim := newTestSimulation(t, func(tu *config.Tuning) { tu.StartingMoney = 10_000 })
	_ = sim.SelectTowerType(defs.TowerCannon)
	id, err := sim.PlaceTower(gridmap.Coord{Row: 8, Col: 3})
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	for tier := 2; tier <= defs.MaxTier; tier++ {
		if err := sim.UpgradeTower(id); err != nil {
			t.Fatalf("upgrade to %d: %v", tier, err)
		}
	}
	if err := sim.UpgradeTower(id); !errors.Is(err, ErrMaxTier) {
		t.Fatalf("expected ErrMaxTier, got %v", err)
	}
	tower, _ := sim.State().Towers.Get(id)
	if want := sim.Library().Towers[defs.TowerCannon].SpentUpTo(3); tower.TotalSpent != want {
		t.Fatalf("expected total spent %d, got %d", want, tower.TotalSpent)
	}
}

func TestStartWaveEarly(t *testing.T) {
	sim := newTestSimulation(t, nil)
	bonus, err := sim.StartWaveEarly()
	if err != nil {
		t.Fatalf("start early: %v", err)
	}
	// Первый отсчёт 5000 из 10000 мс: половина от максимального бонуса
	if bonus != 5 || sim.State().Money != 155 {
		t.Fatalf("expected bonus 5, got %d (money %d)", bonus, sim.State().Money)
	}
	st := sim.Update(frameMs)
	if !st.WaveActive || st.CurrentWave != 1 || st.Mobs.Len() != 1 {
		t.Fatalf("wave must start on the next tick: active=%v wave=%d mobs=%d", st.WaveActive, st.CurrentWave, st.Mobs.Len())
	}
	if _, err := sim.StartWaveEarly(); !errors.Is(err, ErrWaveActive) {
		t.Fatalf("expected ErrWaveActive, got %v", err)
	}
}

func TestSubscriptionFiresOnSignificantChanges(t *testing.T) {
	sim := newTestSimulation(t, nil)
	var calls int
	var last *entity.State
	unsubscribe := sim.Subscribe(func(st *entity.State) {
		calls++
		last = st
	})
	if calls != 1 || last != sim.State() {
		t.Fatalf("subscribe must deliver the current snapshot immediately")
	}

	sim.Update(frameMs) // только обратный отсчёт
	if calls != 1 {
		t.Fatalf("countdown alone must not notify, got %d calls", calls)
	}
	_ = sim.SetSpeed(2)
	if calls != 2 || last.Speed != 2 {
		t.Fatalf("commands always notify")
	}
	_, _ = sim.StartWaveEarly()
	sim.Update(frameMs)
	if calls != 4 || !last.WaveActive {
		t.Fatalf("wave start must notify, got %d calls", calls)
	}

	unsubscribe()
	_ = sim.SetSpeed(1)
	if calls != 4 {
		t.Fatalf("unsubscribed observer was called")
	}
}

func TestEventsArriveAfterPublish(t *testing.T) {
	sim := newTestSimulation(t, nil)
	var published *entity.State
	sim.EventDispatcher.Subscribe(event.MobSpawned, event.ListenerFunc(func(e event.Event) {
		published = sim.State()
	}))
	_, _ = sim.StartWaveEarly()
	st := sim.Update(frameMs)
	if published != st {
		t.Fatalf("listeners must observe the snapshot that produced the event")
	}
}

func TestDeterministicRuns(t *testing.T) {
	run := func() *entity.State {
		sim := newTestSimulation(t, nil)
		_ = sim.SelectTowerType(defs.TowerArrow)
		_, _ = sim.PlaceTower(gridmap.Coord{Row: 6, Col: 3})
		_ = sim.SelectTowerType(defs.TowerFrost)
		_, _ = sim.PlaceTower(gridmap.Coord{Row: 8, Col: 7})
		for i := 0; i < 60*40; i++ {
			sim.Update(frameMs)
		}
		return sim.State()
	}
	a, b := run(), run()
	if a.Money != b.Money || a.Lives != b.Lives || a.CurrentWave != b.CurrentWave || a.Tick != b.Tick {
		t.Fatalf("runs diverged: %d/%d/%d vs %d/%d/%d", a.Money, a.Lives, a.CurrentWave, b.Money, b.Lives, b.CurrentWave)
	}
	ma, mb := a.Mobs.Values(), b.Mobs.Values()
	if len(ma) != len(mb) {
		t.Fatalf("mob counts diverged: %d vs %d", len(ma), len(mb))
	}
	for i := range ma {
		if ma[i].ID != mb[i].ID || ma[i].HP != mb[i].HP || ma[i].Position != mb[i].Position {
			t.Fatalf("mob %d diverged: %+v vs %+v", i, ma[i], mb[i])
		}
	}
}

func TestGameLostLatches(t *testing.T) {
	sim := newTestSimulation(t, func(tu *config.Tuning) { tu.StartingLives = 1 })
	var lost int
	sim.EventDispatcher.Subscribe(event.GameLost, event.ListenerFunc(func(event.Event) { lost++ }))
	for i := 0; i < 60*60 && sim.State().Phase == component.PhasePlaying; i++ {
		sim.Update(frameMs)
	}
	st := sim.State()
	if st.Phase != component.PhaseLost || !st.Paused || lost != 1 {
		t.Fatalf("expected latched loss, got phase %v paused=%v events=%d", st.Phase, st.Paused, lost)
	}
	if sim.Update(1000) != st {
		t.Fatalf("lost game must not tick")
	}
	if err := sim.Resume(); !errors.Is(err, ErrNotPlaying) {
		t.Fatalf("resume after loss must be declined, got %v", err)
	}
	if sim.NewGame().Phase != component.PhasePlaying {
		t.Fatalf("restart must start a fresh game")
	}
}

func TestGameWonAfterLastWave(t *testing.T) {
	sim := newTestSimulation(t, func(tu *config.Tuning) {
		tu.WaveCount = 1
		tu.StartingMoney = 1000
	})
	_ = sim.SelectTowerType(defs.TowerArrow)
	for col := 1; col <= 12; col++ {
		if _, err := sim.PlaceTower(gridmap.Coord{Row: 8, Col: col}); err != nil {
			t.Fatalf("place at col %d: %v", col, err)
		}
	}
	for i := 0; i < 60*90 && sim.State().Phase == component.PhasePlaying; i++ {
		sim.Update(frameMs)
	}
	st := sim.State()
	if st.Phase != component.PhaseWon {
		t.Fatalf("expected victory, got %v (wave %d, lives %d, mobs %d)", st.Phase, st.CurrentWave, st.Lives, st.Mobs.Len())
	}
	if st.Lives != sim.Tuning().StartingLives {
		t.Fatalf("no mob should leak past twelve arrow towers, lives %d", st.Lives)
	}
}

func TestSelectionAndHover(t *testing.T) {
	sim := newTestSimulation(t, nil)
	_ = sim.SelectTowerType(defs.TowerFrost)
	id, err := sim.PlaceTower(gridmap.Coord{Row: 6, Col: 3})
	if err != nil {
		t.Fatalf("place: %v", err)
	}

	if err := sim.SelectTower(id); err != nil {
		t.Fatalf("select: %v", err)
	}
	st := sim.State()
	if st.SelectedTowerID != id || st.SelectedTowerType != "" {
		t.Fatalf("selecting a tower must clear the build selection, got %q / %q", st.SelectedTowerID, st.SelectedTowerType)
	}
	if err := sim.SetTargetingStrategy(id, component.TargetStrongest); err != nil {
		t.Fatalf("strategy: %v", err)
	}
	if tower, _ := sim.State().Towers.Get(id); tower.Strategy != component.TargetStrongest {
		t.Fatalf("strategy not applied: %v", tower.Strategy)
	}
	sim.DeselectTower()
	if sim.State().SelectedTowerID != "" {
		t.Fatalf("deselect left %q selected", sim.State().SelectedTowerID)
	}

	cell := gridmap.Coord{Row: 2, Col: 2}
	sim.SetHoveredCell(&cell)
	cell.Row = 9 // команда хранит свою копию
	if h := sim.State().HoveredCell; h == nil || *h != (gridmap.Coord{Row: 2, Col: 2}) {
		t.Fatalf("hovered cell not stored, got %v", h)
	}
	sim.SetHoveredCell(&gridmap.Coord{Row: -1, Col: 0})
	if sim.State().HoveredCell != nil {
		t.Fatalf("out of grid hover must clear the cell")
	}
}
