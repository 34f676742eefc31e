// internal/app/game.go
package app

import (
	"fmt"
	"log"

	"grid-tower-defense/internal/component"
	"grid-tower-defense/internal/config"
	"grid-tower-defense/internal/defs"
	"grid-tower-defense/internal/entity"
	"grid-tower-defense/internal/event"
	"grid-tower-defense/internal/system"
	"grid-tower-defense/internal/utils"
	"grid-tower-defense/pkg/gridmap"
)

// Options настраивают Simulation. Нулевые поля заменяются значениями по умолчанию.
type Options struct {
	Tuning  *config.Tuning
	Library *defs.Library
	Layout  *gridmap.Grid // шаблон карты, копируется в каждую новую игру
	Logger  *log.Logger
}

// Simulation владеет опубликованным состоянием игры и единственная меняет его:
// каждый тик и каждая команда работают над копией и атомарно подменяют снимок.
type Simulation struct {
	tuning  config.Tuning
	library *defs.Library
	layout  *gridmap.Grid
	logger  *log.Logger

	ids             *utils.IDGenerator
	EventDispatcher *event.Dispatcher
	engine          *Engine

	state       *entity.State
	subscribers map[int]func(*entity.State)
	subOrder    []int
	nextSubID   int
}

// New создаёт симуляцию в фазе Menu; игра начинается с NewGame.
func New(opts Options) (*Simulation, error) {
	tuning := config.Default()
	if opts.Tuning != nil {
		tuning = *opts.Tuning
	}
	if err := tuning.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tuning: %w", err)
	}
	library := opts.Library
	if library == nil {
		lib, err := defs.DefaultLibrary()
		if err != nil {
			return nil, err
		}
		library = lib
	}
	layout := opts.Layout
	if layout == nil {
		layout = gridmap.NewDefaultGrid(tuning.GridWidth, tuning.GridHeight, tuning.TileSize)
	}
	if layout.Path() == nil {
		return nil, fmt.Errorf("layout has no path from spawn %v to base %v", layout.Spawn, layout.Base)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	s := &Simulation{
		tuning:          tuning,
		library:         library,
		layout:          layout.Clone(),
		logger:          logger,
		EventDispatcher: event.NewDispatcher(),
		subscribers:     make(map[int]func(*entity.State)),
	}
	s.reset()
	s.state.Phase = component.PhaseMenu

	listener := &GameEventListener{sim: s}
	for _, t := range []event.EventType{event.WaveStarted, event.WaveCompleted, event.GameWon, event.GameLost} {
		s.EventDispatcher.Subscribe(t, listener)
	}
	return s, nil
}

func (s *Simulation) reset() {
	s.ids = utils.NewIDGenerator(s.tuning.Seed)
	s.engine = NewEngine(s.tuning, s.library, s.ids, s.EventDispatcher)
	s.EventDispatcher.Discard()
	s.state = entity.NewState(s.tuning, s.layout.Clone())
}

// Tuning returns the settings the simulation runs with.
func (s *Simulation) Tuning() config.Tuning { return s.tuning }

// Library returns the definition tables in use.
func (s *Simulation) Library() *defs.Library { return s.library }

// State возвращает последний опубликованный снимок. Его нельзя менять.
func (s *Simulation) State() *entity.State { return s.state }

// Subscribe регистрирует наблюдателя и сразу вызывает его с текущим снимком.
// Дальше наблюдатель вызывается после каждой команды и после Update со значимыми изменениями.
func (s *Simulation) Subscribe(fn func(*entity.State)) (unsubscribe func()) {
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	s.subOrder = append(s.subOrder, id)
	fn(s.state)
	return func() {
		delete(s.subscribers, id)
		for i, v := range s.subOrder {
			if v == id {
				s.subOrder = append(s.subOrder[:i], s.subOrder[i+1:]...)
				break
			}
		}
	}
}

// NewGame сбрасывает всё состояние и запускает игру.
func (s *Simulation) NewGame() *entity.State {
	s.reset()
	next := s.state.Clone()
	next.Phase = component.PhasePlaying
	s.logger.Printf("New game: %dx%d grid, %d waves, seed %d", next.Grid.Width, next.Grid.Height, s.tuning.WaveCount, s.tuning.Seed)
	s.publish(next, true)
	return next
}

// Update продвигает симуляцию на прошедшее время кадра.
func (s *Simulation) Update(elapsedMs float64) *entity.State {
	prev := s.state
	next, _ := s.engine.Advance(prev, elapsedMs)
	if next == prev {
		return prev
	}
	s.publish(next, significantChange(prev, next))
	return next
}

// publish подменяет снимок, оповещает наблюдателей и только потом рассылает события тика.
func (s *Simulation) publish(next *entity.State, notify bool) {
	s.state = next
	if notify {
		for _, id := range append([]int(nil), s.subOrder...) {
			if fn, ok := s.subscribers[id]; ok {
				fn(next)
			}
		}
	}
	s.EventDispatcher.Flush()
}

// mutate выполняет команду над копией состояния. При ошибке копия и её события отбрасываются.
func (s *Simulation) mutate(name string, fn func(st *entity.State) error) error {
	next := s.state.Clone()
	if err := fn(next); err != nil {
		s.EventDispatcher.Discard()
		s.logger.Printf("%s declined: %v", name, err)
		return err
	}
	s.publish(next, true)
	return nil
}

func significantChange(a, b *entity.State) bool {
	if a.Money != b.Money || a.Lives != b.Lives || a.CurrentWave != b.CurrentWave ||
		a.WaveActive != b.WaveActive || a.Paused != b.Paused || a.Phase != b.Phase || a.Speed != b.Speed {
		return true
	}
	if a.Towers.Len() != b.Towers.Len() || a.Mobs.Len() != b.Mobs.Len() {
		return true
	}
	if a.SelectedTowerType != b.SelectedTowerType || a.SelectedTowerID != b.SelectedTowerID {
		return true
	}
	if (a.HoveredCell == nil) != (b.HoveredCell == nil) {
		return true
	}
	return a.HoveredCell != nil && *a.HoveredCell != *b.HoveredCell
}

func (s *Simulation) Pause() error {
	return s.mutate("Pause", func(st *entity.State) error {
		if st.Phase != component.PhasePlaying {
			return ErrNotPlaying
		}
		st.Paused = true
		return nil
	})
}

func (s *Simulation) Resume() error {
	return s.mutate("Resume", func(st *entity.State) error {
		if st.Phase != component.PhasePlaying {
			return ErrNotPlaying
		}
		st.Paused = false
		return nil
	})
}

// TogglePause переключает паузу.
func (s *Simulation) TogglePause() error {
	if s.state.Paused {
		return s.Resume()
	}
	return s.Pause()
}

// SetSpeed задаёт множитель скорости: 1 или 2.
func (s *Simulation) SetSpeed(speed int) error {
	return s.mutate("SetSpeed", func(st *entity.State) error {
		if speed != 1 && speed != 2 {
			return fmt.Errorf("%w: got %d", ErrInvalidSpeed, speed)
		}
		st.Speed = speed
		return nil
	})
}

// StartWaveEarly запускает следующую волну досрочно и платит бонус за оставшееся время отсчёта.
func (s *Simulation) StartWaveEarly() (bonus int, err error) {
	err = s.mutate("StartWaveEarly", func(st *entity.State) error {
		switch {
		case st.Phase != component.PhasePlaying:
			return ErrNotPlaying
		case st.WaveActive:
			return ErrWaveActive
		case st.CurrentWave >= s.tuning.WaveCount:
			return ErrNoWavesLeft
		}
		bonus = system.EarlyStartBonus(st.WaveTimerMs, s.tuning)
		st.Money += bonus
		st.WaveTimerMs = 0
		return nil
	})
	return bonus, err
}

// SetHoveredCell запоминает клетку под курсором; nil или клетка вне сетки сбрасывают её.
func (s *Simulation) SetHoveredCell(cell *gridmap.Coord) {
	_ = s.mutate("SetHoveredCell", func(st *entity.State) error {
		if cell == nil || !st.Grid.IsValid(*cell) {
			st.HoveredCell = nil
			return nil
		}
		c := *cell
		st.HoveredCell = &c
		return nil
	})
}

// GameEventListener пишет в лог ключевые события партии.
type GameEventListener struct {
	sim *Simulation
}

func (l *GameEventListener) OnEvent(e event.Event) {
	switch e.Type {
	case event.WaveStarted:
		if data, ok := e.Data.(event.WaveData); ok {
			l.sim.logger.Printf("Wave %d started", data.Wave)
		}
	case event.WaveCompleted:
		if data, ok := e.Data.(event.WaveData); ok {
			l.sim.logger.Printf("Wave %d completed, reward %d", data.Wave, data.Reward)
		}
	case event.GameWon:
		if data, ok := e.Data.(event.GameOverData); ok {
			l.sim.logger.Printf("Victory after wave %d with %d lives left", data.Wave, data.Lives)
		}
	case event.GameLost:
		if data, ok := e.Data.(event.GameOverData); ok {
			l.sim.logger.Printf("Defeat on wave %d", data.Wave)
		}
	}
}
