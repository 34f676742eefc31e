// internal/app/engine.go
package app

import (
	"math"

	"grid-tower-defense/internal/component"
	"grid-tower-defense/internal/config"
	"grid-tower-defense/internal/defs"
	"grid-tower-defense/internal/entity"
	"grid-tower-defense/internal/event"
	"grid-tower-defense/internal/system"
	"grid-tower-defense/internal/utils"
)

// Engine прогоняет тики симуляции с фиксированным шагом.
type Engine struct {
	tuning config.Tuning

	WaveSystem         *system.WaveSystem
	MovementSystem     *system.MovementSystem
	TargetingSystem    *system.TargetingSystem
	CombatSystem       *system.CombatSystem
	ProjectileSystem   *system.ProjectileSystem
	StatusEffectSystem *system.StatusEffectSystem
	CleanupSystem      *system.CleanupSystem
	EndConditionSystem *system.EndConditionSystem
}

func NewEngine(tuning config.Tuning, library *defs.Library, ids *utils.IDGenerator, eventDispatcher *event.Dispatcher) *Engine {
	effects := system.NewStatusEffectSystem(eventDispatcher)
	return &Engine{
		tuning:             tuning,
		WaveSystem:         system.NewWaveSystem(tuning, library, ids, eventDispatcher),
		MovementSystem:     system.NewMovementSystem(eventDispatcher, tuning.SlowMinSpeedMultiplier),
		TargetingSystem:    system.NewTargetingSystem(),
		CombatSystem:       system.NewCombatSystem(tuning, library, ids, eventDispatcher, effects),
		ProjectileSystem:   system.NewProjectileSystem(tuning, library, eventDispatcher, effects),
		StatusEffectSystem: effects,
		CleanupSystem:      system.NewCleanupSystem(eventDispatcher),
		EndConditionSystem: system.NewEndConditionSystem(tuning, eventDispatcher),
	}
}

// Advance переводит прошедшее реальное время в целое число тиков.
// Исходное состояние не меняется: работа идёт над копией, которая и возвращается.
// Второе значение - сколько тиков выполнено, не больше MaxFrameSkip.
func (e *Engine) Advance(st *entity.State, elapsedMs float64) (*entity.State, int) {
	if st.Paused || st.Phase != component.PhasePlaying {
		return st, 0
	}
	next := st.Clone()
	tickMs := e.tuning.TickDurationMs()

	acc := next.AccumulatorMs + elapsedMs*float64(next.Speed)
	// Защита от "спирали смерти": лишние тики отбрасываются, а не откладываются
	if limit := tickMs * float64(e.tuning.MaxFrameSkip); acc > limit {
		acc = limit
	}

	// Тики считаются целым числом: вычитание tickMs в цикле теряет последний тик на погрешности
	n := int(math.Floor(acc/tickMs + 1e-9))
	if n > e.tuning.MaxFrameSkip {
		n = e.tuning.MaxFrameSkip
	}
	ticks := 0
	for ticks < n {
		e.Tick(next)
		ticks++
		if next.Phase != component.PhasePlaying {
			break
		}
	}
	if next.Phase != component.PhasePlaying {
		acc = 0
	} else {
		acc -= float64(n) * tickMs
	}
	// Остаток держим в [0, tickMs), иначе интерполяция выйдет за 1
	acc = math.Max(0, math.Min(acc, math.Nextafter(tickMs, 0)))
	next.AccumulatorMs = acc
	next.Interpolation = acc / tickMs
	return next, ticks
}

// Tick - один детерминированный шаг. Порядок систем фиксирован.
func (e *Engine) Tick(st *entity.State) {
	dt := e.tuning.TickSeconds()

	e.WaveSystem.Update(st, dt)
	e.MovementSystem.Update(st, dt)
	e.TargetingSystem.Update(st)
	e.CombatSystem.Update(st)
	e.ProjectileSystem.Update(st, dt)
	e.StatusEffectSystem.Update(st, dt)
	e.CleanupSystem.Update(st)
	e.EndConditionSystem.Update(st)

	st.Tick++
	st.SimulationTime = float64(st.Tick) * dt
}
