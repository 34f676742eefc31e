// internal/system/cleanup.go
package system

import (
	"grid-tower-defense/internal/component"
	"grid-tower-defense/internal/config"
	"grid-tower-defense/internal/entity"
	"grid-tower-defense/internal/event"
)

// CleanupSystem убирает мёртвых мобов и начисляет за них награду.
// Это единственное место, где платится bounty, поэтому каждый моб оплачивается ровно один раз.
type CleanupSystem struct {
	eventDispatcher *event.Dispatcher
}

func NewCleanupSystem(eventDispatcher *event.Dispatcher) *CleanupSystem {
	return &CleanupSystem{eventDispatcher: eventDispatcher}
}

func (s *CleanupSystem) Update(st *entity.State) {
	for _, id := range st.Mobs.IDs() {
		mob, _ := st.Mobs.Get(id)
		if mob.Alive() {
			continue
		}
		st.Money += mob.Bounty
		st.Mobs.Delete(id)
		s.eventDispatcher.Queue(event.MobKilled, event.MobKilledData{MobID: id, Type: mob.Type, Bounty: mob.Bounty})
	}
	// Цели-призраки сбросит TargetingSystem на следующем тике
}

// EndConditionSystem фиксирует победу или поражение. Поражение важнее победы на одном тике.
type EndConditionSystem struct {
	tuning          config.Tuning
	eventDispatcher *event.Dispatcher
}

func NewEndConditionSystem(tuning config.Tuning, eventDispatcher *event.Dispatcher) *EndConditionSystem {
	return &EndConditionSystem{tuning: tuning, eventDispatcher: eventDispatcher}
}

func (s *EndConditionSystem) Update(st *entity.State) {
	if st.Phase != component.PhasePlaying {
		return
	}
	data := func() event.GameOverData {
		return event.GameOverData{Wave: st.CurrentWave, Lives: st.Lives, Money: st.Money}
	}
	switch {
	case st.Lives <= 0:
		st.Phase = component.PhaseLost
		st.Paused = true
		s.eventDispatcher.Queue(event.GameLost, data())
	case st.CurrentWave >= s.tuning.WaveCount && !st.WaveActive && len(st.SpawnQueue) == 0 && st.Mobs.Len() == 0:
		st.Phase = component.PhaseWon
		st.Paused = true
		s.eventDispatcher.Queue(event.GameWon, data())
	}
}
