// internal/system/wave.go
package system

import (
	"log"

	"grid-tower-defense/internal/component"
	"grid-tower-defense/internal/config"
	"grid-tower-defense/internal/defs"
	"grid-tower-defense/internal/entity"
	"grid-tower-defense/internal/event"
	"grid-tower-defense/internal/utils"
	geom "grid-tower-defense/pkg/utils"
)

type WaveSystem struct {
	tuning          config.Tuning
	library         *defs.Library
	ids             *utils.IDGenerator
	eventDispatcher *event.Dispatcher
}

func NewWaveSystem(tuning config.Tuning, library *defs.Library, ids *utils.IDGenerator, eventDispatcher *event.Dispatcher) *WaveSystem {
	return &WaveSystem{
		tuning:          tuning,
		library:         library,
		ids:             ids,
		eventDispatcher: eventDispatcher,
	}
}

// Update ведёт отсчёт до следующей волны, выпускает мобов по расписанию и закрывает пройденную волну.
func (s *WaveSystem) Update(st *entity.State, deltaTime float64) {
	if !st.WaveActive {
		if st.CurrentWave >= s.tuning.WaveCount {
			return
		}
		st.WaveTimerMs -= deltaTime * 1000
		if st.WaveTimerMs > 0 {
			return
		}
		s.StartWave(st)
	}

	s.spawnDue(st)

	if len(st.SpawnQueue) == 0 && st.MobsFromWave(st.CurrentWave) == 0 {
		s.completeWave(st)
	}
}

// StartWave разворачивает описание следующей волны в очередь появления.
func (s *WaveSystem) StartWave(st *entity.State) {
	st.CurrentWave++
	st.WaveActive = true
	st.WaveTimerMs = 0

	wave, ok := s.library.Wave(st.CurrentWave)
	if !ok {
		log.Printf("Error: no wave definition for wave %d", st.CurrentWave)
		return
	}
	st.SpawnQueue = st.SpawnQueue[:0]
	for _, entry := range wave.Entries {
		delay := entry.Delay.Seconds()
		st.SpawnQueue = append(st.SpawnQueue, component.SpawnEntry{
			MobType:       entry.MobType,
			Delay:         delay,
			Count:         entry.Count,
			Spacing:       entry.Spacing.Seconds(),
			NextSpawnTime: st.SimulationTime + delay,
		})
	}
	s.eventDispatcher.Queue(event.WaveStarted, event.WaveData{Wave: st.CurrentWave})
}

// spawnDue выпускает всех мобов, чьё время подошло, в порядке очереди.
func (s *WaveSystem) spawnDue(st *entity.State) {
	kept := st.SpawnQueue[:0]
	for _, entry := range st.SpawnQueue {
		for !entry.Done() && st.SimulationTime+timeEpsilon >= entry.NextSpawnTime {
			s.spawnMob(st, entry.MobType)
			entry.Spawned++
			entry.NextSpawnTime += entry.Spacing
		}
		if !entry.Done() {
			kept = append(kept, entry)
		}
	}
	st.SpawnQueue = kept
}

func (s *WaveSystem) spawnMob(st *entity.State, mobType defs.MobType) {
	def, ok := s.library.Mobs[mobType]
	if !ok {
		log.Printf("Error: Enemy definition not found for type: %s", mobType)
		return
	}
	if len(st.Path) == 0 {
		log.Printf("Error: cannot spawn %s, no path to base", mobType)
		return
	}

	hp := def.ScaledHP(st.CurrentWave)
	mob := &component.Mob{
		ID:           s.ids.Next("mob"),
		Type:         mobType,
		Position:     st.Path[0],
		PrevPosition: st.Path[0],
		HP:           hp,
		MaxHP:        hp,
		Speed:        def.BaseSpeed * st.Grid.TileSize,
		Armor:        def.BaseArmor,
		Bounty:       def.ScaledBounty(st.CurrentWave),
		Wave:         st.CurrentWave,
	}
	st.Mobs.Set(mob.ID, mob)
	s.eventDispatcher.Queue(event.MobSpawned, event.MobSpawnedData{
		MobID: mob.ID,
		Type:  mobType,
		Wave:  mob.Wave,
		HP:    hp,
	})
}

func (s *WaveSystem) completeWave(st *entity.State) {
	reward := 0
	if wave, ok := s.library.Wave(st.CurrentWave); ok {
		reward = wave.Reward
	}
	st.WaveActive = false
	st.Money += reward
	st.WaveTimerMs = s.tuning.WavePreparationMs
	s.eventDispatcher.Queue(event.WaveCompleted, event.WaveData{Wave: st.CurrentWave, Reward: reward})
}

// EarlyStartBonus - бонус за досрочный запуск, пропорциональный оставшейся доле отсчёта.
func EarlyStartBonus(waveTimerMs float64, tuning config.Tuning) int {
	if tuning.WavePreparationMs <= 0 {
		return 0
	}
	fraction := geom.Clamp(waveTimerMs/tuning.WavePreparationMs, 0, 1)
	return int(float64(tuning.EarlyWaveMaxBonus) * fraction)
}
