package component

import "grid-tower-defense/internal/defs"

// SpawnEntry - развёрнутая группа волны в очереди появления.
type SpawnEntry struct {
	MobType       defs.MobType
	Delay         float64 // сек от начала волны до первого моба
	Count         int
	Spacing       float64 // сек между мобами
	Spawned       int
	NextSpawnTime float64 // абсолютное время симуляции
}

// Done reports whether every mob of the entry has been spawned.
func (e SpawnEntry) Done() bool { return e.Spawned >= e.Count }
