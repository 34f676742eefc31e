// internal/event/types.go
package event

import (
	"grid-tower-defense/internal/component"
	"grid-tower-defense/internal/defs"
	"grid-tower-defense/pkg/gridmap"
	"grid-tower-defense/pkg/utils"
)

const (
	MobSpawned      EventType = "MobSpawned"
	MobKilled       EventType = "MobKilled"  // Моб убит, награда начислена
	MobLeaked       EventType = "MobLeaked"  // Моб дошёл до базы
	ProjectileFired EventType = "ProjectileFired"
	ProjectileHit   EventType = "ProjectileHit"
	EffectApplied   EventType = "EffectApplied"
	TowerPlaced     EventType = "TowerPlaced"   // Башня построена
	TowerUpgraded   EventType = "TowerUpgraded"
	TowerSold       EventType = "TowerSold"
	WaveStarted     EventType = "WaveStarted"
	WaveCompleted   EventType = "WaveCompleted" // Волна закончилась
	GameWon         EventType = "GameWon"
	GameLost        EventType = "GameLost"
)

type MobSpawnedData struct {
	MobID string
	Type  defs.MobType
	Wave  int
	HP    float64
}

type MobKilledData struct {
	MobID  string
	Type   defs.MobType
	Bounty int
}

type MobLeakedData struct {
	MobID          string
	LivesRemaining int
}

type ProjectileFiredData struct {
	ProjectileID string
	TowerID      string
	TargetID     string
}

type ProjectileHitData struct {
	ProjectileID string
	TargetID     string
	Position     utils.Vec2
	Splash       bool
	Radius       float64    // пиксели, 0 без сплэша
	MobsHit      int
}

type EffectAppliedData struct {
	MobID  string
	Effect component.Effect
}

type TowerPlacedData struct {
	TowerID string
	Kind    defs.TowerKind
	Cell    gridmap.Coord
	Cost    int
}

type TowerUpgradedData struct {
	TowerID string
	Tier    int
	Cost    int
}

type TowerSoldData struct {
	TowerID string
	Cell    gridmap.Coord
	Refund  int
}

type WaveData struct {
	Wave   int
	Reward int // только для WaveCompleted
}

type GameOverData struct {
	Wave  int
	Lives int
	Money int
}
