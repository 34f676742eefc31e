// internal/defs/enemies.go
package defs

// MobDefinition holds all the static data for a specific type of mob.
type MobDefinition struct {
	Type          MobType `json:"type"`
	Name          string  `json:"name"`
	BaseHP        float64 `json:"base_hp"`
	BaseSpeed     float64 `json:"base_speed"` // клеток в секунду
	BaseArmor     float64 `json:"base_armor"`
	BaseBounty    int     `json:"base_bounty"`
	HPScaling     float64 `json:"hp_scaling"`     // показатель степени роста HP по волнам
	BountyScaling float64 `json:"bounty_scaling"` // показатель степени роста награды
}
