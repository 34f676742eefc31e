// internal/defs/towers.go
package defs

// TierStats - характеристики одного уровня башни. Ноль в ProjectileSpeed/SplashRadius означает "нет".
type TierStats struct {
	Cost            int          `json:"cost"`
	Damage          float64      `json:"damage"`
	Range           float64      `json:"range"`        // в клетках
	AttackSpeed     float64      `json:"attack_speed"` // атак в секунду
	ProjectileSpeed float64      `json:"projectile_speed,omitempty"`
	SplashRadius    float64      `json:"splash_radius,omitempty"`
	Effects         []EffectType `json:"effects,omitempty"`
	Slow            *EffectSpec  `json:"slow,omitempty"` // только для мгновенных башен
}

// TowerDefinition holds all the static data for a specific kind of tower.
type TowerDefinition struct {
	Kind     TowerKind   `json:"kind"`
	Name     string      `json:"name"`
	BaseCost int         `json:"base_cost"`
	Tiers    []TierStats `json:"tiers"` // Tiers[0] - первый уровень
}

// MaxTier is the highest tier a tower can be upgraded to.
const MaxTier = 3

// Tier returns the stats of the given 1-based tier.
func (d TowerDefinition) Tier(tier int) (TierStats, bool) {
	if tier < 1 || tier > len(d.Tiers) {
		return TierStats{}, false
	}
	return d.Tiers[tier-1], true
}

// SpentUpTo - суммарная стоимость постройки и улучшений до tier включительно.
func (d TowerDefinition) SpentUpTo(tier int) int {
	total := d.BaseCost
	for t := 2; t <= tier && t <= len(d.Tiers); t++ {
		total += d.Tiers[t-1].Cost
	}
	return total
}
