// component/tower.go
package component

import (
	"grid-tower-defense/internal/defs"
	"grid-tower-defense/pkg/gridmap"
)

type Tower struct {
	ID              string
	Kind            defs.TowerKind
	Cell            gridmap.Coord // Клетка, на которой стоит башня
	Tier            int           // 1..3, только растёт
	Damage          float64
	Range           float64 // Радиус действия в клетках
	AttackSpeed     float64 // Атак в секунду
	ProjectileSpeed float64 // клеток в секунду, 0 - по умолчанию
	SplashRadius    float64 // в клетках, 0 - без сплэша
	Effects         []defs.EffectType
	Slow            *defs.EffectSpec // замедление мгновенной атаки
	LastAttackTime  float64
	TargetID        string // пусто - цели нет
	Strategy        TargetingStrategy
	TotalSpent      int // сумма постройки и улучшений, для продажи
}

// ApplyTier заменяет боевые характеристики целиком на характеристики уровня.
func (t *Tower) ApplyTier(tier int, stats defs.TierStats) {
	t.Tier = tier
	t.Damage = stats.Damage
	t.Range = stats.Range
	t.AttackSpeed = stats.AttackSpeed
	t.ProjectileSpeed = stats.ProjectileSpeed
	t.SplashRadius = stats.SplashRadius
	t.Effects = append([]defs.EffectType(nil), stats.Effects...)
	t.Slow = nil
	if stats.Slow != nil {
		slow := *stats.Slow
		t.Slow = &slow
	}
}

// Cooldown - минимальный интервал между атаками, в секундах.
func (t *Tower) Cooldown() float64 {
	return 1 / t.AttackSpeed
}

// Clone returns a deep copy.
func (t *Tower) Clone() *Tower {
	cp := *t
	cp.Effects = append([]defs.EffectType(nil), t.Effects...)
	if t.Slow != nil {
		slow := *t.Slow
		cp.Slow = &slow
	}
	return &cp
}
