// internal/defs/types.go
package defs

// TowerKind - вид башни. Закрытый набор: каждый switch по виду обязан покрыть все три.
type TowerKind string

const (
	TowerArrow  TowerKind = "arrow"
	TowerCannon TowerKind = "cannon"
	TowerFrost  TowerKind = "frost"
)

// TowerKinds lists every tower kind in build-bar order.
var TowerKinds = []TowerKind{TowerArrow, TowerCannon, TowerFrost}

// Instant reports whether the kind hits its target directly instead of firing a projectile.
func (k TowerKind) Instant() bool {
	switch k {
	case TowerFrost:
		return true
	case TowerArrow, TowerCannon:
		return false
	default:
		return false
	}
}

// Valid reports whether k is a known tower kind.
func (k TowerKind) Valid() bool {
	switch k {
	case TowerArrow, TowerCannon, TowerFrost:
		return true
	default:
		return false
	}
}

// MobType - вид моба.
type MobType string

const (
	MobNormal MobType = "normal"
	MobFast   MobType = "fast"
	MobTank   MobType = "tank"
	MobFlying MobType = "flying"
)

// MobTypes lists every mob type.
var MobTypes = []MobType{MobNormal, MobFast, MobTank, MobFlying}

// EffectType - вид статус-эффекта.
type EffectType string

const (
	EffectSlow       EffectType = "SLOW"
	EffectDOT        EffectType = "DOT"
	EffectArmorBreak EffectType = "ARMOR_BREAK"
)
