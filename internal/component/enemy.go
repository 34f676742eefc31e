package component

import (
	"grid-tower-defense/internal/defs"
	"grid-tower-defense/pkg/utils"
)

// Mob представляет вражескую сущность.
type Mob struct {
	ID           string
	Type         defs.MobType
	Position     utils.Vec2
	PrevPosition utils.Vec2 // позиция на прошлом тике, для интерполяции
	PathIndex    int        // индекс текущей точки пути
	PathProgress float64    // доля пройденного отрезка, [0,1)
	HP           float64
	MaxHP        float64
	Speed        float64 // мировых единиц в секунду
	Armor        float64
	Bounty       int
	Wave         int // номер волны, в которой появился моб
	Effects      []Effect
}

// Alive reports whether the mob still has hit points.
func (m *Mob) Alive() bool { return m.HP > 0 }

// Clone копирует моба вместе со списком эффектов.
func (m *Mob) Clone() *Mob {
	cp := *m
	cp.Effects = append([]Effect(nil), m.Effects...)
	return &cp
}
