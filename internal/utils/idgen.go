// internal/utils/idgen.go
package utils

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// IDGenerator выдаёт уникальные идентификаторы сущностей.
// UUID строятся из seeded-генератора, поэтому при одинаковом сиде последовательность повторяется.
type IDGenerator struct {
	rng    *rand.Rand
	issued map[string]struct{}
}

// NewIDGenerator создает генератор с указанным сидом.
// Если сид равен 0, используется текущее время.
func NewIDGenerator(seed int64) *IDGenerator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &IDGenerator{
		rng:    rand.New(rand.NewSource(seed)),
		issued: make(map[string]struct{}),
	}
}

// Next returns a fresh id such as "mob_2f1c...". Ids are never reused by one generator.
func (g *IDGenerator) Next(prefix string) string {
	for {
		u, err := uuid.NewRandomFromReader(g.rng)
		if err != nil {
			// rand.Rand.Read не возвращает ошибок
			panic(err)
		}
		id := prefix + "_" + u.String()
		if _, dup := g.issued[id]; !dup {
			g.issued[id] = struct{}{}
			return id
		}
	}
}
