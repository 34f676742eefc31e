// pkg/render/visual_effect.go
package render

import (
	"image/color"

	"grid-tower-defense/internal/defs"
	"grid-tower-defense/internal/entity"
	"grid-tower-defense/internal/event"
	"grid-tower-defense/pkg/utils"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	flashDuration = 0.15 // секунды
	ringDuration  = 0.3
)

type splashRing struct {
	Center    utils.Vec2
	MaxRadius float64
	Timer     float64
}

// VisualEffects управляет визуальными эффектами, такими как вспышки урона и кольца взрывов.
// Питается событиями симуляции и живёт только на стороне отрисовки.
type VisualEffects struct {
	DamageFlashes map[string]float64 // id моба -> оставшееся время
	FrostFlashes  map[string]float64
	Rings         []splashRing
}

// NewVisualEffects создает новый слой визуальных эффектов.
func NewVisualEffects() *VisualEffects {
	return &VisualEffects{
		DamageFlashes: make(map[string]float64),
		FrostFlashes:  make(map[string]float64),
	}
}

// OnEvent реализует event.Listener.
func (v *VisualEffects) OnEvent(e event.Event) {
	switch data := e.Data.(type) {
	case event.ProjectileHitData:
		if data.Splash {
			v.Rings = append(v.Rings, splashRing{Center: data.Position, MaxRadius: data.Radius})
		} else if data.TargetID != "" {
			v.DamageFlashes[data.TargetID] = flashDuration
		}
	case event.EffectAppliedData:
		if data.Effect.Type == defs.EffectSlow {
			v.FrostFlashes[data.MobID] = flashDuration
		}
	}
}

// Update обновляет таймеры всех активных эффектов. deltaTime - в секундах.
func (v *VisualEffects) Update(deltaTime float64) {
	for _, flashes := range []map[string]float64{v.DamageFlashes, v.FrostFlashes} {
		for id, t := range flashes {
			t -= deltaTime
			if t <= 0 {
				delete(flashes, id)
				continue
			}
			flashes[id] = t
		}
	}
	alive := v.Rings[:0]
	for _, r := range v.Rings {
		r.Timer += deltaTime
		if r.Timer < ringDuration {
			alive = append(alive, r)
		}
	}
	v.Rings = alive
}

// Reset убирает все эффекты, например при новой игре.
func (v *VisualEffects) Reset() {
	clear(v.DamageFlashes)
	clear(v.FrostFlashes)
	v.Rings = v.Rings[:0]
}

// Draw рисует вспышки поверх мобов снимка и расходящиеся кольца сплэша.
func (v *VisualEffects) Draw(screen *ebiten.Image, st *entity.State, mobRadius float32) {
	for id, t := range v.DamageFlashes {
		v.drawFlash(screen, st, id, t, mobRadius, color.RGBA{255, 255, 255, 255})
	}
	for id, t := range v.FrostFlashes {
		v.drawFlash(screen, st, id, t, mobRadius, color.RGBA{170, 220, 255, 255})
	}
	for _, r := range v.Rings {
		progress := r.Timer / ringDuration
		alpha := uint8(200 * (1 - progress))
		radius := float32(progress * r.MaxRadius)
		vector.StrokeCircle(screen, float32(r.Center.X), float32(r.Center.Y), radius, 2, color.RGBA{255, 140, 0, alpha}, true)
	}
}

func (v *VisualEffects) drawFlash(screen *ebiten.Image, st *entity.State, mobID string, t float64, radius float32, clr color.RGBA) {
	mob, ok := st.Mobs.Get(mobID)
	if !ok {
		return
	}
	pos := utils.LerpVec2(mob.PrevPosition, mob.Position, st.Interpolation)
	clr.A = uint8(255 * t / flashDuration)
	vector.StrokeCircle(screen, float32(pos.X), float32(pos.Y), radius+3, 2, clr, true)
}
