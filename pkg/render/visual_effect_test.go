package render

import (
	"testing"

	"grid-tower-defense/internal/component"
	"grid-tower-defense/internal/defs"
	"grid-tower-defense/internal/event"
	"grid-tower-defense/pkg/utils"
)

func TestVisualEffectsFromEvents(t *testing.T) {
	v := NewVisualEffects()
	d := event.NewDispatcher()
	d.Subscribe(event.ProjectileHit, v)
	d.Subscribe(event.EffectApplied, v)

	d.Queue(event.ProjectileHit, event.ProjectileHitData{TargetID: "mob_a"})
	d.Queue(event.ProjectileHit, event.ProjectileHitData{Splash: true, Position: utils.Vec2{X: 10, Y: 10}, Radius: 40})
	d.Queue(event.EffectApplied, event.EffectAppliedData{MobID: "mob_b", Effect: component.Effect{Type: defs.EffectSlow}})
	d.Queue(event.EffectApplied, event.EffectAppliedData{MobID: "mob_c", Effect: component.Effect{Type: defs.EffectDOT}})
	d.Flush()

	if _, ok := v.DamageFlashes["mob_a"]; !ok {
		t.Fatalf("direct hit should flash the target")
	}
	if len(v.Rings) != 1 || v.Rings[0].MaxRadius != 40 {
		t.Fatalf("splash hit should add one ring, got %+v", v.Rings)
	}
	if _, ok := v.FrostFlashes["mob_b"]; !ok {
		t.Fatalf("slow should flash frost")
	}
	if _, ok := v.FrostFlashes["mob_c"]; ok {
		t.Fatalf("only slow flashes frost")
	}
}

func TestVisualEffectsExpire(t *testing.T) {
	v := NewVisualEffects()
	v.OnEvent(event.Event{Type: event.ProjectileHit, Data: event.ProjectileHitData{TargetID: "mob_a"}})
	v.OnEvent(event.Event{Type: event.ProjectileHit, Data: event.ProjectileHitData{Splash: true, Radius: 20}})

	v.Update(0.1)
	if len(v.DamageFlashes) != 1 || len(v.Rings) != 1 {
		t.Fatalf("effects expired too early")
	}
	v.Update(0.25)
	if len(v.DamageFlashes) != 0 || len(v.Rings) != 0 {
		t.Fatalf("effects should be gone, flashes=%d rings=%d", len(v.DamageFlashes), len(v.Rings))
	}
}
