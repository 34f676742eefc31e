package system

import (
	"math"
	"testing"

	"grid-tower-defense/internal/component"
	"grid-tower-defense/internal/defs"
	"grid-tower-defense/internal/event"
	"grid-tower-defense/pkg/gridmap"
	"grid-tower-defense/pkg/utils"
)

func (w *testWorld) addProjectile(owner *component.Tower, target *component.Mob, damage, splash float64) *component.Projectile {
	origin := w.st.Grid.CellCenter(owner.Cell)
	p := &component.Projectile{
		ID:            w.ids.Next("proj"),
		OwnerID:       owner.ID,
		TargetID:      target.ID,
		TargetLastPos: target.Position,
		Position:      origin,
		PrevPosition:  origin,
		Damage:        damage,
		SplashRadius:  splash,
	}
	w.st.Projectiles.Set(p.ID, p)
	return p
}

func TestSplashFalloff(t *testing.T) {
	cases := []struct {
		dist, want float64
	}{
		{0, 100},
		{20, 50},
		{36, 30}, // 1-0.9 ниже пола
		{40, 30},
	}
	for _, c := range cases {
		if got := SplashDamage(100, c.dist, 40, 0.3); math.Abs(got-c.want) > 1e-9 {
			t.Fatalf("dist %.0f: expected %.1f, got %.3f", c.dist, c.want, got)
		}
	}
}

func TestSplashHitsEveryMobInRadius(t *testing.T) {
	w := newTestWorld(t)
	projectiles := NewProjectileSystem(w.tuning, w.lib, w.events, w.effects)
	tower := w.addTower(defs.TowerCannon, gridmap.Coord{Row: 6, Col: 4})
	target := w.addMob(gridmap.Coord{Row: 7, Col: 5}, 100)
	near := w.addMob(gridmap.Coord{Row: 7, Col: 6}, 100) // ровно на краю радиуса в 1 клетку
	far := w.addMob(gridmap.Coord{Row: 7, Col: 8}, 100)
	p := w.addProjectile(tower, target, 20, 1)
	p.Position = target.Position
	p.Effects = []defs.EffectType{defs.EffectArmorBreak}

	projectiles.Update(w.st, w.dt())
	w.step()

	if w.st.Projectiles.Len() != 0 {
		t.Fatalf("projectile must be consumed on hit")
	}
	if target.HP != 80 {
		t.Fatalf("centre takes full damage, hp=%v", target.HP)
	}
	if math.Abs(near.HP-(100-20*0.3)) > 1e-9 {
		t.Fatalf("edge takes the floor fraction, hp=%v", near.HP)
	}
	if far.HP != 100 || len(far.Effects) != 0 {
		t.Fatalf("mob outside the radius was hit")
	}
	if len(target.Effects) != 1 || len(near.Effects) != 1 || near.Effects[0].StackID != tower.ID {
		t.Fatalf("payload must attach to every mob hit: %+v / %+v", target.Effects, near.Effects)
	}
	if w.count(event.ProjectileHit) != 1 {
		t.Fatalf("expected one hit event")
	}
}

func TestVanishedTargetSplashesAtLastPosition(t *testing.T) {
	w := newTestWorld(t)
	projectiles := NewProjectileSystem(w.tuning, w.lib, w.events, w.effects)
	tower := w.addTower(defs.TowerCannon, gridmap.Coord{Row: 6, Col: 4})
	target := w.addMob(gridmap.Coord{Row: 7, Col: 5}, 100)
	bystander := w.addMob(gridmap.Coord{Row: 7, Col: 5}, 100)
	w.addProjectile(tower, target, 20, 1)
	w.st.Mobs.Delete(target.ID)

	projectiles.Update(w.st, w.dt())
	if w.st.Projectiles.Len() != 0 || bystander.HP != 80 {
		t.Fatalf("expected explosion at the last known position, hp=%v", bystander.HP)
	}

	// Без сплэша снаряд просто исчезает
	arrow := w.addTower(defs.TowerArrow, gridmap.Coord{Row: 8, Col: 5})
	other := w.addMob(gridmap.Coord{Row: 7, Col: 6}, 100)
	w.addProjectile(arrow, other, 20, 0)
	w.st.Mobs.Delete(other.ID)
	projectiles.Update(w.st, w.dt())
	if w.st.Projectiles.Len() != 0 || bystander.HP != 80 {
		t.Fatalf("direct projectile with a vanished target must not deal damage")
	}
}

func TestOrphanedProjectileIsDropped(t *testing.T) {
	w := newTestWorld(t)
	projectiles := NewProjectileSystem(w.tuning, w.lib, w.events, w.effects)
	tower := w.addTower(defs.TowerCannon, gridmap.Coord{Row: 6, Col: 4})
	target := w.addMob(gridmap.Coord{Row: 7, Col: 4}, 100)
	p := w.addProjectile(tower, target, 20, 1)
	p.Position = target.Position
	w.st.Towers.Delete(tower.ID)

	projectiles.Update(w.st, w.dt())
	w.step()
	if w.st.Projectiles.Len() != 0 || target.HP != 100 || w.count(event.ProjectileHit) != 0 {
		t.Fatalf("orphaned projectile must vanish without resolving")
	}
}

func TestProjectileDoesNotOvershoot(t *testing.T) {
	w := newTestWorld(t)
	projectiles := NewProjectileSystem(w.tuning, w.lib, w.events, w.effects)
	tower := w.addTower(defs.TowerArrow, gridmap.Coord{Row: 6, Col: 4})
	target := w.addMob(gridmap.Coord{Row: 7, Col: 4}, 100)
	p := w.addProjectile(tower, target, 10, 0)
	// Полклетки до цели, а шаг за тик намного длиннее: без ограничения снаряд перелетел бы
	p.Position = target.Position.Add(utils.Vec2{Y: -w.tuning.TileSize / 2})

	projectiles.Update(w.st, 0.5)
	if target.HP != 90 {
		t.Fatalf("a large step must land on the target, hp=%v", target.HP)
	}
}
