package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/survival/common"
	"github.com/milk9111/survival/ecs"
	"github.com/milk9111/survival/ecs/component"
)

// ProjectileSystem detonates projectiles on contact. Enemy projectiles hurt
// the player, player projectiles hurt enemies; damage falls off linearly from
// the blast center to the blast radius. Projectiles that time out are removed
// by the TTL system without exploding.
type ProjectileSystem struct{}

func NewProjectileSystem() *ProjectileSystem {
	return &ProjectileSystem{}
}

func (s *ProjectileSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	player, playerPos, playerOK := playerPosition(w)
	playerRadius := 0.0
	if body, ok := ecs.Get(w, player, component.PhysicsBodyComponent.Kind()); ok {
		playerRadius = body.Radius
	}

	ecs.ForEach(w, component.ProjectileComponent.Kind(), func(e ecs.Entity, p *component.Projectile) {
		if p.Exploded {
			return
		}
		pos, ok := entityPosition(w, e)
		if !ok {
			return
		}

		if p.TargetsPlayer {
			if !playerOK || pos.Distance(playerPos) > p.ContactRadius+playerRadius {
				return
			}
		} else if !touchesEnemy(w, pos, p.ContactRadius) {
			return
		}

		Explode(w, e, pos)
	})
}

func touchesEnemy(w *ecs.World, pos cp.Vector, radius float64) bool {
	for _, hit := range w.PhysicsWorld().Overlap(pos, radius) {
		if hasTag(w, hit, []string{component.TagEnemyHitbox}) {
			continue
		}
		if _, ok := enemyRoot(w, hit); ok {
			return true
		}
	}
	return false
}

// ExplosionDamage is the falloff damage at dist from the blast center.
func ExplosionDamage(direct, radius, dist float64) float64 {
	t := common.Clamp01(dist / max(0.01, radius))
	return common.Lerp(direct, 0, t)
}

// Explode applies a projectile's blast at pos once and destroys it.
func Explode(w *ecs.World, e ecs.Entity, pos cp.Vector) {
	p, ok := ecs.Get(w, e, component.ProjectileComponent.Kind())
	if !ok || p.Exploded {
		return
	}
	p.Exploded = true

	if p.TargetsPlayer {
		if _, playerPos, ok := playerPosition(w); ok {
			if dist := pos.Distance(playerPos); dist <= p.Radius {
				pushEvent(w, ecs.EventPlayerDamaged, ecs.PlayerDamaged{
					Source: ecs.FromRef(p.Shooter),
					Amount: ExplosionDamage(p.Damage, p.Radius, dist),
				})
			}
		}
	} else if pw := w.PhysicsWorld(); pw != nil {
		damaged := make(map[ecs.Entity]bool)
		for _, hit := range pw.Overlap(pos, p.Radius) {
			root, ok := enemyRoot(w, hit)
			if !ok || damaged[root] {
				continue
			}
			damaged[root] = true
			rootPos, ok := entityPosition(w, root)
			if !ok {
				continue
			}
			TakeDamage(w, root, ExplosionDamage(p.Damage, p.Radius, pos.Distance(rootPos)), false)
		}
	}

	ecs.DestroyEntity(w, e)
}
