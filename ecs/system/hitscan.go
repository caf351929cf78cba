package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/survival/ecs"
	"github.com/milk9111/survival/ecs/component"
)

// HitResult describes what a hitscan shot resolved to.
type HitResult struct {
	Hit      bool
	Entity   ecs.Entity
	Target   ecs.Entity
	Point    cp.Vector
	Distance float64
	Headshot bool
	Damage   float64
}

// selectHit returns the nearest hit whose entity is not ignore-tagged. hits
// must be sorted by distance.
func selectHit(w *ecs.World, hits []ecs.RayHit, ignore []string) (ecs.RayHit, bool) {
	for _, h := range hits {
		if hasTag(w, h.Entity, ignore) {
			continue
		}
		return h, true
	}
	return ecs.RayHit{}, false
}

// resolveTarget maps a hit entity to the enemy that should take damage. A hit
// zone on the entity or its owner chain wins; otherwise the first Enemy up the
// chain takes unscaled damage.
func resolveTarget(w *ecs.World, hit ecs.Entity, damage float64) (target ecs.Entity, amount float64, headshot bool, ok bool) {
	for cur, depth := hit, 0; depth < 16; depth++ {
		if zone, found := ecs.Get(w, cur, component.HitZoneComponent.Kind()); found {
			root, rootOK := enemyRoot(w, cur)
			if !rootOK {
				return 0, 0, false, false
			}
			if zone.Zone == component.HitZoneHead {
				return root, damage, true, true
			}
			mult := zone.Multiplier
			if mult <= 0 {
				mult = 1
			}
			return root, damage * mult, false, true
		}
		parent, found := ecs.Owner(w, cur)
		if !found {
			break
		}
		cur = parent
	}

	root, found := enemyRoot(w, hit)
	if !found {
		return 0, 0, false, false
	}
	return root, damage, false, true
}

// Hitscan casts a ray from origin along dir and applies damage to whatever it
// resolves to. Misses and ignore-only hits apply nothing.
func Hitscan(w *ecs.World, origin, dir cp.Vector, maxRange, damage float64, ignore []string) HitResult {
	pw := w.PhysicsWorld()
	if pw == nil {
		return HitResult{}
	}

	chosen, ok := selectHit(w, pw.Raycast(origin, dir, maxRange), ignore)
	if !ok {
		return HitResult{}
	}

	res := HitResult{Hit: true, Entity: chosen.Entity, Point: chosen.Point, Distance: chosen.Distance}
	target, amount, headshot, ok := resolveTarget(w, chosen.Entity, damage)
	if !ok {
		return res
	}
	res.Target = target
	res.Headshot = headshot
	res.Damage = amount
	TakeDamage(w, target, amount, headshot)
	return res
}
