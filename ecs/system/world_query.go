package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/survival/ecs"
	"github.com/milk9111/survival/ecs/component"
)

// entityPosition prefers the physics body and falls back to the transform.
func entityPosition(w *ecs.World, e ecs.Entity) (cp.Vector, bool) {
	if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && body.Body != nil {
		return body.Body.Position(), true
	}
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		return cp.Vector{X: t.X, Y: t.Y}, true
	}
	return cp.Vector{}, false
}

func playerPosition(w *ecs.World) (ecs.Entity, cp.Vector, bool) {
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return 0, cp.Vector{}, false
	}
	pos, ok := entityPosition(w, player)
	return player, pos, ok
}

func hasTag(w *ecs.World, e ecs.Entity, names []string) bool {
	tag, ok := ecs.Get(w, e, component.TagComponent.Kind())
	if !ok {
		return false
	}
	for _, name := range names {
		if name != "" && name == tag.Name {
			return true
		}
	}
	return false
}

// enemyRoot walks the owner chain from e to the entity carrying the Enemy
// capability.
func enemyRoot(w *ecs.World, e ecs.Entity) (ecs.Entity, bool) {
	for cur, depth := e, 0; depth < 16; depth++ {
		if !ecs.IsAlive(w, cur) {
			return 0, false
		}
		if ecs.Has(w, cur, component.EnemyComponent.Kind()) {
			return cur, true
		}
		parent, ok := ecs.Owner(w, cur)
		if !ok {
			return 0, false
		}
		cur = parent
	}
	return 0, false
}

func pushEvent(w *ecs.World, typ ecs.EventType, data any) {
	w.Events().Push(ecs.Event{Type: typ, Data: data})
}
