package system

import (
	"github.com/milk9111/survival/ecs"
	"github.com/milk9111/survival/ecs/component"
)

// RegisterTracker installs the destroy hook that reports tracked enemies. It
// runs for every destruction path (weapon kill, explosion, session reset) and
// fires at most once per tracker.
func RegisterTracker(w *ecs.World) {
	w.OnDestroy(func(w *ecs.World, e ecs.Entity) {
		tracker, ok := ecs.Get(w, e, component.TrackerComponent.Kind())
		if !ok || tracker.Fired {
			return
		}
		tracker.Fired = true
		pushEvent(w, ecs.EventEnemyDestroyed, ecs.EnemyDestroyed{Entity: e, Reward: tracker.Reward})
	})
}
