package system

import (
	"math"

	"github.com/milk9111/survival/ecs"
	"github.com/milk9111/survival/ecs/component"
)

const defaultHeadshotMultiplier = 1.8

// TakeDamage applies weapon damage to an enemy. Every landed hit emits
// EnemyHit; reaching zero health destroys the enemy. Returns false when e is
// not a living enemy.
func TakeDamage(w *ecs.World, e ecs.Entity, amount float64, headshot bool) bool {
	enemy, ok := ecs.Get(w, e, component.EnemyComponent.Kind())
	if !ok || enemy.State == component.EnemyDead {
		return false
	}
	health, ok := ecs.Get(w, e, component.HealthComponent.Kind())
	if !ok {
		return false
	}

	final := math.Max(0, amount)
	if headshot {
		mult := enemy.HeadshotMultiplier
		if mult <= 0 {
			mult = defaultHeadshotMultiplier
		}
		final *= mult
	}

	health.Current -= final
	pushEvent(w, ecs.EventEnemyHit, ecs.EnemyHit{Entity: e, Amount: final})

	if health.Current <= 0 {
		health.Current = 0
		enemy.State = component.EnemyDead
		ecs.DestroyEntity(w, e)
	}
	return true
}
