package system

import (
	"io"
	"log/slog"
	"math/rand"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/survival/common"
	"github.com/milk9111/survival/ecs"
	"github.com/milk9111/survival/ecs/component"
	"github.com/milk9111/survival/ecs/entity"
	"github.com/milk9111/survival/prefabs"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testRNG() *rand.Rand {
	return rand.New(rand.NewSource(7))
}

func newTestWorld() *ecs.World {
	w := ecs.NewWorld()
	w.SetPhysicsWorld(ecs.NewPhysicsWorld())
	RegisterTracker(w)
	return w
}

func addPlayer(t *testing.T, w *ecs.World, x, y float64) ecs.Entity {
	t.Helper()
	e, err := entity.NewPlayer(w, prefabs.PlayerSpec{Radius: 0.5, Spawn: prefabs.PointSpec{X: x, Y: y}})
	if err != nil {
		t.Fatalf("NewPlayer: %v", err)
	}
	return e
}

// grunt stands still so tests control distances.
func grunt() prefabs.ArchetypeSpec {
	return prefabs.ArchetypeSpec{
		Name:        "Grunt",
		MaxHealth:   50,
		Damage:      10,
		AttackRange: 2,
		Windup:      1,
		Active:      0.2,
		Cooldown:    1.2,
		Radius:      0.5,
	}
}

func addEnemy(t *testing.T, w *ecs.World, arch prefabs.ArchetypeSpec, x, y float64) ecs.Entity {
	t.Helper()
	e, err := entity.NewEnemy(w, entity.EnemyParams{
		Archetype: arch,
		Tier:      common.Normal,
		Position:  cp.Vector{X: x, Y: y},
		Now:       w.Now(),
	})
	if err != nil {
		t.Fatalf("NewEnemy: %v", err)
	}
	return e
}

func drain[T any](w *ecs.World) []T {
	var out []T
	for _, evt := range w.Events().Drain() {
		if data, ok := evt.Data.(T); ok {
			out = append(out, data)
		}
	}
	return out
}

func countProjectiles(w *ecs.World) int {
	return len(ecs.Query(w, component.ProjectileComponent.Kind()))
}

// runUntil ticks the given systems in steps of dt until the clock reaches end.
func runUntil(w *ecs.World, end, dt float64, systems ...ecs.System) {
	for w.Now() < end-1e-9 {
		w.Advance(dt)
		for _, s := range systems {
			s.Update(w)
		}
	}
}
