package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/survival/common"
	"github.com/milk9111/survival/ecs"
	"github.com/milk9111/survival/ecs/component"
	"github.com/milk9111/survival/ecs/entity"
)

func TestTrackerFiresOnce(t *testing.T) {
	w := newTestWorld()
	e, err := entity.NewEnemy(w, entity.EnemyParams{
		Archetype:  grunt(),
		Tier:       common.Normal,
		Position:   cp.Vector{X: 4},
		KillReward: 25,
	})
	if err != nil {
		t.Fatalf("NewEnemy: %v", err)
	}

	if !TakeDamage(w, e, 100, false) {
		t.Fatalf("TakeDamage on a live enemy should apply")
	}
	if ecs.IsAlive(w, e) {
		t.Fatalf("enemy should be destroyed at zero health")
	}
	if ecs.DestroyEntity(w, e) {
		t.Fatalf("second destroy should be a no-op")
	}
	if TakeDamage(w, e, 10, false) {
		t.Fatalf("TakeDamage on a destroyed enemy should not apply")
	}

	destroyed := drain[ecs.EnemyDestroyed](w)
	if len(destroyed) != 1 || destroyed[0].Reward != 25 || destroyed[0].Entity != e {
		t.Fatalf("expected one EnemyDestroyed with reward 25, got %v", destroyed)
	}
}

func TestTrackerIgnoresUntrackedEntities(t *testing.T) {
	w := newTestWorld()
	player := addPlayer(t, w, 0, 0)
	ecs.DestroyEntity(w, player)
	if n := w.Events().Len(); n != 0 {
		t.Fatalf("destroying an untracked entity pushed %d events", n)
	}
}

func TestDestroyRemovesChildren(t *testing.T) {
	w := newTestWorld()
	e := addEnemy(t, w, grunt(), 0, 0)
	children, _ := ecs.Get(w, e, component.ChildrenComponent.Kind())
	refs := append([]uint64(nil), children.Refs...)
	if len(refs) != 2 {
		t.Fatalf("expected head zone and hitbox children, got %d", len(refs))
	}

	ecs.DestroyEntity(w, e)
	for _, ref := range refs {
		if ecs.IsAlive(w, ecs.FromRef(ref)) {
			t.Fatalf("child %v outlived its enemy", ecs.FromRef(ref))
		}
	}
	if hits := w.PhysicsWorld().Overlap(cp.Vector{}, 2); len(hits) != 0 {
		t.Fatalf("shapes left in the space: %v", hits)
	}
}

func TestTakeDamage(t *testing.T) {
	cases := []struct {
		name       string
		amount     float64
		headshot   bool
		wantHealth float64
		wantHit    float64
	}{
		{"body", 10, false, 40, 10},
		{"headshot", 10, true, 32, 18},
		{"negative_clamped", -5, false, 50, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := newTestWorld()
			e := addEnemy(t, w, grunt(), 0, 0)

			if !TakeDamage(w, e, c.amount, c.headshot) {
				t.Fatalf("TakeDamage returned false")
			}
			h, _ := ecs.Get(w, e, component.HealthComponent.Kind())
			if h.Current != c.wantHealth {
				t.Fatalf("health = %v, want %v", h.Current, c.wantHealth)
			}
			hits := drain[ecs.EnemyHit](w)
			if len(hits) != 1 || hits[0].Amount != c.wantHit {
				t.Fatalf("EnemyHit = %v, want amount %v", hits, c.wantHit)
			}
		})
	}

	w := newTestWorld()
	if TakeDamage(w, ecs.CreateEntity(w), 10, false) {
		t.Fatalf("TakeDamage applied to a non-enemy")
	}
}
