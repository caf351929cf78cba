package system

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/survival/ecs"
	"github.com/milk9111/survival/ecs/component"
)

func TestPlayerMoveClampsDiagonal(t *testing.T) {
	w := newTestWorld()
	player := addPlayer(t, w, 0, 0)
	input, _ := ecs.Get(w, player, component.InputComponent.Kind())
	input.MoveX, input.MoveY = 1, 1

	w.Advance(0.5)
	NewPlayerMoveSystem().Update(w)
	NewPhysicsSystem().Update(w)

	tr, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	if d := math.Hypot(tr.X, tr.Y); math.Abs(d-3) > 1e-9 {
		t.Fatalf("moved %v, want 3 at default speed", d)
	}
	if math.Abs(tr.X-tr.Y) > 1e-9 {
		t.Fatalf("diagonal move skewed: (%v,%v)", tr.X, tr.Y)
	}
}

func TestNavSystem(t *testing.T) {
	cases := []struct {
		name  string
		start float64
		nav   component.NavAgent
		wantX float64
	}{
		{"chase", 10, component.NavAgent{TargetX: 0, HasTarget: true, Speed: 2, StoppingDistance: 1}, 9},
		{"no_overshoot", 1.5, component.NavAgent{TargetX: 0, HasTarget: true, Speed: 10, StoppingDistance: 1}, 1},
		{"stopped", 10, component.NavAgent{TargetX: 0, HasTarget: true, Speed: 2, Stopped: true}, 10},
		{"no_target", 10, component.NavAgent{Speed: 2}, 10},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := newTestWorld()
			e := ecs.CreateEntity(w)
			body := w.PhysicsWorld().AddBody(e, cp.Vector{X: c.start})
			if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Body: body}); err != nil {
				t.Fatal(err)
			}
			if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: c.start}); err != nil {
				t.Fatal(err)
			}
			nav := c.nav
			if err := ecs.Add(w, e, component.NavAgentComponent.Kind(), &nav); err != nil {
				t.Fatal(err)
			}

			w.Advance(0.5)
			NewNavSystem().Update(w)
			NewPhysicsSystem().Update(w)

			tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
			if math.Abs(tr.X-c.wantX) > 1e-9 || math.Abs(tr.Y) > 1e-9 {
				t.Fatalf("position = (%v,%v), want (%v,0)", tr.X, tr.Y, c.wantX)
			}
		})
	}
}

func TestEnemyClosesInAndAttacks(t *testing.T) {
	w := newTestWorld()
	addPlayer(t, w, 0, 0)
	arch := grunt()
	arch.WalkSpeed = 2
	arch.RunSpeed = 4
	addEnemy(t, w, arch, 12, 0)
	scheduler := ecs.NewScheduler(
		NewEnemyAISystem(testRNG(), testLogger()),
		NewNavSystem(),
		NewPhysicsSystem(),
	)

	var damage []ecs.PlayerDamaged
	for w.Now() < 10 {
		w.Advance(0.05)
		scheduler.Update(w)
		damage = append(damage, drain[ecs.PlayerDamaged](w)...)
	}
	if len(damage) == 0 {
		t.Fatalf("enemy never landed an attack")
	}
	for _, d := range damage {
		if d.Amount != 10 {
			t.Fatalf("attack damage = %v, want 10", d.Amount)
		}
	}
}
