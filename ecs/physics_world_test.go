package ecs

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
)

func addCircleEntity(w *World, pw *PhysicsWorld, pos cp.Vector, radius float64) Entity {
	e := CreateEntity(w)
	body := pw.AddBody(e, pos)
	pw.AddCircle(e, body, radius, cp.Vector{})
	return e
}

func TestRaycastSortedByDistance(t *testing.T) {
	w := NewWorld()
	pw := NewPhysicsWorld()
	far := addCircleEntity(w, pw, cp.Vector{X: 10}, 1)
	near := addCircleEntity(w, pw, cp.Vector{X: 4}, 1)
	addCircleEntity(w, pw, cp.Vector{Y: 10}, 1)

	hits := pw.Raycast(cp.Vector{}, cp.Vector{X: 2}, 20)
	if len(hits) != 2 {
		t.Fatalf("expected 2 hits, got %v", hits)
	}
	if hits[0].Entity != near || hits[1].Entity != far {
		t.Fatalf("hits out of order: %v", hits)
	}
	if math.Abs(hits[0].Distance-3) > 1e-6 || math.Abs(hits[1].Distance-9) > 1e-6 {
		t.Fatalf("distances = %v, %v", hits[0].Distance, hits[1].Distance)
	}

	cases := []struct {
		name string
		dir  cp.Vector
		max  float64
	}{
		{"zero_dir", cp.Vector{}, 20},
		{"zero_range", cp.Vector{X: 1}, 0},
		{"short", cp.Vector{X: 1}, 2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := pw.Raycast(cp.Vector{}, c.dir, c.max); len(got) != 0 {
				t.Fatalf("expected no hits, got %v", got)
			}
		})
	}
}

func TestOverlapDistinctEntities(t *testing.T) {
	w := NewWorld()
	pw := NewPhysicsWorld()
	e := CreateEntity(w)
	body := pw.AddBody(e, cp.Vector{})
	pw.AddCircle(e, body, 0.5, cp.Vector{})
	pw.AddCircle(e, body, 0.2, cp.Vector{X: 0.5})
	addCircleEntity(w, pw, cp.Vector{X: 6}, 0.5)

	got := pw.Overlap(cp.Vector{X: 1}, 1)
	if len(got) != 1 || got[0] != e {
		t.Fatalf("Overlap = %v, want [%v]", got, e)
	}

	got = pw.Overlap(cp.Vector{X: 3}, 3)
	if len(got) != 2 {
		t.Fatalf("expected both entities, got %v", got)
	}
}

func TestTeleportAndRemove(t *testing.T) {
	w := NewWorld()
	pw := NewPhysicsWorld()
	parent := addCircleEntity(w, pw, cp.Vector{}, 0.5)
	body, _ := pw.Body(parent)
	child := CreateEntity(w)
	pw.AddCircle(child, body, 0.3, cp.Vector{Y: 1})

	if !pw.Teleport(parent, cp.Vector{X: 10}) {
		t.Fatalf("teleport failed")
	}
	if len(pw.Overlap(cp.Vector{}, 1)) != 0 {
		t.Fatalf("shapes left behind after teleport")
	}
	if got := pw.Overlap(cp.Vector{X: 10, Y: 1}, 0.1); len(got) != 1 || got[0] != child {
		t.Fatalf("child shape did not follow its body: %v", got)
	}

	pw.RemoveEntity(parent)
	if _, ok := pw.Body(parent); ok {
		t.Fatalf("body still registered")
	}
	if got := pw.Overlap(cp.Vector{X: 10}, 3); len(got) != 0 {
		t.Fatalf("shapes left in the space: %v", got)
	}
	if pw.Teleport(parent, cp.Vector{}) {
		t.Fatalf("teleport of a removed body should fail")
	}
}

func TestStepIntegratesKinematicVelocity(t *testing.T) {
	w := NewWorld()
	pw := NewPhysicsWorld()
	e := addCircleEntity(w, pw, cp.Vector{}, 0.5)
	body, _ := pw.Body(e)
	body.SetVelocity(2, 0)

	pw.Step(0.5)
	if pos := body.Position(); math.Abs(pos.X-1) > 1e-9 || math.Abs(pos.Y) > 1e-9 {
		t.Fatalf("position after step = %v, want (1,0)", pos)
	}
}

func TestTeleportedShapesAnswerQueries(t *testing.T) {
	w := NewWorld()
	pw := NewPhysicsWorld()
	e := addCircleEntity(w, pw, cp.Vector{}, 0.5)

	if !pw.Teleport(e, cp.Vector{X: 6}) {
		t.Fatalf("teleport failed")
	}
	cases := []struct {
		name   string
		center cp.Vector
		radius float64
		want   int
	}{
		{"edge_inside", cp.Vector{X: 7}, 0.6, 1},
		{"edge_outside", cp.Vector{X: 7}, 0.4, 0},
		{"old_spot", cp.Vector{}, 0.5, 0},
		{"center", cp.Vector{X: 6}, 0, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := pw.Overlap(c.center, c.radius); len(got) != c.want {
				t.Fatalf("Overlap(%v, %v) = %v, want %d hits", c.center, c.radius, got, c.want)
			}
		})
	}

	pw.Step(1.0 / 60)
	hits := pw.Raycast(cp.Vector{}, cp.Vector{X: 1}, 20)
	if len(hits) != 1 || hits[0].Entity != e || math.Abs(hits[0].Distance-5.5) > 1e-6 {
		t.Fatalf("raycast after teleport = %v, want one hit at 5.5", hits)
	}
}
