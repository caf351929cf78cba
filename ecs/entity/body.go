package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/survival/ecs"
	"github.com/milk9111/survival/ecs/component"
)

// addBody gives e a kinematic body at pos, a Transform and, when radius > 0, a
// circle shape mapped back to e.
func addBody(w *ecs.World, e ecs.Entity, pos cp.Vector, radius float64) (*cp.Body, error) {
	pw := w.PhysicsWorld()
	if pw == nil {
		return nil, fmt.Errorf("no physics world")
	}
	body := pw.AddBody(e, pos)
	if radius > 0 {
		pw.AddCircle(e, body, radius, cp.Vector{})
	}

	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Body: body, Radius: radius}); err != nil {
		return nil, err
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: pos.X, Y: pos.Y}); err != nil {
		return nil, err
	}
	return body, nil
}

// addChildShape creates a child entity with a circle on the parent's body.
func addChildShape(w *ecs.World, parent ecs.Entity, body *cp.Body, radius float64, offset cp.Vector, tag string) (ecs.Entity, error) {
	child := ecs.CreateEntity(w)
	if err := ecs.Attach(w, parent, child); err != nil {
		ecs.DestroyEntity(w, child)
		return 0, err
	}
	if err := ecs.Add(w, child, component.TagComponent.Kind(), &component.Tag{Name: tag}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, child, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Body: body, Radius: radius}); err != nil {
		return 0, err
	}
	w.PhysicsWorld().AddCircle(child, body, radius, offset)
	return child, nil
}
