package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/survival/ecs"
	"github.com/milk9111/survival/ecs/component"
)

// NavSystem steers agents straight at their target. The arena is open floor,
// so the path is the direct line.
type NavSystem struct{}

func NewNavSystem() *NavSystem {
	return &NavSystem{}
}

func (s *NavSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.NavAgentComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, nav *component.NavAgent, body *component.PhysicsBody) {
		if body.Body == nil {
			return
		}
		if nav.Stopped || !nav.HasTarget || nav.Speed <= 0 {
			body.Body.SetVelocityVector(cp.Vector{})
			return
		}

		pos := body.Body.Position()
		delta := cp.Vector{X: nav.TargetX - pos.X, Y: nav.TargetY - pos.Y}
		dist := delta.Length()
		if dist <= nav.StoppingDistance || dist == 0 {
			body.Body.SetVelocityVector(cp.Vector{})
			return
		}

		speed := nav.Speed
		// Don't overshoot the stopping point within one step.
		if dt := w.DeltaTime(); dt > 0 && speed*dt > dist-nav.StoppingDistance {
			speed = (dist - nav.StoppingDistance) / dt
		}
		body.Body.SetVelocityVector(delta.Mult(speed / dist))
	})
}
