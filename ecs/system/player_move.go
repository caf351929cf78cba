package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/survival/common"
	"github.com/milk9111/survival/ecs"
	"github.com/milk9111/survival/ecs/component"
)

const defaultPlayerMoveSpeed = 6.0

type PlayerMoveSystem struct{}

func NewPlayerMoveSystem() *PlayerMoveSystem {
	return &PlayerMoveSystem{}
}

func (p *PlayerMoveSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	entities := ecs.Query(w,
		component.PlayerTagComponent.Kind(),
		component.InputComponent.Kind(),
		component.PhysicsBodyComponent.Kind(),
	)
	for _, e := range entities {
		input, ok := ecs.Get(w, e, component.InputComponent.Kind())
		if !ok {
			continue
		}
		bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !ok || bodyComp.Body == nil {
			continue
		}

		speed := defaultPlayerMoveSpeed
		if player, ok := ecs.Get(w, e, component.PlayerComponent.Kind()); ok && player.MoveSpeed > 0 {
			speed = player.MoveSpeed
		}

		x, y, l := common.Normalize(input.MoveX, input.MoveY)
		if l > 1 {
			l = 1
		}
		bodyComp.Body.SetVelocityVector(cp.Vector{X: x * speed * l, Y: y * speed * l})
	}
}
