package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/survival/ecs"
	"github.com/milk9111/survival/ecs/component"
	"github.com/milk9111/survival/prefabs"
)

const defaultPlayerRadius = 0.5

// NewPlayer builds the player: body, input, weapon slot and a weapon shape
// tagged so hitscan skips it.
func NewPlayer(w *ecs.World, spec prefabs.PlayerSpec) (ecs.Entity, error) {
	entity := ecs.CreateEntity(w)

	radius := spec.Radius
	if radius <= 0 {
		radius = defaultPlayerRadius
	}
	body, err := addBody(w, entity, cp.Vector{X: spec.Spawn.X, Y: spec.Spawn.Y}, radius)
	if err != nil {
		ecs.DestroyEntity(w, entity)
		return 0, fmt.Errorf("player: add body: %w", err)
	}

	if err := ecs.Add(w, entity, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		return 0, fmt.Errorf("player: add player tag: %w", err)
	}
	if err := ecs.Add(w, entity, component.TagComponent.Kind(), &component.Tag{Name: component.TagPlayer}); err != nil {
		return 0, fmt.Errorf("player: add tag: %w", err)
	}
	if err := ecs.Add(w, entity, component.PlayerComponent.Kind(), &component.Player{MoveSpeed: spec.MoveSpeed}); err != nil {
		return 0, fmt.Errorf("player: add player: %w", err)
	}
	if err := ecs.Add(w, entity, component.InputComponent.Kind(), &component.Input{AimX: 1}); err != nil {
		return 0, fmt.Errorf("player: add input: %w", err)
	}
	if err := ecs.Add(w, entity, component.WeaponComponent.Kind(), &component.Weapon{Ledger: component.AmmoLedger{}}); err != nil {
		return 0, fmt.Errorf("player: add weapon: %w", err)
	}

	if _, err := addChildShape(w, entity, body, radius*0.4, cp.Vector{X: radius}, component.TagWeapon); err != nil {
		return 0, fmt.Errorf("player: add weapon shape: %w", err)
	}

	return entity, nil
}
