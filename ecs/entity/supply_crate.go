package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/survival/ecs"
	"github.com/milk9111/survival/ecs/component"
	"github.com/milk9111/survival/prefabs"
)

const (
	defaultCrateRange = 3.0
	defaultCrateHold  = 1.5
)

func NewSupplyCrate(w *ecs.World, spec prefabs.CrateSpec, pos cp.Vector) (ecs.Entity, error) {
	entity := ecs.CreateEntity(w)

	if _, err := addBody(w, entity, pos, spec.Radius); err != nil {
		ecs.DestroyEntity(w, entity)
		return 0, fmt.Errorf("supply crate: add body: %w", err)
	}
	if err := ecs.Add(w, entity, component.CrateTagComponent.Kind(), &component.CrateTag{}); err != nil {
		return 0, fmt.Errorf("supply crate: add crate tag: %w", err)
	}
	if err := ecs.Add(w, entity, component.TagComponent.Kind(), &component.Tag{Name: component.TagCrate}); err != nil {
		return 0, fmt.Errorf("supply crate: add tag: %w", err)
	}

	rng := spec.Range
	if rng <= 0 {
		rng = defaultCrateRange
	}
	hold := spec.HoldDuration
	if hold <= 0 {
		hold = defaultCrateHold
	}
	if err := ecs.Add(w, entity, component.SupplyCrateComponent.Kind(), &component.SupplyCrate{
		Range:        rng,
		HoldDuration: hold,
	}); err != nil {
		return 0, fmt.Errorf("supply crate: add crate: %w", err)
	}
	return entity, nil
}
