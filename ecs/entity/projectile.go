package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/survival/ecs"
	"github.com/milk9111/survival/ecs/component"
)

// Explosion defaults.
const (
	DefaultProjectileDamage   = 20.0
	DefaultProjectileRadius   = 4.0
	DefaultProjectileLifetime = 4.0
)

type ProjectileParams struct {
	Position      cp.Vector
	Velocity      cp.Vector
	Damage        float64
	Radius        float64
	ContactRadius float64
	Lifetime      float64
	TargetsPlayer bool
	Shooter       ecs.Entity
}

// NewProjectile spawns an explosive. Projectiles carry a body but no shape so
// hitscan rays pass through them.
func NewProjectile(w *ecs.World, p ProjectileParams) (ecs.Entity, error) {
	entity := ecs.CreateEntity(w)

	body, err := addBody(w, entity, p.Position, 0)
	if err != nil {
		ecs.DestroyEntity(w, entity)
		return 0, fmt.Errorf("projectile: add body: %w", err)
	}
	body.SetVelocityVector(p.Velocity)

	damage := p.Damage
	if damage <= 0 {
		damage = DefaultProjectileDamage
	}
	radius := p.Radius
	if radius <= 0 {
		radius = DefaultProjectileRadius
	}
	lifetime := p.Lifetime
	if lifetime <= 0 {
		lifetime = DefaultProjectileLifetime
	}
	contact := p.ContactRadius
	if contact <= 0 {
		contact = 0.5
	}

	if err := ecs.Add(w, entity, component.ProjectileTagComponent.Kind(), &component.ProjectileTag{}); err != nil {
		return 0, fmt.Errorf("projectile: add projectile tag: %w", err)
	}
	if err := ecs.Add(w, entity, component.ProjectileComponent.Kind(), &component.Projectile{
		Damage:        damage,
		Radius:        radius,
		ContactRadius: contact,
		VelocityX:     p.Velocity.X,
		VelocityY:     p.Velocity.Y,
		TargetsPlayer: p.TargetsPlayer,
		Shooter:       p.Shooter.Ref(),
	}); err != nil {
		return 0, fmt.Errorf("projectile: add projectile: %w", err)
	}
	if err := ecs.Add(w, entity, component.TTLComponent.Kind(), &component.TTL{Remaining: lifetime}); err != nil {
		return 0, fmt.Errorf("projectile: add ttl: %w", err)
	}
	return entity, nil
}
