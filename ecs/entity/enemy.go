package entity

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/survival/common"
	"github.com/milk9111/survival/ecs"
	"github.com/milk9111/survival/ecs/component"
	"github.com/milk9111/survival/prefabs"
)

// Archetype defaults used when a row leaves a field unset.
const (
	defaultEnemyRadius     = 0.5
	defaultWindup          = 1.0
	defaultActive          = 0.2
	defaultCooldown        = 1.2
	defaultAttackRange     = 2.0
	defaultSpecialDuration = 3.0
	defaultHeadshot        = 1.8
)

// EnemyParams is everything needed to spawn one enemy.
type EnemyParams struct {
	Archetype  prefabs.ArchetypeSpec
	Difficulty prefabs.DifficultySpec
	Tier       common.Difficulty
	Position   cp.Vector
	KillReward int
	// Now is the world time at spawn; the first special fires one interval later.
	Now float64
}

// NewEnemy builds an enemy with difficulty-scaled stats, a tracker carrying
// its kill reward, a head zone and an attack hitbox as children.
func NewEnemy(w *ecs.World, p EnemyParams) (_ ecs.Entity, err error) {
	arch := p.Archetype
	if arch.Name == "" {
		return 0, fmt.Errorf("enemy: archetype without name")
	}

	entity := ecs.CreateEntity(w)
	defer func() {
		if err != nil {
			// A half-built enemy never counted toward the wave.
			ecs.Remove(w, entity, component.TrackerComponent.Kind())
			ecs.DestroyEntity(w, entity)
		}
	}()

	radius := arch.Radius
	if radius <= 0 {
		radius = defaultEnemyRadius
	}
	body, err := addBody(w, entity, p.Position, radius)
	if err != nil {
		return 0, fmt.Errorf("enemy: add body: %w", err)
	}

	speedMult := p.Difficulty.Speed(p.Tier)
	damageMult := p.Difficulty.Damage(p.Tier)
	attackRange := orDefault(arch.AttackRange, defaultAttackRange)

	if err := ecs.Add(w, entity, component.EnemyTagComponent.Kind(), &component.EnemyTag{}); err != nil {
		return 0, fmt.Errorf("enemy: add enemy tag: %w", err)
	}
	if err := ecs.Add(w, entity, component.TagComponent.Kind(), &component.Tag{Name: component.TagEnemy}); err != nil {
		return 0, fmt.Errorf("enemy: add tag: %w", err)
	}
	if err := ecs.Add(w, entity, component.EnemyComponent.Kind(), &component.Enemy{
		Archetype:          arch.Name,
		State:              component.EnemyChasing,
		Boss:               arch.Boss,
		WalkSpeed:          arch.WalkSpeed * speedMult,
		RunSpeed:           arch.RunSpeed * speedMult,
		Damage:             arch.Damage * damageMult,
		AttackRange:        attackRange,
		HeadshotMultiplier: orDefault(arch.HeadshotMultiplier, defaultHeadshot),
		Opacity:            1,
	}); err != nil {
		return 0, fmt.Errorf("enemy: add enemy component: %w", err)
	}
	if err := ecs.Add(w, entity, component.HealthComponent.Kind(), &component.Health{Max: arch.MaxHealth, Current: arch.MaxHealth}); err != nil {
		return 0, fmt.Errorf("enemy: add health: %w", err)
	}
	if err := ecs.Add(w, entity, component.AttackCycleComponent.Kind(), &component.AttackCycle{
		Windup:   orDefault(arch.Windup, defaultWindup),
		Active:   orDefault(arch.Active, defaultActive),
		Cooldown: orDefault(arch.Cooldown, defaultCooldown),
	}); err != nil {
		return 0, fmt.Errorf("enemy: add attack cycle: %w", err)
	}
	if err := ecs.Add(w, entity, component.NavAgentComponent.Kind(), &component.NavAgent{StoppingDistance: attackRange * 0.5}); err != nil {
		return 0, fmt.Errorf("enemy: add nav agent: %w", err)
	}
	if err := ecs.Add(w, entity, component.TrackerComponent.Kind(), &component.Tracker{Reward: p.KillReward}); err != nil {
		return 0, fmt.Errorf("enemy: add tracker: %w", err)
	}

	special := specialConfig(arch.Special)
	if err := ecs.Add(w, entity, component.SpecialComponent.Kind(), &component.Special{
		Config: special,
		NextAt: p.Now + special.Interval,
	}); err != nil {
		return 0, fmt.Errorf("enemy: add special: %w", err)
	}
	if special.Kind == component.SpecialScript {
		if err := ecs.Add(w, entity, component.AIScriptComponent.Kind(), &component.AIScript{Name: special.Script}); err != nil {
			return 0, fmt.Errorf("enemy: add ai script: %w", err)
		}
	}

	if arch.TimeScaling {
		tables := p.Difficulty.TimeScaling
		if err := ecs.Add(w, entity, component.TimeScalingComponent.Kind(), &component.TimeScaling{
			Interval:       common.TierValue(tables.Interval, p.Tier, 0),
			SpeedIncrease:  common.TierValue(tables.SpeedIncrease, p.Tier, 0),
			WindupDecrease: common.TierValue(tables.WindupDecrease, p.Tier, 0),
			MinWindup:      tables.MinWindup,
		}); err != nil {
			return 0, fmt.Errorf("enemy: add time scaling: %w", err)
		}
	}

	head, err := addChildShape(w, entity, body, radius*0.45, cp.Vector{Y: -radius * 0.85}, component.TagHitZone)
	if err != nil {
		return 0, fmt.Errorf("enemy: add head zone: %w", err)
	}
	if err := ecs.Add(w, head, component.HitZoneComponent.Kind(), &component.HitZone{Zone: component.HitZoneHead}); err != nil {
		return 0, fmt.Errorf("enemy: add head zone: %w", err)
	}

	hitbox, err := addChildShape(w, entity, body, math.Max(radius, attackRange*0.5), cp.Vector{}, component.TagEnemyHitbox)
	if err != nil {
		return 0, fmt.Errorf("enemy: add hitbox: %w", err)
	}
	if err := ecs.Add(w, hitbox, component.HitboxComponent.Kind(), &component.Hitbox{Radius: attackRange}); err != nil {
		return 0, fmt.Errorf("enemy: add hitbox: %w", err)
	}

	return entity, nil
}

func specialConfig(s prefabs.SpecialSpec) component.SpecialConfig {
	kind := component.SpecialKind(s.Kind)
	cfg := component.SpecialConfig{
		Kind:            kind,
		Interval:        s.Interval,
		Duration:        s.Duration,
		Range:           s.Range,
		ShotInterval:    s.ShotInterval,
		ShotCount:       s.ShotCount,
		ShotSpacing:     s.ShotSpacing,
		ProjectileSpeed: s.ProjectileSpeed,
		Projectile:      s.Projectile,
		SustainDuration: s.SustainDuration,
		SustainOpacity:  s.SustainOpacity,
		CastOpacity:     s.CastOpacity,
		TeleportRadius:  s.TeleportRadius,
		PauseDuration:   s.PauseDuration,
		DamageScale:     s.DamageScale,
		BlocksAttack:    s.BlocksAttack,
		BlocksMovement:  s.BlocksMovement,
		Script:          s.Script,
	}
	if kind != component.SpecialNone && cfg.Duration <= 0 {
		cfg.Duration = defaultSpecialDuration
	}
	return cfg
}

func orDefault(v, def float64) float64 {
	if v <= 0 {
		return def
	}
	return v
}
