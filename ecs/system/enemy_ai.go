package system

import (
	"log/slog"
	"math/rand"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/survival/ecs"
	"github.com/milk9111/survival/ecs/component"
	"github.com/milk9111/survival/prefabs"
)

// EnemyAISystem runs every enemy's behavior each tick: chase the player,
// run the melee attack cycle and dispatch the archetype's special.
type EnemyAISystem struct {
	logger      *slog.Logger
	rng         *rand.Rand
	projectiles map[string]prefabs.ProjectileSpec
	scripts     map[ecs.Entity]*aiScriptRuntime
}

func NewEnemyAISystem(rng *rand.Rand, logger *slog.Logger) *EnemyAISystem {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &EnemyAISystem{
		logger:      logger,
		rng:         rng,
		projectiles: map[string]prefabs.ProjectileSpec{},
		scripts:     map[ecs.Entity]*aiScriptRuntime{},
	}
}

// SetProjectiles swaps the projectile table used by specials.
func (s *EnemyAISystem) SetProjectiles(table map[string]prefabs.ProjectileSpec) {
	if table == nil {
		table = map[string]prefabs.ProjectileSpec{}
	}
	s.projectiles = table
}

func (s *EnemyAISystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	s.dropStaleScripts(w)

	_, playerPos, playerOK := playerPosition(w)
	now := w.Now()
	dt := w.DeltaTime()

	entities := ecs.Query(w,
		component.EnemyComponent.Kind(),
		component.AttackCycleComponent.Kind(),
		component.SpecialComponent.Kind(),
		component.NavAgentComponent.Kind(),
	)
	for _, e := range entities {
		enemy, _ := ecs.Get(w, e, component.EnemyComponent.Kind())
		cycle, _ := ecs.Get(w, e, component.AttackCycleComponent.Kind())
		special, _ := ecs.Get(w, e, component.SpecialComponent.Kind())
		nav, _ := ecs.Get(w, e, component.NavAgentComponent.Kind())
		if enemy == nil || cycle == nil || special == nil || nav == nil || enemy.State == component.EnemyDead {
			continue
		}
		if !playerOK {
			nav.HasTarget = false
			continue
		}
		pos, ok := entityPosition(w, e)
		if !ok {
			continue
		}
		dist := pos.Distance(playerPos)

		applyTimeScaling(w, e, enemy, cycle, now)
		updateMovement(enemy, cycle, special, nav, dist, playerPos)
		s.updateSpecial(w, e, enemy, cycle, special, pos, playerPos, dist, now, dt)
		if !ecs.IsAlive(w, e) {
			continue
		}
		s.updateAttack(w, e, enemy, cycle, special, nav, dist, dt)
		enemy.State = deriveState(cycle, special)
	}
}

func deriveState(cycle *component.AttackCycle, special *component.Special) component.EnemyState {
	switch {
	case cycle.Busy():
		return component.EnemyAttacking
	case special.Active:
		return component.EnemyInSpecial
	default:
		return component.EnemyChasing
	}
}

// updateMovement targets the player unless an attack or a movement-locking
// special holds the enemy in place. Bosses walk near their attack range and
// run otherwise.
func updateMovement(enemy *component.Enemy, cycle *component.AttackCycle, special *component.Special, nav *component.NavAgent, dist float64, playerPos cp.Vector) {
	nav.TargetX = playerPos.X
	nav.TargetY = playerPos.Y
	nav.HasTarget = true

	if cycle.Busy() || special.BlocksMovement() {
		nav.Stopped = true
		return
	}
	nav.Stopped = false

	speed := enemy.RunSpeed
	switch {
	case special.Active && special.Config.Kind == component.SpecialBossCast:
		speed = enemy.WalkSpeed
		if special.Running {
			speed = enemy.RunSpeed
		}
	case enemy.Boss && dist <= enemy.AttackRange*2:
		speed = enemy.WalkSpeed
	}
	if special.Active && special.SpeedScale > 0 {
		speed *= special.SpeedScale
	}
	nav.Speed = speed
}

func (s *EnemyAISystem) updateAttack(w *ecs.World, e ecs.Entity, enemy *component.Enemy, cycle *component.AttackCycle, special *component.Special, nav *component.NavAgent, dist, dt float64) {
	if !cycle.Busy() {
		if dist > enemy.AttackRange || special.BlocksAttack() {
			return
		}
		cycle.Phase = component.AttackWindup
		cycle.Elapsed = 0
		cycle.DamageApplied = false
		nav.Stopped = true
		return
	}
	advanceAttack(w, e, enemy, cycle, special, dt)
}

// advanceAttack moves the cycle through windup, active and cooldown. Damage
// is applied once, on the windup to active edge.
func advanceAttack(w *ecs.World, e ecs.Entity, enemy *component.Enemy, cycle *component.AttackCycle, special *component.Special, dt float64) {
	cycle.Elapsed += dt
	for {
		switch cycle.Phase {
		case component.AttackWindup:
			if cycle.Elapsed < cycle.Windup {
				return
			}
			cycle.Elapsed -= cycle.Windup
			cycle.Phase = component.AttackActive
			if !cycle.DamageApplied {
				cycle.DamageApplied = true
				pushEvent(w, ecs.EventPlayerDamaged, ecs.PlayerDamaged{Source: e, Amount: AttackDamage(enemy, special)})
			}
			setHitboxActive(w, e, true)
		case component.AttackActive:
			if cycle.Elapsed < cycle.Active {
				return
			}
			cycle.Elapsed -= cycle.Active
			cycle.Phase = component.AttackCooldown
			setHitboxActive(w, e, false)
		case component.AttackCooldown:
			if cycle.Elapsed < cycle.Cooldown {
				return
			}
			cycle.Phase = component.AttackIdle
			cycle.Elapsed = 0
			return
		default:
			return
		}
	}
}

// AttackDamage is the enemy's scaled melee damage, reduced while a deflect
// special is up.
func AttackDamage(enemy *component.Enemy, special *component.Special) float64 {
	damage := enemy.Damage
	if special != nil && special.Deflecting {
		scale := special.Config.DamageScale
		if scale <= 0 {
			scale = 0.5
		}
		damage *= scale
	}
	return damage
}

func setHitboxActive(w *ecs.World, e ecs.Entity, active bool) {
	children, ok := ecs.Get(w, e, component.ChildrenComponent.Kind())
	if !ok {
		return
	}
	for _, ref := range children.Refs {
		if hb, ok := ecs.Get(w, ecs.FromRef(ref), component.HitboxComponent.Kind()); ok {
			hb.Active = active
		}
	}
}

// applyTimeScaling steps run speed up and windup down for every full interval
// of match time.
func applyTimeScaling(w *ecs.World, e ecs.Entity, enemy *component.Enemy, cycle *component.AttackCycle, now float64) {
	ts, ok := ecs.Get(w, e, component.TimeScalingComponent.Kind())
	if !ok || ts.Interval <= 0 {
		return
	}
	target := int(now / ts.Interval)
	for ts.Steps < target {
		ts.Steps++
		enemy.RunSpeed += ts.SpeedIncrease
		cycle.Windup = max(ts.MinWindup, cycle.Windup-ts.WindupDecrease)
	}
}

func (s *EnemyAISystem) dropStaleScripts(w *ecs.World) {
	for e := range s.scripts {
		if !ecs.IsAlive(w, e) {
			delete(s.scripts, e)
		}
	}
}
