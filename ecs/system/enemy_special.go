package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/survival/common"
	"github.com/milk9111/survival/ecs"
	"github.com/milk9111/survival/ecs/component"
	"github.com/milk9111/survival/ecs/entity"
)

const (
	defaultShotInterval    = 1.0
	defaultEnemyShotSpeed  = 14.0
	defaultTeleportRadius  = 8.0
	defaultLineStrikeShots = 6
	defaultLineSpacing     = 2.0
)

// updateSpecial fires the special when its interval comes due and advances
// a running one. A due special that is already running or out of range is
// skipped until the next interval. One that blocks attacks stays due while
// an attack is in flight and starts on the first idle tick, before a new
// attack can begin.
func (s *EnemyAISystem) updateSpecial(w *ecs.World, e ecs.Entity, enemy *component.Enemy, cycle *component.AttackCycle, sp *component.Special, pos, playerPos cp.Vector, dist, now, dt float64) {
	cfg := sp.Config
	if cfg.Kind == component.SpecialNone {
		return
	}

	started := false
	if cfg.Interval > 0 && now >= sp.NextAt {
		inRange := cfg.Range <= 0 || dist <= cfg.Range
		switch {
		case sp.Active || !inRange:
			sp.NextAt = now + cfg.Interval
		case cfg.BlocksAttack && cycle.Busy():
		default:
			s.startSpecial(w, e, enemy, sp, pos, playerPos)
			started = true
			sp.NextAt = now + cfg.Interval
		}
	}

	if sp.Active && !started {
		s.advanceSpecial(w, e, enemy, sp, pos, playerPos, dt)
	}
}

func (s *EnemyAISystem) startSpecial(w *ecs.World, e ecs.Entity, enemy *component.Enemy, sp *component.Special, pos, playerPos cp.Vector) {
	cfg := sp.Config
	sp.Active = true
	sp.Phase = component.SpecialCasting
	sp.Elapsed = 0
	sp.Shots = 0
	sp.ShotTimer = 0

	switch cfg.Kind {
	case component.SpecialVolley, component.SpecialBossCast:
		s.fireAtPlayer(w, e, sp, pos, playerPos)
		sp.ShotTimer = orDefault(cfg.ShotInterval, defaultShotInterval)
	case component.SpecialStealth:
		enemy.Opacity = cfg.CastOpacity
	case component.SpecialDeflect:
		sp.Deflecting = true
	case component.SpecialLineStrike:
		dx, dy, l := common.Normalize(playerPos.X-pos.X, playerPos.Y-pos.Y)
		if l == 0 {
			dx = 1
		}
		sp.OriginX, sp.OriginY = pos.X, pos.Y
		sp.AimX, sp.AimY = dx, dy
		s.fireLineShot(w, e, sp)
		sp.ShotTimer = orDefault(cfg.ShotInterval, 0.15)
	case component.SpecialScript:
		s.runScript(w, e, enemy, sp, "start", 0)
	}
	s.logger.Debug("special started", "entity", e.String(), "archetype", enemy.Archetype, "special", string(cfg.Kind))
}

func (s *EnemyAISystem) advanceSpecial(w *ecs.World, e ecs.Entity, enemy *component.Enemy, sp *component.Special, pos, playerPos cp.Vector, dt float64) {
	cfg := sp.Config
	sp.Elapsed += dt

	switch cfg.Kind {
	case component.SpecialVolley:
		if sp.Elapsed >= cfg.Duration {
			finishSpecial(enemy, sp)
			return
		}
		s.tickShots(w, e, sp, pos, playerPos, dt)

	case component.SpecialStealth:
		switch sp.Phase {
		case component.SpecialCasting:
			if sp.Elapsed >= cfg.Duration {
				sp.Elapsed -= cfg.Duration
				sp.Phase = component.SpecialSustain
				enemy.Opacity = cfg.SustainOpacity
			}
		case component.SpecialSustain:
			if sp.Elapsed >= cfg.SustainDuration {
				enemy.Opacity = 1
				finishSpecial(enemy, sp)
			}
		}

	case component.SpecialBossCast:
		switch sp.Phase {
		case component.SpecialCasting:
			if sp.Elapsed < cfg.Duration {
				s.tickShots(w, e, sp, pos, playerPos, dt)
				return
			}
			s.relocate(w, e, playerPos, orDefault(cfg.TeleportRadius, defaultTeleportRadius))
			sp.Phase = component.SpecialSustain
			sp.Elapsed = 0
			sp.Running = true
		case component.SpecialSustain:
			if sp.Elapsed >= cfg.SustainDuration {
				finishSpecial(enemy, sp)
			}
		}

	case component.SpecialDeflect:
		if sp.Elapsed >= cfg.Duration {
			finishSpecial(enemy, sp)
		}

	case component.SpecialLineStrike:
		switch sp.Phase {
		case component.SpecialCasting:
			sp.ShotTimer -= dt
			if sp.ShotTimer > 0 {
				return
			}
			if sp.Shots >= lineStrikeShots(cfg) {
				sp.Phase = component.SpecialRecover
				sp.Elapsed = 0
				return
			}
			s.fireLineShot(w, e, sp)
			sp.ShotTimer += orDefault(cfg.ShotInterval, 0.15)
		case component.SpecialRecover:
			if sp.Elapsed >= cfg.PauseDuration {
				finishSpecial(enemy, sp)
			}
		}

	case component.SpecialScript:
		s.runScript(w, e, enemy, sp, "update", dt)
		if sp.Active && cfg.Duration > 0 && sp.Elapsed >= cfg.Duration {
			s.runScript(w, e, enemy, sp, "finish", dt)
			finishSpecial(enemy, sp)
		}

	default:
		finishSpecial(enemy, sp)
	}
}

func finishSpecial(enemy *component.Enemy, sp *component.Special) {
	sp.Active = false
	sp.Phase = component.SpecialIdle
	sp.Elapsed = 0
	sp.ShotTimer = 0
	sp.Shots = 0
	sp.Deflecting = false
	sp.Running = false
	sp.SpeedScale = 0
}

func (s *EnemyAISystem) tickShots(w *ecs.World, e ecs.Entity, sp *component.Special, pos, playerPos cp.Vector, dt float64) {
	sp.ShotTimer -= dt
	if sp.ShotTimer > 0 {
		return
	}
	s.fireAtPlayer(w, e, sp, pos, playerPos)
	sp.ShotTimer += orDefault(sp.Config.ShotInterval, defaultShotInterval)
}

func (s *EnemyAISystem) fireAtPlayer(w *ecs.World, e ecs.Entity, sp *component.Special, pos, playerPos cp.Vector) {
	dx, dy, l := common.Normalize(playerPos.X-pos.X, playerPos.Y-pos.Y)
	if l == 0 {
		return
	}
	speed := orDefault(sp.Config.ProjectileSpeed, defaultEnemyShotSpeed)
	s.spawnProjectile(w, e, sp, pos, cp.Vector{X: dx * speed, Y: dy * speed})
	sp.Shots++
}

// fireLineShot places the next stationary charge along the locked line.
func (s *EnemyAISystem) fireLineShot(w *ecs.World, e ecs.Entity, sp *component.Special) {
	spacing := orDefault(sp.Config.ShotSpacing, defaultLineSpacing)
	offset := float64(sp.Shots) * spacing
	pos := cp.Vector{X: sp.OriginX + sp.AimX*offset, Y: sp.OriginY + sp.AimY*offset}
	s.spawnProjectile(w, e, sp, pos, cp.Vector{})
	sp.Shots++
}

func (s *EnemyAISystem) spawnProjectile(w *ecs.World, e ecs.Entity, sp *component.Special, pos, vel cp.Vector) {
	spec := s.projectiles[sp.Config.Projectile]
	_, err := entity.NewProjectile(w, entity.ProjectileParams{
		Position:      pos,
		Velocity:      vel,
		Damage:        spec.Damage,
		Radius:        spec.Radius,
		ContactRadius: spec.ContactRadius,
		Lifetime:      spec.Lifetime,
		TargetsPlayer: true,
		Shooter:       e,
	})
	if err != nil {
		s.logger.Warn("special: spawn projectile", "entity", e.String(), "projectile", sp.Config.Projectile, "err", err)
	}
}

func (s *EnemyAISystem) relocate(w *ecs.World, e ecs.Entity, playerPos cp.Vector, radius float64) {
	dx, dy := common.RandomInCircle(s.rng, radius)
	target := cp.Vector{X: playerPos.X + dx, Y: playerPos.Y + dy}
	if pw := w.PhysicsWorld(); pw != nil && pw.Teleport(e, target) {
		if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			t.X, t.Y = target.X, target.Y
		}
	}
}

func lineStrikeShots(cfg component.SpecialConfig) int {
	if cfg.ShotCount > 0 {
		return cfg.ShotCount
	}
	return defaultLineStrikeShots
}

func orDefault(v, def float64) float64 {
	if v <= 0 {
		return def
	}
	return v
}
