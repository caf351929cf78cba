package system

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/survival/ecs"
	"github.com/milk9111/survival/ecs/component"
	"github.com/milk9111/survival/ecs/entity"
)

const (
	defaultFireRate        = 8.0
	defaultProjectileSpeed = 35.0
	playerProjectileLife   = 4.0
)

// DefaultIgnoreTags are skipped by hitscan when a weapon lists none.
var DefaultIgnoreTags = []string{component.TagPlayer, component.TagEnemyHitbox, component.TagWeapon}

type FireResult int

const (
	FireNone FireResult = iota
	FireCannot
	FireCoolingDown
	FireReloading
	FireEmpty
	FireShot
)

func (r FireResult) String() string {
	switch r {
	case FireNone:
		return "none"
	case FireCannot:
		return "cannot"
	case FireCoolingDown:
		return "cooling_down"
	case FireReloading:
		return "reloading"
	case FireEmpty:
		return "empty"
	case FireShot:
		return "shot"
	default:
		return "unknown"
	}
}

// WeaponSystem drives the player's equipped weapon from Input: fire-rate
// gating, hitscan or projectile shots, and the reload sequence.
type WeaponSystem struct {
	logger *slog.Logger
	// LastHit is the most recent hitscan result, kept for debug drawing.
	LastHit HitResult
}

func NewWeaponSystem(logger *slog.Logger) *WeaponSystem {
	if logger == nil {
		logger = slog.Default()
	}
	return &WeaponSystem{logger: logger}
}

func (s *WeaponSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.DeltaTime()

	ecs.ForEach2(w, component.WeaponComponent.Kind(), component.InputComponent.Kind(), func(e ecs.Entity, wpn *component.Weapon, input *component.Input) {
		advanceReload(w, wpn, dt)

		if input.ReloadPressed {
			StartReload(w, wpn)
		}
		if !input.Fire || wpn.Reload == component.Reloading {
			return
		}

		origin, ok := entityPosition(w, e)
		if !ok {
			return
		}
		s.TryFire(w, e, wpn, origin, cp.Vector{X: input.AimX, Y: input.AimY})
	})
}

// TryFire attempts one shot. An empty magazine starts a reload instead.
func (s *WeaponSystem) TryFire(w *ecs.World, shooter ecs.Entity, wpn *component.Weapon, origin, aim cp.Vector) FireResult {
	if wpn == nil || wpn.Config.Name == "" {
		return FireNone
	}
	cfg := wpn.Config
	if !cfg.CanFire {
		return FireCannot
	}
	if wpn.Reload == component.Reloading {
		return FireReloading
	}
	now := w.Now()
	if now < wpn.NextFireAt {
		return FireCoolingDown
	}

	ammo := wpn.Ledger[cfg.Name]
	if ammo.Magazine <= 0 {
		StartReload(w, wpn)
		return FireEmpty
	}

	ammo.Magazine--
	wpn.Ledger[cfg.Name] = ammo
	rate := cfg.FireRate
	if rate <= 0 {
		rate = defaultFireRate
	}
	wpn.NextFireAt = now + 1/math.Max(0.01, rate)
	pushAmmo(w, wpn)

	if aim.Length() == 0 {
		aim = cp.Vector{X: 1}
	}
	aim = aim.Normalize()

	switch cfg.Mode {
	case component.WeaponProjectile:
		s.fireProjectile(w, shooter, cfg, origin, aim)
	default:
		ignore := cfg.IgnoreTags
		if len(ignore) == 0 {
			ignore = DefaultIgnoreTags
		}
		s.LastHit = Hitscan(w, origin, aim, cfg.Range, cfg.Damage, ignore)
	}
	return FireShot
}

func (s *WeaponSystem) fireProjectile(w *ecs.World, shooter ecs.Entity, cfg component.WeaponConfig, origin, aim cp.Vector) {
	speed := cfg.ProjectileSpeed
	if speed <= 0 {
		speed = defaultProjectileSpeed
	}
	_, err := entity.NewProjectile(w, entity.ProjectileParams{
		Position:      origin,
		Velocity:      aim.Mult(speed),
		Damage:        cfg.Damage,
		Radius:        cfg.ProjectileRadius,
		ContactRadius: 0.5,
		Lifetime:      playerProjectileLife,
		Shooter:       shooter,
	})
	if err != nil {
		s.logger.Warn("weapon: spawn projectile", "weapon", cfg.Name, "err", err)
	}
}

// StartReload begins the timed reload. It is refused while reloading, with a
// full magazine or with no reserve.
func StartReload(w *ecs.World, wpn *component.Weapon) bool {
	if wpn == nil || wpn.Config.Name == "" || !wpn.Config.CanFire || wpn.Reload == component.Reloading {
		return false
	}
	ammo := wpn.Ledger[wpn.Config.Name]
	if ammo.Magazine >= wpn.Config.MagazineSize || ammo.Reserve <= 0 {
		return false
	}
	wpn.Reload = component.Reloading
	wpn.ReloadElapsed = 0
	return true
}

func advanceReload(w *ecs.World, wpn *component.Weapon, dt float64) {
	if wpn.Reload != component.Reloading {
		return
	}
	wpn.ReloadElapsed += dt
	if wpn.ReloadElapsed < wpn.Config.ReloadTime {
		return
	}

	name := wpn.Config.Name
	ammo := wpn.Ledger[name]
	needed := max(0, wpn.Config.MagazineSize-ammo.Magazine)
	load := min(needed, ammo.Reserve)
	ammo.Magazine += load
	ammo.Reserve -= load
	wpn.Ledger[name] = ammo

	wpn.Reload = component.ReloadIdle
	wpn.ReloadElapsed = 0
	pushAmmo(w, wpn)
}

// OnWeaponEquipped switches the active config. Ammo for a weapon is seeded to
// full the first time it is equipped and kept afterwards. Any reload in flight
// is cancelled.
func OnWeaponEquipped(w *ecs.World, wpn *component.Weapon, cfg component.WeaponConfig) {
	if wpn == nil {
		return
	}
	if wpn.Ledger == nil {
		wpn.Ledger = component.AmmoLedger{}
	}
	wpn.Config = cfg
	wpn.Reload = component.ReloadIdle
	wpn.ReloadElapsed = 0
	if _, ok := wpn.Ledger[cfg.Name]; !ok && cfg.Name != "" {
		wpn.Ledger[cfg.Name] = component.Ammo{
			Magazine: max(0, cfg.MagazineSize),
			Reserve:  max(0, cfg.ReserveSize),
		}
	}
	pushAmmo(w, wpn)
}

// Refill sets a weapon's ledger entry to a full magazine and reserve.
func Refill(w *ecs.World, wpn *component.Weapon, cfg component.WeaponConfig) {
	if wpn == nil || cfg.Name == "" {
		return
	}
	if wpn.Ledger == nil {
		wpn.Ledger = component.AmmoLedger{}
	}
	wpn.Ledger[cfg.Name] = component.Ammo{
		Magazine: max(0, cfg.MagazineSize),
		Reserve:  max(0, cfg.ReserveSize),
	}
	if wpn.Config.Name == cfg.Name {
		pushAmmo(w, wpn)
	}
}

// MissingAmmo reports how many rounds the named weapon lacks in its magazine
// and reserve.
func MissingAmmo(wpn *component.Weapon, cfg component.WeaponConfig) (int, int) {
	if wpn == nil {
		return 0, 0
	}
	ammo, ok := wpn.Ledger[cfg.Name]
	if !ok {
		return 0, 0
	}
	return max(0, cfg.MagazineSize-ammo.Magazine), max(0, cfg.ReserveSize-ammo.Reserve)
}

// AmmoText formats the equipped weapon's counters as "mag/reserve".
func AmmoText(wpn *component.Weapon) string {
	if wpn == nil || wpn.Config.Name == "" || !wpn.Config.CanFire {
		return "-/-"
	}
	ammo := wpn.Ledger[wpn.Config.Name]
	return fmt.Sprintf("%d/%d", ammo.Magazine, ammo.Reserve)
}

func pushAmmo(w *ecs.World, wpn *component.Weapon) {
	if w == nil {
		return
	}
	ammo := wpn.Ledger[wpn.Config.Name]
	pushEvent(w, ecs.EventAmmoChanged, ecs.AmmoChanged{
		Weapon:   wpn.Config.Name,
		Magazine: ammo.Magazine,
		Reserve:  ammo.Reserve,
	})
}
