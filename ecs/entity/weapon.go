package entity

import (
	"github.com/milk9111/survival/ecs/component"
	"github.com/milk9111/survival/prefabs"
)

// Weapon defaults for rows that only name the weapon.
const (
	defaultWeaponDamage   = 18.0
	defaultWeaponRange    = 180.0
	defaultWeaponFireRate = 8.0
	defaultMagazineSize   = 12
	defaultReserveSize    = 48
	defaultReloadTime     = 1.5
)

// WeaponConfig converts an authored weapon row into the runtime config held by
// the player's weapon slot.
func WeaponConfig(spec prefabs.WeaponSpec) component.WeaponConfig {
	cfg := component.WeaponConfig{
		Name:             spec.Name,
		CanFire:          spec.Fires(),
		Mode:             component.WeaponHitscan,
		ProjectileSpeed:  spec.ProjectileSpeed,
		ProjectileRadius: spec.ProjectileRadius,
		IgnoreTags:       append([]string(nil), spec.IgnoreTags...),
	}
	if spec.Mode == string(component.WeaponProjectile) {
		cfg.Mode = component.WeaponProjectile
	}
	if !cfg.CanFire {
		return cfg
	}

	cfg.Damage = orDefault(spec.Damage, defaultWeaponDamage)
	cfg.Range = orDefault(spec.Range, defaultWeaponRange)
	cfg.FireRate = orDefault(spec.FireRate, defaultWeaponFireRate)
	cfg.ReloadTime = orDefault(spec.ReloadTime, defaultReloadTime)
	cfg.MagazineSize = spec.MagazineSize
	if cfg.MagazineSize <= 0 {
		cfg.MagazineSize = defaultMagazineSize
	}
	cfg.ReserveSize = spec.ReserveSize
	if cfg.ReserveSize < 0 {
		cfg.ReserveSize = 0
	} else if cfg.ReserveSize == 0 {
		cfg.ReserveSize = defaultReserveSize
	}
	return cfg
}
