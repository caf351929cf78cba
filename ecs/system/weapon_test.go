package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/survival/ecs"
	"github.com/milk9111/survival/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rifle() component.WeaponConfig {
	return component.WeaponConfig{
		Name:         "R-19",
		Damage:       18,
		Range:        180,
		FireRate:     8,
		MagazineSize: 12,
		ReserveSize:  48,
		ReloadTime:   1.5,
		Mode:         component.WeaponHitscan,
		CanFire:      true,
	}
}

func equippedPlayer(t *testing.T, cfg component.WeaponConfig) (*ecs.World, ecs.Entity, *component.Weapon) {
	t.Helper()
	w := newTestWorld()
	player := addPlayer(t, w, 0, 0)
	wpn, ok := ecs.Get(w, player, component.WeaponComponent.Kind())
	require.True(t, ok)
	OnWeaponEquipped(w, wpn, cfg)
	return w, player, wpn
}

var (
	origin = cp.Vector{}
	aimX   = cp.Vector{X: 1}
)

func TestEmptyMagazineStartsReload(t *testing.T) {
	w, player, wpn := equippedPlayer(t, rifle())
	ws := NewWeaponSystem(testLogger())

	for i := 0; i < 12; i++ {
		require.Equal(t, FireShot, ws.TryFire(w, player, wpn, origin, aimX), "shot %d", i+1)
		w.Advance(0.2)
	}
	assert.Equal(t, "0/48", AmmoText(wpn))

	assert.Equal(t, FireEmpty, ws.TryFire(w, player, wpn, origin, aimX))
	assert.Equal(t, component.Reloading, wpn.Reload)
	assert.Equal(t, FireReloading, ws.TryFire(w, player, wpn, origin, aimX))

	w.Advance(1.4)
	ws.Update(w)
	assert.Equal(t, component.Reloading, wpn.Reload)
	assert.Equal(t, "0/48", AmmoText(wpn))

	w.Advance(0.2)
	ws.Update(w)
	assert.Equal(t, component.ReloadIdle, wpn.Reload)
	assert.Equal(t, "12/36", AmmoText(wpn))
}

func TestFireRateGate(t *testing.T) {
	w, player, wpn := equippedPlayer(t, rifle())
	ws := NewWeaponSystem(testLogger())

	require.Equal(t, FireShot, ws.TryFire(w, player, wpn, origin, aimX))
	assert.Equal(t, FireCoolingDown, ws.TryFire(w, player, wpn, origin, aimX))
	assert.Equal(t, "11/48", AmmoText(wpn), "gated shots spend nothing")

	w.Advance(0.13)
	assert.Equal(t, FireShot, ws.TryFire(w, player, wpn, origin, aimX))
	assert.Equal(t, "10/48", AmmoText(wpn))
}

func TestStartReloadRefusals(t *testing.T) {
	cases := []struct {
		name string
		ammo component.Ammo
		want bool
	}{
		{"full_magazine", component.Ammo{Magazine: 12, Reserve: 48}, false},
		{"no_reserve", component.Ammo{Magazine: 5, Reserve: 0}, false},
		{"partial", component.Ammo{Magazine: 5, Reserve: 3}, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w, _, wpn := equippedPlayer(t, rifle())
			wpn.Ledger["R-19"] = c.ammo

			assert.Equal(t, c.want, StartReload(w, wpn))
			if c.want {
				assert.False(t, StartReload(w, wpn), "already reloading")
			}
		})
	}
}

func TestReloadLimitedByReserve(t *testing.T) {
	w, _, wpn := equippedPlayer(t, rifle())
	ws := NewWeaponSystem(testLogger())
	wpn.Ledger["R-19"] = component.Ammo{Magazine: 5, Reserve: 3}

	require.True(t, StartReload(w, wpn))
	w.Advance(1.5)
	ws.Update(w)
	assert.Equal(t, component.Ammo{Magazine: 8, Reserve: 0}, wpn.Ledger["R-19"])
}

func TestMeleeCannotFire(t *testing.T) {
	w, player, wpn := equippedPlayer(t, component.WeaponConfig{Name: "Knife", Mode: component.WeaponHitscan})
	ws := NewWeaponSystem(testLogger())

	assert.Equal(t, FireCannot, ws.TryFire(w, player, wpn, origin, aimX))
	assert.False(t, StartReload(w, wpn))
	assert.Equal(t, "-/-", AmmoText(wpn))
	assert.Equal(t, FireNone, ws.TryFire(w, player, &component.Weapon{}, origin, aimX))
}

func TestProjectileWeaponSpawnsExplosive(t *testing.T) {
	w, player, wpn := equippedPlayer(t, component.WeaponConfig{
		Name:            "GL-6",
		Damage:          80,
		FireRate:        1,
		MagazineSize:    1,
		ReserveSize:     2,
		ReloadTime:      2,
		Mode:            component.WeaponProjectile,
		CanFire:         true,
		ProjectileSpeed: 35,
	})
	ws := NewWeaponSystem(testLogger())

	require.Equal(t, FireShot, ws.TryFire(w, player, wpn, origin, cp.Vector{Y: 2}))
	shots := projectiles(w)
	require.Len(t, shots, 1)
	assert.False(t, shots[0].TargetsPlayer)
	assert.Equal(t, 80.0, shots[0].Damage)
	assert.InDelta(t, 35, shots[0].VelocityY, 1e-9)
	assert.InDelta(t, 0, shots[0].VelocityX, 1e-9)
	assert.Equal(t, player, ecs.FromRef(shots[0].Shooter))
	assert.False(t, ws.LastHit.Hit, "projectile shots skip hitscan")
}

func TestAmmoLedgerAcrossEquips(t *testing.T) {
	w, player, wpn := equippedPlayer(t, rifle())
	ws := NewWeaponSystem(testLogger())

	require.Equal(t, FireShot, ws.TryFire(w, player, wpn, origin, aimX))
	w.Advance(0.2)
	require.Equal(t, FireShot, ws.TryFire(w, player, wpn, origin, aimX))
	require.True(t, StartReload(w, wpn))

	OnWeaponEquipped(w, wpn, component.WeaponConfig{Name: "Knife"})
	assert.Equal(t, component.ReloadIdle, wpn.Reload, "equip cancels the reload")

	OnWeaponEquipped(w, wpn, rifle())
	assert.Equal(t, "10/48", AmmoText(wpn))

	mag, res := MissingAmmo(wpn, rifle())
	assert.Equal(t, 2, mag)
	assert.Equal(t, 0, res)

	Refill(w, wpn, rifle())
	assert.Equal(t, "12/48", AmmoText(wpn))

	events := drain[ecs.AmmoChanged](w)
	require.NotEmpty(t, events)
	assert.Equal(t, ecs.AmmoChanged{Weapon: "R-19", Magazine: 12, Reserve: 48}, events[len(events)-1])
}

func TestUpdateFiresFromInput(t *testing.T) {
	w, player, wpn := equippedPlayer(t, rifle())
	ws := NewWeaponSystem(testLogger())
	enemy := addEnemy(t, w, grunt(), 5.5, 0)

	input, ok := ecs.Get(w, player, component.InputComponent.Kind())
	require.True(t, ok)
	input.Fire = true
	input.AimX, input.AimY = 1, 0

	w.Advance(0.01)
	ws.Update(w)

	assert.Equal(t, "11/48", AmmoText(wpn))
	assert.True(t, ws.LastHit.Hit)
	assert.Equal(t, enemy, ws.LastHit.Target)
	health, _ := ecs.Get(w, enemy, component.HealthComponent.Kind())
	assert.Equal(t, 32.0, health.Current)

	input.Fire = false
	input.ReloadPressed = true
	w.Advance(0.01)
	ws.Update(w)
	assert.Equal(t, component.Reloading, wpn.Reload)
}
