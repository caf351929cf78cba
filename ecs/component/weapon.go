package component

type WeaponMode string

const (
	WeaponHitscan    WeaponMode = "hitscan"
	WeaponProjectile WeaponMode = "projectile"
)

// WeaponConfig is the authored description of one weapon.
type WeaponConfig struct {
	Name         string
	Damage       float64
	Range        float64
	FireRate     float64
	MagazineSize int
	ReserveSize  int
	ReloadTime   float64
	Mode         WeaponMode
	CanFire      bool

	ProjectileSpeed  float64
	ProjectileRadius float64

	IgnoreTags []string
}

// Ammo is the magazine and reserve count of one weapon.
type Ammo struct {
	Magazine int
	Reserve  int
}

// AmmoLedger keys ammo state by weapon name so it survives re-equips.
type AmmoLedger map[string]Ammo

type ReloadPhase int

const (
	ReloadIdle ReloadPhase = iota
	Reloading
)

// Weapon is the player's equipped weapon and its runtime state.
type Weapon struct {
	Config WeaponConfig
	Ledger AmmoLedger

	NextFireAt    float64
	Reload        ReloadPhase
	ReloadElapsed float64
}

var WeaponComponent = NewComponent[Weapon]()
