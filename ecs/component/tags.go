package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type EnemyTag struct{}

var EnemyTagComponent = NewComponent[EnemyTag]()

type CrateTag struct{}

var CrateTagComponent = NewComponent[CrateTag]()

type ProjectileTag struct{}

var ProjectileTagComponent = NewComponent[ProjectileTag]()

// Tag names used by hit resolution.
const (
	TagPlayer      = "Player"
	TagEnemy       = "Enemy"
	TagEnemyHitbox = "EnemyHitbox"
	TagWeapon      = "Weapon"
	TagHitZone     = "HitZone"
	TagCrate       = "Crate"
	TagProjectile  = "Projectile"
)

// Tag is a free-form label checked against weapon ignore lists.
type Tag struct {
	Name string
}

var TagComponent = NewComponent[Tag]()
