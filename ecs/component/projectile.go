package component

// Projectile is a launched explosive. It detonates on contact with a target,
// dealing damage that falls off linearly with distance from the blast.
type Projectile struct {
	Damage        float64
	Radius        float64
	ContactRadius float64
	VelocityX     float64
	VelocityY     float64
	TargetsPlayer bool
	Shooter       uint64
	Exploded      bool
}

var ProjectileComponent = NewComponent[Projectile]()
