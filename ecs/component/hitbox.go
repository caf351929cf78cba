package component

// Hitbox marks an enemy's attack volume. Active mirrors the damage window and
// is only used for presentation.
type Hitbox struct {
	Radius float64
	Active bool
}

var HitboxComponent = NewComponent[Hitbox]()
