package prefabs

import "fmt"

const (
	SurvivalFile   = "survival.yaml"
	WavesFile      = "waves.yaml"
	WeaponsFile    = "weapons.yaml"
	ArchetypesFile = "archetypes.yaml"
	DifficultyFile = "difficulty.yaml"
)

// Content bundles every authored table the survival mode reads.
type Content struct {
	Survival    SurvivalSpec
	Waves       []WaveSpec
	Weapons     map[string]WeaponSpec
	Offers      []OfferSpec
	Archetypes  map[string]ArchetypeSpec
	Projectiles map[string]ProjectileSpec
	Difficulty  DifficultySpec
}

func LoadContent() (*Content, error) {
	survival, err := LoadSpec[SurvivalSpec](SurvivalFile)
	if err != nil {
		return nil, err
	}
	waves, err := LoadSpec[WavesSpec](WavesFile)
	if err != nil {
		return nil, err
	}
	weapons, err := LoadSpec[WeaponsSpec](WeaponsFile)
	if err != nil {
		return nil, err
	}
	archetypes, err := LoadSpec[ArchetypesSpec](ArchetypesFile)
	if err != nil {
		return nil, err
	}
	difficulty, err := LoadSpec[DifficultySpec](DifficultyFile)
	if err != nil {
		return nil, err
	}
	if err := difficulty.validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", DifficultyFile, err)
	}

	c := &Content{
		Survival:    survival,
		Waves:       waves.Waves,
		Weapons:     make(map[string]WeaponSpec, len(weapons.Weapons)),
		Offers:      weapons.Offers,
		Archetypes:  make(map[string]ArchetypeSpec, len(archetypes.Archetypes)),
		Projectiles: make(map[string]ProjectileSpec, len(archetypes.Projectiles)),
		Difficulty:  difficulty,
	}
	for _, w := range weapons.Weapons {
		if w.Name == "" {
			return nil, fmt.Errorf("prefabs: %s: weapon without name", WeaponsFile)
		}
		c.Weapons[w.Name] = w
	}
	for _, a := range archetypes.Archetypes {
		if a.Name == "" {
			return nil, fmt.Errorf("prefabs: %s: archetype without name", ArchetypesFile)
		}
		c.Archetypes[a.Name] = a
	}
	for _, p := range archetypes.Projectiles {
		c.Projectiles[p.Name] = p
	}
	return c, nil
}

func (c *Content) Weapon(name string) (WeaponSpec, bool) {
	if c == nil {
		return WeaponSpec{}, false
	}
	w, ok := c.Weapons[name]
	return w, ok
}

func (c *Content) Offer(name string) (OfferSpec, bool) {
	if c == nil {
		return OfferSpec{}, false
	}
	for _, o := range c.Offers {
		if o.Name == name {
			return o, true
		}
	}
	return OfferSpec{}, false
}

func (c *Content) Archetype(name string) (ArchetypeSpec, bool) {
	if c == nil {
		return ArchetypeSpec{}, false
	}
	a, ok := c.Archetypes[name]
	return a, ok
}

func (c *Content) Projectile(name string) (ProjectileSpec, bool) {
	if c == nil {
		return ProjectileSpec{}, false
	}
	p, ok := c.Projectiles[name]
	return p, ok
}
