package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/milk9111/survival/common"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type PointSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// SurvivalSpec holds the session rules from survival.yaml.
type SurvivalSpec struct {
	IntermissionDuration float64 `yaml:"intermission_duration"`
	HitCoinMin           int     `yaml:"hit_coin_min"`
	HitCoinMax           int     `yaml:"hit_coin_max"`
	MaxHealth            float64 `yaml:"max_health"`
	ObjectiveDuration    float64 `yaml:"objective_duration"`

	VictoryDelay  float64 `yaml:"victory_delay"`
	VictoryScene  string  `yaml:"victory_scene"`
	GameOverDelay float64 `yaml:"game_over_delay"`
	GameOverScene string  `yaml:"game_over_scene"`

	StarterWeapons   []string `yaml:"starter_weapons"`
	DefaultWeapon    string   `yaml:"default_weapon"`
	DefaultSellValue int      `yaml:"default_sell_value"`

	Player           PlayerSpec  `yaml:"player"`
	Crate            CrateSpec   `yaml:"crate"`
	SpawnPoints      []PointSpec `yaml:"spawn_points"`
	CrateSpawnPoints []PointSpec `yaml:"crate_spawn_points"`
}

type PlayerSpec struct {
	MoveSpeed float64   `yaml:"move_speed"`
	Radius    float64   `yaml:"radius"`
	Spawn     PointSpec `yaml:"spawn"`
}

type CrateSpec struct {
	Radius       float64    `yaml:"radius"`
	Range        float64    `yaml:"interaction_range"`
	HoldDuration float64    `yaml:"hold_duration"`
	Color        *YAMLColor `yaml:"color"`
}

type WavesSpec struct {
	Waves []WaveSpec `yaml:"waves"`
}

// WaveSpec is one authored wave. Waves are consumed in order.
type WaveSpec struct {
	Label          string           `yaml:"label"`
	Spawns         []EnemySpawnSpec `yaml:"spawns"`
	BossWave       bool             `yaml:"boss_wave"`
	Boss           string           `yaml:"boss"`
	BossKillReward int              `yaml:"boss_kill_reward"`
}

// SpawnTotal counts the enemies the wave asks for, boss included.
func (w WaveSpec) SpawnTotal() int {
	total := 0
	for _, s := range w.Spawns {
		if s.Count > 0 {
			total += s.Count
		}
	}
	if w.BossWave && w.Boss != "" {
		total++
	}
	return total
}

type EnemySpawnSpec struct {
	Label      string `yaml:"label"`
	Archetype  string `yaml:"archetype"`
	Count      int    `yaml:"count"`
	KillReward int    `yaml:"kill_reward"`
}

type WeaponsSpec struct {
	Weapons []WeaponSpec `yaml:"weapons"`
	Offers  []OfferSpec  `yaml:"offers"`
}

type WeaponSpec struct {
	Name             string   `yaml:"name"`
	Damage           float64  `yaml:"damage"`
	Range            float64  `yaml:"range"`
	FireRate         float64  `yaml:"fire_rate"`
	MagazineSize     int      `yaml:"magazine_size"`
	ReserveSize      int      `yaml:"reserve_size"`
	ReloadTime       float64  `yaml:"reload_time"`
	Mode             string   `yaml:"mode"`
	CanFire          *bool    `yaml:"can_fire"`
	ProjectileSpeed  float64  `yaml:"projectile_speed"`
	ProjectileRadius float64  `yaml:"projectile_radius"`
	IgnoreTags       []string `yaml:"ignore_tags"`
}

// Fires reports whether the weapon uses ammo at all. Unset means true.
func (w WeaponSpec) Fires() bool {
	return w.CanFire == nil || *w.CanFire
}

type OfferSpec struct {
	Name            string `yaml:"name"`
	Cost            int    `yaml:"cost"`
	Category        string `yaml:"category"`
	AmmoCostPerUnit int    `yaml:"ammo_cost_per_unit"`
	SellValue       *int   `yaml:"sell_value"`
}

type ArchetypesSpec struct {
	Archetypes  []ArchetypeSpec  `yaml:"archetypes"`
	Projectiles []ProjectileSpec `yaml:"projectiles"`
}

// ArchetypeSpec is the base-stat row of one enemy type.
type ArchetypeSpec struct {
	Name               string      `yaml:"name"`
	MaxHealth          float64     `yaml:"max_health"`
	Damage             float64     `yaml:"damage"`
	WalkSpeed          float64     `yaml:"walk_speed"`
	RunSpeed           float64     `yaml:"run_speed"`
	AttackRange        float64     `yaml:"attack_range"`
	Windup             float64     `yaml:"windup"`
	Active             float64     `yaml:"active"`
	Cooldown           float64     `yaml:"cooldown"`
	HeadshotMultiplier float64     `yaml:"headshot_multiplier"`
	Radius             float64     `yaml:"radius"`
	Boss               bool        `yaml:"boss"`
	TimeScaling        bool        `yaml:"time_scaling"`
	Color              *YAMLColor  `yaml:"color"`
	Special            SpecialSpec `yaml:"special"`
}

type SpecialSpec struct {
	Kind            string  `yaml:"kind"`
	Interval        float64 `yaml:"interval"`
	Duration        float64 `yaml:"duration"`
	Range           float64 `yaml:"range"`
	ShotInterval    float64 `yaml:"shot_interval"`
	ShotCount       int     `yaml:"shot_count"`
	ShotSpacing     float64 `yaml:"shot_spacing"`
	ProjectileSpeed float64 `yaml:"projectile_speed"`
	Projectile      string  `yaml:"projectile"`
	SustainDuration float64 `yaml:"sustain_duration"`
	SustainOpacity  float64 `yaml:"sustain_opacity"`
	CastOpacity     float64 `yaml:"cast_opacity"`
	TeleportRadius  float64 `yaml:"teleport_radius"`
	PauseDuration   float64 `yaml:"pause_duration"`
	DamageScale     float64 `yaml:"damage_scale"`
	BlocksAttack    bool    `yaml:"blocks_attack"`
	BlocksMovement  bool    `yaml:"blocks_movement"`
	Script          string  `yaml:"script"`
}

type ProjectileSpec struct {
	Name          string  `yaml:"name"`
	Damage        float64 `yaml:"damage"`
	Radius        float64 `yaml:"radius"`
	ContactRadius float64 `yaml:"contact_radius"`
	Lifetime      float64 `yaml:"lifetime"`
}

// DifficultySpec holds the four-tier multiplier tables.
type DifficultySpec struct {
	DamageMultiplier []float64         `yaml:"damage_multiplier"`
	SpeedMultiplier  []float64         `yaml:"speed_multiplier"`
	TimeScaling      TimeScalingTables `yaml:"time_scaling"`
}

type TimeScalingTables struct {
	Interval       []float64 `yaml:"interval"`
	SpeedIncrease  []float64 `yaml:"speed_increase"`
	WindupDecrease []float64 `yaml:"windup_decrease"`
	MinWindup      float64   `yaml:"min_windup"`
}

func (d DifficultySpec) Damage(tier common.Difficulty) float64 {
	return common.TierValue(d.DamageMultiplier, tier, 1)
}

func (d DifficultySpec) Speed(tier common.Difficulty) float64 {
	return common.TierValue(d.SpeedMultiplier, tier, 1)
}

func (d DifficultySpec) validate() error {
	tables := map[string][]float64{
		"damage_multiplier":            d.DamageMultiplier,
		"speed_multiplier":             d.SpeedMultiplier,
		"time_scaling.interval":        d.TimeScaling.Interval,
		"time_scaling.speed_increase":  d.TimeScaling.SpeedIncrease,
		"time_scaling.windup_decrease": d.TimeScaling.WindupDecrease,
	}
	for name, table := range tables {
		if len(table) != common.DifficultyTiers {
			return fmt.Errorf("%s: want %d tiers, got %d", name, common.DifficultyTiers, len(table))
		}
	}
	return nil
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
