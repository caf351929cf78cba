package component

type SpecialKind string

const (
	SpecialNone       SpecialKind = ""
	SpecialVolley     SpecialKind = "volley"
	SpecialStealth    SpecialKind = "stealth"
	SpecialBossCast   SpecialKind = "boss_cast"
	SpecialDeflect    SpecialKind = "deflect"
	SpecialLineStrike SpecialKind = "line_strike"
	SpecialScript     SpecialKind = "script"
)

// SpecialPhase is the step a running special is in. Not every kind uses
// every phase.
type SpecialPhase int

const (
	SpecialIdle SpecialPhase = iota
	SpecialCasting
	SpecialSustain
	SpecialRecover
)

// SpecialConfig is the archetype-authored shape of a special.
type SpecialConfig struct {
	Kind     SpecialKind
	Interval float64
	Duration float64
	Range    float64

	ShotInterval    float64
	ShotCount       int
	ShotSpacing     float64
	ProjectileSpeed float64
	Projectile      string

	SustainDuration float64
	SustainOpacity  float64
	CastOpacity     float64
	TeleportRadius  float64
	PauseDuration   float64
	DamageScale     float64

	BlocksAttack   bool
	BlocksMovement bool

	Script string
}

// Special is one enemy's special ability: its config plus the runtime state of
// the sequence in flight.
type Special struct {
	Config SpecialConfig

	NextAt    float64
	Active    bool
	Phase     SpecialPhase
	Elapsed   float64
	ShotTimer float64
	Shots     int

	// Set by deflect while active.
	Deflecting bool
	// Set by boss_cast while repositioned.
	Running bool
	// Set by scripted specials; 0 leaves movement speed alone.
	SpeedScale float64

	// Line strikes lock their origin and direction when they start.
	OriginX float64
	OriginY float64
	AimX    float64
	AimY    float64
}

func (s Special) BlocksAttack() bool {
	return s.Active && s.Config.BlocksAttack
}

func (s Special) BlocksMovement() bool {
	return s.Active && s.Config.BlocksMovement
}

var SpecialComponent = NewComponent[Special]()
