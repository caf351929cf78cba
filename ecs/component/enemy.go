package component

// EnemyState is the top-level behavior state of an enemy.
type EnemyState int

const (
	EnemyChasing EnemyState = iota
	EnemyAttacking
	EnemyInSpecial
	EnemyDead
)

func (s EnemyState) String() string {
	switch s {
	case EnemyChasing:
		return "chasing"
	case EnemyAttacking:
		return "attacking"
	case EnemyInSpecial:
		return "in_special"
	case EnemyDead:
		return "dead"
	default:
		return "unknown"
	}
}

// Enemy holds an instance's archetype id and its difficulty-scaled stats.
type Enemy struct {
	Archetype string
	State     EnemyState
	Boss      bool

	WalkSpeed   float64
	RunSpeed    float64
	Damage      float64
	AttackRange float64

	HeadshotMultiplier float64
	// Opacity is driven by the stealth special; 1 is fully visible.
	Opacity float64
}

var EnemyComponent = NewComponent[Enemy]()

// TimeScaling raises run speed and shortens windup as match time passes.
type TimeScaling struct {
	Interval       float64
	SpeedIncrease  float64
	WindupDecrease float64
	MinWindup      float64

	NextAt float64
	Steps  int
}

var TimeScalingComponent = NewComponent[TimeScaling]()
