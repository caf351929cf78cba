package component

type AttackPhase int

const (
	AttackIdle AttackPhase = iota
	AttackWindup
	AttackActive
	AttackCooldown
)

func (p AttackPhase) String() string {
	switch p {
	case AttackIdle:
		return "idle"
	case AttackWindup:
		return "windup"
	case AttackActive:
		return "active"
	case AttackCooldown:
		return "cooldown"
	default:
		return "unknown"
	}
}

// AttackCycle is the melee attack sequence of one enemy. Damage is applied
// once, on entering AttackActive.
type AttackCycle struct {
	Windup   float64
	Active   float64
	Cooldown float64

	Phase         AttackPhase
	Elapsed       float64
	DamageApplied bool
}

// Busy reports whether a sequence is in flight.
func (a AttackCycle) Busy() bool {
	return a.Phase != AttackIdle
}

var AttackCycleComponent = NewComponent[AttackCycle]()
