package survival

// ChangeKind names the piece of UI-facing state that changed.
type ChangeKind int

const (
	ChangeCoins ChangeKind = iota
	ChangeHealth
	ChangeWave
	ChangeIntermission
	ChangeAmmo
	ChangePrompt
	ChangeObjective
	ChangeShop
	ChangeLoadout
	ChangeTransition
	// ChangeFeedback fires on every landed hit against the player.
	ChangeFeedback
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeCoins:
		return "coins"
	case ChangeHealth:
		return "health"
	case ChangeWave:
		return "wave"
	case ChangeIntermission:
		return "intermission"
	case ChangeAmmo:
		return "ammo"
	case ChangePrompt:
		return "prompt"
	case ChangeObjective:
		return "objective"
	case ChangeShop:
		return "shop"
	case ChangeLoadout:
		return "loadout"
	case ChangeTransition:
		return "transition"
	case ChangeFeedback:
		return "feedback"
	default:
		return "unknown"
	}
}

// Change is delivered to subscribers after the state it describes was
// updated. Text carries the formatted value where one exists.
type Change struct {
	Kind  ChangeKind
	Text  string
	Value float64
}

// Subscribe registers fn for every change. Callbacks run on the simulation
// goroutine and must not call back into the controller.
func (c *Controller) Subscribe(fn func(Change)) {
	if fn == nil {
		return
	}
	c.subscribers = append(c.subscribers, fn)
}

func (c *Controller) notify(kind ChangeKind, text string, value float64) {
	change := Change{Kind: kind, Text: text, Value: value}
	for _, fn := range c.subscribers {
		fn(change)
	}
}
