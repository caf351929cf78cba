package ecs

// EventType identifies event payloads pushed by systems.
type EventType string

const (
	// EventPlayerDamaged carries PlayerDamaged.
	EventPlayerDamaged EventType = "player_damaged"
	// EventEnemyHit carries EnemyHit.
	EventEnemyHit EventType = "enemy_hit"
	// EventEnemyDestroyed carries EnemyDestroyed.
	EventEnemyDestroyed EventType = "enemy_destroyed"
	// EventCrateOpened carries CrateOpened.
	EventCrateOpened EventType = "crate_opened"
	// EventCratePrompt carries CratePrompt.
	EventCratePrompt EventType = "crate_prompt"
	// EventAmmoChanged carries AmmoChanged.
	EventAmmoChanged EventType = "ammo_changed"
)

// Event is a generic ECS event payload.
type Event struct {
	Type EventType
	Data any
}

// PlayerDamaged is emitted by enemy attacks and explosions.
type PlayerDamaged struct {
	Source Entity
	Amount float64
}

// EnemyHit is emitted whenever an enemy takes weapon damage.
type EnemyHit struct {
	Entity Entity
	Amount float64
}

// EnemyDestroyed is emitted once per tracked enemy, carrying its kill reward.
type EnemyDestroyed struct {
	Entity Entity
	Reward int
}

// CrateOpened is emitted when the hold-to-activate gate completes.
type CrateOpened struct {
	Crate Entity
}

// CratePrompt reports prompt visibility and text for the UI.
type CratePrompt struct {
	Crate   Entity
	Visible bool
	Text    string
}

// AmmoChanged reports the equipped weapon's counters.
type AmmoChanged struct {
	Weapon   string
	Magazine int
	Reserve  int
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}
