package component

// Tracker reports an enemy's destruction to the wave controller exactly once.
type Tracker struct {
	Reward int
	Fired  bool
}

var TrackerComponent = NewComponent[Tracker]()
