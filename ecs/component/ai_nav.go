package component

// NavAgent is the pathfinding target assigned to a moving entity.
type NavAgent struct {
	TargetX   float64
	TargetY   float64
	HasTarget bool
	Speed     float64
	Stopped   bool
	// StoppingDistance halts the agent this close to the target.
	StoppingDistance float64
}

var NavAgentComponent = NewComponent[NavAgent]()
