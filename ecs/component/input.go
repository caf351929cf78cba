package component

// Input stores per-frame input state for the player.
type Input struct {
	MoveX float64
	MoveY float64
	AimX  float64
	AimY  float64

	Fire          bool
	ReloadPressed bool
	Interact      bool
}

var InputComponent = NewComponent[Input]()
