package component

// SupplyCrate is the hold-to-open shop gate spawned during intermissions.
type SupplyCrate struct {
	Range        float64
	HoldDuration float64

	InRange   bool
	HoldTimer float64
	Opened    bool
	Prompt    string
}

var SupplyCrateComponent = NewComponent[SupplyCrate]()
