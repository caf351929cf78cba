package component

// TTL destroys an entity once Remaining seconds have elapsed.
type TTL struct {
	Remaining float64
}

var TTLComponent = NewComponent[TTL]()
