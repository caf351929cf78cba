package component

// Owner points at the parent entity (as returned by ecs.Entity.Ref).
type Owner struct {
	Parent uint64
}

var OwnerComponent = NewComponent[Owner]()

// Children lists entities destroyed together with their parent.
type Children struct {
	Refs []uint64
}

var ChildrenComponent = NewComponent[Children]()
