package ecs

import "fmt"

// Entity packs a slot id (low 32 bits) and a generation (high 32 bits). A
// handle kept past DestroyEntity never matches the slot's next occupant.
type Entity uint64

type entityID uint32
type generation uint32

const entityIDBits = 32

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<entityIDBits | uint64(id))
}

func (e Entity) id() entityID {
	return entityID(uint32(e))
}

func (e Entity) generation() generation {
	return generation(uint32(uint64(e) >> entityIDBits))
}

func (e Entity) String() string {
	return fmt.Sprintf("%d:%d", e.id(), e.generation())
}

func (e Entity) Valid() bool {
	return e.id() > 0
}

// Ref converts the handle to the raw form components store for cross-entity
// links (owners, children, shooters).
func (e Entity) Ref() uint64 {
	return uint64(e)
}

// FromRef is the inverse of Ref.
func FromRef(ref uint64) Entity {
	return Entity(ref)
}
