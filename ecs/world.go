package ecs

import "github.com/milk9111/survival/ecs/component"

// DestroyHook runs before an entity's components are dropped, so hooks can
// still read them.
type DestroyHook func(w *World, e Entity)

// World owns entities, their components, the event queue and the simulation clock.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
	events   EventQueue

	destroyHooks []DestroyHook
	dying        map[Entity]bool

	physicsWorld *PhysicsWorld

	dt  float64
	now float64
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{
		stores: make(map[component.ComponentID]*SparseSet),
		dying:  make(map[Entity]bool),
	}
}

// CreateEntity allocates a new entity.
func CreateEntity(w *World) Entity {
	if w == nil {
		return 0
	}
	return w.entities.create()
}

// DestroyEntity runs destroy hooks, destroys owned children, releases physics
// shapes and drops every component. Returns false for dead handles.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) || w.dying[e] {
		return false
	}
	w.dying[e] = true
	defer delete(w.dying, e)

	for _, hook := range w.destroyHooks {
		hook(w, e)
	}

	if children, ok := Get(w, e, component.ChildrenComponent.Kind()); ok {
		for _, ref := range children.Refs {
			DestroyEntity(w, FromRef(ref))
		}
	}

	if w.physicsWorld != nil {
		w.physicsWorld.RemoveEntity(e)
	}

	for _, store := range w.stores {
		store.Remove(e)
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func IsAlive(w *World, e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities returns every live entity.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	out := make([]Entity, 0, w.entities.count)
	w.entities.each(func(e Entity) {
		out = append(out, e)
	})
	return out
}

// OnDestroy registers a hook that runs for every destroyed entity.
func (w *World) OnDestroy(hook DestroyHook) {
	if w == nil || hook == nil {
		return
	}
	w.destroyHooks = append(w.destroyHooks, hook)
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// SetPhysicsWorld attaches a physics world to this ECS world.
func (w *World) SetPhysicsWorld(pw *PhysicsWorld) {
	if w == nil {
		return
	}
	w.physicsWorld = pw
}

// PhysicsWorld returns the attached physics world, if any.
func (w *World) PhysicsWorld() *PhysicsWorld {
	if w == nil {
		return nil
	}
	return w.physicsWorld
}

// Advance moves the simulation clock forward by dt seconds.
func (w *World) Advance(dt float64) {
	if w == nil || dt < 0 {
		return
	}
	w.dt = dt
	w.now += dt
}

// DeltaTime is the length of the current tick in seconds.
func (w *World) DeltaTime() float64 {
	if w == nil {
		return 0
	}
	return w.dt
}

// Now is the simulation time in seconds since the world was created.
func (w *World) Now() float64 {
	if w == nil {
		return 0
	}
	return w.now
}

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	s, ok := w.stores[id]
	if !ok && create {
		s = &SparseSet{}
		w.stores[id] = s
	}
	return s
}
