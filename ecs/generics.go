package ecs

import "github.com/milk9111/survival/ecs/component"

// Kind is satisfied by every component.ComponentKind[T].
type Kind interface {
	ID() component.ComponentID
	Valid() bool
}

func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if w == nil || !w.entities.isAlive(e) {
		return component.ErrEntityNotAlive
	}
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	w.store(kind.ID(), true).Set(e, value)
	return nil
}

func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if w == nil {
		return false
	}
	return w.store(kind.ID(), false).Remove(e)
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if w == nil {
		return false
	}
	return w.store(kind.ID(), false).Has(e)
}

func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	if w == nil {
		return nil, false
	}
	value, ok := w.store(kind.ID(), false).Get(e).(*T)
	if !ok || value == nil {
		return nil, false
	}
	return value, true
}

// First returns the first entity carrying kind.
func First[T any](w *World, kind component.ComponentKind[T]) (Entity, bool) {
	if w == nil {
		return 0, false
	}
	ents := w.store(kind.ID(), false).Entities()
	if len(ents) == 0 {
		return 0, false
	}
	return ents[0], true
}

// Query returns a snapshot of entities that carry every kind. Mutating the
// world while iterating the result is safe.
func Query(w *World, kinds ...Kind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	sets := make([]*SparseSet, 0, len(kinds))
	for _, k := range kinds {
		s := w.store(k.ID(), false)
		if s == nil || s.Len() == 0 {
			return nil
		}
		sets = append(sets, s)
	}
	if len(sets) == 1 {
		return append([]Entity(nil), sets[0].Entities()...)
	}
	out := IntersectEntities(sets[0], sets[1])
	for _, s := range sets[2:] {
		filtered := out[:0]
		for _, e := range out {
			if s.Has(e) {
				filtered = append(filtered, e)
			}
		}
		out = filtered
	}
	return out
}

// ForEach calls fn for every entity carrying kind. Entities destroyed by an
// earlier callback in the same pass are skipped.
func ForEach[A any](w *World, ka component.ComponentKind[A], fn func(e Entity, a *A)) {
	for _, e := range Query(w, ka) {
		a, ok := Get(w, e, ka)
		if !ok {
			continue
		}
		fn(e, a)
	}
}

func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(e Entity, a *A, b *B)) {
	for _, e := range Query(w, ka, kb) {
		a, okA := Get(w, e, ka)
		b, okB := Get(w, e, kb)
		if !okA || !okB {
			continue
		}
		fn(e, a, b)
	}
}

func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(e Entity, a *A, b *B, c *C)) {
	for _, e := range Query(w, ka, kb, kc) {
		a, okA := Get(w, e, ka)
		b, okB := Get(w, e, kb)
		c, okC := Get(w, e, kc)
		if !okA || !okB || !okC {
			continue
		}
		fn(e, a, b, c)
	}
}

// Owner returns the parent recorded on e, if any.
func Owner(w *World, e Entity) (Entity, bool) {
	owner, ok := Get(w, e, component.OwnerComponent.Kind())
	if !ok || owner.Parent == 0 {
		return 0, false
	}
	parent := FromRef(owner.Parent)
	if !IsAlive(w, parent) {
		return 0, false
	}
	return parent, true
}

// Attach records child under parent so that destroying the parent destroys the child.
func Attach(w *World, parent, child Entity) error {
	if !IsAlive(w, parent) || !IsAlive(w, child) {
		return component.ErrEntityNotAlive
	}
	if err := Add(w, child, component.OwnerComponent.Kind(), &component.Owner{Parent: parent.Ref()}); err != nil {
		return err
	}
	children, ok := Get(w, parent, component.ChildrenComponent.Kind())
	if !ok {
		children = &component.Children{}
	}
	children.Refs = append(children.Refs, child.Ref())
	return Add(w, parent, component.ChildrenComponent.Kind(), children)
}
