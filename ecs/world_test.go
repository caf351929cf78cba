package ecs

import (
	"testing"

	"github.com/milk9111/survival/ecs/component"
)

func TestSparseWorldEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, CreateEntity(w))
			}
			if len(Entities(w)) != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, len(Entities(w)))
			}
			if c.destroyIndex >= 0 {
				if !DestroyEntity(w, ents[c.destroyIndex]) {
					t.Fatalf("DestroyEntity should return true for alive entity")
				}
				if IsAlive(w, ents[c.destroyIndex]) {
					t.Fatalf("entity should not be alive after destruction")
				}
			}
		})
	}
}

func toSet(ents []Entity) map[Entity]struct{} {
	m := make(map[Entity]struct{}, len(ents))
	for _, e := range ents {
		m[e] = struct{}{}
	}
	return m
}

func intPtr(i int) *int {
	return &i
}

func stringPtr(s string) *string {
	return &s
}

func float64Ptr(f float64) *float64 {
	return &f
}

func TestSparseWorldComponentsAndQueries(t *testing.T) {
	t.Run("component_table", func(t *testing.T) {
		w := NewWorld()

		h1 := component.NewComponent[int]()
		h2 := component.NewComponent[string]()
		h3 := component.NewComponent[float64]()

		e1 := CreateEntity(w)
		e2 := CreateEntity(w)

		tests := []struct {
			name     string
			setup    func() error
			check    func(t *testing.T)
			teardown func() bool
		}{
			{
				name:  "add_int_to_e1",
				setup: func() error { return Add(w, e1, h1.Kind(), intPtr(10)) },
				check: func(t *testing.T) {
					v, ok := Get[int](w, e1, h1.Kind())
					if !ok || *v != 10 {
						t.Fatalf("expected 10, got %v ok=%v", v, ok)
					}
				},
				teardown: func() bool { return Remove[int](w, e1, h1.Kind()) },
			},
			{
				name: "add_str_to_e1_and_e2",
				setup: func() error {
					if err := Add(w, e1, h2.Kind(), stringPtr("a")); err != nil {
						return err
					}
					return Add(w, e2, h2.Kind(), stringPtr("b"))
				},
				check: func(t *testing.T) {
					if !Has[string](w, e1, h2.Kind()) || !Has[string](w, e2, h2.Kind()) {
						t.Fatalf("expected both entities to have string component")
					}
				},
				teardown: func() bool { return Remove[string](w, e1, h2.Kind()) },
			},
			{
				name:  "add_float_and_remove",
				setup: func() error { return Add(w, e1, h3.Kind(), float64Ptr(1.23)) },
				check: func(t *testing.T) {
					if _, ok := Get[float64](w, e1, h3.Kind()); !ok {
						t.Fatalf("expected float present")
					}
				},
				teardown: func() bool { return Remove[float64](w, e1, h3.Kind()) },
			},
		}

		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				if err := tc.setup(); err != nil {
					t.Fatalf("setup failed: %v", err)
				}
				tc.check(t)
				if !tc.teardown() {
					t.Fatalf("teardown failed for %s", tc.name)
				}
			})
		}
	})
}

func TestForEach(t *testing.T) {
	t.Run("basic", func(t *testing.T) {
		w := NewWorld()
		h := component.NewComponent[int]()

		e1 := CreateEntity(w)
		e2 := CreateEntity(w)
		e3 := CreateEntity(w)

		if err := Add(w, e1, h.Kind(), intPtr(1)); err != nil {
			t.Fatalf("add failed: %v", err)
		}
		if err := Add(w, e3, h.Kind(), intPtr(3)); err != nil {
			t.Fatalf("add failed: %v", err)
		}

		var ents []Entity
		ForEach(w, h.Kind(), func(e Entity, _ *int) { ents = append(ents, e) })
		set := toSet(ents)

		if _, ok := set[e1]; !ok {
			t.Fatalf("expected e1 in ForEach result")
		}
		if _, ok := set[e3]; !ok {
			t.Fatalf("expected e3 in ForEach result")
		}
		if _, ok := set[e2]; ok {
			t.Fatalf("did not expect e2 in ForEach result")
		}
	})
}

func TestForEach3(t *testing.T) {
	tests := []struct {
		name string
		run  func(t *testing.T)
	}{
		{
			name: "intersection",
			run: func(t *testing.T) {
				w := NewWorld()
				e1 := CreateEntity(w)
				e2 := CreateEntity(w)
				e3 := CreateEntity(w)
				e4 := CreateEntity(w)

				ka := component.NewComponentKind[int]()
				kb := component.NewComponentKind[int]()
				kc := component.NewComponentKind[int]()

				if err := Add(w, e1, ka, intPtr(1)); err != nil {
					t.Fatal(err)
				}
				if err := Add(w, e2, ka, intPtr(2)); err != nil {
					t.Fatal(err)
				}
				if err := Add(w, e2, kb, intPtr(3)); err != nil {
					t.Fatal(err)
				}
				if err := Add(w, e2, kc, intPtr(5)); err != nil {
					t.Fatal(err)
				}
				if err := Add(w, e3, kb, intPtr(4)); err != nil {
					t.Fatal(err)
				}
				if err := Add(w, e4, kc, intPtr(6)); err != nil {
					t.Fatal(err)
				}

				var res []Entity
				ForEach3(w, ka, kb, kc, func(e Entity, _ *int, _ *int, _ *int) { res = append(res, e) })
				if len(res) != 1 || res[0].id() != e2.id() {
					t.Fatalf("expected only e2, got %v", res)
				}
			},
		},
		{
			name: "ignores_dead_entities",
			run: func(t *testing.T) {
				w := NewWorld()
				e := CreateEntity(w)

				ka := component.NewComponentKind[int]()
				kb := component.NewComponentKind[int]()
				kc := component.NewComponentKind[int]()

				if err := Add(w, e, ka, intPtr(1)); err != nil {
					t.Fatal(err)
				}
				if err := Add(w, e, kb, intPtr(2)); err != nil {
					t.Fatal(err)
				}
				if err := Add(w, e, kc, intPtr(3)); err != nil {
					t.Fatal(err)
				}

				if !DestroyEntity(w, e) {
					t.Fatal("failed to destroy entity")
				}

				var res []Entity
				ForEach3(w, ka, kb, kc, func(e Entity, _ *int, _ *int, _ *int) { res = append(res, e) })
				if len(res) != 0 {
					t.Fatalf("expected empty result after destroy, got %v", res)
				}
			},
		},
		{
			name: "no_common",
			run: func(t *testing.T) {
				w := NewWorld()
				e1 := CreateEntity(w)
				e2 := CreateEntity(w)

				ka := component.NewComponentKind[int]()
				kb := component.NewComponentKind[int]()
				kc := component.NewComponentKind[int]()

				if err := Add(w, e1, ka, intPtr(1)); err != nil {
					t.Fatal(err)
				}
				if err := Add(w, e2, kb, intPtr(2)); err != nil {
					t.Fatal(err)
				}

				var res []Entity
				ForEach3(w, ka, kb, kc, func(e Entity, _ *int, _ *int, _ *int) { res = append(res, e) })
				if len(res) != 0 {
					t.Fatalf("expected no common entities, got %v", res)
				}
			},
		},
		{
			name: "missing_store_returns_nil",
			run: func(t *testing.T) {
				w := NewWorld()
				e := CreateEntity(w)

				ka := component.NewComponentKind[int]()
				kb := component.NewComponentKind[int]()
				kc := component.NewComponentKind[int]()

				if err := Add(w, e, ka, intPtr(1)); err != nil {
					t.Fatal(err)
				}

				var res []Entity
				ForEach3(w, ka, kb, kc, func(e Entity, _ *int, _ *int, _ *int) { res = append(res, e) })
				if res != nil && len(res) != 0 {
					t.Fatalf("expected empty when other store missing, got %v", res)
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, tc.run)
	}
}

func TestStaleHandleAfterReuse(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()

	old := CreateEntity(w)
	if err := Add(w, old, h.Kind(), intPtr(1)); err != nil {
		t.Fatal(err)
	}
	if !DestroyEntity(w, old) {
		t.Fatal("failed to destroy entity")
	}

	fresh := CreateEntity(w)
	if fresh == old {
		t.Fatalf("reused slot must carry a new generation, got %v twice", fresh)
	}
	if IsAlive(w, old) {
		t.Fatalf("stale handle %v reported alive", old)
	}
	if err := Add(w, old, h.Kind(), intPtr(2)); err == nil {
		t.Fatalf("adding to a stale handle should fail")
	}
	if _, ok := Get(w, fresh, h.Kind()); ok {
		t.Fatalf("new occupant inherited a component")
	}
	if got := FromRef(fresh.Ref()); got != fresh {
		t.Fatalf("FromRef(Ref()) = %v, want %v", got, fresh)
	}
}

func TestAttachAndDestroyHooks(t *testing.T) {
	tests := []struct {
		name string
		run  func(t *testing.T)
	}{
		{
			name: "children_destroyed_with_parent",
			run: func(t *testing.T) {
				w := NewWorld()
				parent := CreateEntity(w)
				child := CreateEntity(w)
				grandchild := CreateEntity(w)
				if err := Attach(w, parent, child); err != nil {
					t.Fatal(err)
				}
				if err := Attach(w, child, grandchild); err != nil {
					t.Fatal(err)
				}

				if owner, ok := Owner(w, grandchild); !ok || owner != child {
					t.Fatalf("Owner(grandchild) = %v,%v", owner, ok)
				}

				DestroyEntity(w, parent)
				for _, e := range []Entity{parent, child, grandchild} {
					if IsAlive(w, e) {
						t.Fatalf("%v survived its parent", e)
					}
				}
			},
		},
		{
			name: "attach_dead_fails",
			run: func(t *testing.T) {
				w := NewWorld()
				parent := CreateEntity(w)
				child := CreateEntity(w)
				DestroyEntity(w, child)
				if err := Attach(w, parent, child); err == nil {
					t.Fatalf("expected error attaching a dead child")
				}
			},
		},
		{
			name: "hooks_run_once_before_removal",
			run: func(t *testing.T) {
				w := NewWorld()
				h := component.NewComponent[int]()
				e := CreateEntity(w)
				if err := Add(w, e, h.Kind(), intPtr(7)); err != nil {
					t.Fatal(err)
				}

				var seen []int
				w.OnDestroy(func(w *World, e Entity) {
					if v, ok := Get(w, e, h.Kind()); ok {
						seen = append(seen, *v)
					}
					// Re-entrant destroys are ignored.
					DestroyEntity(w, e)
				})

				if !DestroyEntity(w, e) {
					t.Fatal("failed to destroy entity")
				}
				DestroyEntity(w, e)
				if len(seen) != 1 || seen[0] != 7 {
					t.Fatalf("hook saw %v, want [7]", seen)
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, tc.run)
	}
}

type recordSystem struct {
	name string
	log  *[]string
}

func (s recordSystem) Update(w *World) {
	*s.log = append(*s.log, s.name)
}

func TestSchedulerAndClock(t *testing.T) {
	w := NewWorld()
	var log []string
	s := NewScheduler(recordSystem{"a", &log}, nil, recordSystem{"b", &log})
	s.Add(recordSystem{"c", &log})

	w.Advance(0.25)
	w.Advance(0.5)
	w.Advance(-1)
	s.Update(w)

	if got := len(s.Systems()); got != 3 {
		t.Fatalf("expected 3 systems, got %d", got)
	}
	if len(log) != 3 || log[0] != "a" || log[1] != "b" || log[2] != "c" {
		t.Fatalf("systems ran as %v", log)
	}
	if w.Now() != 0.75 || w.DeltaTime() != 0.5 {
		t.Fatalf("clock now=%v dt=%v", w.Now(), w.DeltaTime())
	}
}

func TestEventQueue(t *testing.T) {
	w := NewWorld()
	q := w.Events()
	if q.Drain() != nil {
		t.Fatalf("empty queue should drain to nil")
	}

	q.Push(Event{Type: EventEnemyHit, Data: EnemyHit{Amount: 1}})
	q.Push(Event{Type: EventPlayerDamaged, Data: PlayerDamaged{Amount: 2}})
	if q.Len() != 2 {
		t.Fatalf("Len = %d", q.Len())
	}

	events := q.Drain()
	if len(events) != 2 || events[0].Type != EventEnemyHit || events[1].Type != EventPlayerDamaged {
		t.Fatalf("events out of order: %v", events)
	}
	if q.Len() != 0 {
		t.Fatalf("queue not cleared after drain")
	}

	var nilQueue *EventQueue
	nilQueue.Push(Event{})
	if nilQueue.Len() != 0 || nilQueue.Drain() != nil {
		t.Fatalf("nil queue should be inert")
	}
}

func TestQueryIntersection(t *testing.T) {
	w := NewWorld()
	ka := component.NewComponentKind[int]()
	kb := component.NewComponentKind[int]()
	kc := component.NewComponentKind[int]()

	var ents []Entity
	for i := 0; i < 5; i++ {
		ents = append(ents, CreateEntity(w))
	}
	add := func(e Entity, kinds ...component.ComponentKind[int]) {
		for _, k := range kinds {
			if err := Add(w, e, k, intPtr(1)); err != nil {
				t.Fatal(err)
			}
		}
	}
	add(ents[0], ka, kb, kc)
	add(ents[1], ka, kb)
	add(ents[2], ka)
	add(ents[3], kb, kc)
	add(ents[4], ka, kb, kc)

	tests := []struct {
		name  string
		kinds []Kind
		want  []Entity
	}{
		{"single", []Kind{ka}, []Entity{ents[0], ents[1], ents[2], ents[4]}},
		{"pair", []Kind{ka, kb}, []Entity{ents[0], ents[1], ents[4]}},
		{"triple", []Kind{ka, kb, kc}, []Entity{ents[0], ents[4]}},
		{"none", nil, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := toSet(Query(w, tc.kinds...))
			if len(got) != len(tc.want) {
				t.Fatalf("Query returned %v, want %v", got, tc.want)
			}
			for _, e := range tc.want {
				if _, ok := got[e]; !ok {
					t.Fatalf("missing %v in %v", e, got)
				}
			}
		})
	}

	if got := IntersectEntities(nil, w.store(ka.ID(), false)); got != nil {
		t.Fatalf("intersect with nil set = %v", got)
	}
}
