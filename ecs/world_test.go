package ecs_test

import (
	"reflect"
	"runtime"
	"testing"

	"github.com/plus3/jmge/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGetMutate(t *testing.T) {
	w := newTestWorld()
	e := w.NewEntity()

	ecs.Set(w, e, Position{X: 100, Y: 200})

	pos := ecs.Get[Position](w, e)
	assert.Equal(t, Position{X: 100, Y: 200}, *pos.Get())
	pos.Release()

	posMut := ecs.GetMut[Position](w, e)
	posMut.Get().X = 300
	posMut.Release()

	pos = ecs.Get[Position](w, e)
	assert.Equal(t, Position{X: 300, Y: 200}, *pos.Get())
	pos.Release()
}

func TestSetOverwrites(t *testing.T) {
	w := newTestWorld()
	e := w.NewEntity()

	ecs.Set(w, e, Name{Value: "first"})
	ecs.Set(w, e, Name{Value: "second"})

	ok := ecs.Read(w, e, func(n *Name) {
		assert.Equal(t, "second", n.Value)
	})
	assert.True(t, ok)
}

func TestPrimitiveComponents(t *testing.T) {
	w := newTestWorld()
	e := w.NewEntity()

	ecs.Set(w, e, Score(42))
	ecs.Set(w, e, Tag("player"))

	ecs.Write(w, e, func(s *Score) { *s += 8 })

	score := ecs.Get[Score](w, e)
	defer score.Release()
	assert.Equal(t, Score(50), *score.Get())

	tag := ecs.Get[Tag](w, e)
	defer tag.Release()
	assert.Equal(t, Tag("player"), *tag.Get())
}

func TestTryGetAbsent(t *testing.T) {
	w := newTestWorld()
	e := w.NewEntity()

	assert.Nil(t, ecs.TryGet[Position](w, e))
	assert.Nil(t, ecs.TryGetMut[Position](w, e))
	assert.False(t, ecs.Has[Position](w, e))
	assert.False(t, ecs.Read(w, e, func(*Position) { t.Fatal("called for a missing component") }))
	assert.False(t, ecs.Write(w, e, func(*Position) { t.Fatal("called for a missing component") }))

	ecs.Set(w, e, Position{X: 1})
	assert.True(t, ecs.Has[Position](w, e))

	ecs.Remove[Position](w, e)
	assert.Nil(t, ecs.TryGet[Position](w, e))
	assert.False(t, ecs.Has[Position](w, e))

	// Removing again is a no-op.
	ecs.Remove[Position](w, e)
}

func TestTryGetIsPerEntity(t *testing.T) {
	w := newTestWorld()
	a := w.NewEntity()
	b := w.NewEntity()

	// b's index is past a's, so this grows the storage past a without
	// touching it.
	ecs.Set(w, b, Health{Current: 10, Max: 10})

	assert.Nil(t, ecs.TryGet[Health](w, a))
	ref := ecs.TryGet[Health](w, b)
	require.NotNil(t, ref)
	assert.Equal(t, 10, ref.Get().Current)
	ref.Release()
}

func TestGetMissingPanics(t *testing.T) {
	w := newTestWorld()
	e := w.NewEntity()

	assertPanicsWith(t, ecs.ErrMissingComponent, func() { ecs.Get[Position](w, e) })
	assertPanicsWith(t, ecs.ErrMissingComponent, func() { ecs.GetMut[Position](w, e) })
}

func TestRegistration(t *testing.T) {
	t.Run("duplicate", func(t *testing.T) {
		w := ecs.NewWorld()
		ecs.RegisterComponent[Position](w)
		assertPanicsWith(t, ecs.ErrDuplicateComponent, func() { ecs.RegisterComponent[Position](w) })
	})

	t.Run("invalid kinds", func(t *testing.T) {
		w := ecs.NewWorld()
		assertPanicsWith(t, ecs.ErrInvalidComponent, func() { ecs.RegisterComponent[*Position](w) })
		assertPanicsWith(t, ecs.ErrInvalidComponent, func() { ecs.RegisterComponent[map[string]int](w) })
		assertPanicsWith(t, ecs.ErrInvalidComponent, func() { ecs.RegisterComponent[func()](w) })
		assertPanicsWith(t, ecs.ErrInvalidComponent, func() { ecs.RegisterComponent[chan int](w) })
		assertPanicsWith(t, ecs.ErrInvalidComponent, func() { ecs.RegisterComponent[any](w) })
	})

	t.Run("unregistered access", func(t *testing.T) {
		w := ecs.NewWorld()
		ecs.RegisterComponent[Position](w)
		e := w.NewEntity()

		assertPanicsWith(t, ecs.ErrUnregisteredComponent, func() { ecs.Set(w, e, Velocity{}) })
		assertPanicsWith(t, ecs.ErrUnregisteredComponent, func() { ecs.TryGet[Velocity](w, e) })
		assertPanicsWith(t, ecs.ErrUnregisteredComponent, func() { ecs.TryGetMut[Velocity](w, e) })
		assertPanicsWith(t, ecs.ErrUnregisteredComponent, func() { ecs.Has[Velocity](w, e) })
		assertPanicsWith(t, ecs.ErrUnregisteredComponent, func() { ecs.Iter[Velocity](w) })
		assertPanicsWith(t, ecs.ErrUnregisteredComponent, func() { ecs.IterMut[Velocity](w) })
		assertPanicsWith(t, ecs.ErrUnregisteredComponent, func() { w.SetAny(e, Velocity{}) })
	})

	t.Run("registered types in order", func(t *testing.T) {
		w := ecs.NewWorld()
		ecs.RegisterComponent[Velocity](w)
		ecs.RegisterComponent[Position](w)

		assert.True(t, ecs.IsRegistered[Position](w))
		assert.False(t, ecs.IsRegistered[Health](w))
		assert.Equal(t, []reflect.Type{
			reflect.TypeFor[Velocity](),
			reflect.TypeFor[Position](),
		}, w.ComponentTypes())
	})
}

func TestEntityHandleChecks(t *testing.T) {
	w := newTestWorld()
	other := newTestWorld()
	foreign := other.NewEntity()

	assertPanicsWith(t, ecs.ErrInvalidEntity, func() { ecs.Set(w, ecs.Entity{}, Position{}) })
	assertPanicsWith(t, ecs.ErrInvalidEntity, func() { ecs.TryGet[Position](w, ecs.Entity{}) })
	assertPanicsWith(t, ecs.ErrForeignEntity, func() { ecs.Set(w, foreign, Position{}) })
	assertPanicsWith(t, ecs.ErrForeignEntity, func() { w.ComponentsOf(foreign) })
}

func TestBorrowRules(t *testing.T) {
	t.Run("shared views coexist", func(t *testing.T) {
		w := newTestWorld()
		e := w.NewEntity()
		ecs.Set(w, e, Position{X: 1})

		a := ecs.Get[Position](w, e)
		b := ecs.Get[Position](w, e)
		assert.Same(t, a.Get(), b.Get())
		a.Release()
		b.Release()
	})

	t.Run("second exclusive view", func(t *testing.T) {
		w := newTestWorld()
		e := w.NewEntity()
		ecs.Set(w, e, Position{X: 1})

		m := ecs.GetMut[Position](w, e)
		assertPanicsWith(t, ecs.ErrBorrowConflict, func() { ecs.GetMut[Position](w, e) })
		assertPanicsWith(t, ecs.ErrBorrowConflict, func() { ecs.Get[Position](w, e) })
		m.Release()

		// Released views free the slot.
		m = ecs.GetMut[Position](w, e)
		m.Release()
	})

	t.Run("exclusive while shared", func(t *testing.T) {
		w := newTestWorld()
		e := w.NewEntity()
		ecs.Set(w, e, Position{X: 1})

		r := ecs.Get[Position](w, e)
		assertPanicsWith(t, ecs.ErrBorrowConflict, func() { ecs.GetMut[Position](w, e) })
		assertPanicsWith(t, ecs.ErrBorrowConflict, func() { ecs.Set(w, e, Position{X: 2}) })
		assertPanicsWith(t, ecs.ErrBorrowConflict, func() { ecs.Remove[Position](w, e) })
		r.Release()

		assert.Equal(t, float32(1), ecs.Get[Position](w, e).Get().X)
	})

	t.Run("views of different slots are independent", func(t *testing.T) {
		w := newTestWorld()
		a := w.NewEntity()
		b := w.NewEntity()
		ecs.Set(w, a, Position{X: 1})
		ecs.Set(w, b, Position{X: 2})
		ecs.Set(w, a, Velocity{DX: 3})

		pa := ecs.GetMut[Position](w, a)
		pb := ecs.GetMut[Position](w, b)
		va := ecs.GetMut[Velocity](w, a)
		pa.Get().X += va.Get().DX
		pb.Get().X += va.Get().DX
		pa.Release()
		pb.Release()
		va.Release()

		assert.Equal(t, float32(4), ecs.Get[Position](w, a).Get().X)
		assert.Equal(t, float32(5), ecs.Get[Position](w, b).Get().X)
	})

	t.Run("release is idempotent and ends the view", func(t *testing.T) {
		w := newTestWorld()
		e := w.NewEntity()
		ecs.Set(w, e, Position{X: 1})

		r := ecs.Get[Position](w, e)
		r.Release()
		r.Release()
		assertPanicsWith(t, ecs.ErrViewReleased, func() { r.Get() })

		m := ecs.GetMut[Position](w, e)
		m.Release()
		m.Release()
		assertPanicsWith(t, ecs.ErrViewReleased, func() { m.Get() })
	})

	t.Run("scoped helpers release on panic", func(t *testing.T) {
		w := newTestWorld()
		e := w.NewEntity()
		ecs.Set(w, e, Position{X: 1})

		assert.Panics(t, func() {
			ecs.Write(w, e, func(p *Position) {
				p.X = 9
				panic("system bug")
			})
		})

		m := ecs.GetMut[Position](w, e)
		assert.Equal(t, float32(9), m.Get().X)
		m.Release()
	})
}

func TestIterMutOrder(t *testing.T) {
	w := newTestWorld()
	entities := make([]ecs.Entity, 6)
	for i := range entities {
		entities[i] = w.NewEntity()
	}

	// Set out of order; iteration follows indices, not insertion.
	for _, i := range []int{4, 0, 2} {
		ecs.Set(w, entities[i], Position{X: float32(i)})
	}
	ecs.Set(w, entities[5], Velocity{})

	var seen []uint32
	for e, pos := range ecs.IterMut[Position](w) {
		seen = append(seen, e.Index())
		pos.Y = pos.X * 10
	}
	assert.Equal(t, []uint32{0, 2, 4}, seen)

	for _, i := range []int{0, 2, 4} {
		assert.Equal(t, float32(i*10), ecs.Get[Position](w, entities[i]).Get().Y)
	}
	assert.Equal(t, 3, ecs.Count[Position](w))
}

func TestIterYieldsSharedHandles(t *testing.T) {
	w := newTestWorld()
	e := w.NewEntity()
	ecs.Set(w, e, Name{Value: "hero"})

	for got, name := range ecs.Iter[Name](w) {
		assert.Equal(t, e, got)
		assert.Equal(t, "hero", name.Value)
	}
}

func TestIterEarlyBreakReleases(t *testing.T) {
	w := newTestWorld()
	for range 3 {
		e := w.NewEntity()
		ecs.Set(w, e, Position{})
		defer runtime.KeepAlive(e)
	}

	for e := range ecs.IterMut[Position](w) {
		_ = e
		break
	}

	for e := range w.Entities() {
		m := ecs.GetMut[Position](w, e)
		m.Release()
	}
}

func TestIterRechecksPresence(t *testing.T) {
	w := newTestWorld()
	entities := make([]ecs.Entity, 4)
	for i := range entities {
		entities[i] = w.NewEntity()
		ecs.Set(w, entities[i], Position{X: float32(i)})
	}

	var seen []uint32
	for e := range ecs.IterMut[Position](w) {
		seen = append(seen, e.Index())
		if e.Index() == 0 {
			ecs.Remove[Position](w, entities[2])
		}
	}
	assert.Equal(t, []uint32{0, 1, 3}, seen)
}

func TestIterSkipsDeadEntities(t *testing.T) {
	w := newTestWorld()
	keep := w.NewEntity()
	ecs.Set(w, keep, Position{X: 1})
	dropped := spawnDropped(w, func(e ecs.Entity) { ecs.Set(w, e, Position{X: 2}) })

	runtime.GC()

	var seen []uint32
	for e := range ecs.Iter[Position](w) {
		seen = append(seen, e.Index())
	}
	assert.Equal(t, []uint32{keep.Index()}, seen)
	assert.NotContains(t, seen, dropped)
	assert.Equal(t, 1, ecs.Count[Position](w))
}

func TestIterBorrowConflicts(t *testing.T) {
	w := newTestWorld()
	e := w.NewEntity()
	ecs.Set(w, e, Position{X: 1})

	t.Run("get inside iter_mut", func(t *testing.T) {
		assertPanicsWith(t, ecs.ErrBorrowConflict, func() {
			for e := range ecs.IterMut[Position](w) {
				ecs.Get[Position](w, e)
			}
		})
	})

	t.Run("get inside iter", func(t *testing.T) {
		for e := range ecs.Iter[Position](w) {
			r := ecs.Get[Position](w, e)
			r.Release()
		}
	})

	t.Run("get_mut inside iter", func(t *testing.T) {
		assertPanicsWith(t, ecs.ErrBorrowConflict, func() {
			for e := range ecs.Iter[Position](w) {
				ecs.GetMut[Position](w, e)
			}
		})
	})

	// Every failed pass above released its views while unwinding.
	m := ecs.GetMut[Position](w, e)
	m.Release()
}

func TestErasedAccess(t *testing.T) {
	w := newTestWorld()
	e := w.NewEntity()

	w.SetAny(e, Position{X: 1, Y: 2})
	w.SetAny(e, &Velocity{DX: 3})

	assert.ElementsMatch(t, []reflect.Type{
		reflect.TypeFor[Position](),
		reflect.TypeFor[Velocity](),
	}, w.ComponentsOf(e))

	ref := w.TryGetAnyMut(e, reflect.TypeFor[Position]())
	require.NotNil(t, ref)
	assert.True(t, ref.Exclusive())
	assert.Equal(t, reflect.TypeFor[Position](), ref.Type())
	reflect.ValueOf(ref.Value()).Elem().FieldByName("X").SetFloat(7)
	assertPanicsWith(t, ecs.ErrBorrowConflict, func() { w.TryGetAny(e, reflect.TypeFor[Position]()) })
	ref.Release()

	shared := w.TryGetAny(e, reflect.TypeFor[Position]())
	require.NotNil(t, shared)
	assert.Equal(t, &Position{X: 7, Y: 2}, shared.Value())
	shared.Release()
	assertPanicsWith(t, ecs.ErrViewReleased, func() { shared.Value() })

	assert.Nil(t, w.TryGetAny(e, reflect.TypeFor[Health]()))
	assertPanicsWith(t, ecs.ErrInvalidComponent, func() { w.SetAny(e, nil) })
}
