package ecs_test

import (
	"testing"

	"github.com/plus3/jmge/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// spawnerSystem queues one new entity per Position it sees.
type spawnerSystem struct {
	spawned []ecs.Entity
}

func (s *spawnerSystem) Run(w *ecs.World) {
	for _, pos := range ecs.Iter[Position](w) {
		at := *pos
		w.Commands().DeferSpawn(func(w *ecs.World, e ecs.Entity) {
			ecs.Set(w, e, Position{X: at.X + 1, Y: at.Y})
			s.spawned = append(s.spawned, e)
		})
	}
}

func TestDeferSpawnDuringIteration(t *testing.T) {
	w := newTestWorld()
	e := w.NewEntity()
	ecs.Set(w, e, Position{X: 1})

	sys := &spawnerSystem{}
	w.AddSystem("spawner", sys)

	w.RunAll()
	require.Len(t, sys.spawned, 1)
	assert.Equal(t, 0, w.Commands().Len())
	assert.Equal(t, 2, ecs.Count[Position](w))
	assert.Equal(t, float32(2), ecs.Get[Position](w, sys.spawned[0]).Get().X)

	w.RunAll()
	assert.Len(t, sys.spawned, 3)
	assert.Equal(t, 4, ecs.Count[Position](w))
}

func TestDeferSetAndRemove(t *testing.T) {
	w := newTestWorld()
	e := w.NewEntity()
	ecs.Set(w, e, Position{X: 1})
	ecs.Set(w, e, Velocity{DX: 1})

	w.AddSystem("mutate", ecs.SystemFunc(func(w *ecs.World) {
		for e := range ecs.Iter[Position](w) {
			// Setting Position here would conflict with the open view.
			ecs.DeferSet(w.Commands(), e, Position{X: 10})
			ecs.DeferRemove[Velocity](w.Commands(), e)
			ecs.DeferSet(w.Commands(), e, Name{Value: "moved"})
		}
		assert.Equal(t, 3, w.Commands().Len())
		assert.True(t, ecs.Has[Velocity](w, e))
	}))

	w.RunAll()
	assert.Equal(t, float32(10), ecs.Get[Position](w, e).Get().X)
	assert.False(t, ecs.Has[Velocity](w, e))
	assert.Equal(t, "moved", ecs.Get[Name](w, e).Get().Value)
}

func TestCommandsRunInOrder(t *testing.T) {
	w := newTestWorld()
	var order []int
	w.AddSystem("queue", ecs.SystemFunc(func(w *ecs.World) {
		c := w.Commands()
		c.Defer(func() { order = append(order, 1) })
		c.Defer(func() {
			order = append(order, 2)
			// Queued during the flush, applied in the same flush.
			c.Defer(func() { order = append(order, 4) })
		})
		c.Defer(func() { order = append(order, 3) })
	}))

	w.RunAll()
	assert.Equal(t, []int{1, 2, 3, 4}, order)
	assert.Equal(t, 0, w.Commands().Len())
}

func TestCommandsFlushAfterOutermostPass(t *testing.T) {
	w := newTestWorld()
	applied := false
	w.AddSystem("inner", ecs.SystemFunc(func(w *ecs.World) {
		w.Commands().Defer(func() { applied = true })
	}))
	w.AddSystem("outer", ecs.SystemFunc(func(w *ecs.World) {
		w.RunSystem("inner")
		assert.False(t, applied, "commands applied before the outer pass ended")
	}))
	w.SetActive("inner", false)

	w.RunAll()
	assert.True(t, applied)
}

func TestCommandsKeptWhenPassPanics(t *testing.T) {
	w := newTestWorld()
	applied := 0
	w.AddSystem("fails", ecs.SystemFunc(func(w *ecs.World) {
		w.Commands().Defer(func() { applied++ })
		panic("system bug")
	}))

	assert.Panics(t, func() { w.RunAll() })
	assert.Equal(t, 0, applied)
	assert.Equal(t, 1, w.Commands().Len())

	w.RemoveSystem("fails")
	w.RunAll()
	assert.Equal(t, 1, applied)
}

func TestCommandPanicDropsOnlyAppliedCommands(t *testing.T) {
	w := newTestWorld()
	c := w.Commands()
	ran := []string{}
	c.Defer(func() { ran = append(ran, "first") })
	c.Defer(func() { panic("bad command") })
	c.Defer(func() { ran = append(ran, "third") })

	assert.Panics(t, func() { c.Flush(w) })
	assert.Equal(t, []string{"first"}, ran)
	assert.Equal(t, 1, c.Len())

	c.Flush(w)
	assert.Equal(t, []string{"first", "third"}, ran)
	assert.Equal(t, 0, c.Len())
}
