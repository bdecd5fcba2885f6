package ecs_test

import (
	"errors"
	"runtime"
	"testing"

	"github.com/plus3/jmge/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Common test component types
type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Name struct {
	Value string
}

type Health struct {
	Current int
	Max     int
}

type Flags struct {
	First, Second int
}

// Custom primitive types for testing non-struct components
type Score int32
type Tag string

type Sprite struct {
	Frame int
}

func (Sprite) ComponentName() string { return "sprite" }

func newTestWorld(opts ...ecs.Option) *ecs.World {
	w := ecs.NewWorld(opts...)
	ecs.RegisterComponent[Position](w)
	ecs.RegisterComponent[Velocity](w)
	ecs.RegisterComponent[Name](w)
	ecs.RegisterComponent[Health](w)
	ecs.RegisterComponent[Flags](w)
	ecs.RegisterComponent[Score](w)
	ecs.RegisterComponent[Tag](w)
	return w
}

// assertPanicsWith checks that fn panics with an error matching target.
func assertPanicsWith(t *testing.T, target error, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected a panic wrapping %v", target)
		err, ok := r.(error)
		require.True(t, ok, "panic value is not an error: %v", r)
		assert.True(t, errors.Is(err, target), "expected %v, got %v", target, err)
	}()
	fn()
}

// spawnDropped creates an entity whose handle is discarded before returning,
// so only the World knows about it. It returns the entity's index.
func spawnDropped(w *ecs.World, setup func(e ecs.Entity)) uint32 {
	e := w.NewEntity()
	if setup != nil {
		setup(e)
	}
	return e.Index()
}

// collect runs a garbage collection so dropped handles are observed, then
// reclaims.
func collect(w *ecs.World) int {
	runtime.GC()
	return w.Reclaim()
}
