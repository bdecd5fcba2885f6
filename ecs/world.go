package ecs

import (
	"iter"
	"os"
	"reflect"

	"github.com/rs/zerolog"
)

const defaultEntityCapacity = 256

// World owns one slot vector per registered component type, the entity
// liveness registry and the named systems. It is not safe for concurrent use.
type World struct {
	components map[reflect.Type]iSlotVector
	order      []iSlotVector
	entities   *entityRegistry
	scheduler  *scheduler
	commands   *Commands
	logger     zerolog.Logger
}

// Option configures a World.
type Option func(w *World)

// WithLogger sets the logger used for registration, system and reclamation
// events. The default logger discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(w *World) {
		w.logger = logger
	}
}

// WithPrettyLog logs human-readable output to stderr at debug level.
func WithPrettyLog() Option {
	return func(w *World) {
		w.logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(zerolog.DebugLevel).
			With().Timestamp().Logger()
	}
}

// NewWorld creates an empty World. Register every component type before
// creating entities or running systems.
func NewWorld(opts ...Option) *World {
	w := &World{
		components: make(map[reflect.Type]iSlotVector),
		entities:   newEntityRegistry(defaultEntityCapacity),
		scheduler:  newScheduler(),
		commands:   newCommands(),
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Logger returns the World's logger.
func (w *World) Logger() *zerolog.Logger {
	return &w.logger
}

// RegisterComponent adds storage for component type T. Registering the same
// type twice panics.
func RegisterComponent[T any](w *World) {
	t := componentType[T]()
	if _, ok := w.components[t]; ok {
		fatalf(ErrDuplicateComponent, "%s", t)
	}
	vec := newSlotVector[T](t)
	w.components[t] = vec
	w.order = append(w.order, vec)

	w.logger.Debug().
		Str("component_name", ComponentName(t)).
		Int("component_id", len(w.order)-1).
		Msg("component registered")
}

// IsRegistered reports whether T has been registered.
func IsRegistered[T any](w *World) bool {
	_, ok := w.components[reflect.TypeFor[T]()]
	return ok
}

// ComponentTypes returns the registered component types in registration
// order.
func (w *World) ComponentTypes() []reflect.Type {
	types := make([]reflect.Type, len(w.order))
	for i, vec := range w.order {
		types[i] = vec.Type()
	}
	return types
}

func (w *World) storage(t reflect.Type) iSlotVector {
	vec, ok := w.components[t]
	if !ok {
		fatalf(ErrUnregisteredComponent, "%s", t)
	}
	return vec
}

func storageFor[T any](w *World) *slotVector[T] {
	return slotVectorAs[T](w.storage(reflect.TypeFor[T]()))
}

// NewEntity creates an entity, recycling a reclaimed index when one is free.
// The entity lives for as long as any copy of the returned handle is
// reachable.
func (w *World) NewEntity() Entity {
	return w.entities.create(w)
}

// Reclaim frees every entity that no handle references any more: its
// components are unset in every storage and its index becomes available to
// NewEntity. Dropping the last handle does not free anything by itself; the
// game loop decides when to call Reclaim. It returns the number of entities
// reclaimed.
//
// Handles are tracked through the garbage collector, so an entity is only
// seen as dead once a collection cycle has run after its last handle became
// unreachable.
func (w *World) Reclaim() int {
	dead := w.entities.collect()
	for _, index := range dead {
		for _, vec := range w.order {
			vec.Unset(int(index))
		}
		w.entities.release(index)
	}

	if len(dead) > 0 {
		w.logger.Debug().
			Int("reclaimed", len(dead)).
			Int("free_indices", len(w.entities.free)).
			Msg("entities reclaimed")
	}
	return len(dead)
}

// EntityAt returns a handle to the live entity at index, if there is one.
// Tools that must not keep entities alive store indices and resolve them with
// EntityAt when needed.
func (w *World) EntityAt(index uint32) (Entity, bool) {
	return w.entities.resolve(index)
}

// Entities iterates over live entities in ascending index order.
func (w *World) Entities() iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		end := w.entities.next
		for index := uint32(0); index < end; index++ {
			e, ok := w.entities.resolve(index)
			if !ok {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}

// ComponentsOf returns the types of the components e currently has.
func (w *World) ComponentsOf(e Entity) []reflect.Type {
	w.checkEntity(e)
	var types []reflect.Type
	for _, vec := range w.order {
		if vec.Contains(int(e.token.index)) {
			types = append(types, vec.Type())
		}
	}
	return types
}

// SetAny stores value, a T or *T of a registered type, as e's component.
func (w *World) SetAny(e Entity, value any) {
	w.checkEntity(e)
	if value == nil {
		fatalf(ErrInvalidComponent, "nil component for %s", e)
	}
	typ, _ := valueTypeOf(value)
	w.storage(typ).SetAny(int(e.token.index), value)
}

// TryGetAny opens a shared erased view of e's component of type t, or returns
// nil when e has none.
func (w *World) TryGetAny(e Entity, t reflect.Type) *AnyRef {
	w.checkEntity(e)
	return w.storage(t).TryBorrowAny(int(e.token.index))
}

// TryGetAnyMut opens an exclusive erased view of e's component of type t, or
// returns nil when e has none.
func (w *World) TryGetAnyMut(e Entity, t reflect.Type) *AnyRef {
	w.checkEntity(e)
	return w.storage(t).TryBorrowAnyMut(int(e.token.index))
}

func (w *World) checkEntity(e Entity) {
	if e.token == nil {
		fatalf(ErrInvalidEntity, "zero Entity used")
	}
	if e.token.world != w {
		fatalf(ErrForeignEntity, "%s", e)
	}
}
