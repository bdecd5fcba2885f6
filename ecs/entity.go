package ecs

import (
	"fmt"
	"weak"

	"github.com/kamstrup/intmap"
)

// Entity is a handle to a logical entity: a pointer to a liveness token shared
// by every copy of the handle. Copying an Entity clones the handle; it never
// creates a new entity. Once no copy is reachable the entity is dead and the
// next World.Reclaim frees its index and components.
//
// A handle counts as held only while the program can still reach it. A local
// whose last use has passed is already dropped, even if it is still in scope;
// use runtime.KeepAlive to hold one that is not otherwise touched.
type Entity struct {
	token *token
}

// token is the shared liveness marker. It holds a pointer so it is never
// packed into a tiny allocation alongside unrelated values.
type token struct {
	world *World
	index uint32
}

// Index returns the entity's slot index. Indices are recycled after
// reclamation, so an index alone does not identify an entity over time.
func (e Entity) Index() uint32 {
	if e.token == nil {
		return 0
	}
	return e.token.index
}

// IsValid reports whether e was obtained from a World.
func (e Entity) IsValid() bool {
	return e.token != nil
}

// World returns the World that created the entity, or nil for the zero Entity.
func (e Entity) World() *World {
	if e.token == nil {
		return nil
	}
	return e.token.world
}

func (e Entity) String() string {
	if e.token == nil {
		return "Entity(invalid)"
	}
	return fmt.Sprintf("Entity(%d)", e.token.index)
}

// entityRegistry observes entity liveness without owning it. Each allocated
// index maps to a weak pointer to the token held by the entity's handles.
type entityRegistry struct {
	refs *intmap.Map[uint32, weak.Pointer[token]]
	free []uint32
	next uint32
}

func newEntityRegistry(capacity int) *entityRegistry {
	return &entityRegistry{
		refs: intmap.New[uint32, weak.Pointer[token]](capacity),
	}
}

func (r *entityRegistry) create(w *World) Entity {
	var index uint32
	if n := len(r.free); n > 0 {
		index = r.free[n-1]
		r.free = r.free[:n-1]
	} else {
		index = r.next
		r.next++
	}

	t := &token{world: w, index: index}
	r.refs.Put(index, weak.Make(t))
	return Entity{token: t}
}

// resolve returns a fresh handle for index if some handle still owns it.
func (r *entityRegistry) resolve(index uint32) (Entity, bool) {
	wp, ok := r.refs.Get(index)
	if !ok {
		return Entity{}, false
	}
	t := wp.Value()
	if t == nil {
		return Entity{}, false
	}
	return Entity{token: t}, true
}

func (r *entityRegistry) alive(index uint32) bool {
	wp, ok := r.refs.Get(index)
	return ok && wp.Value() != nil
}

// collect returns, in ascending order, every allocated index whose token is
// gone. Callers release each one once its storage has been cleared.
func (r *entityRegistry) collect() []uint32 {
	var dead []uint32
	for index := uint32(0); index < r.next; index++ {
		wp, ok := r.refs.Get(index)
		if !ok || wp.Value() != nil {
			continue
		}
		dead = append(dead, index)
	}
	return dead
}

// release forgets the observer for a dead index and makes it available to
// create.
func (r *entityRegistry) release(index uint32) {
	r.refs.Del(index)
	r.free = append(r.free, index)
}

func (r *entityRegistry) liveCount() int {
	n := 0
	for index := uint32(0); index < r.next; index++ {
		if r.alive(index) {
			n++
		}
	}
	return n
}
