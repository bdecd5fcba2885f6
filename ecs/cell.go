package ecs

import "reflect"

// borrowState tracks the views open on one slot: a positive count of shared
// readers, or exclusiveBorrow while a writer holds it.
type borrowState int32

const exclusiveBorrow borrowState = -1

func (b *borrowState) acquireShared(what func() string) {
	if *b == exclusiveBorrow {
		fatalf(ErrBorrowConflict, "%s: already borrowed exclusively", what())
	}
	*b++
}

func (b *borrowState) acquireExclusive(what func() string) {
	switch {
	case *b == exclusiveBorrow:
		fatalf(ErrBorrowConflict, "%s: already borrowed exclusively", what())
	case *b > 0:
		fatalf(ErrBorrowConflict, "%s: already borrowed by %d reader(s)", what(), int(*b))
	}
	*b = exclusiveBorrow
}

func (b *borrowState) releaseShared() {
	if *b > 0 {
		*b--
	}
}

func (b *borrowState) releaseExclusive() {
	if *b == exclusiveBorrow {
		*b = 0
	}
}

func (b borrowState) borrowed() bool {
	return b != 0
}

// Ref is a scoped shared view of a component. Any number of Refs to the same
// component may be open at once, but no RefMut. The pointer returned by Get
// must not be written through or kept after Release.
type Ref[T any] struct {
	slot *slot[T]
	vec  *slotVector[T]
	idx  int
}

// Get returns the viewed component.
func (r *Ref[T]) Get() *T {
	if r.slot == nil {
		fatalf(ErrViewReleased, "%s", r.vec.describe(r.idx))
	}
	return &r.slot.value
}

// Release ends the view. Releasing twice is a no-op.
func (r *Ref[T]) Release() {
	if r.slot != nil {
		r.slot.borrow.releaseShared()
		r.slot = nil
	}
}

// RefMut is a scoped exclusive view of a component. While it is open no other
// view of the same component can be opened.
type RefMut[T any] struct {
	slot *slot[T]
	vec  *slotVector[T]
	idx  int
}

// Get returns the viewed component for reading and writing.
func (r *RefMut[T]) Get() *T {
	if r.slot == nil {
		fatalf(ErrViewReleased, "%s", r.vec.describe(r.idx))
	}
	return &r.slot.value
}

// Release ends the view. Releasing twice is a no-op.
func (r *RefMut[T]) Release() {
	if r.slot != nil {
		r.slot.borrow.releaseExclusive()
		r.slot = nil
	}
}

// AnyRef is a type-erased view, shared or exclusive. Value holds a *T.
type AnyRef struct {
	typ       reflect.Type
	value     any
	release   func()
	exclusive bool
}

// Type returns the component type behind the view.
func (r *AnyRef) Type() reflect.Type {
	return r.typ
}

// Exclusive reports whether the view may be written through.
func (r *AnyRef) Exclusive() bool {
	return r.exclusive
}

// Value returns a pointer to the component as an interface value.
func (r *AnyRef) Value() any {
	if r.release == nil {
		fatalf(ErrViewReleased, "erased view of %s", r.typ)
	}
	return r.value
}

// Release ends the view. Releasing twice is a no-op.
func (r *AnyRef) Release() {
	if r.release != nil {
		r.release()
		r.release = nil
		r.value = nil
	}
}
