package ecs

import (
	"fmt"
	"reflect"
)

// iSlotVector is the type-erased face of a slotVector, used wherever the
// World handles every registered component type at once.
type iSlotVector interface {
	Type() reflect.Type
	Len() int
	Occupied() int
	Contains(index int) bool
	Unset(index int)
	SetAny(index int, value any)
	TryBorrowAny(index int) *AnyRef
	TryBorrowAnyMut(index int) *AnyRef
}

const slotBlockSize = 64

type slot[T any] struct {
	value  T
	filled bool
	borrow borrowState
}

// slotVector stores one component type for every entity index. Slots live in
// fixed-size blocks held by pointer so a component's address never changes
// while the vector grows. The vector only grows or clears slots in place.
type slotVector[T any] struct {
	typ      reflect.Type
	blocks   []*[slotBlockSize]slot[T]
	length   int
	occupied int
}

func newSlotVector[T any](typ reflect.Type) *slotVector[T] {
	return &slotVector[T]{typ: typ}
}

// slotVectorAs recovers the concrete vector for T, failing loudly when the
// stored type tag is not T.
func slotVectorAs[T any](v iSlotVector) *slotVector[T] {
	sv, ok := v.(*slotVector[T])
	if !ok {
		fatalf(ErrTypeMismatch, "storage for %s accessed as %s", v.Type(), reflect.TypeFor[T]())
	}
	return sv
}

func (v *slotVector[T]) Type() reflect.Type {
	return v.typ
}

// Len returns the number of allocated slots, occupied or not.
func (v *slotVector[T]) Len() int {
	return v.length
}

// Occupied returns the number of filled slots.
func (v *slotVector[T]) Occupied() int {
	return v.occupied
}

func (v *slotVector[T]) describe(index int) string {
	return fmt.Sprintf("%s at index %d", v.typ, index)
}

func (v *slotVector[T]) at(index int) *slot[T] {
	if index < 0 || index >= v.length {
		return nil
	}
	return &v.blocks[index/slotBlockSize][index%slotBlockSize]
}

func (v *slotVector[T]) grow(index int) {
	for index/slotBlockSize >= len(v.blocks) {
		v.blocks = append(v.blocks, new([slotBlockSize]slot[T]))
	}
	if index >= v.length {
		v.length = index + 1
	}
}

// Contains reports whether the slot at index is occupied.
func (v *slotVector[T]) Contains(index int) bool {
	s := v.at(index)
	return s != nil && s.filled
}

// Set stores value at index, growing the vector if needed and overwriting any
// previous occupant.
func (v *slotVector[T]) Set(index int, value T) {
	v.grow(index)
	s := v.at(index)
	if s.borrow.borrowed() {
		fatalf(ErrBorrowConflict, "%s: set while a view is open", v.describe(index))
	}
	if !s.filled {
		s.filled = true
		v.occupied++
	}
	s.value = value
}

func (v *slotVector[T]) SetAny(index int, value any) {
	if value == nil {
		fatalf(ErrInvalidComponent, "nil value stored as %s", v.typ)
	}
	typ, val := valueTypeOf(value)
	if typ != v.typ {
		fatalf(ErrTypeMismatch, "%s stored as %s", typ, v.typ)
	}
	v.Set(index, val.Interface().(T))
}

// Unset clears the slot at index. Out of range or empty slots are left alone.
func (v *slotVector[T]) Unset(index int) {
	s := v.at(index)
	if s == nil || !s.filled {
		return
	}
	if s.borrow.borrowed() {
		fatalf(ErrBorrowConflict, "%s: unset while a view is open", v.describe(index))
	}
	var zero T
	s.value = zero
	s.filled = false
	v.occupied--
}

// TryBorrow opens a shared view of the slot, or returns nil when it is empty.
func (v *slotVector[T]) TryBorrow(index int) *Ref[T] {
	s := v.at(index)
	if s == nil || !s.filled {
		return nil
	}
	s.borrow.acquireShared(func() string { return v.describe(index) })
	return &Ref[T]{slot: s, vec: v, idx: index}
}

// TryBorrowMut opens an exclusive view of the slot, or returns nil when it is
// empty.
func (v *slotVector[T]) TryBorrowMut(index int) *RefMut[T] {
	s := v.at(index)
	if s == nil || !s.filled {
		return nil
	}
	s.borrow.acquireExclusive(func() string { return v.describe(index) })
	return &RefMut[T]{slot: s, vec: v, idx: index}
}

func (v *slotVector[T]) TryBorrowAny(index int) *AnyRef {
	ref := v.TryBorrow(index)
	if ref == nil {
		return nil
	}
	return &AnyRef{typ: v.typ, value: ref.Get(), release: ref.Release}
}

func (v *slotVector[T]) TryBorrowAnyMut(index int) *AnyRef {
	ref := v.TryBorrowMut(index)
	if ref == nil {
		return nil
	}
	return &AnyRef{typ: v.typ, value: ref.Get(), release: ref.Release, exclusive: true}
}

// scoped runs fn with the slot at index borrowed, releasing the borrow even
// if fn panics. It returns false without calling fn when the slot is empty.
func (v *slotVector[T]) scoped(index int, exclusive bool, fn func(*T) bool) (ok, cont bool) {
	s := v.at(index)
	if s == nil || !s.filled {
		return false, true
	}
	what := func() string { return v.describe(index) }
	if exclusive {
		s.borrow.acquireExclusive(what)
		defer s.borrow.releaseExclusive()
	} else {
		s.borrow.acquireShared(what)
		defer s.borrow.releaseShared()
	}
	return true, fn(&s.value)
}
