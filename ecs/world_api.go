package ecs

import "iter"

// Set stores value as e's T component, replacing any previous one. No view of
// that component may be open.
func Set[T any](w *World, e Entity, value T) {
	w.checkEntity(e)
	storageFor[T](w).Set(int(e.token.index), value)
}

// Has reports whether e has a T component.
func Has[T any](w *World, e Entity) bool {
	w.checkEntity(e)
	return storageFor[T](w).Contains(int(e.token.index))
}

// Remove unsets e's T component. It is a no-op when e has none.
func Remove[T any](w *World, e Entity) {
	w.checkEntity(e)
	storageFor[T](w).Unset(int(e.token.index))
}

// TryGet opens a shared view of e's T component, or returns nil when e has
// none. The view must be released before the component is mutated.
func TryGet[T any](w *World, e Entity) *Ref[T] {
	w.checkEntity(e)
	return storageFor[T](w).TryBorrow(int(e.token.index))
}

// Get is TryGet for callers that know e has a T component. It panics when the
// component is missing.
func Get[T any](w *World, e Entity) *Ref[T] {
	ref := TryGet[T](w, e)
	if ref == nil {
		fatalf(ErrMissingComponent, "%s has no %s", e, componentType[T]())
	}
	return ref
}

// TryGetMut opens an exclusive view of e's T component, or returns nil when e
// has none.
func TryGetMut[T any](w *World, e Entity) *RefMut[T] {
	w.checkEntity(e)
	return storageFor[T](w).TryBorrowMut(int(e.token.index))
}

// GetMut is TryGetMut for callers that know e has a T component. It panics
// when the component is missing.
func GetMut[T any](w *World, e Entity) *RefMut[T] {
	ref := TryGetMut[T](w, e)
	if ref == nil {
		fatalf(ErrMissingComponent, "%s has no %s", e, componentType[T]())
	}
	return ref
}

// Read calls fn with a shared view of e's T component and reports whether e
// had one. The view is released when fn returns, even by panicking.
func Read[T any](w *World, e Entity, fn func(*T)) bool {
	w.checkEntity(e)
	ok, _ := storageFor[T](w).scoped(int(e.token.index), false, func(v *T) bool {
		fn(v)
		return true
	})
	return ok
}

// Write calls fn with an exclusive view of e's T component and reports
// whether e had one. The view is released when fn returns, even by panicking.
func Write[T any](w *World, e Entity, fn func(*T)) bool {
	w.checkEntity(e)
	ok, _ := storageFor[T](w).scoped(int(e.token.index), true, func(v *T) bool {
		fn(v)
		return true
	})
	return ok
}

// Iter iterates over every live entity with a T component, in ascending index
// order, yielding a shared view that is valid only inside the loop body.
// Liveness and presence are checked as each element is reached, so an
// entity whose component is removed earlier in the same pass is skipped.
func Iter[T any](w *World) iter.Seq2[Entity, *T] {
	return iterate[T](w, false)
}

// IterMut is Iter with exclusive views.
func IterMut[T any](w *World) iter.Seq2[Entity, *T] {
	return iterate[T](w, true)
}

func iterate[T any](w *World, exclusive bool) iter.Seq2[Entity, *T] {
	vec := storageFor[T](w)
	return func(yield func(Entity, *T) bool) {
		// Indices allocated after the pass starts are not visited.
		end := vec.Len()
		for index := 0; index < end; index++ {
			if !vec.Contains(index) {
				continue
			}
			e, ok := w.entities.resolve(uint32(index))
			if !ok {
				continue
			}
			_, cont := vec.scoped(index, exclusive, func(v *T) bool {
				return yield(e, v)
			})
			if !cont {
				return
			}
		}
	}
}

// Count returns the number of live entities with a T component. It opens no
// views, so it may be called while iterating over T.
func Count[T any](w *World) int {
	vec := storageFor[T](w)
	n := 0
	for index := 0; index < vec.Len(); index++ {
		if vec.Contains(index) && w.entities.alive(uint32(index)) {
			n++
		}
	}
	return n
}
