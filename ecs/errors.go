package ecs

import (
	"errors"

	"github.com/rotisserie/eris"
)

// Contract violations. The World panics with an error wrapping one of these,
// so a recovered value can be matched with errors.Is.
var (
	ErrUnregisteredComponent = errors.New("component type not registered")
	ErrDuplicateComponent    = errors.New("component type already registered")
	ErrInvalidComponent      = errors.New("invalid component type")
	ErrMissingComponent      = errors.New("entity does not have component")
	ErrTypeMismatch          = errors.New("component type mismatch")
	ErrBorrowConflict        = errors.New("conflicting borrow")
	ErrViewReleased          = errors.New("view used after release")
	ErrInvalidEntity         = errors.New("invalid entity handle")
	ErrForeignEntity         = errors.New("entity belongs to another world")
	ErrDuplicateSystem       = errors.New("system already registered")
	ErrMissingSystem         = errors.New("system not found")
	ErrSystemsRunning        = errors.New("systems cannot be added or removed while running")
)

func fatalf(err error, format string, args ...any) {
	panic(eris.Wrapf(err, format, args...))
}
