package ecs

import "reflect"

// Named can be implemented by a component to give it a display name in logs,
// stats and the debug UI. Components without it are labelled by their Go type.
type Named interface {
	ComponentName() string
}

var namedType = reflect.TypeFor[Named]()

// componentType returns the runtime tag for T and rejects kinds that cannot
// be stored by value.
func componentType[T any]() reflect.Type {
	t := reflect.TypeFor[T]()
	checkComponentType(t)
	return t
}

func checkComponentType(t reflect.Type) {
	switch t.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface, reflect.UnsafePointer:
		fatalf(ErrInvalidComponent, "%s: components cannot be pointers, maps, channels, functions or interfaces", t)
	}
}

// ComponentName returns the display name for a component type.
func ComponentName(t reflect.Type) string {
	if t.Implements(namedType) {
		return reflect.Zero(t).Interface().(Named).ComponentName()
	}
	if reflect.PointerTo(t).Implements(namedType) {
		return reflect.New(t).Interface().(Named).ComponentName()
	}
	return t.String()
}

// valueTypeOf unwraps a *T passed where a T is expected.
func valueTypeOf(v any) (reflect.Type, reflect.Value) {
	val := reflect.ValueOf(v)
	if val.Kind() == reflect.Pointer && !val.IsNil() {
		val = val.Elem()
	}
	return val.Type(), val
}
