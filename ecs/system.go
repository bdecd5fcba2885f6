package ecs

// System is a unit of per-frame logic. Run is called once per frame while the
// system is active. A system mutates components through the World's checked
// accessors and must not keep views past the end of Run. State kept in the
// system's own fields persists between frames.
type System interface {
	Run(w *World)
}

// SystemFunc adapts a plain function to the System interface.
type SystemFunc func(w *World)

// Run calls f(w).
func (f SystemFunc) Run(w *World) {
	f(w)
}
