package ecs

import "slices"

// Commands buffers work that must not happen in the middle of a system pass:
// creating entities, or touching components another system may be iterating.
// The World applies queued commands in order once RunAll or RunSystem
// returns. Commands queued while flushing run in the same flush.
type Commands struct {
	queue    []func(w *World)
	flushing bool
}

func newCommands() *Commands {
	return &Commands{}
}

// Commands returns the World's deferred command buffer.
func (w *World) Commands() *Commands {
	return w.commands
}

// Len returns the number of queued commands.
func (c *Commands) Len() int {
	return len(c.queue)
}

// Defer queues fn.
func (c *Commands) Defer(fn func()) {
	c.queue = append(c.queue, func(*World) { fn() })
}

// DeferSpawn queues the creation of an entity. fn receives the new entity and
// is responsible for keeping a handle to it; otherwise the entity dies at the
// next reclamation.
func (c *Commands) DeferSpawn(fn func(w *World, e Entity)) {
	c.queue = append(c.queue, func(w *World) { fn(w, w.NewEntity()) })
}

// DeferSet queues Set[T](w, e, value).
func DeferSet[T any](c *Commands, e Entity, value T) {
	c.queue = append(c.queue, func(w *World) { Set(w, e, value) })
}

// DeferRemove queues Remove[T](w, e).
func DeferRemove[T any](c *Commands, e Entity) {
	c.queue = append(c.queue, func(w *World) { Remove[T](w, e) })
}

// Flush applies every queued command to w, resetting the buffer.
func (c *Commands) Flush(w *World) {
	if c.flushing {
		return
	}
	c.flushing = true
	defer func() {
		c.flushing = false
		c.queue = slices.DeleteFunc(c.queue, func(cmd func(*World)) bool { return cmd == nil })
	}()

	for i := 0; i < len(c.queue); i++ {
		cmd := c.queue[i]
		c.queue[i] = nil
		cmd(w)
	}
}
