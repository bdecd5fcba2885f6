package ecs

import "github.com/rs/zerolog"

func (w *World) componentsArray() *zerolog.Array {
	arr := zerolog.Arr()
	for id, vec := range w.order {
		arr = arr.Dict(zerolog.Dict().
			Int("component_id", id).
			Str("component_name", ComponentName(vec.Type())).
			Int("occupied", vec.Occupied()))
	}
	return arr
}

func (w *World) systemsArray() *zerolog.Array {
	arr := zerolog.Arr()
	for _, entry := range w.scheduler.systems {
		arr = arr.Dict(zerolog.Dict().
			Str("name", entry.name).
			Bool("active", entry.active))
	}
	return arr
}

// LogComponents logs the registered component types.
func (w *World) LogComponents(level zerolog.Level) {
	w.logger.WithLevel(level).
		Int("total_components", len(w.order)).
		Array("components", w.componentsArray()).
		Send()
}

// LogSystems logs the registered systems in execution order.
func (w *World) LogSystems(level zerolog.Level) {
	w.logger.WithLevel(level).
		Int("total_systems", len(w.scheduler.systems)).
		Array("systems", w.systemsArray()).
		Send()
}

// LogEntity logs the component types attached to e.
func (w *World) LogEntity(level zerolog.Level, e Entity) {
	arr := zerolog.Arr()
	for _, t := range w.ComponentsOf(e) {
		arr = arr.Str(ComponentName(t))
	}
	w.logger.WithLevel(level).
		Uint32("entity_id", e.Index()).
		Array("components", arr).
		Send()
}

// LogWorld logs everything about the World: components, systems and entity
// counts.
func (w *World) LogWorld(level zerolog.Level) {
	w.logger.WithLevel(level).
		Int("total_components", len(w.order)).
		Array("components", w.componentsArray()).
		Int("total_systems", len(w.scheduler.systems)).
		Array("systems", w.systemsArray()).
		Int("live_entities", w.entities.liveCount()).
		Int("free_indices", len(w.entities.free)).
		Send()
}
