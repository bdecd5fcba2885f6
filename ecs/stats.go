package ecs

// WorldStats is a snapshot of the World's storage.
type WorldStats struct {
	LiveEntityCount    int
	IndexCount         int
	FreeIndexCount     int
	ComponentCount     int
	ComponentBreakdown []ComponentStats
	SystemCount        int
	ActiveSystemCount  int
}

// ComponentStats describes the storage of one component type. Slots is the
// allocated index span; Occupied counts filled slots, including those of dead
// entities not yet reclaimed.
type ComponentStats struct {
	Name     string
	Type     string
	Slots    int
	Occupied int
}

// CollectStats walks the World and reports its current size.
func (w *World) CollectStats() *WorldStats {
	stats := &WorldStats{
		LiveEntityCount:    w.entities.liveCount(),
		IndexCount:         int(w.entities.next),
		FreeIndexCount:     len(w.entities.free),
		ComponentCount:     len(w.order),
		ComponentBreakdown: make([]ComponentStats, 0, len(w.order)),
		SystemCount:        len(w.scheduler.systems),
	}

	for _, vec := range w.order {
		stats.ComponentBreakdown = append(stats.ComponentBreakdown, ComponentStats{
			Name:     ComponentName(vec.Type()),
			Type:     vec.Type().String(),
			Slots:    vec.Len(),
			Occupied: vec.Occupied(),
		})
	}

	for _, entry := range w.scheduler.systems {
		if entry.active {
			stats.ActiveSystemCount++
		}
	}

	return stats
}
