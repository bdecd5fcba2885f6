package ecs

import (
	"context"
	"slices"
	"time"

	"github.com/rs/zerolog"
)

// SchedulerStats provides statistics about system execution.
type SchedulerStats struct {
	SystemCount       int
	ActiveSystemCount int
	TotalExecutions   int64
	Systems           []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	Active         bool
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

func (s *systemStatsInternal) record(d time.Duration) {
	s.executionCount++
	s.lastDuration = d
	s.totalDuration += d
	if d < s.minDuration {
		s.minDuration = d
	}
	if d > s.maxDuration {
		s.maxDuration = d
	}
}

type systemEntry struct {
	name    string
	system  System
	active  bool
	running bool
	stats   systemStatsInternal
}

// scheduler holds the named systems in registration order.
type scheduler struct {
	systems []*systemEntry
	byName  map[string]*systemEntry
	passes  int
	depth   int
}

func newScheduler() *scheduler {
	return &scheduler{
		byName: make(map[string]*systemEntry),
	}
}

func (s *scheduler) lookup(name string) *systemEntry {
	entry, ok := s.byName[name]
	if !ok {
		fatalf(ErrMissingSystem, "%q", name)
	}
	return entry
}

// AddSystem registers system under name. New systems are active and run after
// every system registered before them. Duplicate names panic, as does adding
// a system while RunAll is in progress.
func (w *World) AddSystem(name string, system System) {
	s := w.scheduler
	if s.passes > 0 {
		fatalf(ErrSystemsRunning, "adding %q", name)
	}
	if _, ok := s.byName[name]; ok {
		fatalf(ErrDuplicateSystem, "%q", name)
	}
	entry := &systemEntry{
		name:   name,
		system: system,
		active: true,
		stats:  systemStatsInternal{minDuration: time.Duration(1<<63 - 1)},
	}
	s.systems = append(s.systems, entry)
	s.byName[name] = entry

	w.logger.Debug().
		Str("system", name).
		Int("total_systems", len(s.systems)).
		Msg("system added")
}

// RemoveSystem deletes the named system permanently. Missing names panic, as
// does removing a system while RunAll is in progress.
func (w *World) RemoveSystem(name string) {
	s := w.scheduler
	if s.passes > 0 {
		fatalf(ErrSystemsRunning, "removing %q", name)
	}
	entry := s.lookup(name)
	s.systems = slices.DeleteFunc(s.systems, func(e *systemEntry) bool { return e == entry })
	delete(s.byName, name)

	w.logger.Debug().
		Str("system", name).
		Int("total_systems", len(s.systems)).
		Msg("system removed")
}

// IsActive reports whether the named system runs in RunAll.
func (w *World) IsActive(name string) bool {
	return w.scheduler.lookup(name).active
}

// SetActive enables or disables the named system. A disabled system keeps its
// state and is skipped by RunAll until enabled again.
func (w *World) SetActive(name string, active bool) {
	entry := w.scheduler.lookup(name)
	if entry.active == active {
		return
	}
	entry.active = active

	w.logger.Debug().
		Str("system", name).
		Bool("active", active).
		Msg("system toggled")
}

// HasSystem reports whether a system is registered under name.
func (w *World) HasSystem(name string) bool {
	_, ok := w.scheduler.byName[name]
	return ok
}

// SystemNames returns the registered system names in execution order.
func (w *World) SystemNames() []string {
	names := make([]string, len(w.scheduler.systems))
	for i, entry := range w.scheduler.systems {
		names[i] = entry.name
	}
	return names
}

// RunSystem runs the named system once, whether or not it is active.
// Running a system from inside its own Run panics.
func (w *World) RunSystem(name string) {
	entry := w.scheduler.lookup(name)
	w.pass(false, func() {
		w.runEntry(entry)
	})
}

// RunAll runs every active system once, in registration order. Each system
// sees the World exactly as the previous one left it. Deferred commands are
// applied after the last system returns.
func (w *World) RunAll() {
	w.pass(true, func() {
		for _, entry := range w.scheduler.systems {
			if entry.active {
				w.runEntry(entry)
			}
		}
	})
}

// pass runs body and, once the outermost pass is over, applies deferred
// commands. A pass that panics leaves its commands queued.
func (w *World) pass(all bool, body func()) {
	s := w.scheduler
	if all {
		s.passes++
	}
	s.depth++
	func() {
		defer func() {
			if all {
				s.passes--
			}
			s.depth--
		}()
		body()
	}()
	if s.depth == 0 {
		w.commands.Flush(w)
	}
}

func (w *World) runEntry(entry *systemEntry) {
	if entry.running {
		fatalf(ErrBorrowConflict, "system %q is already running", entry.name)
	}
	entry.running = true
	defer func() { entry.running = false }()

	start := time.Now()
	entry.system.Run(w)
	entry.stats.record(time.Since(start))
}

// SystemLogger returns a logger that tags every event with the system name.
func (w *World) SystemLogger(name string) zerolog.Logger {
	return w.logger.With().Str("system", name).Logger()
}

// SchedulerStats returns execution statistics for every registered system.
func (w *World) SchedulerStats() *SchedulerStats {
	s := w.scheduler
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Systems:     make([]SystemStats, len(s.systems)),
	}

	var totalExecs int64
	for i, entry := range s.systems {
		internal := entry.stats
		avgDuration := time.Duration(0)
		minDuration := internal.minDuration
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		} else {
			minDuration = 0
		}

		stats.Systems[i] = SystemStats{
			Name:           entry.name,
			Active:         entry.active,
			ExecutionCount: internal.executionCount,
			MinDuration:    minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		if entry.active {
			stats.ActiveSystemCount++
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}

// Loop runs the World at the given interval until ctx is cancelled. Each tick
// runs every active system and then reclaims dead entities.
func (w *World) Loop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.RunAll()
			w.Reclaim()
		}
	}
}
