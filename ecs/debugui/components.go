package debugui

import (
	"time"

	"github.com/plus3/jmge/ecs"
)

// Panel state. None of it holds an ecs.Entity: the tools remember entities
// by index so that inspecting one never keeps it alive.

type entityBrowser struct {
	cache              *entityBrowserCache
	selectedIndex      uint32
	hasSelection       bool
	filterText         string
	filterComponent    string
	maxEntitiesPerPage int
	currentPage        int
}

type componentInspector struct{}

type systemPanel struct {
	sortColumn    int
	sortAscending bool
}

type performanceStats struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
	timer         *FrameTimer
}

// panels bundles every tool window. Its render method is what the installed
// ImguiItem calls.
type panels struct {
	browser   *entityBrowser
	inspector *componentInspector
	systems   *systemPanel
	perf      *performanceStats
}

func newPanels() *panels {
	return &panels{
		browser:   newEntityBrowser(100),
		inspector: &componentInspector{},
		systems:   &systemPanel{sortColumn: -1, sortAscending: true},
		perf:      newPerformanceStats(120),
	}
}

func (p *panels) render(w *ecs.World) {
	index, ok := p.browser.Render(w)
	p.inspector.Render(w, index, ok)
	p.systems.Render(w)
	p.perf.Render(w)
}

// FrameTimer measures wall time between frames.
type FrameTimer struct {
	lastFrameTime time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{
		lastFrameTime: time.Now(),
	}
}

func (ft *FrameTimer) GetDeltaTime() float32 {
	now := time.Now()
	delta := float32(now.Sub(ft.lastFrameTime).Seconds())
	ft.lastFrameTime = now
	return delta
}
