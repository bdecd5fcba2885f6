package debugui

import "github.com/plus3/jmge/ecs"

// DebugUI is an installed set of debug windows. The windows are drawn for as
// long as the DebugUI is reachable; dropping it lets the next Reclaim remove
// them.
type DebugUI struct {
	world  *ecs.World
	entity ecs.Entity
	panels *panels
}

// Install registers the package's components on w and creates an entity
// whose ImguiItem draws the entity browser, component inspector, system
// panel and performance stats. An ImguiSystem must be running for the
// windows to appear.
func Install(w *ecs.World) *DebugUI {
	Register(w)

	d := &DebugUI{world: w, entity: w.NewEntity(), panels: newPanels()}
	d.Show()

	w.Logger().Debug().
		Uint32("entity_id", d.entity.Index()).
		Msg("debug ui installed")
	return d
}

// Entity returns the entity carrying the debug windows.
func (d *DebugUI) Entity() ecs.Entity {
	return d.entity
}

// Show draws the windows again after Hide.
func (d *DebugUI) Show() {
	p, w := d.panels, d.world
	ecs.Set(w, d.entity, ImguiItem{Render: func() { p.render(w) }})
}

// Hide stops drawing the windows without waiting for reclamation.
func (d *DebugUI) Hide() {
	ecs.Remove[ImguiItem](d.world, d.entity)
}
