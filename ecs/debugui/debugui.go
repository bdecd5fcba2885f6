// Package debugui provides immediate-mode GUI integration for ECS applications using Dear ImGui.
// Render functions live in ImguiItem components and are drawn after each system pass.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/jmge/ecs"
)

// ImguiItem is a component that holds a Dear ImGui render function.
// Attach this to entities that should render ImGui widgets each frame.
// The function must not capture the entity's own handle, or the entity can
// never be reclaimed.
type ImguiItem struct {
	Render func()
}

// ImguiInputState tracks whether Dear ImGui is consuming mouse or keyboard
// input this frame.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem defers every ImguiItem render function until the system pass
// is over, so panels can open views on any component while drawing.
type ImguiSystem struct {
	input ImguiInputState
}

// Register adds the component types used by this package to w. It is safe
// to call more than once.
func Register(w *ecs.World) {
	if !ecs.IsRegistered[ImguiItem](w) {
		ecs.RegisterComponent[ImguiItem](w)
	}
}

// Run updates the input state and queues all ImGui render functions.
func (s *ImguiSystem) Run(w *ecs.World) {
	io := imgui.CurrentIO()
	s.input.WantCaptureMouse = io.WantCaptureMouse()
	s.input.WantCaptureKeyboard = io.WantCaptureKeyboard()
	queueRenders(w)
}

// InputState returns the capture state seen by the last Run.
func (s *ImguiSystem) InputState() ImguiInputState {
	return s.input
}

func queueRenders(w *ecs.World) int {
	n := 0
	for _, item := range ecs.Iter[ImguiItem](w) {
		if item.Render != nil {
			w.Commands().Defer(item.Render)
			n++
		}
	}
	return n
}
