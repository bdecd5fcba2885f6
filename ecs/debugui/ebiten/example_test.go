package ebiten_test

import (
	"runtime"

	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/jmge/ecs"
	"github.com/plus3/jmge/ecs/debugui"
	debugui_ebiten "github.com/plus3/jmge/ecs/debugui/ebiten"
)

func Example() {
	// Create Ebiten window and ImGui backend
	imguiBackend := ebitenbackend.NewEbitenBackend()
	imguiBackend.CreateWindow("ECS ImGui Example", 1280, 720)
	imgui.CurrentIO().SetIniFilename("") // Disable imgui.ini

	w := ecs.NewWorld(ecs.WithPrettyLog())

	// Debug windows stay up for as long as ui is reachable
	ui := debugui.Install(w)

	// Any entity can carry its own window
	hello := w.NewEntity()
	ecs.Set(w, hello, debugui.ImguiItem{
		Render: func() {
			imgui.Begin("Debug Window")
			imgui.Text("Hello from ECS!")
			imgui.End()
		},
	})

	w.AddSystem("imgui", &debugui.ImguiSystem{})

	game := debugui_ebiten.NewGame(w, imguiBackend)
	if err := ebiten.RunGame(game); err != nil {
		panic(err)
	}

	runtime.KeepAlive(ui)
	runtime.KeepAlive(hello)
}
