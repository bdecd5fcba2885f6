// Package ebiten provides Dear ImGui backend integration for the Ebiten game engine.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/jmge/ecs"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend implementation.
// Use this to integrate Dear ImGui rendering into Ebiten game loops.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// Game drives a World from Ebiten's loop. Every Update runs the World's
// active systems and reclaims dead entities inside one ImGui frame, so
// ImguiItem renders deferred by the systems land in that frame.
type Game struct {
	World   *ecs.World
	Backend ImguiBackend

	// DrawWorld, when set, draws the game itself below the ImGui overlay.
	DrawWorld func(screen *ebiten.Image)
}

var _ ebiten.Game = (*Game)(nil)

// NewGame wraps w and backend into an ebiten.Game.
func NewGame(w *ecs.World, backend *ebitenbackend.EbitenBackend) *Game {
	return &Game{World: w, Backend: ImguiBackend{EbitenBackend: backend}}
}

func (g *Game) Update() error {
	g.Backend.BeginFrame()
	defer g.Backend.EndFrame()

	g.World.RunAll()
	g.World.Reclaim()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.DrawWorld != nil {
		g.DrawWorld(screen)
	}
	g.Backend.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.Backend.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}
