// Package ebiten provides Dear ImGui backend integration for the Ebiten game engine.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/packecs/ecs"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend implementation.
// It is stored as a singleton so systems can reach it.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// Install creates the ImGui window and stores its backend as a singleton of m.
func Install(m *ecs.EntityManager, title string, width, height int) *ecs.Singleton[ImguiBackend] {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")

	return ecs.NewSingleton(m, ImguiBackend{EbitenBackend: backend})
}

// Game implements ebiten.Game by running one scheduler frame per tick between
// the ImGui frame boundaries.
type Game struct {
	Scheduler *ecs.Scheduler
	Backend   *ecs.Singleton[ImguiBackend]
	// DrawScene, if set, draws the application below the ImGui overlay.
	DrawScene func(screen *ebiten.Image)
}

var _ ebiten.Game = (*Game)(nil)

func (g *Game) Update() error {
	g.Backend.Get().BeginFrame()
	g.Scheduler.Once(1.0 / float64(ebiten.TPS()))
	g.Backend.Get().EndFrame()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.DrawScene != nil {
		g.DrawScene(screen)
	}
	g.Backend.Get().Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.Backend.Get().Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}
