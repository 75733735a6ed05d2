package ebiten_test

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/packecs/ecs"
	"github.com/plus3/packecs/ecs/debugui"
	debugui_ebiten "github.com/plus3/packecs/ecs/debugui/ebiten"
)

func Example() {
	m := ecs.NewEntityManager()
	debugui.RegisterDebugUIComponents(m.Registry())

	// Create the Ebiten window and store the ImGui backend as a singleton
	backend := debugui_ebiten.Install(m, "ECS ImGui Example", 1280, 720)

	// Entities with ImGui render functions
	e := m.CreateEntity()
	ecs.Insert(m, e, debugui.ImguiItem{
		Render: func() {
			imgui.Begin("Debug Window")
			imgui.Text("Hello from ECS!")
			imgui.End()
		},
	})

	// Built-in inspection windows
	debugui.SpawnDebugUI(m)

	scheduler := ecs.NewScheduler(m)
	scheduler.Register(&debugui.ImguiSystem{})
	scheduler.Register(&debugui.ToolsSystem{})
	defer scheduler.Close()

	game := &debugui_ebiten.Game{
		Scheduler: scheduler,
		Backend:   backend,
	}

	if err := ebiten.RunGame(game); err != nil {
		panic(err)
	}
}
