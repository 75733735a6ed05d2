// Package debugui provides immediate-mode GUI integration for ECS applications using Dear ImGui.
// It manages ImGui rendering and input state through ECS components and systems.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/packecs/ecs"
)

// ImguiItem is a component that holds a Dear ImGui render function.
// Attach this to entities that should render ImGui widgets each frame.
type ImguiItem struct {
	Render func()
}

// ImguiInputState tracks Dear ImGui's input capture state as a singleton.
// Use this to determine if ImGui is consuming mouse or keyboard input.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem queries all ImguiItem components and defers their render functions.
// It also updates the ImguiInputState singleton with current input capture state.
type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	InputState ecs.Singleton[ImguiInputState]
}

// Execute updates input state and queues all ImGui render functions for execution.
func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	if !i.InputState.Exists() {
		frame.Manager.AddSingleton(ImguiInputState{})
	}
	state := i.InputState.Get()
	state.WantCaptureMouse = imgui.CurrentIO().WantCaptureMouse()
	state.WantCaptureKeyboard = imgui.CurrentIO().WantCaptureKeyboard()

	for item := range i.Items.Iter() {
		frame.Commands.Defer(item.Render)
	}
}

// ToolsSystem renders the debug tool windows spawned by SpawnDebugUI. Manager
// statistics are collected once per frame and shared by every window.
type ToolsSystem struct {
	Browsers    ecs.Query[struct{ *EntityBrowserComponent }]
	Inspectors  ecs.Query[struct{ *ComponentInspectorComponent }]
	Tables      ecs.Query[struct{ *TableViewerComponent }]
	Performance ecs.Query[struct{ *PerformanceStatsComponent }]
	Queries     ecs.Query[struct{ *QueryDebuggerComponent }]
}

// Execute defers the window renders until after the frame's systems have run, so
// the windows show the state the frame ended in.
func (t *ToolsSystem) Execute(frame *ecs.UpdateFrame) {
	m := frame.Manager
	dt := float32(frame.DeltaTime)

	frame.Commands.Defer(func() {
		stats := m.CollectStats()

		var filter *ecs.ComponentType
		for item := range t.Tables.Iter() {
			if clicked := item.Render(stats); clicked != nil {
				filter = clicked
			}
		}

		selected := ecs.NullEntity
		for item := range t.Browsers.Iter() {
			if filter != nil {
				item.SetTableFilter(*filter)
			}
			item.Render(m, stats)
			if e := item.GetSelectedEntity(); e != ecs.NullEntity {
				selected = e
			}
		}

		for item := range t.Inspectors.Iter() {
			item.Render(m, selected)
		}
		for item := range t.Performance.Iter() {
			item.Render(stats, dt)
		}
		for item := range t.Queries.Iter() {
			item.Render(m, stats)
		}
	})
}
