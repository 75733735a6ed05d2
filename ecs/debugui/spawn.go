package debugui

import "github.com/plus3/packecs/ecs"

// SpawnDebugUI creates one entity per debug tool window. Render them by
// registering a ToolsSystem.
func SpawnDebugUI(m *ecs.EntityManager) {
	tools := []func(e ecs.Entity){
		func(e ecs.Entity) { ecs.Insert(m, e, NewEntityBrowserComponent(100)) },
		func(e ecs.Entity) { ecs.Insert(m, e, NewComponentInspectorComponent()) },
		func(e ecs.Entity) { ecs.Insert(m, e, NewTableViewerComponent()) },
		func(e ecs.Entity) { ecs.Insert(m, e, NewPerformanceStatsComponent(120)) },
		func(e ecs.Entity) { ecs.Insert(m, e, NewQueryDebuggerComponent()) },
	}
	for _, attach := range tools {
		attach(m.CreateEntity())
	}
}

func RegisterDebugUIComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
	ecs.RegisterComponent[EntityBrowserComponent](registry)
	ecs.RegisterComponent[ComponentInspectorComponent](registry)
	ecs.RegisterComponent[TableViewerComponent](registry)
	ecs.RegisterComponent[PerformanceStatsComponent](registry)
	ecs.RegisterComponent[QueryDebuggerComponent](registry)
}
