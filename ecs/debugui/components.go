package debugui

import (
	"github.com/plus3/packecs/ecs"
)

type EntityBrowserComponent struct {
	cache              *EntityBrowserCache
	selectedEntity     ecs.Entity
	filterText         string
	filterTable        *ecs.ComponentType
	maxEntitiesPerPage int
	currentPage        int
}

type ComponentInspectorComponent struct {
	selectedEntity ecs.Entity
}

type TableViewerComponent struct {
	cache         *TableViewerCache
	selectedTable *ecs.ComponentType
}

type PerformanceStatsComponent struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
}

type QueryDebuggerComponent struct {
	terms map[ecs.ComponentType]queryTerm
	live  *liveQuery
}
