package debugui

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/packecs/ecs"
)

type EntityInfo struct {
	ID             ecs.Entity
	Types          []ecs.ComponentType
	ComponentNames []string
}

type EntityBrowserCache struct {
	entities      []EntityInfo
	generation    uint64
	sortColumn    int
	sortAscending bool
}

func NewEntityBrowserComponent(maxEntitiesPerPage int) EntityBrowserComponent {
	return EntityBrowserComponent{
		cache: &EntityBrowserCache{
			sortColumn:    0,
			sortAscending: true,
		},
		maxEntitiesPerPage: maxEntitiesPerPage,
	}
}

func (eb *EntityBrowserComponent) Render(m *ecs.EntityManager, stats *ecs.ManagerStats) {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	eb.rebuildCacheIfNeeded(m, stats)

	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
		eb.filterTable = nil
	}
	if eb.filterTable != nil {
		imgui.Text("Holding: " + m.Registry().Name(*eb.filterTable))
	}

	filteredEntities := eb.getFilteredEntities()

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Entity")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Count")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			eb.cache.sortColumn = int(spec.ColumnIndex())
			eb.cache.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			eb.sortEntities()
			sortSpecs.SetSpecsDirty(false)
			filteredEntities = eb.getFilteredEntities()
		}

		startIdx, endIdx := eb.pageBounds(len(filteredEntities))
		for _, entity := range filteredEntities[startIdx:endIdx] {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := eb.selectedEntity == entity.ID
			if imgui.SelectableBoolV(fmt.Sprintf("%d", entity.ID), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.selectedEntity = entity.ID
			}

			imgui.TableNextColumn()
			imgui.Text(strings.Join(entity.ComponentNames, ", "))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", len(entity.Types)))
		}

		imgui.EndTable()
	}

	if len(filteredEntities) > eb.maxEntitiesPerPage {
		totalPages := (len(filteredEntities) + eb.maxEntitiesPerPage - 1) / eb.maxEntitiesPerPage
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.currentPage+1, totalPages, len(filteredEntities)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.currentPage > 0 {
			eb.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.currentPage < totalPages-1 {
			eb.currentPage++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d entities", len(filteredEntities)))
	}

	imgui.End()
}

// pageBounds clamps the current page to n rows and returns its slice bounds.
func (eb *EntityBrowserComponent) pageBounds(n int) (int, int) {
	if eb.maxEntitiesPerPage <= 0 {
		return 0, n
	}
	lastPage := max(0, (n-1)/eb.maxEntitiesPerPage)
	eb.currentPage = min(eb.currentPage, lastPage)

	start := eb.currentPage * eb.maxEntitiesPerPage
	end := min(start+eb.maxEntitiesPerPage, n)
	return start, end
}

// rebuildCacheIfNeeded rebuilds the rows whenever the manager has seen a
// structural change since the last rebuild.
func (eb *EntityBrowserComponent) rebuildCacheIfNeeded(m *ecs.EntityManager, stats *ecs.ManagerStats) {
	generation := stats.CacheUpdates + stats.EntitiesDestroy
	if eb.cache.entities != nil && eb.cache.generation == generation {
		return
	}
	eb.cache.generation = generation
	eb.rebuildCache(m)
}

func (eb *EntityBrowserComponent) rebuildCache(m *ecs.EntityManager) {
	all := m.AllEntities()
	eb.cache.entities = make([]EntityInfo, 0, all.Len())

	registry := m.Registry()
	for e := range all.Iter() {
		types := m.ComponentTypes(e)
		names := make([]string, len(types))
		for i, ct := range types {
			names[i] = registry.Name(ct)
		}
		eb.cache.entities = append(eb.cache.entities, EntityInfo{
			ID:             e,
			Types:          types,
			ComponentNames: names,
		})
	}

	eb.sortEntities()
}

func (eb *EntityBrowserComponent) sortEntities() {
	less := func(a, b EntityInfo) bool {
		switch eb.cache.sortColumn {
		case 1:
			return strings.Join(a.ComponentNames, ",") < strings.Join(b.ComponentNames, ",")
		case 2:
			return len(a.Types) < len(b.Types)
		default:
			return a.ID < b.ID
		}
	}
	sort.SliceStable(eb.cache.entities, func(i, j int) bool {
		a, b := eb.cache.entities[i], eb.cache.entities[j]
		if !eb.cache.sortAscending {
			a, b = b, a
		}
		return less(a, b)
	})
}

func (eb *EntityBrowserComponent) getFilteredEntities() []EntityInfo {
	if eb.filterText == "" && eb.filterTable == nil {
		return eb.cache.entities
	}

	filtered := make([]EntityInfo, 0, len(eb.cache.entities))
	filterLower := strings.ToLower(eb.filterText)

	for _, entity := range eb.cache.entities {
		if eb.filterTable != nil && !slices.Contains(entity.Types, *eb.filterTable) {
			continue
		}

		if eb.filterText != "" {
			idStr := fmt.Sprintf("%d", entity.ID)
			componentsStr := strings.ToLower(strings.Join(entity.ComponentNames, " "))

			if !strings.Contains(idStr, filterLower) && !strings.Contains(componentsStr, filterLower) {
				continue
			}
		}

		filtered = append(filtered, entity)
	}

	return filtered
}

// SetTableFilter limits the browser to entities holding ct.
func (eb *EntityBrowserComponent) SetTableFilter(ct ecs.ComponentType) {
	eb.filterTable = &ct
	eb.currentPage = 0
}

func (eb *EntityBrowserComponent) GetSelectedEntity() ecs.Entity {
	return eb.selectedEntity
}
