package debugui

import (
	"fmt"
	"sort"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/packecs/ecs"
)

type TableViewerCache struct {
	tables        []ecs.TableStats
	sortColumn    int
	sortAscending bool
}

func NewTableViewerComponent() TableViewerComponent {
	return TableViewerComponent{
		cache: &TableViewerCache{
			sortColumn:    2,
			sortAscending: false,
		},
	}
}

// Render draws one row per component table and returns the table the user
// clicked this frame, if any.
func (tv *TableViewerComponent) Render(stats *ecs.ManagerStats) *ecs.ComponentType {
	if !imgui.BeginV("Component Tables", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return nil
	}

	tv.refresh(stats)

	maxSize := 0
	for _, table := range tv.cache.tables {
		maxSize = max(maxSize, table.Size)
	}

	var clicked *ecs.ComponentType

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("ComponentTables", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Type ID")
		imgui.TableSetupColumn("Component")
		imgui.TableSetupColumn("Entities")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			tv.cache.sortColumn = int(spec.ColumnIndex())
			tv.cache.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			tv.sortTables()
			sortSpecs.SetSpecsDirty(false)
		}

		for _, table := range tv.cache.tables {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := tv.selectedTable != nil && *tv.selectedTable == table.Type
			if imgui.SelectableBoolV(fmt.Sprintf("%d", table.Type), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				ct := table.Type
				clicked = &ct
				tv.selectedTable = &ct
			}

			imgui.TableNextColumn()
			imgui.Text(table.Name)

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", table.Size))

			if maxSize > 0 {
				barWidth := float32(table.Size) / float32(maxSize) * 80.0
				imgui.SameLine()
				drawList := imgui.WindowDrawList()
				pos := imgui.CursorScreenPos()
				color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
				drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+barWidth, pos.Y+10), color)
			}
		}

		imgui.EndTable()
	}

	imgui.End()
	return clicked
}

func (tv *TableViewerComponent) refresh(stats *ecs.ManagerStats) {
	tv.cache.tables = append(tv.cache.tables[:0], stats.Tables...)
	tv.sortTables()
}

func (tv *TableViewerComponent) sortTables() {
	less := func(a, b ecs.TableStats) bool {
		switch tv.cache.sortColumn {
		case 0:
			return a.Type < b.Type
		case 1:
			return a.Name < b.Name
		default:
			return a.Size < b.Size
		}
	}
	sort.SliceStable(tv.cache.tables, func(i, j int) bool {
		a, b := tv.cache.tables[i], tv.cache.tables[j]
		if !tv.cache.sortAscending {
			a, b = b, a
		}
		return less(a, b)
	})
}
