package debugui

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/packecs/ecs"
)

type queryTerm uint8

const (
	termIgnore queryTerm = iota
	termAllOf
	termAnyOf
	termNoneOf
)

// liveQuery is the result the debugger holds for its current selection. It is
// retained across frames and released when the selection changes.
type liveQuery struct {
	desc   ecs.QueryDescriptor
	result *ecs.QueryResult
}

const previewEntities = 32

func NewQueryDebuggerComponent() QueryDebuggerComponent {
	return QueryDebuggerComponent{
		terms: make(map[ecs.ComponentType]queryTerm),
	}
}

func (qd *QueryDebuggerComponent) Render(m *ecs.EntityManager, stats *ecs.ManagerStats) {
	if !imgui.BeginV("Query Debugger", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	if imgui.Button("Clear All") {
		clear(qd.terms)
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("QueryTerms", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Component")
		imgui.TableSetupColumn("All")
		imgui.TableSetupColumn("Any")
		imgui.TableSetupColumn("None")
		imgui.TableHeadersRow()

		for _, table := range stats.Tables {
			imgui.TableNextRow()
			imgui.TableSetColumnIndex(0)
			imgui.Text(table.Name)

			for col, term := range []queryTerm{termAllOf, termAnyOf, termNoneOf} {
				imgui.TableSetColumnIndex(int32(col + 1))
				checked := qd.terms[table.Type] == term
				if imgui.Checkbox(fmt.Sprintf("##%d_%d", table.Type, term), &checked) {
					if checked {
						qd.setTerm(table.Type, term)
					} else {
						qd.setTerm(table.Type, termIgnore)
					}
				}
			}
		}

		imgui.EndTable()
	}

	imgui.Separator()

	result := qd.sync(m)
	if result == nil {
		imgui.Text("No component types selected")
	} else {
		imgui.Text(fmt.Sprintf("Query ID: %d", result.ID()))
		imgui.Text(fmt.Sprintf("Matching Entities: %d", result.Len()))

		if imgui.TreeNodeStr("Matches") {
			shown := 0
			for e := range result.Iter() {
				if shown == previewEntities {
					imgui.BulletText(fmt.Sprintf("... %d more", result.Len()-shown))
					break
				}
				imgui.BulletText(fmt.Sprintf("%d", e))
				shown++
			}
			imgui.TreePop()
		}
	}

	if imgui.TreeNodeStr(fmt.Sprintf("Live Queries (%d)", stats.LiveQueryCount)) {
		if imgui.BeginTableV("LiveQueries", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("ID")
			imgui.TableSetupColumn("Refs")
			imgui.TableSetupColumn("Matches")
			imgui.TableSetupColumn("Terms")
			imgui.TableHeadersRow()

			for _, q := range stats.Queries {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", q.ID))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", q.Refs))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", q.Matches))
				imgui.TableNextColumn()
				imgui.Text(describeTerms(q))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}

// setTerm places ct in one of the query's term lists, or removes it with termIgnore.
func (qd *QueryDebuggerComponent) setTerm(ct ecs.ComponentType, term queryTerm) {
	if term == termIgnore {
		delete(qd.terms, ct)
		return
	}
	qd.terms[ct] = term
}

func (qd *QueryDebuggerComponent) descriptor() ecs.QueryDescriptor {
	var allOf, anyOf, noneOf []ecs.ComponentType
	for ct, term := range qd.terms {
		switch term {
		case termAllOf:
			allOf = append(allOf, ct)
		case termAnyOf:
			anyOf = append(anyOf, ct)
		case termNoneOf:
			noneOf = append(noneOf, ct)
		}
	}
	return ecs.NewQueryDescriptor(allOf, anyOf, noneOf)
}

// sync resolves the current selection, reusing the held result while the
// selection is unchanged. It returns nil when nothing is selected.
func (qd *QueryDebuggerComponent) sync(m *ecs.EntityManager) *ecs.QueryResult {
	d := qd.descriptor()
	if qd.live != nil && qd.live.desc.Equal(d) {
		return qd.live.result
	}

	qd.Close()
	if d.Empty() {
		return nil
	}
	qd.live = &liveQuery{desc: d, result: m.Resolve(d)}
	return qd.live.result
}

// Close releases the held query result.
func (qd *QueryDebuggerComponent) Close() {
	if qd.live != nil {
		qd.live.result.Release()
		qd.live = nil
	}
}

func describeTerms(q ecs.QueryStats) string {
	var parts []string
	if len(q.AllOf) > 0 {
		parts = append(parts, "all("+strings.Join(q.AllOf, ", ")+")")
	}
	if len(q.AnyOf) > 0 {
		parts = append(parts, "any("+strings.Join(q.AnyOf, ", ")+")")
	}
	if len(q.NoneOf) > 0 {
		parts = append(parts, "none("+strings.Join(q.NoneOf, ", ")+")")
	}
	return strings.Join(parts, " ")
}
