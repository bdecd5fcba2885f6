package debugui

import (
	"fmt"
	"sort"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/jmge/ecs"
)

// Render lists the World's systems with their timing. The checkbox toggles
// SetActive; "Step" runs a paused system once after the current pass.
func (sp *systemPanel) Render(w *ecs.World) {
	if !imgui.BeginV("Systems", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	defer imgui.End()

	stats := w.SchedulerStats()
	imgui.Text(fmt.Sprintf("Systems: %d (%d active), %d executions",
		stats.SystemCount, stats.ActiveSystemCount, stats.TotalExecutions))
	imgui.Separator()

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable
	if !imgui.BeginTableV("SystemTable", 6, tableFlags, imgui.NewVec2(0, 0), 0) {
		return
	}
	imgui.TableSetupColumn("Active")
	imgui.TableSetupColumn("Name")
	imgui.TableSetupColumn("Runs")
	imgui.TableSetupColumn("Last (ms)")
	imgui.TableSetupColumn("Avg (ms)")
	imgui.TableSetupColumn("Max (ms)")
	imgui.TableHeadersRow()

	sortSpecs := imgui.TableGetSortSpecs()
	if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
		spec := sortSpecs.Specs()
		sp.sortColumn = int(spec.ColumnIndex())
		sp.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
		sortSpecs.SetSpecsDirty(false)
	}

	rows := stats.Systems
	sortSystems(rows, sp.sortColumn, sp.sortAscending)

	for _, sys := range rows {
		imgui.TableNextRow()

		imgui.TableNextColumn()
		active := sys.Active
		if imgui.Checkbox("##active_"+sys.Name, &active) {
			w.SetActive(sys.Name, active)
		}
		if !sys.Active {
			imgui.SameLine()
			if imgui.Button("Step##" + sys.Name) {
				name := sys.Name
				w.Commands().Defer(func() { w.RunSystem(name) })
			}
		}

		imgui.TableNextColumn()
		imgui.Text(sys.Name)

		imgui.TableNextColumn()
		imgui.Text(fmt.Sprintf("%d", sys.ExecutionCount))

		imgui.TableNextColumn()
		imgui.Text(millis(sys.LastDuration))

		imgui.TableNextColumn()
		imgui.Text(millis(sys.AvgDuration))

		imgui.TableNextColumn()
		imgui.Text(millis(sys.MaxDuration))
	}

	imgui.EndTable()
}

// sortSystems orders rows by a table column. Any other column keeps
// execution order.
func sortSystems(rows []ecs.SystemStats, column int, ascending bool) {
	if column < 0 || column > 5 {
		return
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if ascending {
			return systemLess(rows[i], rows[j], column)
		}
		return systemLess(rows[j], rows[i], column)
	})
}

func systemLess(a, b ecs.SystemStats, column int) bool {
	switch column {
	case 0:
		return !a.Active && b.Active
	case 1:
		return a.Name < b.Name
	case 2:
		return a.ExecutionCount < b.ExecutionCount
	case 3:
		return a.LastDuration < b.LastDuration
	case 4:
		return a.AvgDuration < b.AvgDuration
	default:
		return a.MaxDuration < b.MaxDuration
	}
}

func millis(d time.Duration) string {
	return fmt.Sprintf("%.3f", float64(d)/float64(time.Millisecond))
}
