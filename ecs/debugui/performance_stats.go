package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/jmge/ecs"
)

func newPerformanceStats(historyFrames int) *performanceStats {
	return &performanceStats{
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
		timer:         NewFrameTimer(),
	}
}

func (ps *performanceStats) record(deltaTime float32) {
	ps.frameHistory[ps.frameIndex] = deltaTime * 1000.0
	ps.frameIndex = (ps.frameIndex + 1) % ps.historyFrames
}

func (ps *performanceStats) averageFrameTime() float32 {
	var total float32
	for _, ft := range ps.frameHistory {
		total += ft
	}
	return total / float32(ps.historyFrames)
}

func (ps *performanceStats) Render(w *ecs.World) {
	ps.record(ps.timer.GetDeltaTime())

	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	stats := w.CollectStats()

	imgui.Text(fmt.Sprintf("Live Entities: %d", stats.LiveEntityCount))
	imgui.Text(fmt.Sprintf("Indices: %d (%d free)", stats.IndexCount, stats.FreeIndexCount))
	imgui.Text(fmt.Sprintf("Component Types: %d", stats.ComponentCount))
	imgui.Text(fmt.Sprintf("Systems: %d (%d active)", stats.SystemCount, stats.ActiveSystemCount))

	avgFrameTime := ps.averageFrameTime()
	if avgFrameTime > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avgFrameTime, 1000.0/avgFrameTime))
	}

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &ps.frameHistory[0], int32(len(ps.frameHistory)))

	if imgui.TreeNodeStr("Component Storage") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("ComponentStatsTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Component")
			imgui.TableSetupColumn("Slots")
			imgui.TableSetupColumn("Occupied")
			imgui.TableHeadersRow()

			for _, comp := range stats.ComponentBreakdown {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(comp.Name)
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", comp.Slots))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", comp.Occupied))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}
