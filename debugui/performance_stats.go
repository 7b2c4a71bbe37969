package debugui

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/cubekiller/ecs"
	"github.com/plus3/cubekiller/game"
)

// PerformanceStats plots frame times and lists per-system tick timings.
type PerformanceStats struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
}

func NewPerformanceStats(historyFrames int) PerformanceStats {
	return PerformanceStats{
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
	}
}

// record adds a frame time and returns the average in milliseconds.
func (ps *PerformanceStats) record(dt time.Duration) float32 {
	ps.frameHistory[ps.frameIndex] = float32(dt.Seconds() * 1000)
	ps.frameIndex = (ps.frameIndex + 1) % ps.historyFrames

	var sum float32
	for _, ft := range ps.frameHistory {
		sum += ft
	}
	return sum / float32(ps.historyFrames)
}

func (ps *PerformanceStats) Render(session *game.Session, dt time.Duration) {
	avgFrameTime := ps.record(dt)

	imgui.SetNextWindowPosV(imgui.NewVec2(320, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(420, 280), imgui.CondOnce)

	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	registryStats := session.Registry().CollectStats()
	imgui.Text(fmt.Sprintf("Total Entities: %d (capacity %d, free %d)", registryStats.TotalEntityCount, registryStats.Capacity, registryStats.FreeSlots))
	imgui.Text(fmt.Sprintf("Bodies: %d", session.World().Len()))
	if avgFrameTime > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avgFrameTime, 1000.0/avgFrameTime))
	}

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &ps.frameHistory[0], int32(len(ps.frameHistory)))

	if imgui.TreeNodeStr("Entities by Kind") {
		for _, kind := range ecs.Kinds() {
			imgui.BulletText(fmt.Sprintf("%s: %d", kind, registryStats.ByKind[kind]))
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Systems") {
		stats := session.Stats()
		imgui.Text(fmt.Sprintf("Ticks: %d (last %.3f ms)", stats.Ticks, float64(stats.LastTick.Microseconds())/1000))

		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSizingFixedFit
		if imgui.BeginTableV("Systems", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Name")
			imgui.TableSetupColumn("Avg (ms)")
			imgui.TableSetupColumn("Min (ms)")
			imgui.TableSetupColumn("Max (ms)")
			imgui.TableHeadersRow()

			for _, sys := range slowestFirst(stats.Systems) {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(sys.Name)
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%.3f", float64(sys.AvgDuration.Microseconds())/1000.0))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%.3f", float64(sys.MinDuration.Microseconds())/1000.0))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%.3f", float64(sys.MaxDuration.Microseconds())/1000.0))
			}
			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}

func slowestFirst(systems []game.SystemStats) []game.SystemStats {
	sorted := slices.Clone(systems)
	slices.SortStableFunc(sorted, func(a, b game.SystemStats) int {
		return cmp.Compare(b.AvgDuration, a.AvgDuration)
	})
	return sorted
}
