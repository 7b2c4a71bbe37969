package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/cubekiller/game"
)

// SessionPanel shows the game state and exposes the player commands as buttons.
type SessionPanel struct{}

func (SessionPanel) Render(session *game.Session) {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(300, 280), imgui.CondOnce)

	if !imgui.BeginV("Session", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	state := session.State()
	cfg := session.Config()

	imgui.PushStyleColorVec4(imgui.ColText, phaseColor(state.Phase))
	imgui.Text(fmt.Sprintf("Phase: %s", state.Phase))
	imgui.PopStyleColor()
	imgui.Text(fmt.Sprintf("Score: %d", state.Score))
	imgui.Text(fmt.Sprintf("Live Targets: %d", state.LiveTargets))
	imgui.Text(fmt.Sprintf("Elapsed: %s (%d ticks)", state.Elapsed.Truncate(time.Millisecond), state.Ticks))
	imgui.Text(fmt.Sprintf("Next Spawn: %s", state.NextSpawn.Truncate(time.Millisecond)))
	imgui.Text(fmt.Sprintf("Field: %s", state.Variant))
	imgui.Separator()
	imgui.Text(fmt.Sprintf("Spawned: %d  Destroyed: %d  Fired: %d", state.Spawned, state.Destroyed, state.Fired))
	imgui.Text(fmt.Sprintf("Pending Timers: %d", session.PendingTimers()))

	pos, dir := session.Aim()
	imgui.Text(fmt.Sprintf("Avatar: (%.1f, %.1f, %.1f)", pos.X, pos.Y, pos.Z))
	imgui.Text(fmt.Sprintf("Aim: (%.2f, %.2f, %.2f)", dir.X, dir.Y, dir.Z))
	imgui.Separator()

	if imgui.Button("Forward") {
		session.Enqueue(game.MoveForward())
	}
	imgui.SameLine()
	if imgui.Button("Shoot") {
		session.Enqueue(game.Shoot())
	}
	imgui.SameLine()
	if imgui.Button("Toggle Field") {
		session.Enqueue(game.ToggleField())
	}

	label := "Pause"
	if state.Phase == game.PhasePaused {
		label = "Resume"
	}
	if imgui.Button(label) {
		session.Enqueue(game.TogglePause())
	}
	imgui.SameLine()
	if imgui.Button("Stop") {
		session.Stop()
	}

	if imgui.TreeNodeStr("Config") {
		imgui.Text(fmt.Sprintf("Spawn Interval: %s", cfg.SpawnInterval))
		imgui.Text(fmt.Sprintf("Half Width: %d", cfg.HalfWidth))
		imgui.Text(fmt.Sprintf("Spawn Height: %.1f", cfg.SpawnHeight))
		imgui.Text(fmt.Sprintf("Hit Delay: %s", cfg.HitDelay))
		imgui.Text(fmt.Sprintf("Projectile: %.1f u/s for %s", cfg.ProjectileSpeed, cfg.ProjectileTTL))
		imgui.Text(fmt.Sprintf("Steering: %s", cfg.Steering))
		imgui.TreePop()
	}

	imgui.End()
}

func phaseColor(p game.Phase) imgui.Vec4 {
	switch p {
	case game.PhasePlaying:
		return imgui.NewVec4(0.4, 0.9, 0.4, 1)
	case game.PhasePaused:
		return imgui.NewVec4(0.9, 0.8, 0.3, 1)
	case game.PhaseEnded:
		return imgui.NewVec4(0.9, 0.4, 0.4, 1)
	default:
		return imgui.NewVec4(0.8, 0.8, 0.8, 1)
	}
}
