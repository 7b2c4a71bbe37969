package term

import (
	"io"
	"log"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/cubekiller/ecs"
	"github.com/plus3/cubekiller/game"
	"github.com/plus3/cubekiller/input"
	"github.com/plus3/cubekiller/view"
	"github.com/plus3/cubekiller/vmath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frame = time.Second / 60

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

func newHost(t *testing.T) (*Host, *game.Session) {
	t.Helper()
	logger := log.New(io.Discard, "", 0)
	scene := view.NewScene()
	cfg := game.DefaultConfig()
	cfg.InitialTargets = 0
	cfg.SpawnInterval = time.Hour
	session, err := game.New(cfg, game.WithPresenter(scene), game.WithLogger(logger), game.WithSeed(3))
	require.NoError(t, err)
	require.NoError(t, session.Load())
	return NewHost(newScreen(t, 40, 20), session, scene, logger), session
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestKeyAction(t *testing.T) {
	cases := []struct {
		ev   *tcell.EventKey
		want input.Action
	}{
		{tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), input.ActionMoveForward},
		{tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), input.ActionTurnLeft},
		{tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), input.ActionTurnRight},
		{tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), input.ActionQuit},
		{tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), input.ActionNone},
		{key(' '), input.ActionShoot},
		{key('f'), input.ActionToggleField},
		{key('p'), input.ActionPause},
		{key('q'), input.ActionQuit},
		{key('z'), input.ActionNone},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, KeyAction(c.ev), "%v", c.ev.Name())
	}
}

func TestAvatarGlyph(t *testing.T) {
	assert.Equal(t, '↑', avatarGlyph(0))
	assert.Equal(t, '←', avatarGlyph(1.5707963))
	assert.Equal(t, '→', avatarGlyph(-1.5707963))
	assert.Equal(t, '↓', avatarGlyph(3.1415926))
}

func TestRendererDrawsAvatarAndHUD(t *testing.T) {
	screen := newScreen(t, 60, 20)
	r := NewRenderer(screen)

	snap := view.Snapshot{
		Score:       30,
		LiveTargets: 2,
		Sprites: []view.Sprite{
			{Id: 2, Kind: ecs.KindAvatar},
			{Id: 3, Kind: ecs.KindTarget, Position: vmath.V3(0, 0, -4), Opacity: 1},
			{Id: 4, Kind: ecs.KindTarget, Position: vmath.V3(500, 0, 0), Opacity: 1},
		},
	}
	r.Draw(snap, game.State{Phase: game.PhasePaused, Variant: game.VariantFloating})

	ch, _, _, _ := screen.GetContent(30, 10)
	assert.Equal(t, '↑', ch)
	ch, _, _, _ = screen.GetContent(30, 6)
	assert.Equal(t, '■', ch, "a target ahead is drawn above the avatar")

	var hud []rune
	for x := range 60 {
		c, _, _, _ := screen.GetContent(x, 0)
		hud = append(hud, c)
	}
	assert.Contains(t, string(hud), "score 30")
	assert.Contains(t, string(hud), "[paused]")
}

func TestHostKeysDriveSession(t *testing.T) {
	host, session := newHost(t)

	assert.True(t, host.handle(key('w')))
	for range 30 {
		host.Step(frame)
	}
	avatar, ok := session.Registry().Get(session.Avatar())
	require.True(t, ok)
	assert.InDelta(t, -5, avatar.Position.Z, 1e-6)

	assert.True(t, host.handle(key(' ')))
	host.Step(frame)
	assert.Equal(t, 1, session.State().Fired)

	assert.False(t, host.handle(key('q')))
}

func TestHostMouseGestures(t *testing.T) {
	host, session := newHost(t)

	host.handle(tcell.NewEventMouse(10, 5, tcell.Button1, tcell.ModNone))
	host.handle(tcell.NewEventMouse(10, 5, tcell.ButtonNone, tcell.ModNone))
	for range 30 {
		host.Step(frame)
	}
	avatar, _ := session.Registry().Get(session.Avatar())
	assert.InDelta(t, -5, avatar.Position.Z, 1e-6, "a click is a tap")

	host.handle(tcell.NewEventMouse(10, 5, tcell.Button1, tcell.ModNone))
	host.handle(tcell.NewEventMouse(20, 5, tcell.Button1, tcell.ModNone))
	host.handle(tcell.NewEventMouse(20, 5, tcell.ButtonNone, tcell.ModNone))
	host.Step(frame)
	avatar, _ = session.Registry().Get(session.Avatar())
	assert.InDelta(t, -input.PanRadiansPerPixel*10*cellPixelsX, avatar.Orientation.Yaw, 1e-9)

	host.handle(tcell.NewEventMouse(0, 0, tcell.Button2, tcell.ModNone))
	host.handle(tcell.NewEventMouse(1, 0, tcell.Button2, tcell.ModNone))
	host.Step(frame)
	assert.Equal(t, 1, session.State().Fired, "a held right button shoots once")
}
