package ebiten

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/cubekiller/ecs"
	"github.com/plus3/cubekiller/game"
	"github.com/plus3/cubekiller/view"
	"github.com/plus3/cubekiller/vmath"
	"golang.org/x/image/font/basicfont"
)

var (
	backgroundColor = color.RGBA{R: 0x1b, G: 0x26, B: 0x33, A: 0xff}
	gridColor       = color.RGBA{R: 0x2c, G: 0x3e, B: 0x50, A: 0xff}
	hudColor        = color.RGBA{R: 0xec, G: 0xf0, B: 0xf1, A: 0xff}
	shadowColor     = color.RGBA{A: 0x60}
)

const gridSpacing = 2.0

// quad returns the screen corners of a square of half size half centred on
// pos and turned by yaw.
func quad(cam view.Camera, pos vmath.Vec3, yaw, half float64) [4][2]float32 {
	local := [4]vmath.Vec3{
		{X: -half, Z: -half},
		{X: half, Z: -half},
		{X: half, Z: half},
		{X: -half, Z: half},
	}
	orient := vmath.YawOnly(yaw)
	var out [4][2]float32
	for i, l := range local {
		x, y := cam.Project(orient.ToWorld(pos, l))
		out[i] = [2]float32{float32(x), float32(y)}
	}
	return out
}

// fade scales a color's alpha by opacity.
func fade(c color.RGBA, opacity float64) color.RGBA {
	opacity = math.Max(0, math.Min(1, opacity))
	return color.RGBA{
		R: uint8(float64(c.R) * opacity),
		G: uint8(float64(c.G) * opacity),
		B: uint8(float64(c.B) * opacity),
		A: uint8(float64(c.A) * opacity),
	}
}

func fillQuad(dst *ebiten.Image, q [4][2]float32, c color.RGBA) {
	var path vector.Path
	path.MoveTo(q[0][0], q[0][1])
	for _, p := range q[1:] {
		path.LineTo(p[0], p[1])
	}
	path.Close()

	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	r, g, b, a := c.RGBA()
	for i := range vs {
		vs[i].SrcX, vs[i].SrcY = 1, 1
		vs[i].ColorR = float32(r) / 0xffff
		vs[i].ColorG = float32(g) / 0xffff
		vs[i].ColorB = float32(b) / 0xffff
		vs[i].ColorA = float32(a) / 0xffff
	}
	dst.DrawTriangles(vs, is, whitePixel, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

var whitePixel = func() *ebiten.Image {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}()

func drawGrid(dst *ebiten.Image, cam view.Camera) {
	reach := math.Hypot(cam.Width, cam.Height) / cam.Scale / 2
	startX := math.Floor((cam.Center.X-reach)/gridSpacing) * gridSpacing
	startZ := math.Floor((cam.Center.Z-reach)/gridSpacing) * gridSpacing
	for v := 0.0; v <= 2*reach+gridSpacing; v += gridSpacing {
		x0, y0 := cam.Project(vmath.V3(startX+v, 0, startZ))
		x1, y1 := cam.Project(vmath.V3(startX+v, 0, startZ+2*reach+gridSpacing))
		vector.StrokeLine(dst, float32(x0), float32(y0), float32(x1), float32(y1), 1, gridColor, true)

		x0, y0 = cam.Project(vmath.V3(startX, 0, startZ+v))
		x1, y1 = cam.Project(vmath.V3(startX+2*reach+gridSpacing, 0, startZ+v))
		vector.StrokeLine(dst, float32(x0), float32(y0), float32(x1), float32(y1), 1, gridColor, true)
	}
}

func drawSprite(dst *ebiten.Image, cam view.Camera, cfg game.Config, sp view.Sprite) {
	switch sp.Kind {
	case ecs.KindTarget:
		half := cfg.TargetSize / 2
		ground := sp.Position
		ground.Y = cam.Center.Y
		fillQuad(dst, quad(cam, ground, sp.Orientation.Yaw, half), fade(shadowColor, sp.Opacity))
		fillQuad(dst, quad(cam, sp.Position, sp.Orientation.Yaw, half), fade(sp.Color, sp.Opacity))
	case ecs.KindAvatar:
		q := quad(cam, sp.Position, sp.Orientation.Yaw, 0.5)
		fillQuad(dst, q, sp.Color)
		tipX, tipY := cam.Project(sp.Orientation.ToWorld(sp.Position, cfg.AimOffset))
		x, y := cam.Project(sp.Position)
		vector.StrokeLine(dst, float32(x), float32(y), float32(tipX), float32(tipY), 2, color.White, true)
	case ecs.KindProjectile:
		x, y := cam.Project(sp.Position)
		r := math.Max(2, cfg.ProjectileRadius*cam.Scale)
		vector.DrawFilledCircle(dst, float32(x), float32(y), float32(r), fade(sp.Color, sp.Opacity), true)
	}
}

func drawParticles(dst *ebiten.Image, cam view.Camera, particles []view.Particle) {
	for _, p := range particles {
		x, y := cam.Project(p.Position)
		if !cam.Visible(x, y, 4) {
			continue
		}
		vector.DrawFilledRect(dst, float32(x)-2, float32(y)-2, 4, 4, fade(p.Color, p.Alpha()), true)
	}
}

func hudLines(snap view.Snapshot, state game.State) []string {
	lines := []string{
		fmt.Sprintf("score %d", snap.Score),
		fmt.Sprintf("targets %d", snap.LiveTargets),
		fmt.Sprintf("field %s", state.Variant),
	}
	switch state.Phase {
	case game.PhasePaused:
		lines = append(lines, "paused (p to resume)")
	case game.PhaseEnded:
		lines = append(lines, "game over")
	}
	return lines
}

func drawHUD(dst *ebiten.Image, lines []string) {
	face := basicfont.Face7x13
	lineHeight := face.Metrics().Height.Ceil() + 2
	for i, line := range lines {
		text.Draw(dst, line, face, 10, 20+i*lineHeight, hudColor)
	}
}
