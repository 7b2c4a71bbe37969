package game

import (
	"image/color"

	"github.com/plus3/cubekiller/ecs"
	"github.com/plus3/cubekiller/vmath"
)

// Sound names emitted by the loop.
const (
	SoundShot      = "shot"
	SoundExplosion = "explosion"
)

// Presenter receives scene changes. Calls come from the tick goroutine and
// must not block.
type Presenter interface {
	OnEntityCreated(id ecs.EntityId, kind ecs.Kind, pos vmath.Vec3, orient vmath.Euler, c color.RGBA)
	OnEntityUpdated(id ecs.EntityId, pos vmath.Vec3, orient vmath.Euler, opacity float64)
	OnEntityDestroyed(id ecs.EntityId)
	OnExplosion(pos vmath.Vec3, orient vmath.Euler, c color.RGBA)
	OnScore(score, liveTargets int)
}

// AudioSink plays named sounds. Unknown names and load failures are the
// sink's problem and never reach the loop.
type AudioSink interface {
	Play(name string, rate float64)
}

// NopPresenter discards every event.
type NopPresenter struct{}

func (NopPresenter) OnEntityCreated(ecs.EntityId, ecs.Kind, vmath.Vec3, vmath.Euler, color.RGBA) {}
func (NopPresenter) OnEntityUpdated(ecs.EntityId, vmath.Vec3, vmath.Euler, float64) {}
func (NopPresenter) OnEntityDestroyed(ecs.EntityId) {}
func (NopPresenter) OnExplosion(vmath.Vec3, vmath.Euler, color.RGBA) {}
func (NopPresenter) OnScore(int, int) {}

// NopAudio discards every sound.
type NopAudio struct{}

func (NopAudio) Play(string, float64) {}

// Presenters fans events out to several presenters in order.
type Presenters []Presenter

func (ps Presenters) OnEntityCreated(id ecs.EntityId, kind ecs.Kind, pos vmath.Vec3, orient vmath.Euler, c color.RGBA) {
	for _, p := range ps {
		p.OnEntityCreated(id, kind, pos, orient, c)
	}
}

func (ps Presenters) OnEntityUpdated(id ecs.EntityId, pos vmath.Vec3, orient vmath.Euler, opacity float64) {
	for _, p := range ps {
		p.OnEntityUpdated(id, pos, orient, opacity)
	}
}

func (ps Presenters) OnEntityDestroyed(id ecs.EntityId) {
	for _, p := range ps {
		p.OnEntityDestroyed(id)
	}
}

func (ps Presenters) OnExplosion(pos vmath.Vec3, orient vmath.Euler, c color.RGBA) {
	for _, p := range ps {
		p.OnExplosion(pos, orient, c)
	}
}

func (ps Presenters) OnScore(score, liveTargets int) {
	for _, p := range ps {
		p.OnScore(score, liveTargets)
	}
}
