package game

import (
	"image/color"
	"io"
	"log"
	"sync"
	"testing"
	"time"

	"github.com/plus3/cubekiller/ecs"
	"github.com/plus3/cubekiller/vmath"
	"github.com/stretchr/testify/require"
)

const frame = time.Second / 60

type created struct {
	id   ecs.EntityId
	kind ecs.Kind
	pos  vmath.Vec3
}

type recorder struct {
	created    []created
	destroyed  []ecs.EntityId
	explosions []vmath.Vec3
	updates    int
	scores     [][2]int
}

func (r *recorder) OnEntityCreated(id ecs.EntityId, kind ecs.Kind, pos vmath.Vec3, _ vmath.Euler, _ color.RGBA) {
	r.created = append(r.created, created{id, kind, pos})
}

func (r *recorder) OnEntityUpdated(ecs.EntityId, vmath.Vec3, vmath.Euler, float64) {
	r.updates++
}

func (r *recorder) OnEntityDestroyed(id ecs.EntityId) {
	r.destroyed = append(r.destroyed, id)
}

func (r *recorder) OnExplosion(pos vmath.Vec3, _ vmath.Euler, _ color.RGBA) {
	r.explosions = append(r.explosions, pos)
}

func (r *recorder) OnScore(score, live int) {
	r.scores = append(r.scores, [2]int{score, live})
}

type sounds struct {
	mu    sync.Mutex
	names []string
}

func (s *sounds) Play(name string, _ float64) {
	s.mu.Lock()
	s.names = append(s.names, name)
	s.mu.Unlock()
}

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

// newLoaded builds and loads a seeded session. Timed spawning is pushed out
// of reach so tests control every target.
func newLoaded(t *testing.T, cfg Config) (*Session, *recorder, *sounds) {
	t.Helper()
	rec := &recorder{}
	snd := &sounds{}
	s, err := New(cfg, WithPresenter(rec), WithAudio(snd), WithLogger(quietLogger()), WithSeed(7))
	require.NoError(t, err)
	require.NoError(t, s.Load())
	s.state.NextSpawn = time.Hour
	return s, rec, snd
}

// addTarget places a floating target without going through the spawner.
func addTarget(s *Session, pos vmath.Vec3) ecs.EntityId {
	id := s.create(ecs.Desc{
		Kind:        ecs.KindTarget,
		Position:    pos,
		HalfExtents: vmath.V3(0.5, 0.5, 0.5),
		Body:        ecs.BodyDynamic,
		Opacity:     1,
	})
	s.state.LiveTargets++
	return id
}

func ticks(s *Session, n int) {
	for range n {
		s.Tick(frame)
	}
}

func quietConfig() Config {
	cfg := DefaultConfig()
	cfg.InitialTargets = 0
	return cfg
}
