package game

import (
	"errors"
	"flag"
	"io"
	"math"
	"testing"
	"time"

	"github.com/plus3/cubekiller/ecs"
	"github.com/plus3/cubekiller/physics"
	"github.com/plus3/cubekiller/vmath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresetsAreValid(t *testing.T) {
	for _, name := range []string{"classic", "arena", ""} {
		cfg, err := Preset(name)
		require.NoError(t, err)
		assert.NoError(t, cfg.Validate(), name)
	}

	_, err := Preset("nightmare")
	assert.True(t, errors.Is(err, ErrInvalidConfig))

	arena := ArenaConfig()
	assert.Equal(t, 300*time.Millisecond, arena.SpawnInterval)
	assert.Equal(t, 20, arena.HalfWidth)
	assert.Equal(t, VariantFalling, arena.Variant)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"negative half width", func(c *Config) { c.HalfWidth = -1 }, ErrInvalidSpawnBounds},
		{"negative spawn height", func(c *Config) { c.SpawnHeight = -0.5 }, ErrInvalidSpawnBounds},
		{"field larger than ground", func(c *Config) { c.HalfWidth = 500 }, ErrInvalidSpawnBounds},
		{"NaN spawn height", func(c *Config) { c.SpawnHeight = math.NaN() }, ErrInvalidSpawnBounds},
		{"infinite spawn height", func(c *Config) { c.SpawnHeight = math.Inf(1) }, ErrInvalidSpawnBounds},
		{"NaN ground extent", func(c *Config) { c.GroundExtent = math.NaN() }, ErrInvalidSpawnBounds},
		{"infinite ground extent", func(c *Config) { c.GroundExtent = math.Inf(1) }, ErrInvalidSpawnBounds},
		{"NaN speed", func(c *Config) { c.ProjectileSpeed = math.NaN() }, ErrInvalidConfig},
		{"infinite gravity", func(c *Config) { c.Gravity = math.Inf(-1) }, ErrInvalidConfig},
		{"NaN aim", func(c *Config) { c.AimOffset.Z = math.NaN() }, ErrInvalidConfig},
		{"zero interval", func(c *Config) { c.SpawnInterval = 0 }, ErrInvalidConfig},
		{"negative initial targets", func(c *Config) { c.InitialTargets = -3 }, ErrInvalidConfig},
		{"negative hit delay", func(c *Config) { c.HitDelay = -time.Second }, ErrInvalidConfig},
		{"zero speed", func(c *Config) { c.ProjectileSpeed = 0 }, ErrInvalidConfig},
		{"zero aim", func(c *Config) { c.AimOffset = vmath.Vec3{} }, ErrInvalidConfig},
		{"negative score", func(c *Config) { c.ScoreAvatarHit = -1 }, ErrInvalidConfig},
		{"bad variant", func(c *Config) { c.Variant = 9 }, ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			assert.True(t, errors.Is(err, tt.want), "got %v", err)

			_, err = New(cfg, WithLogger(quietLogger()))
			assert.True(t, errors.Is(err, tt.want))
		})
	}
}

func TestBindFlags(t *testing.T) {
	cfg := DefaultConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.BindFlags(fs)

	err := fs.Parse([]string{"-preset", "arena", "-half-width", "15", "-steering", "continuous", "-variant", "floating"})
	require.NoError(t, err)

	assert.Equal(t, 300*time.Millisecond, cfg.SpawnInterval)
	assert.Equal(t, 15, cfg.HalfWidth)
	assert.Equal(t, SteerContinuous, cfg.Steering)
	assert.Equal(t, VariantFloating, cfg.Variant)

	fs = flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cfg.BindFlags(fs)
	assert.Error(t, fs.Parse([]string{"-variant", "sideways"}))

	cfg = DefaultConfig()
	fs = flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cfg.BindFlags(fs)
	err = fs.Parse([]string{"-half-width", "15", "-preset", "arena"})
	require.Error(t, err)
	assert.ErrorContains(t, err, "-half-width")
	assert.Equal(t, 15, cfg.HalfWidth)
	assert.Equal(t, time.Second, cfg.SpawnInterval, "preset was not applied")
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		contact physics.Contact
		want    Resolution
	}{
		{
			"projectile on target",
			physics.Contact{A: 2, B: 5, KindA: ecs.KindProjectile, KindB: ecs.KindTarget},
			Resolution{Outcome: OutcomeProjectileHit, Target: 5, Other: 2},
		},
		{
			"target on avatar",
			physics.Contact{A: 1, B: 9, KindA: ecs.KindTarget, KindB: ecs.KindAvatar},
			Resolution{Outcome: OutcomeAvatarHit, Target: 1, Other: 9},
		},
		{
			"target pair",
			physics.Contact{A: 3, B: 4, KindA: ecs.KindTarget, KindB: ecs.KindTarget},
			Resolution{Outcome: OutcomeTargetCollision, Target: 3, Other: 4},
		},
		{
			"ground and target",
			physics.Contact{A: 1, B: 4, KindA: ecs.KindGround, KindB: ecs.KindTarget},
			Resolution{},
		},
		{
			"no target",
			physics.Contact{A: 1, B: 2, KindA: ecs.KindAvatar, KindB: ecs.KindProjectile},
			Resolution{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.contact))
		})
	}

	cfg := DefaultConfig()
	assert.Equal(t, 10, cfg.Award(OutcomeProjectileHit))
	assert.Equal(t, 20, cfg.Award(OutcomeAvatarHit))
	assert.Equal(t, 30, cfg.Award(OutcomeTargetCollision))
	assert.Equal(t, 0, cfg.Award(OutcomeIgnore))
}

func TestCommandQueueIsConcurrent(t *testing.T) {
	var q commandQueue
	done := make(chan struct{})
	for range 4 {
		go func() {
			for range 250 {
				q.push(Shoot())
			}
			done <- struct{}{}
		}()
	}
	for range 4 {
		<-done
	}
	assert.Len(t, q.drain(nil), 1000)
	assert.Empty(t, q.drain(nil))
}
