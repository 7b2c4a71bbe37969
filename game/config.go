package game

import (
	"errors"
	"flag"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/plus3/cubekiller/vmath"
)

var (
	// ErrInvalidSpawnBounds is returned when the spawn area is malformed.
	ErrInvalidSpawnBounds = errors.New("invalid spawn bounds")
	// ErrInvalidConfig is returned for any other rejected setting.
	ErrInvalidConfig = errors.New("invalid config")
)

// Variant selects how newly spawned targets behave.
type Variant uint8

const (
	// VariantFloating targets hover at the avatar's height and ignore gravity.
	VariantFloating Variant = iota
	// VariantFalling targets spawn above the field and drop onto the ground.
	VariantFalling
)

func (v Variant) String() string {
	switch v {
	case VariantFloating:
		return "floating"
	case VariantFalling:
		return "falling"
	default:
		return "unknown"
	}
}

// ParseVariant accepts the names produced by Variant.String.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "floating":
		return VariantFloating, nil
	case "falling":
		return VariantFalling, nil
	}
	return 0, fmt.Errorf("%w: unknown variant %q", ErrInvalidConfig, s)
}

// Steering selects how the avatar reacts to movement input.
type Steering uint8

const (
	// SteerDiscrete moves the avatar a fixed distance per MoveForward.
	SteerDiscrete Steering = iota
	// SteerContinuous keeps the avatar moving along its aim, re-aimed on every rotation.
	SteerContinuous
)

func (s Steering) String() string {
	switch s {
	case SteerDiscrete:
		return "discrete"
	case SteerContinuous:
		return "continuous"
	default:
		return "unknown"
	}
}

func ParseSteering(s string) (Steering, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "discrete":
		return SteerDiscrete, nil
	case "continuous":
		return SteerContinuous, nil
	}
	return 0, fmt.Errorf("%w: unknown steering %q", ErrInvalidConfig, s)
}

// Config holds every tunable of a session.
type Config struct {
	// Spawning
	SpawnInterval  time.Duration
	InitialTargets int
	HalfWidth      int
	SpawnHeight    float64
	RandomYaw      bool
	Variant        Variant
	FadeDuration   time.Duration

	// Projectiles
	ProjectileSpeed  float64
	ProjectileTTL    time.Duration
	ProjectileRadius float64
	HitDelay         time.Duration

	// Avatar
	AimOffset    vmath.Vec3
	MoveDistance float64
	MoveDuration time.Duration
	BounceHeight float64
	Steering     Steering
	SteerStep    float64

	// Scoring
	ScoreProjectileHit   int
	ScoreAvatarHit       int
	ScoreTargetCollision int

	// World
	TargetSize   float64
	GroundExtent float64
	Gravity      float64
}

// DefaultConfig is the classic preset: floating targets on a tight field.
func DefaultConfig() Config {
	return Config{
		SpawnInterval:  time.Second,
		InitialTargets: 15,
		HalfWidth:      10,
		SpawnHeight:    5,
		Variant:        VariantFloating,
		FadeDuration:   time.Second,

		ProjectileSpeed:  8,
		ProjectileTTL:    2 * time.Second,
		ProjectileRadius: 0.1,
		HitDelay:         300 * time.Millisecond,

		AimOffset:    vmath.V3(0, 0, -1),
		MoveDistance: 5,
		MoveDuration: 300 * time.Millisecond,
		BounceHeight: 1,
		Steering:     SteerDiscrete,
		SteerStep:    0.1,

		ScoreProjectileHit:   10,
		ScoreAvatarHit:       20,
		ScoreTargetCollision: 30,

		TargetSize:   1,
		GroundExtent: 200,
		Gravity:      -9.8,
	}
}

// ArenaConfig is the faster preset: falling targets spread over a wider
// field with random yaw.
func ArenaConfig() Config {
	c := DefaultConfig()
	c.SpawnInterval = 300 * time.Millisecond
	c.HalfWidth = 20
	c.Variant = VariantFalling
	c.RandomYaw = true
	c.HitDelay = 500 * time.Millisecond
	return c
}

// Preset returns a named configuration.
func Preset(name string) (Config, error) {
	switch strings.ToLower(name) {
	case "", "classic":
		return DefaultConfig(), nil
	case "arena":
		return ArenaConfig(), nil
	}
	return Config{}, fmt.Errorf("%w: unknown preset %q", ErrInvalidConfig, name)
}

// Validate rejects configurations the loop cannot run with.
func (c Config) Validate() error {
	if c.HalfWidth < 0 {
		return fmt.Errorf("%w: half width %d is negative", ErrInvalidSpawnBounds, c.HalfWidth)
	}
	if !finite(c.SpawnHeight, c.GroundExtent) {
		return fmt.Errorf("%w: spawn height %g and ground extent %g must be finite", ErrInvalidSpawnBounds, c.SpawnHeight, c.GroundExtent)
	}
	if c.SpawnHeight < 0 {
		return fmt.Errorf("%w: spawn height %g is negative", ErrInvalidSpawnBounds, c.SpawnHeight)
	}
	if float64(c.HalfWidth) > c.GroundExtent {
		return fmt.Errorf("%w: half width %d exceeds ground extent %g", ErrInvalidSpawnBounds, c.HalfWidth, c.GroundExtent)
	}

	switch {
	case !finite(c.ProjectileSpeed, c.ProjectileRadius, c.MoveDistance, c.BounceHeight, c.SteerStep, c.TargetSize, c.Gravity),
		!finite(c.AimOffset.X, c.AimOffset.Y, c.AimOffset.Z):
		return fmt.Errorf("%w: tunables must be finite", ErrInvalidConfig)
	case c.SpawnInterval <= 0:
		return fmt.Errorf("%w: spawn interval must be positive", ErrInvalidConfig)
	case c.InitialTargets < 0:
		return fmt.Errorf("%w: initial targets must not be negative", ErrInvalidConfig)
	case c.FadeDuration < 0, c.ProjectileTTL < 0, c.HitDelay < 0, c.MoveDuration < 0:
		return fmt.Errorf("%w: durations must not be negative", ErrInvalidConfig)
	case c.ProjectileSpeed <= 0:
		return fmt.Errorf("%w: projectile speed must be positive", ErrInvalidConfig)
	case c.ProjectileRadius <= 0 || c.TargetSize <= 0:
		return fmt.Errorf("%w: body sizes must be positive", ErrInvalidConfig)
	case c.AimOffset.LengthSq() == 0:
		return fmt.Errorf("%w: aim offset must not be zero", ErrInvalidConfig)
	case c.ScoreProjectileHit < 0 || c.ScoreAvatarHit < 0 || c.ScoreTargetCollision < 0:
		return fmt.Errorf("%w: score increments must not be negative", ErrInvalidConfig)
	case c.Variant > VariantFalling:
		return fmt.Errorf("%w: unknown variant %d", ErrInvalidConfig, c.Variant)
	case c.Steering > SteerContinuous:
		return fmt.Errorf("%w: unknown steering %d", ErrInvalidConfig, c.Steering)
	}
	return nil
}

func finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// BindFlags registers the commonly tuned settings on fs. The -preset flag
// replaces the whole config, so parsing fails if it follows any other flag.
func (c *Config) BindFlags(fs *flag.FlagSet) {
	fs.Func("preset", "config preset: classic or arena (must come first)", func(s string) error {
		var earlier []string
		fs.Visit(func(f *flag.Flag) {
			earlier = append(earlier, "-"+f.Name)
		})
		if len(earlier) > 0 {
			return fmt.Errorf("%w: -preset must come before %s", ErrInvalidConfig, strings.Join(earlier, ", "))
		}
		preset, err := Preset(s)
		if err != nil {
			return err
		}
		*c = preset
		return nil
	})
	fs.DurationVar(&c.SpawnInterval, "spawn-interval", c.SpawnInterval, "time between target spawns")
	fs.IntVar(&c.InitialTargets, "initial-targets", c.InitialTargets, "targets spawned at load")
	fs.IntVar(&c.HalfWidth, "half-width", c.HalfWidth, "spawn offset half width around the avatar")
	fs.Float64Var(&c.SpawnHeight, "spawn-height", c.SpawnHeight, "maximum spawn height for falling targets")
	fs.BoolVar(&c.RandomYaw, "random-yaw", c.RandomYaw, "spawn targets with a random yaw")
	fs.DurationVar(&c.HitDelay, "hit-delay", c.HitDelay, "delay before a hit target explodes")
	fs.Float64Var(&c.ProjectileSpeed, "projectile-speed", c.ProjectileSpeed, "projectile speed")
	fs.Func("variant", "target variant: floating or falling", func(s string) error {
		v, err := ParseVariant(s)
		if err != nil {
			return err
		}
		c.Variant = v
		return nil
	})
	fs.Func("steering", "avatar steering: discrete or continuous", func(s string) error {
		v, err := ParseSteering(s)
		if err != nil {
			return err
		}
		c.Steering = v
		return nil
	})
}
