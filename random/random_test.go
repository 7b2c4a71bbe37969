package random_test

import (
	"image/color"
	"math"
	"slices"
	"testing"

	"github.com/plus3/cubekiller/random"
	"github.com/stretchr/testify/assert"
)

func TestIntIsInclusive(t *testing.T) {
	src := random.New(1)
	seen := map[int]bool{}
	for range 2000 {
		v := src.Int(-2, 2)
		assert.GreaterOrEqual(t, v, -2)
		assert.LessOrEqual(t, v, 2)
		seen[v] = true
	}
	assert.Len(t, seen, 5, "every value in [-2, 2] should appear")
}

func TestIntSwappedBounds(t *testing.T) {
	src := random.New(7)
	for range 100 {
		v := src.Int(3, -3)
		assert.GreaterOrEqual(t, v, -3)
		assert.LessOrEqual(t, v, 3)
	}
	assert.Equal(t, 4, src.Int(4, 4))
}

func TestFloatRange(t *testing.T) {
	src := random.New(3)
	for range 1000 {
		v := src.Float(0.5, 1.5)
		assert.GreaterOrEqual(t, v, 0.5)
		assert.Less(t, v, 1.5)
	}
	yaw := src.Yaw()
	assert.GreaterOrEqual(t, yaw, 0.0)
	assert.Less(t, yaw, 2*math.Pi)
}

func TestDeterministicSeed(t *testing.T) {
	a, b := random.New(42), random.New(42)
	for range 50 {
		assert.Equal(t, a.Int(-10, 10), b.Int(-10, 10))
	}
}

func TestColorComesFromPalette(t *testing.T) {
	assert.Len(t, random.Palette, 18)

	src := random.New(9)
	for range 200 {
		c := src.Color()
		assert.True(t, slices.Contains(random.Palette, c), "unexpected color %v", c)
	}
}

func TestHex(t *testing.T) {
	assert.Equal(t, color.RGBA{R: 0x1a, G: 0xbc, B: 0x9c, A: 0xff}, random.Hex(0x1abc9c))
}
