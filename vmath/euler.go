package vmath

import "math"

// Euler is an orientation in radians. Rotations apply roll (Z), then pitch (X),
// then yaw (Y).
type Euler struct {
	Pitch, Yaw, Roll float64
}

// YawOnly returns an orientation that rotates about the up axis only.
func YawOnly(yaw float64) Euler {
	return Euler{Yaw: yaw}
}

// Rotate applies the orientation to a local-space vector.
func (e Euler) Rotate(v Vec3) Vec3 {
	if e.Roll != 0 {
		s, c := math.Sincos(e.Roll)
		v = Vec3{v.X*c - v.Y*s, v.X*s + v.Y*c, v.Z}
	}
	if e.Pitch != 0 {
		s, c := math.Sincos(e.Pitch)
		v = Vec3{v.X, v.Y*c - v.Z*s, v.Y*s + v.Z*c}
	}
	if e.Yaw != 0 {
		s, c := math.Sincos(e.Yaw)
		v = Vec3{v.X*c + v.Z*s, v.Y, -v.X*s + v.Z*c}
	}
	return v
}

// ToWorld transforms a point from the local frame of an object located at
// origin with orientation e into world space.
func (e Euler) ToWorld(origin, local Vec3) Vec3 {
	return origin.Add(e.Rotate(local))
}

// WrapAngle maps an angle to (-pi, pi].
func WrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}
