package common

import (
	"math"
	"math/rand"
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// RandomInCircle returns a uniformly distributed offset within radius.
func RandomInCircle(rng *rand.Rand, radius float64) (float64, float64) {
	if rng == nil || radius <= 0 {
		return 0, 0
	}
	angle := rng.Float64() * 2 * math.Pi
	r := radius * math.Sqrt(rng.Float64())
	return math.Cos(angle) * r, math.Sin(angle) * r
}

// Normalize returns the unit vector of (x, y) and its length. A zero vector
// stays zero.
func Normalize(x, y float64) (float64, float64, float64) {
	l := math.Hypot(x, y)
	if l == 0 {
		return 0, 0, 0
	}
	return x / l, y / l, l
}
