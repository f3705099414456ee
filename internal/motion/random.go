package motion

import (
	"hash/fnv"
	"math"
)

// Random returns a pseudo-random number in [0, 1) that depends only on seed.
// Scene code uses it in place of a shared generator so that any frame can be
// rendered in isolation and still agree with its neighbours.
func Random(seed string) float64 {
	h := fnv.New64a()
	h.Write([]byte(seed))
	return splitmix(h.Sum64())
}

// RandomN is Random keyed by an integer, for per-index particle parameters.
func RandomN(seed int64) float64 {
	return splitmix(uint64(seed))
}

func splitmix(x uint64) float64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	// 53 high bits give a uniformly spaced float64 in [0, 1).
	return float64(x>>11) / math.Exp2(53)
}
