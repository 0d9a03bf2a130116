package core

import (
	"fmt"
	"math"
	"math/rand"
)

// Sampler provides random sampling for rendering algorithms
// Can be swapped out for deterministic testing or different generators
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
}

// Sampler kinds accepted by NewSampler
const (
	SamplerMath     = "math"
	SamplerXorShift = "xorshift"
)

// NewSampler creates a sampler of the given kind seeded with seed
func NewSampler(kind string, seed int64) (Sampler, error) {
	switch kind {
	case SamplerMath, "":
		return NewRandomSampler(rand.New(rand.NewSource(seed))), nil
	case SamplerXorShift:
		return NewXorShiftSampler(seed), nil
	default:
		return nil, fmt.Errorf("unknown sampler %q (want %q or %q)", kind, SamplerMath, SamplerXorShift)
	}
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1), X drawn first
func (r *RandomSampler) Get2D() Vec2 {
	x := r.random.Float64()
	y := r.random.Float64()
	return NewVec2(x, y)
}

const (
	xorShiftBits  = 29
	xorShiftRange = 1 << xorShiftBits
)

// XorShiftSampler is Marsaglia's xorshift128 generator scaled to [0, 1)
// with 29 bits of resolution, as used by the classic AO benchmark.
type XorShiftSampler struct {
	x, y, z, w uint32
}

// NewXorShiftSampler seeds the generator state from seed
func NewXorShiftSampler(seed int64) *XorShiftSampler {
	state := uint64(seed)
	a := splitMix64(&state)
	b := splitMix64(&state)
	s := &XorShiftSampler{
		x: uint32(a),
		y: uint32(a >> 32),
		z: uint32(b),
		w: uint32(b >> 32),
	}
	if s.x|s.y|s.z|s.w == 0 {
		// all-zero state is a fixed point
		s.x, s.y, s.z, s.w = 123456789, 362436069, 521288629, 88675123
	}
	return s
}

// Get1D returns a random float64 in [0, 1)
func (s *XorShiftSampler) Get1D() float64 {
	t := s.x ^ ((s.x & 0xfffff) << 11)
	s.x, s.y, s.z = s.y, s.z, s.w
	s.w = s.w ^ (s.w >> 19) ^ (t ^ (t >> 8))
	return float64(s.w%xorShiftRange) / xorShiftRange
}

// Get2D returns two random float64 values in [0, 1), X drawn first
func (s *XorShiftSampler) Get2D() Vec2 {
	x := s.Get1D()
	y := s.Get1D()
	return NewVec2(x, y)
}

// DeriveSeed mixes a base seed with a stream index so that independent
// streams (one per image row) get uncorrelated, reproducible seeds.
func DeriveSeed(base int64, stream int) int64 {
	state := uint64(base) ^ (uint64(stream) * 0x9e3779b97f4a7c15)
	return int64(splitMix64(&state))
}

func splitMix64(state *uint64) uint64 {
	*state += 0x9e3779b97f4a7c15
	z := *state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// SampleCosineHemisphere maps a sample pair (r, phi) in [0,1)^2 to a cosine-weighted
// direction in the local frame whose Z axis is the surface normal.
// The result is unit length by construction.
func SampleCosineHemisphere(sample Vec2) Vec3 {
	r := sample.X
	phi := 2.0 * math.Pi * sample.Y
	sq := math.Sqrt(1.0 - r)

	return Vec3{
		X: math.Cos(phi) * sq,
		Y: math.Sin(phi) * sq,
		Z: math.Sqrt(r),
	}
}
