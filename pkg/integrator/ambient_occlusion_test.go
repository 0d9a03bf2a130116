package integrator

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/stat"

	"github.com/df07/go-ao-renderer/pkg/core"
	"github.com/df07/go-ao-renderer/pkg/scene"
)

// MockWorld reports a hit for every n-th ray and records what it was asked
type MockWorld struct {
	hitEvery int
	calls    int
	rays     []core.Ray
}

func (m *MockWorld) Intersect(ray core.Ray) core.Intersection {
	m.calls++
	m.rays = append(m.rays, ray)
	isect := core.NewIntersection()
	if m.hitEvery > 0 && m.calls%m.hitEvery == 0 {
		isect.Hit = true
		isect.T = 1.0
	}
	return isect
}

// countingSampler counts draws from a wrapped sampler
type countingSampler struct {
	core.Sampler
	draws int
}

func (c *countingSampler) Get2D() core.Vec2 {
	c.draws += 2
	return c.Sampler.Get2D()
}

func groundHit(point core.Vec3) core.Intersection {
	return core.Intersection{T: 1, Point: point, Normal: core.NewVec3(0, 1, 0), Hit: true}
}

func newSampler(seed int64) core.Sampler {
	return core.NewRandomSampler(rand.New(rand.NewSource(seed)))
}

func TestAmbientOcclusion_RayCount(t *testing.T) {
	tests := []struct {
		name     string
		samples  int
		expected int
	}{
		{"default grid", DefaultAOSamples, 64},
		{"single sample", 1, 1},
		{"clamped to one", 0, 1},
		{"larger grid", 16, 256},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ao := NewAmbientOcclusion(tt.samples)
			world := &MockWorld{}
			sampler := &countingSampler{Sampler: newSampler(1)}

			ao.Occlusion(world, groundHit(core.NewVec3(0, -0.5, -1)), sampler)

			if ao.RaysPerShade() != tt.expected {
				t.Errorf("Expected RaysPerShade %d, got %d", tt.expected, ao.RaysPerShade())
			}
			if world.calls != tt.expected {
				t.Errorf("Expected %d occlusion rays, got %d", tt.expected, world.calls)
			}
			if sampler.draws != 2*tt.expected {
				t.Errorf("Expected %d random draws, got %d", 2*tt.expected, sampler.draws)
			}
		})
	}
}

func TestAmbientOcclusion_Extremes(t *testing.T) {
	ao := NewAmbientOcclusion(DefaultAOSamples)
	hit := groundHit(core.NewVec3(0, -0.5, -1))

	tests := []struct {
		name     string
		hitEvery int
		expected float64
	}{
		{"nothing blocks", 0, 1.0},
		{"everything blocks", 1, 0.0},
		{"half blocked", 2, 0.5},
		{"quarter blocked", 4, 0.75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ao.Occlusion(&MockWorld{hitEvery: tt.hitEvery}, hit, newSampler(2))
			if got != tt.expected {
				t.Errorf("Expected occlusion %f, got %f", tt.expected, got)
			}
		})
	}
}

func TestAmbientOcclusion_RaysLeaveSurface(t *testing.T) {
	ao := NewAmbientOcclusion(4)
	point := core.NewVec3(0.3, -0.5, -2)
	world := &MockWorld{}

	ao.Occlusion(world, groundHit(point), newSampler(3))

	expectedOrigin := point.Add(core.NewVec3(0, DefaultAOEpsilon, 0))
	for i, ray := range world.rays {
		if ray.Origin != expectedOrigin {
			t.Fatalf("Ray %d: expected origin %v, got %v", i, expectedOrigin, ray.Origin)
		}
		if math.Abs(ray.Direction.Length()-1) > 1e-9 {
			t.Errorf("Ray %d: expected unit direction, got length %f", i, ray.Direction.Length())
		}
		if ray.Direction.Y < 0 {
			t.Errorf("Ray %d: expected direction above the surface, got %v", i, ray.Direction)
		}
	}
}

func TestAmbientOcclusion_Shade(t *testing.T) {
	ao := NewAmbientOcclusion(2)
	color := ao.Shade(&MockWorld{hitEvery: 2}, groundHit(core.NewVec3(0, 0, 0)), newSampler(4))

	expected := core.NewVec3(0.5, 0.5, 0.5)
	if color != expected {
		t.Errorf("Expected gray %v, got %v", expected, color)
	}
}

func TestAmbientOcclusion_BoundsOnScene(t *testing.T) {
	s := scene.NewDefaultScene()
	ao := NewAmbientOcclusion(DefaultAOSamples)
	sampler := newSampler(5)
	random := rand.New(rand.NewSource(6))

	shaded := 0
	for i := 0; i < 500; i++ {
		dir := core.NewVec3(random.Float64()*2-1, random.Float64()*2-1, -1).Normalize()
		isect := s.Intersect(core.NewRay(core.NewVec3(0, 0, 0), dir))
		if !isect.Hit {
			continue
		}
		shaded++

		occlusion := ao.Occlusion(s, isect, sampler)
		if occlusion < 0 || occlusion > 1 {
			t.Fatalf("Occlusion %f outside [0,1] at %v", occlusion, isect.Point)
		}
	}

	if shaded == 0 {
		t.Fatal("Expected some primary rays to hit the scene")
	}
}

func TestAmbientOcclusion_Deterministic(t *testing.T) {
	s := scene.NewDefaultScene()
	ao := NewAmbientOcclusion(DefaultAOSamples)
	hit := groundHit(core.NewVec3(-0.5, -0.5, -2.4))

	a := ao.Occlusion(s, hit, core.NewXorShiftSampler(77))
	b := ao.Occlusion(s, hit, core.NewXorShiftSampler(77))
	if a != b {
		t.Errorf("Expected identical estimates for identical seeds, got %f and %f", a, b)
	}
}

// More samples must not move the expected estimate, only shrink its variance.
func TestAmbientOcclusion_SampleCountScaling(t *testing.T) {
	s := scene.NewDefaultScene()
	// ground point just in front of the middle sphere: partially occluded
	hit := groundHit(core.NewVec3(-0.5, -0.5, -2.4))

	const runs = 200
	estimate := func(samples int) (mean, stdDev float64) {
		ao := NewAmbientOcclusion(samples)
		values := make([]float64, runs)
		for i := range values {
			values[i] = ao.Occlusion(s, hit, newSampler(int64(1000*samples+i)))
		}
		return stat.MeanStdDev(values, nil)
	}

	coarseMean, coarseStdDev := estimate(4)
	fineMean, fineStdDev := estimate(16)

	if coarseMean <= 0.05 || coarseMean >= 0.95 {
		t.Fatalf("Expected a partially occluded test point, got mean occlusion %f", coarseMean)
	}

	if math.Abs(coarseMean-fineMean) > 0.05 {
		t.Errorf("Expected means to agree: 4x4 gave %f, 16x16 gave %f", coarseMean, fineMean)
	}

	if fineStdDev >= coarseStdDev {
		t.Errorf("Expected variance to shrink with more samples: std dev %f (4x4) vs %f (16x16)",
			coarseStdDev, fineStdDev)
	}
}
