package renderer

import (
	"gonum.org/v1/gonum/stat"

	"github.com/df07/go-ao-renderer/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels     int     // Total number of pixels rendered
	TotalSamples    int     // Primary rays cast
	HitSamples      int     // Primary rays that hit geometry
	OcclusionRays   int     // Hemisphere rays cast by the integrator
	MeanIntensity   float64 // Mean quantized pixel intensity in [0, 1]
	StdDevIntensity float64 // Standard deviation of pixel intensity
}

// Merge adds the counters of other into s
func (s *RenderStats) Merge(other RenderStats) {
	s.TotalPixels += other.TotalPixels
	s.TotalSamples += other.TotalSamples
	s.HitSamples += other.HitSamples
	s.OcclusionRays += other.OcclusionRays
}

// TotalRays returns the number of rays cast, primary and occlusion
func (s RenderStats) TotalRays() int {
	return s.TotalSamples + s.OcclusionRays
}

// HitRatio returns the fraction of primary rays that hit geometry
func (s RenderStats) HitRatio() float64 {
	if s.TotalSamples == 0 {
		return 0
	}
	return float64(s.HitSamples) / float64(s.TotalSamples)
}

// setIntensities fills the intensity distribution from per-pixel values
func (s *RenderStats) setIntensities(intensities []float64) {
	if len(intensities) == 0 {
		return
	}
	if len(intensities) == 1 {
		s.MeanIntensity = intensities[0]
		return
	}
	s.MeanIntensity, s.StdDevIntensity = stat.MeanStdDev(intensities, nil)
}

// PixelStats accumulates subsamples for a single pixel
type PixelStats struct {
	ColorAccum  core.Vec3 // RGB accumulator for final result
	SampleCount int       // Number of samples taken
	HitCount    int       // Samples whose primary ray hit geometry
}

// AddSample adds a new color sample to the pixel statistics
func (ps *PixelStats) AddSample(color core.Vec3, hit bool) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
	ps.SampleCount++
	if hit {
		ps.HitCount++
	}
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() core.Vec3 {
	if ps.SampleCount == 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}
	return ps.ColorAccum.Multiply(1.0 / float64(ps.SampleCount))
}
