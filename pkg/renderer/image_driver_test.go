package renderer

import (
	"context"
	"errors"
	"testing"

	"github.com/df07/go-ao-renderer/pkg/core"
	"github.com/df07/go-ao-renderer/pkg/scene"
)

// MemoryWriter collects rows in memory and can fail on a given row
type MemoryWriter struct {
	width, height, maxValue int
	rows                    [][]core.RGB
	failAtRow               int // -1 disables
	finished                bool
}

func newMemoryWriter() *MemoryWriter {
	return &MemoryWriter{failAtRow: -1}
}

func (m *MemoryWriter) Begin(width, height, maxValue int) error {
	m.width, m.height, m.maxValue = width, height, maxValue
	return nil
}

func (m *MemoryWriter) WriteRow(row []core.RGB) error {
	if len(m.rows) == m.failAtRow {
		return errors.New("disk full")
	}
	m.rows = append(m.rows, append([]core.RGB(nil), row...))
	return nil
}

func (m *MemoryWriter) Finish() error {
	m.finished = true
	return nil
}

func (m *MemoryWriter) pixel(x, y int) core.RGB {
	return m.rows[y][x]
}

func renderToMemory(t *testing.T, config Config) (*MemoryWriter, RenderStats) {
	t.Helper()
	driver, err := NewImageDriver(scene.NewDefaultScene(), config, nil)
	if err != nil {
		t.Fatalf("Failed to create driver: %v", err)
	}
	writer := newMemoryWriter()
	stats, err := driver.Render(context.Background(), writer)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	return writer, stats
}

func smallConfig() Config {
	config := DefaultConfig()
	config.Width = 48
	config.Height = 32
	config.AOSamples = 4
	return config
}

func TestNewImageDriver_InvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"negative height", func(c *Config) { c.Height = -1 }},
		{"unknown sampler", func(c *Config) { c.Sampler = "halton" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := smallConfig()
			tt.modify(&config)
			if _, err := NewImageDriver(scene.NewDefaultScene(), config, nil); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}

func TestImageDriver_RenderShape(t *testing.T) {
	writer, stats := renderToMemory(t, smallConfig())

	if writer.width != 48 || writer.height != 32 || writer.maxValue != 255 {
		t.Errorf("Expected header 48x32 max 255, got %dx%d max %d", writer.width, writer.height, writer.maxValue)
	}
	if len(writer.rows) != 32 {
		t.Fatalf("Expected 32 rows, got %d", len(writer.rows))
	}
	for y, row := range writer.rows {
		if len(row) != 48 {
			t.Fatalf("Row %d: expected 48 pixels, got %d", y, len(row))
		}
	}
	if !writer.finished {
		t.Error("Expected writer to be finished")
	}

	if stats.TotalPixels != 48*32 {
		t.Errorf("Expected %d pixels, got %d", 48*32, stats.TotalPixels)
	}
	if stats.TotalSamples != 48*32*4 {
		t.Errorf("Expected %d primary rays, got %d", 48*32*4, stats.TotalSamples)
	}
	if stats.OcclusionRays != stats.HitSamples*16 {
		t.Errorf("Expected %d occlusion rays, got %d", stats.HitSamples*16, stats.OcclusionRays)
	}
	if stats.MeanIntensity <= 0 || stats.MeanIntensity >= 1 {
		t.Errorf("Expected mean intensity in (0,1), got %f", stats.MeanIntensity)
	}
	if stats.StdDevIntensity <= 0 {
		t.Errorf("Expected non-zero intensity spread, got %f", stats.StdDevIntensity)
	}
}

// Output must be identical for a fixed seed regardless of how rows are scheduled.
func TestImageDriver_DeterministicAcrossWorkers(t *testing.T) {
	for _, sampler := range []string{core.SamplerMath, core.SamplerXorShift} {
		t.Run(sampler, func(t *testing.T) {
			config := smallConfig()
			config.Sampler = sampler

			config.NumWorkers = 1
			single, _ := renderToMemory(t, config)

			config.NumWorkers = 7
			parallel, _ := renderToMemory(t, config)

			again, _ := renderToMemory(t, config)

			for y := range single.rows {
				for x := range single.rows[y] {
					if single.pixel(x, y) != parallel.pixel(x, y) {
						t.Fatalf("Pixel (%d,%d) differs between 1 and 7 workers: %v vs %v",
							x, y, single.pixel(x, y), parallel.pixel(x, y))
					}
					if parallel.pixel(x, y) != again.pixel(x, y) {
						t.Fatalf("Pixel (%d,%d) differs between identical runs", x, y)
					}
				}
			}
		})
	}
}

func TestImageDriver_SeedChangesNoise(t *testing.T) {
	config := smallConfig()
	a, _ := renderToMemory(t, config)

	config.Seed = 1234
	b, _ := renderToMemory(t, config)

	differs := false
	for y := range a.rows {
		for x := range a.rows[y] {
			if a.pixel(x, y) != b.pixel(x, y) {
				differs = true
			}
		}
	}
	if !differs {
		t.Error("Expected different seeds to produce different noise")
	}
}

func TestImageDriver_WriteFailureIsFatal(t *testing.T) {
	driver, err := NewImageDriver(scene.NewDefaultScene(), smallConfig(), nil)
	if err != nil {
		t.Fatalf("Failed to create driver: %v", err)
	}

	writer := newMemoryWriter()
	writer.failAtRow = 5

	_, err = driver.Render(context.Background(), writer)
	if err == nil {
		t.Fatal("Expected write failure to be returned")
	}
	if len(writer.rows) != 5 {
		t.Errorf("Expected 5 rows written before the failure, got %d", len(writer.rows))
	}
	if writer.finished {
		t.Error("Expected Finish not to be called after a failed write")
	}
}

func TestImageDriver_CancelledContext(t *testing.T) {
	driver, err := NewImageDriver(scene.NewDefaultScene(), smallConfig(), nil)
	if err != nil {
		t.Fatalf("Failed to create driver: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := driver.Render(ctx, newMemoryWriter()); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestImageDriver_DefaultScene(t *testing.T) {
	if testing.Short() {
		t.Skip("full-resolution render")
	}

	writer, stats := renderToMemory(t, DefaultConfig())

	black := core.RGB{}
	for _, x := range []int{0, 1, 2, 253, 254, 255} {
		if p := writer.pixel(x, 0); p != black {
			t.Errorf("Expected black background at (%d, 0), got %v", x, p)
		}
	}

	if p := writer.pixel(128, 128); p == black {
		t.Error("Expected non-black pixel at the image center")
	}

	// ground just in front of the camera is open to the sky
	if p := writer.pixel(128, 250); p == black {
		t.Error("Expected lit ground near the bottom of the image")
	}

	if stats.HitRatio() <= 0 || stats.HitRatio() >= 1 {
		t.Errorf("Expected some but not all primary rays to hit, got ratio %f", stats.HitRatio())
	}
}
