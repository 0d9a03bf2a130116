package renderer

import (
	"context"
	"errors"
	"fmt"

	"github.com/df07/go-ao-renderer/pkg/core"
	"github.com/df07/go-ao-renderer/pkg/integrator"
)

// RowWriter receives the rendered image one row at a time, top to bottom
type RowWriter interface {
	// Begin is called once before any row with the image size and max channel value
	Begin(width, height, maxValue int) error
	// WriteRow receives exactly width pixels; rows arrive in order
	WriteRow(row []core.RGB) error
	// Finish is called once after the last row
	Finish() error
}

// ImageDriver renders every row of an image in parallel and hands the rows to
// a RowWriter in top-to-bottom order.
type ImageDriver struct {
	config    Config
	raytracer *Raytracer
	logger    core.Logger
}

// NewImageDriver creates a driver rendering world with an ambient occlusion integrator
func NewImageDriver(world core.World, config Config, logger core.Logger) (*ImageDriver, error) {
	if config.Width <= 0 || config.Height <= 0 {
		return nil, fmt.Errorf("invalid image size %dx%d", config.Width, config.Height)
	}
	if _, err := core.NewSampler(config.Sampler, config.Seed); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = discardLogger{}
	}

	camera := NewCamera(config.Width, config.Height, config.Subsamples)
	ao := integrator.NewAmbientOcclusion(config.AOSamples)

	return &ImageDriver{
		config:    config,
		raytracer: NewRaytracer(world, camera, ao, config.Width),
		logger:    logger,
	}, nil
}

// Render renders the whole image into writer. A writer failure stops the
// remaining work and is returned; nothing else on the render path can fail.
func (d *ImageDriver) Render(ctx context.Context, writer RowWriter) (RenderStats, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	width, height := d.config.Width, d.config.Height

	if err := writer.Begin(width, height, core.MaxChannelValue); err != nil {
		return RenderStats{}, fmt.Errorf("failed to start output: %w", err)
	}

	pool := NewWorkerPool(d.raytracer, height, d.config.NumWorkers, d.config.Sampler, d.config.Seed)

	d.logger.Printf("Rendering %dx%d: %d subsamples, %d AO samples, sampler %s, seed %d (using %d workers)...\n",
		width, height, d.config.Subsamples, d.config.AOSamples, d.config.Sampler, d.config.Seed, pool.GetNumWorkers())

	pool.Start(ctx)
	for y := 0; y < height; y++ {
		pool.SubmitTask(RowTask{Y: y})
	}

	var stats RenderStats
	intensities := make([]float64, 0, width*height)

	// Rows finish out of order; hold them until every row above has been written
	pending := make(map[int]RowResult)
	next := 0

	var renderErr error
	for received := 0; received < height && renderErr == nil; received++ {
		result, ok := pool.GetResult()
		if !ok {
			renderErr = errors.New("worker pool closed unexpectedly")
			break
		}
		if result.Error != nil {
			renderErr = fmt.Errorf("row %d: %w", result.Y, result.Error)
			break
		}
		pending[result.Y] = result

		for {
			row, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)

			if err := writer.WriteRow(row.Pixels); err != nil {
				renderErr = fmt.Errorf("failed to write row %d: %w", next, err)
				break
			}

			stats.Merge(row.Stats)
			for _, pixel := range row.Pixels {
				intensities = append(intensities, pixel.Intensity())
			}
			next++
		}
	}

	if renderErr != nil {
		cancel()
		pool.Stop()
		return stats, renderErr
	}
	pool.Stop()

	stats.setIntensities(intensities)

	if err := writer.Finish(); err != nil {
		return stats, fmt.Errorf("failed to finish output: %w", err)
	}

	return stats, nil
}
