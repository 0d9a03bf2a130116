package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/google/uuid"

	"github.com/df07/go-ao-renderer/pkg/config"
	"github.com/df07/go-ao-renderer/pkg/output"
	"github.com/df07/go-ao-renderer/pkg/renderer"
	"github.com/df07/go-ao-renderer/pkg/scene"
)

// newS3Client is swapped out in tests
var newS3Client = output.NewS3Client

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := run(ctx, os.Args[1:], os.Stdout)
	stop()
	if err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}

// run parses args, layers configuration and renders one image
func run(ctx context.Context, args []string, stdout io.Writer) error {
	defaults := config.Default()

	fs := flag.NewFlagSet("go-ao-renderer", flag.ContinueOnError)
	fs.SetOutput(stdout)
	configPath := fs.String("config", "", "JSON config file (// comments allowed)")
	envFile := fs.String("env", "", "dotenv file (default "+config.DefaultEnvFile+" when present)")
	width := fs.Int("width", defaults.Width, "Image width in pixels")
	height := fs.Int("height", defaults.Height, "Image height in pixels")
	subsamples := fs.Int("subsamples", defaults.Subsamples, "Subsamples per pixel axis")
	aoSamples := fs.Int("ao-samples", defaults.AOSamples, "Occlusion rays per hit: NxN")
	outputPath := fs.String("output", defaults.Output, "PPM output file")
	binary := fs.Bool("binary", false, "Write binary P6 instead of plain P3")
	pngPath := fs.String("png", "", "Also save the image as PNG to this path")
	thumbWidth := fs.Int("thumbnail-width", 0, "Also save a PNG thumbnail this many pixels wide")
	workers := fs.Int("workers", defaults.Workers, "Number of parallel workers (0 = number of CPUs)")
	seed := fs.Int64("seed", defaults.Seed, "Base random seed")
	sampler := fs.String("sampler", defaults.Sampler, "Random generator: 'math' or 'xorshift'")
	help := fs.Bool("help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *help {
		fmt.Fprintln(stdout, "Ambient Occlusion Renderer")
		fmt.Fprintln(stdout, "Usage: go-ao-renderer [options]")
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, "Options:")
		fs.PrintDefaults()
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, "Settings are layered: defaults, -config file, -env file and AO_* variables, then flags.")
		return nil
	}

	cfg := config.Default()
	if *configPath != "" {
		if err := cfg.LoadFile(*configPath); err != nil {
			return err
		}
	}
	if err := cfg.LoadEnv(*envFile); err != nil {
		return err
	}

	// Explicit flags win over every other source
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			cfg.Width = *width
		case "height":
			cfg.Height = *height
		case "subsamples":
			cfg.Subsamples = *subsamples
		case "ao-samples":
			cfg.AOSamples = *aoSamples
		case "output":
			cfg.Output = *outputPath
		case "binary":
			cfg.Binary = *binary
		case "png":
			cfg.PNG = *pngPath
		case "thumbnail-width":
			cfg.ThumbnailWidth = *thumbWidth
		case "workers":
			cfg.Workers = *workers
		case "seed":
			cfg.Seed = *seed
		case "sampler":
			cfg.Sampler = *sampler
		}
	})

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	return render(ctx, cfg)
}

// render draws the default scene into every configured output and uploads the results
func render(ctx context.Context, cfg *config.Config) error {
	runID := uuid.New().String()
	log.Printf("Run %s started", runID)

	world := scene.NewDefaultScene()
	log.Printf("Scene: %d primitives", world.GetPrimitiveCount())

	logger := renderer.NewDefaultLogger()
	driver, err := renderer.NewImageDriver(world, cfg.RenderConfig(), logger)
	if err != nil {
		return err
	}

	ppm, err := output.CreatePPMFile(cfg.Output, cfg.PPMFormat())
	if err != nil {
		return err
	}
	defer ppm.Close()

	writers := []renderer.RowWriter{ppm}
	files := []string{cfg.Output}

	if cfg.PNG != "" {
		img := output.NewImageWriter(cfg.PNG)
		if thumb := cfg.ThumbnailPath(); thumb != "" {
			img.WithThumbnail(thumb, cfg.ThumbnailWidth)
		}
		writers = append(writers, img)
		files = append(files, img.Paths()...)
	}

	startTime := time.Now()
	stats, err := driver.Render(ctx, output.NewMultiWriter(writers...))
	if err != nil {
		return err
	}
	renderTime := time.Since(startTime)

	log.Printf("Render completed in %v: %d rays (%d eye, %d occlusion), hit ratio %.3f",
		renderTime, stats.TotalRays(), stats.TotalSamples, stats.OcclusionRays, stats.HitRatio())
	log.Printf("Image intensity: mean %.4f, std dev %.4f", stats.MeanIntensity, stats.StdDevIntensity)
	for _, file := range files {
		log.Printf("Saved %s", file)
	}

	if cfg.S3.Enabled() {
		client, err := newS3Client(cfg.S3)
		if err != nil {
			return err
		}
		uploader := output.NewUploader(client, cfg.S3.Bucket, cfg.S3.Prefix, logger)
		metadata := map[string]string{"run-id": runID}
		for _, file := range files {
			if _, err := uploader.Upload(ctx, file, metadata); err != nil {
				return err
			}
		}
	}

	log.Printf("Run %s finished", runID)
	return nil
}
