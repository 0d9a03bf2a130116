package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sauerbraten/jsonfile"

	"github.com/df07/go-ao-renderer/pkg/core"
	"github.com/df07/go-ao-renderer/pkg/output"
	"github.com/df07/go-ao-renderer/pkg/renderer"
)

// DefaultEnvFile is loaded when present and no other dotenv file is named
const DefaultEnvFile = ".env"

// Config holds every setting of a render run
type Config struct {
	Width          int             `json:"width"`
	Height         int             `json:"height"`
	Subsamples     int             `json:"subsamples"`
	AOSamples      int             `json:"ao_samples"`
	Output         string          `json:"output"`
	Binary         bool            `json:"binary"`
	PNG            string          `json:"png"`
	ThumbnailWidth int             `json:"thumbnail_width"`
	Workers        int             `json:"workers"`
	Seed           int64           `json:"seed"`
	Sampler        string          `json:"sampler"`
	S3             output.S3Config `json:"s3"`
}

// Default returns the classic 256x256 benchmark settings
func Default() *Config {
	rc := renderer.DefaultConfig()
	return &Config{
		Width:      rc.Width,
		Height:     rc.Height,
		Subsamples: rc.Subsamples,
		AOSamples:  rc.AOSamples,
		Output:     "ao.ppm",
		Workers:    rc.NumWorkers,
		Seed:       rc.Seed,
		Sampler:    rc.Sampler,
	}
}

// LoadFile overlays the fields present in a JSON file. Lines starting with // are comments.
func (c *Config) LoadFile(path string) error {
	if err := jsonfile.ParseFile(path, c); err != nil {
		return fmt.Errorf("config file %s: %w", path, err)
	}
	return nil
}

// LoadEnv loads envFile into the process environment, then overlays AO_* variables.
// An empty envFile falls back to DefaultEnvFile when it exists.
func (c *Config) LoadEnv(envFile string) error {
	if envFile == "" {
		if _, err := os.Stat(DefaultEnvFile); err == nil {
			envFile = DefaultEnvFile
		}
	}
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("env file %s: %w", envFile, err)
		}
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"AO_WIDTH", &c.Width},
		{"AO_HEIGHT", &c.Height},
		{"AO_SUBSAMPLES", &c.Subsamples},
		{"AO_SAMPLES", &c.AOSamples},
		{"AO_THUMBNAIL_WIDTH", &c.ThumbnailWidth},
		{"AO_WORKERS", &c.Workers},
	}
	for _, v := range ints {
		if err := envInt(v.key, v.dst); err != nil {
			return err
		}
	}

	if value, ok := os.LookupEnv("AO_SEED"); ok {
		seed, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return fmt.Errorf("AO_SEED: %w", err)
		}
		c.Seed = seed
	}

	strs := []struct {
		key string
		dst *string
	}{
		{"AO_OUTPUT", &c.Output},
		{"AO_PNG", &c.PNG},
		{"AO_SAMPLER", &c.Sampler},
		{"AO_S3_BUCKET", &c.S3.Bucket},
		{"AO_S3_PREFIX", &c.S3.Prefix},
		{"AO_S3_REGION", &c.S3.Region},
		{"AO_S3_ENDPOINT", &c.S3.Endpoint},
		{"AO_S3_ACCESS_KEY", &c.S3.AccessKey},
		{"AO_S3_SECRET_KEY", &c.S3.SecretKey},
	}
	for _, v := range strs {
		if value, ok := os.LookupEnv(v.key); ok {
			*v.dst = value
		}
	}
	return nil
}

func envInt(key string, dst *int) error {
	value, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

// Validate reports the first invalid setting
func (c *Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("invalid image size %dx%d", c.Width, c.Height)
	case c.Subsamples <= 0:
		return fmt.Errorf("subsamples must be positive, got %d", c.Subsamples)
	case c.AOSamples <= 0:
		return fmt.Errorf("ao samples must be positive, got %d", c.AOSamples)
	case c.Workers < 0:
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	case c.ThumbnailWidth < 0:
		return fmt.Errorf("thumbnail width must not be negative, got %d", c.ThumbnailWidth)
	case c.ThumbnailWidth > 0 && c.PNG == "":
		return errors.New("thumbnail requires a png output path")
	case c.Output == "":
		return errors.New("output path is empty")
	}

	if c.Sampler != core.SamplerMath && c.Sampler != core.SamplerXorShift {
		return fmt.Errorf("unknown sampler %q", c.Sampler)
	}

	s3 := c.S3
	if s3.Bucket == "" && (s3.Prefix != "" || s3.Region != "" || s3.Endpoint != "" || s3.AccessKey != "" || s3.SecretKey != "") {
		return errors.New("s3 settings given without a bucket")
	}
	return nil
}

// RenderConfig extracts the renderer settings
func (c *Config) RenderConfig() renderer.Config {
	return renderer.Config{
		Width:      c.Width,
		Height:     c.Height,
		Subsamples: c.Subsamples,
		AOSamples:  c.AOSamples,
		NumWorkers: c.Workers,
		Seed:       c.Seed,
		Sampler:    c.Sampler,
	}
}

// PPMFormat returns the PPM flavour selected by Binary
func (c *Config) PPMFormat() output.PPMFormat {
	if c.Binary {
		return output.BinaryPPM
	}
	return output.PlainPPM
}

// ThumbnailPath derives the thumbnail file name from the PNG path: ao.png -> ao_thumb.png
func (c *Config) ThumbnailPath() string {
	if c.PNG == "" || c.ThumbnailWidth <= 0 {
		return ""
	}
	ext := filepath.Ext(c.PNG)
	return strings.TrimSuffix(c.PNG, ext) + "_thumb" + ext
}
