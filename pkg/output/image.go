package output

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"

	"github.com/df07/go-ao-renderer/pkg/core"
)

// Image is a decoded raster with integer channels in [0, MaxValue]
type Image struct {
	Width    int
	Height   int
	MaxValue int
	Pixels   []core.RGB
}

// NewImage allocates a black image with 8-bit channels
func NewImage(width, height int) *Image {
	return &Image{
		Width:    width,
		Height:   height,
		MaxValue: core.MaxChannelValue,
		Pixels:   make([]core.RGB, width*height),
	}
}

// At returns the pixel at (x, y), with y = 0 the top row
func (img *Image) At(x, y int) core.RGB {
	return img.Pixels[y*img.Width+x]
}

// NRGBA converts the image to an opaque 8-bit raster
func (img *Image) NRGBA() *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			out.SetNRGBA(x, y, toNRGBA(img.At(x, y), img.MaxValue))
		}
	}
	return out
}

func toNRGBA(p core.RGB, maxValue int) color.NRGBA {
	scale := func(v int) uint8 {
		if maxValue == 255 {
			return uint8(v)
		}
		return uint8(v * 255 / maxValue)
	}
	return color.NRGBA{R: scale(p.R), G: scale(p.G), B: scale(p.B), A: 255}
}

// LoadPPM reads a P3 or P6 file from disk
func LoadPPM(filename string) (*Image, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	img, err := ReadPPM(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", filename, err)
	}
	return img, nil
}

// ImageWriter accumulates rows into a raster and saves it on Finish.
// The encoder is picked from the file extension (.png, .jpg, ...).
type ImageWriter struct {
	path           string
	thumbnailPath  string
	thumbnailWidth int

	img      *image.NRGBA
	maxValue int
	y        int
}

// NewImageWriter creates a writer saving to path
func NewImageWriter(path string) *ImageWriter {
	return &ImageWriter{path: path}
}

// WithThumbnail also saves a copy scaled to width pixels, preserving aspect ratio
func (w *ImageWriter) WithThumbnail(path string, width int) *ImageWriter {
	w.thumbnailPath = path
	w.thumbnailWidth = width
	return w
}

func (w *ImageWriter) Begin(width, height, maxValue int) error {
	if maxValue <= 0 {
		return fmt.Errorf("image: unsupported max value %d", maxValue)
	}
	w.img = image.NewNRGBA(image.Rect(0, 0, width, height))
	w.maxValue = maxValue
	w.y = 0
	return nil
}

func (w *ImageWriter) WriteRow(row []core.RGB) error {
	if w.img == nil {
		return errors.New("image: row written before header")
	}
	bounds := w.img.Bounds()
	if w.y >= bounds.Dy() {
		return fmt.Errorf("image: already has %d rows", bounds.Dy())
	}
	if len(row) != bounds.Dx() {
		return fmt.Errorf("image: row has %d pixels, expected %d", len(row), bounds.Dx())
	}

	for x, p := range row {
		w.img.SetNRGBA(x, w.y, toNRGBA(p, w.maxValue))
	}
	w.y++
	return nil
}

func (w *ImageWriter) Finish() error {
	if w.img == nil {
		return errors.New("image: nothing to save")
	}
	if w.y != w.img.Bounds().Dy() {
		return fmt.Errorf("image: wrote %d of %d rows", w.y, w.img.Bounds().Dy())
	}

	if err := imaging.Save(w.img, w.path); err != nil {
		return fmt.Errorf("failed to save %s: %w", w.path, err)
	}

	if w.thumbnailPath != "" && w.thumbnailWidth > 0 {
		thumb := resize.Resize(uint(w.thumbnailWidth), 0, w.img, resize.Lanczos3)
		if err := imaging.Save(thumb, w.thumbnailPath); err != nil {
			return fmt.Errorf("failed to save thumbnail %s: %w", w.thumbnailPath, err)
		}
	}
	return nil
}

// Paths lists every file Finish writes
func (w *ImageWriter) Paths() []string {
	paths := []string{w.path}
	if w.thumbnailPath != "" && w.thumbnailWidth > 0 {
		paths = append(paths, w.thumbnailPath)
	}
	return paths
}
