package output

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/df07/go-ao-renderer/pkg/core"
)

// PPMFormat selects the PPM flavour
type PPMFormat int

const (
	// PlainPPM is the text "P3" layout: one "r g b" line per pixel
	PlainPPM PPMFormat = iota
	// BinaryPPM is the raw "P6" layout: three bytes per pixel
	BinaryPPM
)

// Magic returns the two-character format marker
func (f PPMFormat) Magic() string {
	if f == BinaryPPM {
		return "P6"
	}
	return "P3"
}

// MaxPPMDimension bounds each side of an image accepted by ReadPPM
const MaxPPMDimension = 1 << 15

// PPMWriter streams an image as PPM, one row at a time
type PPMWriter struct {
	w      *bufio.Writer
	closer io.Closer
	format PPMFormat

	width, height int
	rows          int
	began         bool
}

// NewPPMWriter creates a writer emitting format to w
func NewPPMWriter(w io.Writer, format PPMFormat) *PPMWriter {
	return &PPMWriter{
		w:      bufio.NewWriter(w),
		format: format,
	}
}

// CreatePPMFile creates (or truncates) path and returns a writer that closes it on Finish
func CreatePPMFile(path string, format PPMFormat) (*PPMWriter, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	pw := NewPPMWriter(file, format)
	pw.closer = file
	return pw, nil
}

// Begin writes the header
func (pw *PPMWriter) Begin(width, height, maxValue int) error {
	if pw.began {
		return errors.New("ppm: header already written")
	}
	if maxValue <= 0 || (pw.format == BinaryPPM && maxValue > 255) {
		return fmt.Errorf("ppm: unsupported max value %d", maxValue)
	}
	pw.began = true
	pw.width, pw.height = width, height

	_, err := fmt.Fprintf(pw.w, "%s\n%d %d\n%d\n", pw.format.Magic(), width, height, maxValue)
	return err
}

// WriteRow writes one row of width pixels
func (pw *PPMWriter) WriteRow(row []core.RGB) error {
	if !pw.began {
		return errors.New("ppm: row written before header")
	}
	if len(row) != pw.width {
		return fmt.Errorf("ppm: row has %d pixels, expected %d", len(row), pw.width)
	}
	if pw.rows >= pw.height {
		return fmt.Errorf("ppm: image already has %d rows", pw.height)
	}

	for _, p := range row {
		if err := pw.writePixel(p); err != nil {
			return err
		}
	}
	pw.rows++
	return nil
}

func (pw *PPMWriter) writePixel(p core.RGB) error {
	if pw.format == BinaryPPM {
		_, err := pw.w.Write([]byte{byte(p.R), byte(p.G), byte(p.B)})
		return err
	}

	// strconv avoids fmt's reflection on the per-pixel hot path
	buf := make([]byte, 0, 12)
	buf = strconv.AppendInt(buf, int64(p.R), 10)
	buf = append(buf, ' ')
	buf = strconv.AppendInt(buf, int64(p.G), 10)
	buf = append(buf, ' ')
	buf = strconv.AppendInt(buf, int64(p.B), 10)
	buf = append(buf, '\n')
	_, err := pw.w.Write(buf)
	return err
}

// Finish flushes buffered output and closes the underlying file, if any
func (pw *PPMWriter) Finish() error {
	if pw.rows != pw.height {
		pw.Close()
		return fmt.Errorf("ppm: wrote %d of %d rows", pw.rows, pw.height)
	}
	if err := pw.w.Flush(); err != nil {
		pw.Close()
		return err
	}
	return pw.Close()
}

// Close releases the underlying file without flushing. It is safe to call more than once.
func (pw *PPMWriter) Close() error {
	if pw.closer == nil {
		return nil
	}
	err := pw.closer.Close()
	pw.closer = nil
	return err
}

// ReadPPM parses a P3 or P6 image with 8-bit channels
func ReadPPM(r io.Reader) (*Image, error) {
	br := bufio.NewReader(r)

	magic, err := readToken(br)
	if err != nil {
		return nil, fmt.Errorf("ppm: failed to read magic: %w", err)
	}
	if magic != "P3" && magic != "P6" {
		return nil, fmt.Errorf("ppm: unsupported format %q", magic)
	}

	header := make([]int, 3)
	for i, name := range []string{"width", "height", "max value"} {
		header[i], err = readInt(br)
		if err != nil {
			return nil, fmt.Errorf("ppm: failed to read %s: %w", name, err)
		}
	}
	width, height, maxValue := header[0], header[1], header[2]
	// both sides bounded, so 3*width*height fits in an int
	if width <= 0 || height <= 0 || width > MaxPPMDimension || height > MaxPPMDimension {
		return nil, fmt.Errorf("ppm: invalid size %dx%d", width, height)
	}
	if maxValue <= 0 || maxValue > 255 {
		return nil, fmt.Errorf("ppm: unsupported max value %d", maxValue)
	}

	img := NewImage(width, height)
	img.MaxValue = maxValue

	if magic == "P6" {
		raw := make([]byte, 3*width*height)
		if _, err := io.ReadFull(br, raw); err != nil {
			return nil, fmt.Errorf("ppm: truncated pixel data: %w", err)
		}
		for i := range img.Pixels {
			img.Pixels[i] = core.RGB{R: int(raw[3*i]), G: int(raw[3*i+1]), B: int(raw[3*i+2])}
		}
		return img, nil
	}

	channels := make([]int, 3)
	for i := range img.Pixels {
		for c := range channels {
			v, err := readInt(br)
			if err != nil {
				return nil, fmt.Errorf("ppm: pixel %d: %w", i, err)
			}
			if v < 0 || v > maxValue {
				return nil, fmt.Errorf("ppm: pixel %d: channel value %d out of range", i, v)
			}
			channels[c] = v
		}
		img.Pixels[i] = core.RGB{R: channels[0], G: channels[1], B: channels[2]}
	}
	return img, nil
}

func readInt(br *bufio.Reader) (int, error) {
	token, err := readToken(br)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(token)
}

// readToken returns the next whitespace-delimited token, skipping '#' comments.
// It consumes exactly one whitespace byte after the token.
func readToken(br *bufio.Reader) (string, error) {
	var token []byte
	for {
		c, err := br.ReadByte()
		if err != nil {
			if err == io.EOF && len(token) > 0 {
				return string(token), nil
			}
			if err == io.EOF {
				return "", io.ErrUnexpectedEOF
			}
			return "", err
		}

		switch {
		case c == '#' && len(token) == 0:
			if _, err := br.ReadString('\n'); err != nil && err != io.EOF {
				return "", err
			}
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			if len(token) > 0 {
				return string(token), nil
			}
		default:
			token = append(token, c)
		}
	}
}
