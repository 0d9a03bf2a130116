package output

import (
	"github.com/df07/go-ao-renderer/pkg/core"
	"github.com/df07/go-ao-renderer/pkg/renderer"
)

var (
	_ renderer.RowWriter = (*PPMWriter)(nil)
	_ renderer.RowWriter = (*ImageWriter)(nil)
	_ renderer.RowWriter = (*MultiWriter)(nil)
)

// MultiWriter fans each call out to several writers, stopping at the first error
type MultiWriter struct {
	writers []renderer.RowWriter
}

// NewMultiWriter combines writers; nil entries are skipped
func NewMultiWriter(writers ...renderer.RowWriter) *MultiWriter {
	mw := &MultiWriter{}
	for _, w := range writers {
		if w != nil {
			mw.writers = append(mw.writers, w)
		}
	}
	return mw
}

func (mw *MultiWriter) Begin(width, height, maxValue int) error {
	for _, w := range mw.writers {
		if err := w.Begin(width, height, maxValue); err != nil {
			return err
		}
	}
	return nil
}

func (mw *MultiWriter) WriteRow(row []core.RGB) error {
	for _, w := range mw.writers {
		if err := w.WriteRow(row); err != nil {
			return err
		}
	}
	return nil
}

func (mw *MultiWriter) Finish() error {
	for _, w := range mw.writers {
		if err := w.Finish(); err != nil {
			return err
		}
	}
	return nil
}
