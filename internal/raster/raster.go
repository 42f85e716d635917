// Package raster converts PDF documents into ordered page images. It is a
// thin wrapper over MuPDF; the pipeline only ever sees PNG bytes.
package raster

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gen2brain/go-fitz"
)

const defaultDPI = 144

type Rasterizer struct {
	// DPI controls render resolution. 144 (2x the PDF point grid) balances
	// OCR legibility against upload size.
	DPI float64
	// MaxPages caps how many pages are rendered per document; 0 means all.
	MaxPages int

	logger *slog.Logger
}

func New(logger *slog.Logger) *Rasterizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Rasterizer{DPI: defaultDPI, logger: logger}
}

// PageImages renders every page of the PDF at path to PNG, in page order.
func (r *Rasterizer) PageImages(path string) ([][]byte, error) {
	start := time.Now()

	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer func() {
		if cerr := doc.Close(); cerr != nil {
			r.logger.Warn("raster.close_failed", "path", path, "error", cerr)
		}
	}()

	n := doc.NumPage()
	if r.MaxPages > 0 && n > r.MaxPages {
		n = r.MaxPages
	}

	dpi := r.DPI
	if dpi <= 0 {
		dpi = defaultDPI
	}

	images := make([][]byte, 0, n)
	for i := 0; i < n; i++ {
		png, err := doc.ImagePNG(i, dpi)
		if err != nil {
			return nil, fmt.Errorf("render page %d: %w", i+1, err)
		}
		images = append(images, png)
	}

	r.logger.Info("raster.ok",
		"path", path,
		"pages", len(images),
		"dpi", dpi,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return images, nil
}
