package imaging

import (
	"fmt"

	"github.com/gen2brain/go-fitz"
)

// pdfRenderDPI renders PDF pages at twice the PDF point density (72 dpi),
// enough texture for the windowed statistics. Higher densities sharpen
// text but quadratically increase the pixel count the analyzers must walk.
const pdfRenderDPI = 144

// decodePDF renders the first page of a PDF document to an RGB raster.
// A document with zero pages is a client error (ErrEmptyDocument).
func decodePDF(data []byte, filename string, exif EXIFInfo) (*Raster, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer func() { _ = doc.Close() }()

	if doc.NumPage() == 0 {
		return nil, ErrEmptyDocument
	}

	img, err := doc.ImageDPI(0, pdfRenderDPI)
	if err != nil {
		return nil, fmt.Errorf("failed to render PDF page: %w", err)
	}

	return fromImage(img, "PDF", filename, exif), nil
}
