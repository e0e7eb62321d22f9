package imaging

import (
	"image"
	"image/color"
)

// EXIFInfo is the embedded-metadata snapshot captured from the original
// upload bytes. Only presence and field count matter to the engine.
type EXIFInfo struct {
	// Present reports whether an EXIF segment was found.
	Present bool

	// FieldCount is the number of EXIF fields found, 0 when Present is false.
	FieldCount int
}

// Raster is a decoded image normalized to an RGB pixel plane.
// It is immutable once built: analyzers share it concurrently without
// synchronization, and none of them may modify it.
type Raster struct {
	width    int
	height   int
	pix      []uint8 // packed RGB, 3 bytes per pixel, row-major
	format   string
	mode     string
	filename string
	exif     EXIFInfo
}

// Width returns the raster width in pixels.
func (r *Raster) Width() int { return r.width }

// Height returns the raster height in pixels.
func (r *Raster) Height() int { return r.height }

// Format returns the source encoding name (e.g. "JPEG", "PNG", "WEBP", "PDF").
func (r *Raster) Format() string { return r.format }

// Mode returns the color mode of the pixel plane. Decoding always normalizes
// to "RGB".
func (r *Raster) Mode() string { return r.mode }

// Filename returns the original upload filename, for display only.
func (r *Raster) Filename() string { return r.filename }

// EXIF returns the embedded-metadata snapshot.
func (r *Raster) EXIF() EXIFInfo { return r.exif }

// Channels returns the number of color channels in the pixel plane.
func (r *Raster) Channels() int { return 3 }

// RGB returns the packed RGB pixel plane, 3 bytes per pixel in row-major
// order. The returned slice is the raster's backing store: callers must not
// modify it.
func (r *Raster) RGB() []uint8 { return r.pix }

// Gray returns a freshly allocated grayscale plane computed with the
// ITU-R BT.601 luma transform, one byte per pixel in row-major order.
func (r *Raster) Gray() []uint8 {
	gray := make([]uint8, r.width*r.height)
	for i := range gray {
		p := r.pix[i*3 : i*3+3]
		// Integer BT.601 luma, truncated.
		gray[i] = uint8((299*uint32(p[0]) + 587*uint32(p[1]) + 114*uint32(p[2])) / 1000)
	}
	return gray
}

// ToImage converts the raster back to an image.Image for re-encoding.
func (r *Raster) ToImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	for i := 0; i < r.width*r.height; i++ {
		img.Pix[i*4+0] = r.pix[i*3+0]
		img.Pix[i*4+1] = r.pix[i*3+1]
		img.Pix[i*4+2] = r.pix[i*3+2]
		img.Pix[i*4+3] = 0xff
	}
	return img
}

// fromImage flattens a decoded image.Image into a packed RGB plane.
// Alpha is dropped; all color models are normalized through RGBA().
func fromImage(img image.Image, format, filename string, exif EXIFInfo) *Raster {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pix := make([]uint8, w*h*3)

	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
			pix[i+0] = c.R
			pix[i+1] = c.G
			pix[i+2] = c.B
			i += 3
		}
	}

	return &Raster{
		width:    w,
		height:   h,
		pix:      pix,
		format:   format,
		mode:     "RGB",
		filename: filename,
		exif:     exif,
	}
}

// NewTestRaster builds a raster directly from a packed RGB plane.
// It exists for tests that need exact pixel control; production code always
// goes through Decode.
func NewTestRaster(width, height int, pix []uint8, format string, exif EXIFInfo) *Raster {
	return &Raster{
		width:    width,
		height:   height,
		pix:      pix,
		format:   format,
		mode:     "RGB",
		filename: "test",
		exif:     exif,
	}
}
