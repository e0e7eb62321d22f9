package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/webp"
)

// Decode errors returned to the transport layer.
//
// Design decision: We use package-level sentinel errors so callers can
// distinguish client errors (unsupported type, empty document) from server
// errors (corrupt bytes) with errors.Is, while keeping human-readable
// messages for the response body.
var (
	// ErrUnsupportedContentType is returned when the upload's content type is
	// not in the supported set.
	ErrUnsupportedContentType = errors.New("unsupported file type: supported types are PDF, JPG, PNG, WEBP")

	// ErrEmptyDocument is returned when a PDF upload contains no pages.
	ErrEmptyDocument = errors.New("document has no pages")
)

// Supported upload content types.
const (
	ContentTypeJPEG = "image/jpeg"
	ContentTypeJPG  = "image/jpg"
	ContentTypePNG  = "image/png"
	ContentTypeWEBP = "image/webp"
	ContentTypePDF  = "application/pdf"
)

// SupportedContentType reports whether the given content type can be decoded.
func SupportedContentType(contentType string) bool {
	switch contentType {
	case ContentTypeJPEG, ContentTypeJPG, ContentTypePNG, ContentTypeWEBP, ContentTypePDF:
		return true
	default:
		return false
	}
}

// Decode turns uploaded bytes into a Raster according to the declared content
// type. PDF uploads have their first page rendered to pixels; image uploads
// are decoded directly. The EXIF snapshot is captured from the raw bytes
// before decoding.
func Decode(data []byte, contentType, filename string) (*Raster, error) {
	exif := ExtractEXIF(data)

	switch contentType {
	case ContentTypeJPEG, ContentTypeJPG:
		return decodeImage(data, "JPEG", filename, exif, func(r *bytes.Reader) (image.Image, error) {
			return jpeg.Decode(r)
		})
	case ContentTypePNG:
		return decodeImage(data, "PNG", filename, exif, func(r *bytes.Reader) (image.Image, error) {
			return png.Decode(r)
		})
	case ContentTypeWEBP:
		return decodeImage(data, "WEBP", filename, exif, func(r *bytes.Reader) (image.Image, error) {
			return webp.Decode(r)
		})
	case ContentTypePDF:
		return decodePDF(data, filename, exif)
	default:
		return nil, fmt.Errorf("%w: got %q", ErrUnsupportedContentType, contentType)
	}
}

// decodeImage decodes a still image and flattens it to an RGB raster.
func decodeImage(data []byte, format, filename string, exif EXIFInfo,
	decode func(*bytes.Reader) (image.Image, error),
) (*Raster, error) {
	img, err := decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s image: %w", format, err)
	}
	return fromImage(img, format, filename, exif), nil
}
