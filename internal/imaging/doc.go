// Package imaging decodes uploaded document bytes into the immutable raster
// representation consumed by the scoring engine.
//
// # Purpose
//
// The engine only understands pixel grids. This package is the boundary that
// turns uploaded bytes into such a grid:
//   - JPEG and PNG via the standard library decoders
//   - WEBP via golang.org/x/image/webp
//   - PDF by rendering the first page to pixels with go-fitz
//
// It also captures the EXIF snapshot (presence and field count) from the raw
// bytes via dsoprea/go-exif before decoding, since decoders discard metadata.
//
// # Error Taxonomy
//
// Unsupported content types and empty PDFs are client errors and are reported
// with the sentinel errors ErrUnsupportedContentType and ErrEmptyDocument so
// the transport layer can map them to 400 responses. Undecodable bytes of a
// supported type are wrapped decode errors and map to server errors.
package imaging
