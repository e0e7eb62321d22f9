package imaging

import (
	"bytes"
	"fmt"
	"image/jpeg"
)

// reencodeQuality is the JPEG quality used when re-encoding a raster for
// transmission to the external detection service. 85 keeps payloads small
// without visibly degrading the pixels the service inspects.
const reencodeQuality = 85

// EncodeJPEG re-encodes the raster as a JPEG payload.
// The external detection service accepts lossy uploads, so the raster is
// always re-encoded regardless of its source format.
func EncodeJPEG(r *Raster) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, r.ToImage(), &jpeg.Options{Quality: reencodeQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode JPEG payload: %w", err)
	}
	return buf.Bytes(), nil
}
