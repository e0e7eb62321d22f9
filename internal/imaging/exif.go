package imaging

import (
	exif "github.com/dsoprea/go-exif/v3"
)

// ExtractEXIF captures the embedded-metadata snapshot from raw upload bytes.
// Absence of EXIF data is a normal outcome, not an error: decoders strip
// metadata, so this must run on the original bytes. Parse failures are
// treated the same as absence because a segment we cannot read contributes
// nothing to the metadata signal.
func ExtractEXIF(data []byte) EXIFInfo {
	rawExif, err := exif.SearchAndExtractExif(data)
	if err != nil || rawExif == nil {
		return EXIFInfo{}
	}

	entries, _, err := exif.GetFlatExifData(rawExif, nil)
	if err != nil {
		return EXIFInfo{}
	}

	return EXIFInfo{
		Present:    len(entries) > 0,
		FieldCount: len(entries),
	}
}
