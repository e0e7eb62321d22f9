package model

// Label represents the three-way authenticity classification of an image.
// The three labels partition the authenticity scale [0,100] into contiguous
// bands; a boundary value always belongs to the higher band.
//
// Design decision: We use iota-based constants rather than string constants
// for efficiency in comparisons. The String() method provides the wire
// representation used in API responses and reports.
type Label int

const (
	// LabelVerified indicates an authenticity score of 75 or above.
	// The image shows the statistical texture expected of a genuine capture.
	LabelVerified Label = iota

	// LabelSuspicious indicates an authenticity score in [50, 75).
	// Some signals are consistent with synthesis or heavy processing,
	// but the evidence is not conclusive.
	LabelSuspicious

	// LabelAIGenerated indicates an authenticity score below 50.
	// Multiple signals point at synthetic or heavily manipulated content.
	LabelAIGenerated
)

// String returns the wire representation of the label.
// These strings are part of the API contract and must not change.
func (l Label) String() string {
	switch l {
	case LabelVerified:
		return "Verified"
	case LabelSuspicious:
		return "Suspicious"
	case LabelAIGenerated:
		return "AI Generated"
	default:
		return "Unknown"
	}
}

// MarshalJSON encodes the label as its wire string.
func (l Label) MarshalJSON() ([]byte, error) {
	return []byte(`"` + l.String() + `"`), nil
}

// UnmarshalJSON decodes a label from its wire string.
// Unknown strings decode to LabelSuspicious so that stored reports from
// future versions degrade to the middle band instead of failing to load.
func (l *Label) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case `"Verified"`:
		*l = LabelVerified
	case `"AI Generated"`:
		*l = LabelAIGenerated
	default:
		*l = LabelSuspicious
	}
	return nil
}

// LabelForScore returns the label that owns the given authenticity score.
// Boundary values belong to the higher band: 75.0 is Verified and 50.0 is
// Suspicious.
func LabelForScore(authenticity float64) Label {
	switch {
	case authenticity >= 75:
		return LabelVerified
	case authenticity >= 50:
		return LabelSuspicious
	default:
		return LabelAIGenerated
	}
}
