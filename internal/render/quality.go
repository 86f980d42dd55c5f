package render

import "fmt"

// Quality is the fidelity tier a frame is rendered at.
type Quality int

const (
	// QualityLow is a reduced-resolution render used while scrubbing or
	// playing, where speed matters more than fidelity.
	QualityLow Quality = iota
	// QualityHigh is a full-resolution render used once the playhead rests.
	QualityHigh
)

// Satisfies reports whether an entry rendered at q can serve a request
// for want. High satisfies low, never the reverse.
func (q Quality) Satisfies(want Quality) bool {
	return q >= want
}

// String returns the name used in config files and logs.
func (q Quality) String() string {
	switch q {
	case QualityLow:
		return "low"
	case QualityHigh:
		return "high"
	default:
		return fmt.Sprintf("quality(%d)", int(q))
	}
}

// ParseQuality converts a config-file name to a Quality.
func ParseQuality(s string) (Quality, error) {
	switch s {
	case "low":
		return QualityLow, nil
	case "high":
		return QualityHigh, nil
	default:
		return QualityLow, fmt.Errorf("unknown quality %q", s)
	}
}
