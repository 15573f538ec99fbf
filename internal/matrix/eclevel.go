package matrix

import "fmt"

// ECLevel is a QR error-correction level, ordered by increasing
// redundancy (and decreasing data capacity).
type ECLevel int

const (
	ECLow ECLevel = iota // L
	ECMedium             // M
	ECQuartile           // Q
	ECHigh               // H
)

// String returns the single-letter standard name (L, M, Q, H).
func (l ECLevel) String() string {
	switch l {
	case ECLow:
		return "L"
	case ECMedium:
		return "M"
	case ECQuartile:
		return "Q"
	case ECHigh:
		return "H"
	default:
		return fmt.Sprintf("ECLevel(%d)", int(l))
	}
}

// ParseECLevel converts a single-letter level name to an ECLevel.
func ParseECLevel(s string) (ECLevel, error) {
	switch s {
	case "L":
		return ECLow, nil
	case "M":
		return ECMedium, nil
	case "Q":
		return ECQuartile, nil
	case "H":
		return ECHigh, nil
	default:
		return 0, fmt.Errorf("unknown error-correction level %q (want L, M, Q or H)", s)
	}
}
