package registry

import "fmt"

// Policy decides whether a destiny key may be paired with a given origin.
type Policy string

const (
	// PolicyRegistered accepts any registered destiny key.
	PolicyRegistered Policy = "registered"

	// PolicyOriginBound accepts a destiny key only if its owner registered no
	// later than the origin's owner: the destiny index must fall below the end
	// of the origin client's range.
	PolicyOriginBound Policy = "origin-bound"
)

// DefaultPolicy is used when no policy is configured.
const DefaultPolicy = PolicyRegistered

// ParsePolicy validates a configured policy name. The empty string selects
// DefaultPolicy.
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(s); p {
	case "":
		return DefaultPolicy, nil
	case PolicyRegistered, PolicyOriginBound:
		return p, nil
	default:
		return "", fmt.Errorf("unknown ordering policy: %q", s)
	}
}

func (p Policy) String() string {
	return string(p)
}

// permits reports whether a destiny index is acceptable for an origin whose
// client range ends at originEnd.
func (p Policy) permits(destiny, originEnd int) bool {
	switch p {
	case PolicyOriginBound:
		return destiny < originEnd
	default:
		return true
	}
}
