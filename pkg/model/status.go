package model

// RequirementStatus classifies a declared requirement relative to the current
// catalog and enabled state. The values are bitmask flags so callers can
// filter for several statuses with a single mask.
type RequirementStatus uint8

const (
	// StatusEnabled means the required addon is currently enabled.
	StatusEnabled RequirementStatus = 1 << iota
	// StatusDisabled means the required addon exists and satisfies the
	// constraint but is not enabled.
	StatusDisabled
	// StatusMissing means the required addon is not in the catalog.
	StatusMissing
	// StatusVersionMismatch means the required addon exists but its version
	// does not satisfy the declared constraint.
	StatusVersionMismatch
)

// StatusAny matches every requirement status.
const StatusAny = StatusEnabled | StatusDisabled | StatusMissing | StatusVersionMismatch

// StatusProblems matches the statuses that make a requirement unmet.
const StatusProblems = StatusMissing | StatusVersionMismatch

// Matches reports whether the status intersects the given mask.
func (s RequirementStatus) Matches(mask RequirementStatus) bool {
	return s&mask != 0
}

func (s RequirementStatus) String() string {
	switch s {
	case StatusEnabled:
		return "enabled"
	case StatusDisabled:
		return "disabled"
	case StatusMissing:
		return "missing"
	case StatusVersionMismatch:
		return "version-mismatch"
	default:
		return "unknown"
	}
}
