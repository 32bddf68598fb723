package valueobject

import "fmt"

// RiskLevel is an immutable value object representing the coarse risk tier
// derived from a credit score.
type RiskLevel struct {
	value string
}

const (
	riskLevelLow    = "LOW"
	riskLevelMedium = "MEDIUM"
	riskLevelHigh   = "HIGH"
)

var (
	RiskLevelLow    = RiskLevel{value: riskLevelLow}
	RiskLevelMedium = RiskLevel{value: riskLevelMedium}
	RiskLevelHigh   = RiskLevel{value: riskLevelHigh}
)

// Lower bounds (inclusive) of the LOW and MEDIUM tiers.
const (
	LowRiskMinScore    = 750
	MediumRiskMinScore = 650
)

// RiskLevelFromString reconstructs a RiskLevel from its string representation.
func RiskLevelFromString(s string) (RiskLevel, error) {
	switch s {
	case riskLevelLow:
		return RiskLevelLow, nil
	case riskLevelMedium:
		return RiskLevelMedium, nil
	case riskLevelHigh:
		return RiskLevelHigh, nil
	default:
		return RiskLevel{}, fmt.Errorf("invalid risk level: %q", s)
	}
}

// RiskLevelFromScore derives the RiskLevel from a credit score. Each bracket
// is closed on its lower end: 750 is LOW, 650 is MEDIUM, 649 is HIGH.
func RiskLevelFromScore(score int) RiskLevel {
	switch {
	case score >= LowRiskMinScore:
		return RiskLevelLow
	case score >= MediumRiskMinScore:
		return RiskLevelMedium
	default:
		return RiskLevelHigh
	}
}

// String returns the string representation.
func (r RiskLevel) String() string { return r.value }

// IsZero returns true if the RiskLevel has not been set.
func (r RiskLevel) IsZero() bool { return r.value == "" }

// Equal checks equality with another RiskLevel.
func (r RiskLevel) Equal(other RiskLevel) bool { return r.value == other.value }

// MarshalText implements encoding.TextMarshaler.
func (r RiskLevel) MarshalText() ([]byte, error) {
	return []byte(r.value), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *RiskLevel) UnmarshalText(text []byte) error {
	v, err := RiskLevelFromString(string(text))
	if err != nil {
		return err
	}
	*r = v
	return nil
}
