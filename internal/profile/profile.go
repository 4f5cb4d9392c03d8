package profile

import (
	"errors"
	"fmt"
	"math"
)

// Default values for a learner who has not completed any level.
const (
	DefaultCII           = 100
	DefaultDomainScore   = 50.0
	DefaultThinkingStyle = "Developing Strategist"
)

// Nominal ranges. Values outside these are stored as-is; only the
// presentation layer clamps.
const (
	MinCII   = 70
	MaxCII   = 145
	MinScore = 0.0
	MaxScore = 100.0
)

// LevelsPerTier is the number of consecutive levels sharing a tier.
const LevelsPerTier = 3

// Profile is the cognitive profile of a single user.
type Profile struct {
	CII           int          `json:"cii"`
	Scores        DomainScores `json:"scores"`
	ThinkingStyle string       `json:"thinkingStyle"`
}

// DomainScores holds the six domain sub-metrics, each nominally 0-100.
type DomainScores struct {
	LogicalReasoning    float64 `json:"logicalReasoning"`
	ExecutiveFunction   float64 `json:"executiveFunction"`
	InnovationIndex     float64 `json:"innovationIndex"`
	EmotionalRegulation float64 `json:"emotionalRegulation"`
	StrategicThinking   float64 `json:"strategicThinking"`
	DecisionConsistency float64 `json:"decisionConsistency"`
}

// Default returns the fixed initial profile.
func Default() Profile {
	return Profile{
		CII: DefaultCII,
		Scores: DomainScores{
			LogicalReasoning:    DefaultDomainScore,
			ExecutiveFunction:   DefaultDomainScore,
			InnovationIndex:     DefaultDomainScore,
			EmotionalRegulation: DefaultDomainScore,
			StrategicThinking:   DefaultDomainScore,
			DecisionConsistency: DefaultDomainScore,
		},
		ThinkingStyle: DefaultThinkingStyle,
	}
}

// ApplyUpdate returns patch verbatim when present, otherwise current.
// The patch is a complete profile, never a delta.
func ApplyUpdate(current Profile, patch *Profile) Profile {
	if patch == nil {
		return current
	}
	return *patch
}

// ErrMalformed reports a profile whose numeric fields cannot be stored.
var ErrMalformed = errors.New("malformed profile")

// Validate checks the profile's shape. Range is deliberately not checked.
func (p Profile) Validate() error {
	for _, d := range p.Scores.Domains() {
		if math.IsNaN(d.Value) || math.IsInf(d.Value, 0) {
			return fmt.Errorf("%w: %s is %v", ErrMalformed, d.Key, d.Value)
		}
	}
	return nil
}

// InRange reports whether the CII and every domain score lie within
// their nominal ranges.
func (p Profile) InRange() bool {
	if p.CII < MinCII || p.CII > MaxCII {
		return false
	}
	for _, d := range p.Scores.Domains() {
		if d.Value < MinScore || d.Value > MaxScore {
			return false
		}
	}
	return true
}

// Clamped returns a copy with CII and scores forced into their nominal
// ranges. For display only.
func (p Profile) Clamped() Profile {
	out := p
	out.CII = min(max(p.CII, MinCII), MaxCII)
	s := &out.Scores
	for _, f := range []*float64{
		&s.LogicalReasoning, &s.ExecutiveFunction, &s.InnovationIndex,
		&s.EmotionalRegulation, &s.StrategicThinking, &s.DecisionConsistency,
	} {
		*f = min(max(*f, MinScore), MaxScore)
	}
	return out
}

// Tier returns ceil(level / LevelsPerTier). Levels below 1 map to tier 1.
func Tier(level int) int {
	if level < 1 {
		return 1
	}
	return (level + LevelsPerTier - 1) / LevelsPerTier
}
