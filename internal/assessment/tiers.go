package assessment

import "github.com/abhisek/iq360/internal/profile"

// MaxLevel is the last level of the designed arc. Play may continue past
// it; the progress indicator saturates.
const MaxLevel = 30

// TierNames lists the ten cognitive tiers in order. Tier n covers levels
// 3n-2 through 3n.
var TierNames = []string{
	"Foundational Logic & Attention",
	"Decision-Making & Intent",
	"Executive Function & Planning",
	"Innovation & Unsolved Problems",
	"Emotional Reasoning & Stress Logic",
	"Financial & Resource Intelligence",
	"Leadership & Ethical Judgment",
	"Systems Thinking & Strategy",
	"Cognitive Flexibility Under Pressure",
	"Integrated Life & Business Mastery",
}

// TierName returns the name of a tier. Tiers past the last one reuse
// the final tier's name.
func TierName(tier int) string {
	switch {
	case tier < 1:
		return TierNames[0]
	case tier > len(TierNames):
		return TierNames[len(TierNames)-1]
	}
	return TierNames[tier-1]
}

// LevelTierName returns the tier name for a level number.
func LevelTierName(level int) string {
	return TierName(profile.Tier(level))
}

// Progress returns the fraction of the designed arc reached at level,
// in [0, 1].
func Progress(level int) float64 {
	if level < 1 {
		return 0
	}
	return min(float64(level)/MaxLevel, 1)
}

// TierSync returns the tier synchronization percentage shown alongside a
// level: ten percent per tier, capped at 100.
func TierSync(level int) int {
	return min(profile.Tier(level)*10, 100)
}
