package domain

// SunlightLevel is the coarse bucket a sunlight score falls into
type SunlightLevel string

const (
	Strong     SunlightLevel = "strong"
	Moderate   SunlightLevel = "moderate"
	Weak       SunlightLevel = "weak"
	AlmostNone SunlightLevel = "almost-none"
)

// SunlightLevels lists every level from strongest to weakest
var SunlightLevels = []SunlightLevel{Strong, Moderate, Weak, AlmostNone}

// Classify maps a score to its level.
// Each band includes its lower bound: 75 is strong, 74 is moderate.
func Classify(score int) SunlightLevel {
	switch {
	case score >= 75:
		return Strong
	case score >= 50:
		return Moderate
	case score >= 25:
		return Weak
	default:
		return AlmostNone
	}
}

// Label returns the short display name
func (l SunlightLevel) Label() string {
	switch l {
	case Strong:
		return "Strong"
	case Moderate:
		return "Moderate"
	case Weak:
		return "Weak"
	case AlmostNone:
		return "Almost none"
	}
	return string(l)
}

// Description returns the one-line summary shown under the score
func (l SunlightLevel) Description() string {
	switch l {
	case Strong:
		return "Plenty of sunshine reaches this spot. Ideal for sun-loving plants!"
	case Moderate:
		return "A comfortably bright spot where most foliage plants thrive."
	case Weak:
		return "A slightly dim spot. Pick shade-tolerant plants."
	case AlmostNone:
		return "Hardly any daylight reaches this spot. Choose low-light plants or add a grow light."
	}
	return ""
}
