package domain

import "slices"

// MaxRecommendations caps the number of plants in a diagnosis
const MaxRecommendations = 6

// TargetLight maps a level and score to the 1-5 sunlight value a
// recommended plant should prefer. Each level spans two target values.
func TargetLight(level SunlightLevel, score int) int {
	switch level {
	case Strong:
		if score >= 85 {
			return 5
		}
		return 4
	case Moderate:
		if score >= 60 {
			return 4
		}
		return 3
	case Weak:
		if score >= 35 {
			return 3
		}
		return 2
	default:
		if score >= 15 {
			return 2
		}
		return 1
	}
}

// Recommend returns up to MaxRecommendations plants whose sunlight
// preference is within one step of the target, closest first.
// Equal distances keep catalog order, which runs easy to advanced.
func Recommend(level SunlightLevel, score int, catalog []Plant) []Plant {
	target := TargetLight(level, score)

	matches := make([]Plant, 0, MaxRecommendations)
	for _, p := range catalog {
		if lightDistance(p.Sunlight, target) <= 1 {
			matches = append(matches, p)
		}
	}

	slices.SortStableFunc(matches, func(a, b Plant) int {
		return lightDistance(a.Sunlight, target) - lightDistance(b.Sunlight, target)
	})

	if len(matches) > MaxRecommendations {
		matches = matches[:MaxRecommendations]
	}
	return matches
}

func lightDistance(sunlight, target int) int {
	if sunlight > target {
		return sunlight - target
	}
	return target - sunlight
}
