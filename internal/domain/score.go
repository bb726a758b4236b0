package domain

import "math"

// MaxScore and MinScore bound every sunlight score
const (
	MinScore = 0
	MaxScore = 100
)

// ObstructionPenalty is subtracted when a facing building blocks the window
const ObstructionPenalty = -25.0

// orientationBase is the starting score for each window direction
var orientationBase = map[Orientation]float64{
	South: 100,
	East:  80, // morning light
	West:  70, // afternoon light
	North: 30,
}

// windowFactor scales light intensity by window size
var windowFactor = map[WindowSize]float64{
	LargeWindow:  1.2,
	MediumWindow: 1.0,
	SmallWindow:  0.7,
}

// distancePenalty models attenuation at the plant's position
var distancePenalty = map[Distance]float64{
	Near:   0,
	Middle: -15,
	Far:    -30,
}

// ComputeScore converts a room profile into a sunlight score in [0, 100].
// Window size scales intensity; distance and obstruction are flat penalties
// applied after scaling so they weigh the same for every window.
func ComputeScore(p RoomProfile) int {
	score := orientationBase[p.Orientation]
	score *= windowFactor[p.WindowSize]
	score += distancePenalty[p.Distance]

	if p.HasObstruction {
		score += ObstructionPenalty
	}

	return clampScore(int(math.Round(score)))
}

func clampScore(score int) int {
	return max(MinScore, min(MaxScore, score))
}
