package domain

// Diagnosis is the full result for one room profile.
// A new diagnosis replaces the previous one; results are never merged.
type Diagnosis struct {
	Profile RoomProfile   `json:"input"`
	Level   SunlightLevel `json:"sunlightLevel"`
	Score   int           `json:"sunlightScore"`
	Plants  []Plant       `json:"recommendedPlants"`
	Advice  string        `json:"advice"`
}

// Diagnose scores the profile and picks plants from the catalog.
// It has no side effects and is safe for concurrent use.
func Diagnose(p RoomProfile, catalog []Plant) Diagnosis {
	score := ComputeScore(p)
	level := Classify(score)

	return Diagnosis{
		Profile: p,
		Level:   level,
		Score:   score,
		Plants:  Recommend(level, score, catalog),
		Advice:  GenerateAdvice(p, level),
	}
}
