package domain

import "strings"

// baseAdvice holds the two general paragraphs for each level
var baseAdvice = map[SunlightLevel][2]string{
	Strong: {
		"A superb spot! It suits sun lovers such as succulents, cacti and herbs.",
		"Water thoroughly once the soil dries out. Some plants scorch in direct sun, so watch the leaves and adjust.",
	},
	Moderate: {
		"A good spot for most foliage plants, with plenty of beginner-friendly choices.",
		"Placing plants by the window widens your options. Turn the pot now and then so the plant grows evenly.",
	},
	Weak: {
		"A slightly dim spot, but shade-tolerant plants will do fine here.",
		"Pale leaves or leggy stems are signs of too little light. Move the plant closer to the window or consider a grow light.",
	},
	AlmostNone: {
		"Light is very limited here. Choose plants that tolerate low light, or use an LED grow light.",
		"Even moving closer to the window makes a big difference. Giving the plant an occasional sunbath in a brighter room also helps.",
	},
}

// adviceTip is an extra paragraph added when its condition holds
type adviceTip struct {
	applies func(RoomProfile) bool
	text    string
}

// adviceTips are evaluated in order; every matching tip is appended
var adviceTips = []adviceTip{
	{
		applies: func(p RoomProfile) bool { return p.HasObstruction },
		text:    "The building opposite blocks some sunlight, so light may only come in during certain hours of the morning or afternoon.",
	},
	{
		applies: func(p RoomProfile) bool { return p.Orientation == North },
		text:    "North-facing rooms get little direct sun but do receive bright indirect light. Shade-tolerant plants are a good fit.",
	},
	{
		applies: func(p RoomProfile) bool { return p.Distance == Far },
		text:    "Light struggles to reach spots far from the window. If you can, move the plant closer to widen the range of plants you can grow.",
	},
}

// GenerateAdvice builds the care guidance text for a diagnosis.
// Paragraphs are separated by a blank line.
func GenerateAdvice(p RoomProfile, level SunlightLevel) string {
	base := baseAdvice[level]
	paragraphs := []string{base[0], base[1]}

	for _, tip := range adviceTips {
		if tip.applies(p) {
			paragraphs = append(paragraphs, tip.text)
		}
	}

	return strings.Join(paragraphs, "\n\n")
}
