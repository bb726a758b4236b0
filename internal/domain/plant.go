package domain

// Category groups plants by the light they tolerate
type Category string

const (
	Succulents    Category = "succulents"
	ShadeTolerant Category = "shade-tolerant"
	SunLoving     Category = "sun-loving"
	MediumLight   Category = "medium-light"
	LowLight      Category = "low-light"
)

// CareLevel is how much attention a plant needs
type CareLevel string

const (
	CareEasy     CareLevel = "easy"
	CareModerate CareLevel = "moderate"
	CareAdvanced CareLevel = "advanced"
)

// CareLevels lists care levels from easiest to hardest
var CareLevels = []CareLevel{CareEasy, CareModerate, CareAdvanced}

// Label returns the audience a care level suits
func (c CareLevel) Label() string {
	switch c {
	case CareEasy:
		return "Beginner"
	case CareModerate:
		return "Intermediate"
	case CareAdvanced:
		return "Advanced"
	}
	return string(c)
}

// KeywordPrefix is the generic category word used to build product search keywords
const KeywordPrefix = "houseplant"

// Plant is one catalog entry. The catalog is read-only at runtime.
type Plant struct {
	Name          string    `json:"name" yaml:"name"`
	Slug          string    `json:"slug" yaml:"slug"`
	Category      Category  `json:"category" yaml:"category"`
	Description   string    `json:"description" yaml:"description"`
	Meaning       string    `json:"meaning,omitempty" yaml:"meaning"`
	Examples      []string  `json:"examples,omitempty" yaml:"examples"`
	CareLevel     CareLevel `json:"careLevel" yaml:"careLevel"`
	Watering      string    `json:"wateringFrequency" yaml:"watering"`
	Sunlight      int       `json:"sunlight" yaml:"sunlight"` // 1 (dark ok) .. 5 (full sun)
	ImageURL      string    `json:"imageUrl,omitempty" yaml:"imageUrl"`
	AffiliateURL  string    `json:"affiliateUrl,omitempty" yaml:"affiliateUrl"`
	SearchKeyword string    `json:"searchKeyword,omitempty" yaml:"searchKeyword"`
}

// Keyword returns the product search keyword for this plant
func (p Plant) Keyword() string {
	if p.SearchKeyword != "" {
		return p.SearchKeyword
	}
	return KeywordPrefix + " " + p.Name
}

// SunlightLabel describes a plant's sunlight preference for display
func SunlightLabel(sunlight int) string {
	switch {
	case sunlight >= 4:
		return "Loves direct sun"
	case sunlight >= 3:
		return "Likes a bright spot"
	case sunlight >= 2:
		return "Fine in partial shade"
	default:
		return "Copes with dark corners"
	}
}
