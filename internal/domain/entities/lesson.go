package entities

// Formula is the two-clause structure of a conditional.
type Formula struct {
	IfPart     string `json:"if_part"`
	ResultPart string `json:"result_part"`
}

// LessonExample is a labeled example sentence.
type LessonExample struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// Nuance is a titled note on a subtle usage.
type Nuance struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// Lesson is the study content for one category.
type Lesson struct {
	Category       Category        `json:"category"`
	Order          int             `json:"order"`
	Vibe           string          `json:"vibe"`
	RealityLevel   string          `json:"reality_level"`
	Timeline       string          `json:"timeline"`
	Meaning        string          `json:"meaning"`
	Formula        Formula         `json:"formula"`
	Examples       []LessonExample `json:"examples"`
	ProTips        []string        `json:"pro_tips,omitempty"`
	CommonMistakes []string        `json:"common_mistakes,omitempty"`
	Nuances        []Nuance        `json:"nuances,omitempty"`
}
