package evaluation

import "time"

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// Request carries one question/answer pair into the evaluator.
type Request struct {
	Question         string
	Answer           string
	ExpectedKeywords []string
	DifficultyLevel  string
	Context          string
}

// Evaluation is the structured scoring result for one answer. Instances are
// created once, appended to the evaluator's history and never mutated after.
type Evaluation struct {
	Question             string    `json:"question"`
	Answer               string    `json:"answer"`
	Score                float64   `json:"score"`
	IsCorrect            bool      `json:"is_correct"`
	IsPartial            bool      `json:"is_partial"`
	Accuracy             int       `json:"accuracy"`
	Completeness         int       `json:"completeness"`
	Relevance            int       `json:"relevance"`
	TechnicalDepth       int       `json:"technical_depth"`
	CommunicationQuality int       `json:"communication_quality"`
	Confidence           string    `json:"confidence"`
	Feedback             string    `json:"feedback"`
	KeywordsMatched      []string  `json:"keywords_matched"`
	KeywordsMissed       []string  `json:"keywords_missed"`
	Strengths            []string  `json:"strengths"`
	Improvements         []string  `json:"improvements"`
	Timestamp            time.Time `json:"timestamp"`
	DifficultyLevel      string    `json:"difficulty_level"`
	Fallback             bool      `json:"fallback"`
}

func clampScore(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 10 {
		return 10
	}
	return s
}

// normalize enforces the classification invariant: is_correct and is_partial
// are never both set. is_correct wins when the model reports both.
func (e *Evaluation) normalize() {
	e.Score = clampScore(e.Score)
	if e.IsCorrect {
		e.IsPartial = false
	}
	if e.Confidence == "" {
		e.Confidence = ConfidenceLow
	}
}
