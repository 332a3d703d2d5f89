package evaluation

import "math"

// PerformanceSummary aggregates a session's evaluation history. It has no
// identity of its own: Summarize recomputes it from scratch on every call.
// TotalScore and AverageScore carry the same value on a 0-100 scale.
type PerformanceSummary struct {
	TotalScore     float64  `json:"total_score"`
	CorrectAnswers int      `json:"correct_answers"`
	WrongAnswers   int      `json:"wrong_answers"`
	PartialAnswers int      `json:"partial_answers"`
	AverageScore   float64  `json:"average_score"`
	TotalQuestions int      `json:"total_questions"`
	Strengths      []string `json:"strengths"`
	Weaknesses     []string `json:"weaknesses"`
	Recommendation string   `json:"recommendation"`
	Metrics        Metrics  `json:"metrics"`
}

// Metrics is the summary's numeric bundle, all on a 0-100 scale.
type Metrics struct {
	Accuracy           float64 `json:"accuracy"`
	TechnicalScore     float64 `json:"technical_score"`
	CommunicationScore float64 `json:"communication_score"`
	ResponseRate       float64 `json:"response_rate"`
	ConfidenceLevel    float64 `json:"confidence_level"`
}

const (
	RecommendationStrong       = "Strongly recommend for next round. Candidate demonstrates excellent understanding and communication."
	RecommendationRecommend    = "Recommend for next round. Candidate shows good potential with some areas for growth."
	RecommendationReservations = "Consider for next round with reservations. Additional assessment may be needed."
	RecommendationNotMet       = "Does not meet current requirements. May need more preparation."
)

// Summarize rolls the evaluation history up into a PerformanceSummary.
// Pure and idempotent; an empty history yields the all-zero summary.
func Summarize(history []Evaluation) PerformanceSummary {
	if len(history) == 0 {
		return PerformanceSummary{}
	}

	total := len(history)
	var correct, partial int
	var scoreSum float64
	var accSum, techSum, commSum float64

	for _, e := range history {
		if e.IsCorrect {
			correct++
		}
		if e.IsPartial {
			partial++
		}
		scoreSum += e.Score
		accSum += float64(e.Accuracy)
		techSum += float64(e.TechnicalDepth)
		commSum += float64(e.CommunicationQuality)
	}
	wrong := total - correct - partial

	// Per-answer scores live in [0,10]; the summary reports on a 0-100 scale.
	averageScore := round1(scoreSum / float64(total) * 10)

	avgAccuracy := accSum / float64(total)
	avgTechnical := techSum / float64(total)
	avgCommunication := commSum / float64(total)

	var strengths, weaknesses []string
	if avgCommunication >= 75 {
		strengths = append(strengths, "Strong communication skills")
	} else if avgCommunication < 60 {
		weaknesses = append(weaknesses, "Could improve communication clarity")
	}
	if avgTechnical >= 75 {
		strengths = append(strengths, "Good technical knowledge")
	} else if avgTechnical < 60 {
		weaknesses = append(weaknesses, "Needs to deepen technical understanding")
	}
	if avgAccuracy >= 80 {
		strengths = append(strengths, "High accuracy in responses")
	} else if avgAccuracy < 60 {
		weaknesses = append(weaknesses, "Could improve answer accuracy")
	}

	responseRate := float64(correct+partial) / float64(total) * 100

	var recommendation string
	switch {
	case averageScore >= 80:
		recommendation = RecommendationStrong
	case averageScore >= 65:
		recommendation = RecommendationRecommend
	case averageScore >= 50:
		recommendation = RecommendationReservations
	default:
		recommendation = RecommendationNotMet
	}

	return PerformanceSummary{
		TotalScore:     averageScore,
		CorrectAnswers: correct,
		WrongAnswers:   wrong,
		PartialAnswers: partial,
		AverageScore:   averageScore,
		TotalQuestions: total,
		Strengths:      strengths,
		Weaknesses:     weaknesses,
		Recommendation: recommendation,
		Metrics: Metrics{
			Accuracy:           round1(avgAccuracy),
			TechnicalScore:     round1(avgTechnical),
			CommunicationScore: round1(avgCommunication),
			ResponseRate:       round1(responseRate),
			ConfidenceLevel:    round1((avgAccuracy + avgTechnical) / 2),
		},
	}
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
