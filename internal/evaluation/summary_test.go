package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func evalWith(score float64, correct, partial bool, acc, tech, comm int) Evaluation {
	return Evaluation{
		Score:                score,
		IsCorrect:            correct,
		IsPartial:            partial,
		Accuracy:             acc,
		TechnicalDepth:       tech,
		CommunicationQuality: comm,
	}
}

func TestSummarizeEmptyHistory(t *testing.T) {
	summary := Summarize(nil)

	assert.Zero(t, summary.TotalScore)
	assert.Zero(t, summary.TotalQuestions)
	assert.Zero(t, summary.Metrics.ResponseRate)
	assert.Empty(t, summary.Recommendation)
}

func TestSummarizeCountsAreConserved(t *testing.T) {
	history := []Evaluation{
		evalWith(8, true, false, 80, 80, 80),
		evalWith(6, false, true, 60, 60, 60),
		evalWith(2, false, false, 20, 20, 20),
		evalWith(9, true, false, 90, 90, 90),
	}

	summary := Summarize(history)

	assert.Equal(t, 4, summary.TotalQuestions)
	assert.Equal(t, 2, summary.CorrectAnswers)
	assert.Equal(t, 1, summary.PartialAnswers)
	assert.Equal(t, 1, summary.WrongAnswers)
	assert.Equal(t, summary.TotalQuestions,
		summary.CorrectAnswers+summary.PartialAnswers+summary.WrongAnswers)
}

func TestSummarizeRescalesAverageScore(t *testing.T) {
	history := []Evaluation{
		evalWith(7, true, false, 70, 70, 70),
		evalWith(8, true, false, 80, 80, 80),
	}

	summary := Summarize(history)

	assert.Equal(t, 75.0, summary.AverageScore)
	assert.Equal(t, summary.AverageScore, summary.TotalScore)
}

func TestSummarizeRecommendationTiers(t *testing.T) {
	cases := []struct {
		name  string
		score float64
		want  string
	}{
		{"strong at 80", 8.0, RecommendationStrong},
		{"recommend below 80", 7.9, RecommendationRecommend},
		{"recommend at 65", 6.5, RecommendationRecommend},
		{"reservations below 65", 6.4, RecommendationReservations},
		{"reservations at 50", 5.0, RecommendationReservations},
		{"not met below 50", 4.9, RecommendationNotMet},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			summary := Summarize([]Evaluation{evalWith(tc.score, false, false, 50, 50, 50)})
			assert.Equal(t, tc.want, summary.Recommendation)
		})
	}
}

func TestSummarizeStrengthsAndWeaknesses(t *testing.T) {
	strong := Summarize([]Evaluation{evalWith(9, true, false, 85, 80, 80)})
	assert.Contains(t, strong.Strengths, "Strong communication skills")
	assert.Contains(t, strong.Strengths, "Good technical knowledge")
	assert.Contains(t, strong.Strengths, "High accuracy in responses")
	assert.Empty(t, strong.Weaknesses)

	weak := Summarize([]Evaluation{evalWith(3, false, false, 40, 40, 40)})
	assert.Contains(t, weak.Weaknesses, "Could improve communication clarity")
	assert.Contains(t, weak.Weaknesses, "Needs to deepen technical understanding")
	assert.Contains(t, weak.Weaknesses, "Could improve answer accuracy")
	assert.Empty(t, weak.Strengths)

	middle := Summarize([]Evaluation{evalWith(6, false, true, 70, 65, 70)})
	assert.Empty(t, middle.Strengths)
	assert.Empty(t, middle.Weaknesses)
}

func TestSummarizeMetrics(t *testing.T) {
	history := []Evaluation{
		evalWith(8, true, false, 80, 70, 90),
		evalWith(6, false, true, 60, 50, 70),
		evalWith(2, false, false, 20, 30, 50),
	}

	summary := Summarize(history)

	assert.InDelta(t, 53.3, summary.Metrics.Accuracy, 0.001)
	assert.InDelta(t, 50.0, summary.Metrics.TechnicalScore, 0.001)
	assert.InDelta(t, 70.0, summary.Metrics.CommunicationScore, 0.001)
	assert.InDelta(t, 66.7, summary.Metrics.ResponseRate, 0.001)
	assert.InDelta(t, 51.7, summary.Metrics.ConfidenceLevel, 0.001)
}

func TestSummarizeIsIdempotent(t *testing.T) {
	history := []Evaluation{
		evalWith(7, true, false, 75, 75, 75),
		evalWith(5, false, true, 55, 55, 55),
	}

	first := Summarize(history)
	second := Summarize(history)
	assert.Equal(t, first, second)
}
