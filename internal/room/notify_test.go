package room

import (
	"testing"
	"time"

	"github.com/fadilmartias/interview-agent/internal/evaluation"
	"github.com/fadilmartias/interview-agent/internal/tracker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC)

func TestAnswerEvaluationMessageShape(t *testing.T) {
	ev := evaluation.Evaluation{
		Score:      7.5,
		IsCorrect:  true,
		Accuracy:   75,
		Confidence: "high",
		Feedback:   "Good answer.",
	}

	msg := answerEvaluationMessage(ev, 3, testTime)

	assert.Equal(t, "answer_evaluation", msg["type"])
	assert.Equal(t, 3, msg["question_number"])
	assert.Equal(t, "2025-06-01T10:30:00Z", msg["timestamp"])

	inner, ok := msg["evaluation"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 7.5, inner["score"])
	assert.Equal(t, true, inner["is_correct"])
	assert.Equal(t, 75, inner["accuracy"])
	assert.Equal(t, "Good answer.", inner["feedback"])
}

func TestAnswerEvaluationMessageOmitsZeroQuestionNumber(t *testing.T) {
	msg := answerEvaluationMessage(evaluation.Evaluation{}, 0, testTime)

	_, present := msg["question_number"]
	assert.False(t, present)
}

func TestResponseAnalysisMessageShape(t *testing.T) {
	ev := evaluation.Evaluation{Score: 5.0, IsPartial: true, Feedback: "Partially right."}

	msg := responseAnalysisMessage(ev, testTime)

	assert.Equal(t, "response_analysis", msg["type"])
	inner, ok := msg["analysis"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 5.0, inner["score"])
	assert.Equal(t, true, inner["is_partial"])
	assert.Equal(t, false, inner["is_correct"])
}

func TestQuestionAskedMessageShape(t *testing.T) {
	msg := questionAskedMessage("What is a deadlock?", 2, []string{"mutex", "cycle"}, testTime)

	assert.Equal(t, "question_asked", msg["type"])
	assert.Equal(t, "What is a deadlock?", msg["question"])
	assert.Equal(t, 2, msg["question_number"])
	assert.Equal(t, []string{"mutex", "cycle"}, msg["expected_keywords"])

	bare := questionAskedMessage("Tell me about yourself.", 1, nil, testTime)
	_, present := bare["expected_keywords"]
	assert.False(t, present)
}

func TestPerformanceUpdateMessageShape(t *testing.T) {
	stats := tracker.Stats{QuestionsAsked: 4, AnswersReceived: 3, ResponseRate: 75}

	msg := performanceUpdateMessage(stats, testTime)

	assert.Equal(t, "performance_update", msg["type"])
	assert.Equal(t, stats, msg["stats"])
}

func TestInterviewCompleteMessageShape(t *testing.T) {
	summary := evaluation.PerformanceSummary{
		TotalScore:     72.5,
		CorrectAnswers: 3,
		PartialAnswers: 1,
		WrongAnswers:   1,
		TotalQuestions: 5,
		Recommendation: evaluation.RecommendationRecommend,
	}
	transcript := []tracker.Entry{{Type: tracker.EntryQuestion, Content: "q1"}}

	msg := interviewCompleteMessage(summary, transcript, testTime)

	assert.Equal(t, "interview_complete", msg["type"])
	assert.Equal(t, 72.5, msg["score"])
	assert.Equal(t, transcript, msg["transcript"])

	perf, ok := msg["performance"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 3, perf["correct_answers"])
	assert.Equal(t, 1, perf["wrong_answers"])
	assert.Equal(t, evaluation.RecommendationRecommend, perf["recommendation"])

	empty := interviewCompleteMessage(summary, nil, testTime)
	_, present := empty["transcript"]
	assert.False(t, present)
}

func TestNotifierNilHubIsSafe(t *testing.T) {
	n := NewNotifier(nil, nil)

	assert.NotPanics(t, func() {
		n.SendAnswerEvaluation("room", evaluation.Evaluation{}, 1)
		n.SendResponseAnalysis("room", evaluation.Evaluation{})
		n.SendQuestionAsked("room", "q?", 1, nil)
		n.SendPerformanceUpdate("room", tracker.Stats{})
		n.SendInterviewComplete("room", evaluation.PerformanceSummary{}, nil)
	})
}
