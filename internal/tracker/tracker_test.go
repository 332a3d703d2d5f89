package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddQuestionNumbersSequentially(t *testing.T) {
	tr := New()

	assert.Equal(t, 1, tr.AddQuestion("Tell me about yourself."))
	assert.Equal(t, 2, tr.AddQuestion("What is your biggest strength?"))
	assert.Equal(t, "What is your biggest strength?", tr.CurrentQuestion())
}

func TestCurrentQuestionEmptyBeforeFirstQuestion(t *testing.T) {
	tr := New()
	assert.Equal(t, "", tr.CurrentQuestion())
}

func TestAnswersAttributeToLatestQuestion(t *testing.T) {
	tr := New()
	tr.AddQuestion("q1")
	tr.AddAnswer("a1", &AnswerEvaluation{Score: 8, IsCorrect: true})
	tr.AddQuestion("q2")
	tr.AddAnswer("a2", nil)

	entries := tr.Transcript()
	require.Len(t, entries, 4)
	assert.Equal(t, EntryQuestion, entries[0].Type)
	assert.Equal(t, 1, entries[0].Number)
	assert.Equal(t, EntryAnswer, entries[1].Type)
	assert.Equal(t, 1, entries[1].QuestionNumber)
	require.NotNil(t, entries[1].Evaluation)
	assert.Equal(t, 8.0, entries[1].Evaluation.Score)
	assert.Equal(t, 2, entries[3].QuestionNumber)
	assert.Nil(t, entries[3].Evaluation)
}

func TestCurrentStats(t *testing.T) {
	tr := New()
	tr.AddQuestion("q1")
	tr.AddQuestion("q2")
	tr.AddQuestion("q3")
	tr.AddAnswer("a1", nil)
	tr.AddAnswer("a2", nil)

	stats := tr.CurrentStats()
	assert.Equal(t, 3, stats.QuestionsAsked)
	assert.Equal(t, 2, stats.AnswersReceived)
	assert.InDelta(t, 66.7, stats.ResponseRate, 0.001)
	assert.GreaterOrEqual(t, stats.DurationSeconds, 0)
}

func TestCurrentStatsWithNoQuestions(t *testing.T) {
	stats := New().CurrentStats()

	assert.Zero(t, stats.QuestionsAsked)
	assert.Zero(t, stats.ResponseRate)
}

func TestTranscriptReturnsIndependentSnapshot(t *testing.T) {
	tr := New()
	tr.AddQuestion("q1")

	snapshot := tr.Transcript()
	snapshot[0].Content = "mutated"

	assert.Equal(t, "q1", tr.Transcript()[0].Content)
}
