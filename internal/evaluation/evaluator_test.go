package evaluation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockGenerator replays queued responses, recording the prompts it was given.
type mockGenerator struct {
	responses []string
	errs      []error
	prompts   []string
}

func (m *mockGenerator) GenerateText(_ context.Context, prompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	idx := len(m.prompts) - 1
	var err error
	if idx < len(m.errs) {
		err = m.errs[idx]
	}
	var resp string
	if idx < len(m.responses) {
		resp = m.responses[idx]
	}
	return resp, err
}

const fullResponse = `{
	"is_correct": true,
	"is_partial": false,
	"score": 8.5,
	"evaluation": {"accuracy": 85, "completeness": 80, "relevance": 90, "confidence": "high"},
	"feedback": "Solid answer covering the main points.",
	"keywords_matched": ["index", "query plan"],
	"keywords_missed": ["statistics"],
	"strengths": ["Clear structure"],
	"improvements": ["Mention statistics"],
	"technical_depth": 82,
	"communication_quality": 88
}`

func TestEvaluateParsesModelOutput(t *testing.T) {
	gen := &mockGenerator{responses: []string{fullResponse}}
	e := NewEvaluator(gen, nil)

	ev := e.Evaluate(context.Background(), Request{
		Question:        "How do you speed up a slow query?",
		Answer:          "Check the query plan and add an index.",
		DifficultyLevel: DifficultyHard,
	})

	assert.True(t, ev.IsCorrect)
	assert.False(t, ev.IsPartial)
	assert.Equal(t, 8.5, ev.Score)
	assert.Equal(t, 85, ev.Accuracy)
	assert.Equal(t, 80, ev.Completeness)
	assert.Equal(t, 90, ev.Relevance)
	assert.Equal(t, "high", ev.Confidence)
	assert.Equal(t, "Solid answer covering the main points.", ev.Feedback)
	assert.Equal(t, []string{"index", "query plan"}, ev.KeywordsMatched)
	assert.Equal(t, []string{"statistics"}, ev.KeywordsMissed)
	assert.Equal(t, 82, ev.TechnicalDepth)
	assert.Equal(t, 88, ev.CommunicationQuality)
	assert.False(t, ev.Fallback)
	assert.Equal(t, "How do you speed up a slow query?", ev.Question)
	assert.Equal(t, DifficultyHard, ev.DifficultyLevel)
	assert.False(t, ev.Timestamp.IsZero())
}

func TestEvaluateStripsCodeFences(t *testing.T) {
	gen := &mockGenerator{responses: []string{"```json\n{\"score\": 7.0, \"is_correct\": true}\n```"}}
	e := NewEvaluator(gen, nil)

	ev := e.Evaluate(context.Background(), Request{Question: "q", Answer: "a"})

	assert.Equal(t, 7.0, ev.Score)
	assert.True(t, ev.IsCorrect)
	assert.False(t, ev.Fallback)
}

func TestEvaluateClampsScore(t *testing.T) {
	gen := &mockGenerator{responses: []string{`{"score": 14.2, "is_correct": true}`}}
	e := NewEvaluator(gen, nil)

	ev := e.Evaluate(context.Background(), Request{Question: "q", Answer: "a"})

	assert.Equal(t, 10.0, ev.Score)
}

func TestEvaluateNormalizesContradictoryFlags(t *testing.T) {
	gen := &mockGenerator{responses: []string{`{"score": 9.0, "is_correct": true, "is_partial": true}`}}
	e := NewEvaluator(gen, nil)

	ev := e.Evaluate(context.Background(), Request{Question: "q", Answer: "a"})

	assert.True(t, ev.IsCorrect)
	assert.False(t, ev.IsPartial, "is_correct and is_partial must be mutually exclusive")
}

func TestEvaluateDefaultsMissingFields(t *testing.T) {
	gen := &mockGenerator{responses: []string{`{"score": 6.0}`}}
	e := NewEvaluator(gen, nil)

	ev := e.Evaluate(context.Background(), Request{Question: "q", Answer: "a"})

	assert.Equal(t, 6.0, ev.Score)
	assert.False(t, ev.IsCorrect)
	assert.Zero(t, ev.Accuracy)
	assert.Equal(t, ConfidenceLow, ev.Confidence, "missing confidence defaults to low")
	assert.Empty(t, ev.KeywordsMatched)
	assert.False(t, ev.Fallback)
}

func TestEvaluateFallsBackOnUnparsableOutput(t *testing.T) {
	gen := &mockGenerator{responses: []string{"I think the answer is pretty good overall."}}
	e := NewEvaluator(gen, nil)

	ev := e.Evaluate(context.Background(), Request{
		Question:         "q",
		Answer:           "ACID stands for atomicity, consistency, isolation, durability.",
		ExpectedKeywords: []string{"atomicity", "consistency", "isolation", "durability"},
	})

	assert.True(t, ev.Fallback)
	assert.Equal(t, FallbackFeedback, ev.Feedback)
	assert.Equal(t, 10.0, ev.Score)
}

func TestEvaluateFallsBackOnGeneratorError(t *testing.T) {
	gen := &mockGenerator{errs: []error{errors.New("rate limited")}}
	e := NewEvaluator(gen, nil)

	ev := e.Evaluate(context.Background(), Request{
		Question:         "q",
		Answer:           "replication and sharding",
		ExpectedKeywords: []string{"replication", "sharding", "caching", "load balancing"},
	})

	assert.True(t, ev.Fallback)
	assert.Equal(t, 5.0, ev.Score)
	assert.False(t, ev.IsCorrect)
	assert.True(t, ev.IsPartial)
}

func TestEvaluateWithoutGeneratorUsesFallback(t *testing.T) {
	e := NewEvaluator(nil, nil)

	ev := e.Evaluate(context.Background(), Request{Question: "q", Answer: "short"})

	assert.True(t, ev.Fallback)
	assert.Equal(t, 3.0, ev.Score)
}

func TestEvaluateAppendsHistoryInOrder(t *testing.T) {
	gen := &mockGenerator{responses: []string{
		`{"score": 8.0, "is_correct": true}`,
		`{"score": 4.0}`,
	}}
	e := NewEvaluator(gen, nil)

	e.Evaluate(context.Background(), Request{Question: "first?", Answer: "a1"})
	e.Evaluate(context.Background(), Request{Question: "second?", Answer: "a2"})

	history := e.History()
	require.Len(t, history, 2)
	assert.Equal(t, "first?", history[0].Question)
	assert.Equal(t, "second?", history[1].Question)
	assert.Equal(t, 8.0, history[0].Score)
	assert.Equal(t, 4.0, history[1].Score)
}

func TestEvaluateDefaultsDifficulty(t *testing.T) {
	gen := &mockGenerator{responses: []string{`{"score": 5.0}`}}
	e := NewEvaluator(gen, nil)

	ev := e.Evaluate(context.Background(), Request{Question: "q", Answer: "a"})

	assert.Equal(t, DifficultyMedium, ev.DifficultyLevel)
}

func TestBuildPromptIncludesRequestFields(t *testing.T) {
	gen := &mockGenerator{responses: []string{`{"score": 5.0}`}}
	e := NewEvaluator(gen, nil)

	e.Evaluate(context.Background(), Request{
		Question:         "What is a goroutine?",
		Answer:           "A lightweight thread.",
		ExpectedKeywords: []string{"scheduler", "stack"},
		DifficultyLevel:  DifficultyEasy,
		Context:          "Position: Backend Engineer",
	})

	require.Len(t, gen.prompts, 1)
	prompt := gen.prompts[0]
	assert.Contains(t, prompt, "What is a goroutine?")
	assert.Contains(t, prompt, "A lightweight thread.")
	assert.Contains(t, prompt, "scheduler")
	assert.Contains(t, prompt, "Position: Backend Engineer")
}
