// Package tracker records the sequence of questions and answers in an
// interview, independent of any scoring. The log is append-only; callers
// decide when tracking stops.
package tracker

import (
	"math"
	"sync"
	"time"
)

const (
	EntryQuestion = "question"
	EntryAnswer   = "answer"
)

// AnswerEvaluation is the scoring summary embedded in an answer entry.
type AnswerEvaluation struct {
	Score     float64 `json:"score"`
	IsCorrect bool    `json:"is_correct"`
	IsPartial bool    `json:"is_partial"`
}

// Entry is one tracked transcript event.
type Entry struct {
	Type           string            `json:"type"`
	Content        string            `json:"content"`
	Number         int               `json:"number,omitempty"`
	QuestionNumber int               `json:"question_number,omitempty"`
	Timestamp      time.Time         `json:"timestamp"`
	Evaluation     *AnswerEvaluation `json:"evaluation,omitempty"`
}

// Stats is a point-in-time progress snapshot. ResponseRate here is simply
// answers/questions*100 and is unrelated to the performance summary's
// identically named 0-100 metric.
type Stats struct {
	QuestionsAsked  int     `json:"questions_asked"`
	AnswersReceived int     `json:"answers_received"`
	DurationSeconds int     `json:"duration_seconds"`
	ResponseRate    float64 `json:"response_rate"`
}

// Tracker is the append-only question/answer log for one session. Safe for
// concurrent readers taking snapshots while the session goroutine appends.
type Tracker struct {
	mu              sync.Mutex
	questionsAsked  int
	answersReceived int
	startTime       time.Time
	entries         []Entry
	currentQuestion string
}

func New() *Tracker {
	return &Tracker{startTime: time.Now()}
}

// AddQuestion records a question and returns its 1-based sequence number.
func (t *Tracker) AddQuestion(question string) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.questionsAsked++
	t.currentQuestion = question
	t.entries = append(t.entries, Entry{
		Type:      EntryQuestion,
		Content:   question,
		Number:    t.questionsAsked,
		Timestamp: time.Now(),
	})
	return t.questionsAsked
}

// AddAnswer records a candidate answer, optionally with its evaluation
// summary. The answer is attributed to the most recent question.
func (t *Tracker) AddAnswer(answer string, eval *AnswerEvaluation) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.answersReceived++
	t.entries = append(t.entries, Entry{
		Type:           EntryAnswer,
		Content:        answer,
		QuestionNumber: t.questionsAsked,
		Timestamp:      time.Now(),
		Evaluation:     eval,
	})
}

// CurrentQuestion returns the text of the most recently recorded question,
// or "" when none has been asked yet.
func (t *Tracker) CurrentQuestion() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.currentQuestion
}

// CurrentStats reports progress since the tracker was constructed.
func (t *Tracker) CurrentStats() Stats {
	t.mu.Lock()
	defer t.mu.Unlock()

	var rate float64
	if t.questionsAsked > 0 {
		rate = math.Round(float64(t.answersReceived)/float64(t.questionsAsked)*100*10) / 10
	}
	return Stats{
		QuestionsAsked:  t.questionsAsked,
		AnswersReceived: t.answersReceived,
		DurationSeconds: int(time.Since(t.startTime).Seconds()),
		ResponseRate:    rate,
	}
}

// Transcript returns a copy of the recorded entries in order.
func (t *Tracker) Transcript() []Entry {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}
