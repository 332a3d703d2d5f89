package interview

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/fadilmartias/interview-agent/internal/evaluation"
	"github.com/fadilmartias/interview-agent/internal/model"
	"github.com/fadilmartias/interview-agent/internal/room"
	"github.com/fadilmartias/interview-agent/internal/tracker"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Session drives one interview. It owns its evaluator and tracker; nothing
// here is shared between rooms, so concurrent sessions never bleed state
// into each other.
type Session struct {
	ID        string
	RoomID    string
	Candidate CandidateDetails
	StartTime time.Time

	evaluator *evaluation.Evaluator
	tracker   *tracker.Tracker
	notifier  *room.Notifier
	picker    *Picker
	log       *zap.Logger

	mu         sync.Mutex
	pending    *model.Question
	lastAnswer string
}

func newSession(roomID string, candidate CandidateDetails, ev *evaluation.Evaluator, picker *Picker, notifier *room.Notifier, log *zap.Logger) *Session {
	return &Session{
		ID:        uuid.NewString(),
		RoomID:    roomID,
		Candidate: candidate,
		StartTime: time.Now(),
		evaluator: ev,
		tracker:   tracker.New(),
		notifier:  notifier,
		picker:    picker,
		log:       log,
	}
}

// IsQuestion reports whether an agent utterance should be treated as an
// interview question. Trailing "?" is a known-fragile heuristic carried over
// from the conversation flow this replaces.
func IsQuestion(utterance string) bool {
	return strings.HasSuffix(strings.TrimSpace(utterance), "?")
}

// AskNextQuestion picks and records the next question, steering selection by
// the candidate's last answer (or their skills for the opener). Returns the
// question and its sequence number, or false when the bank is exhausted.
func (s *Session) AskNextQuestion(ctx context.Context) (model.Question, int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	hint := s.lastAnswer
	if hint == "" {
		hint = s.Candidate.SkillsText()
	}
	q, ok := s.picker.Next(ctx, hint)
	if !ok {
		return model.Question{}, 0, false
	}

	number := s.tracker.AddQuestion(q.Text)
	s.pending = &q
	s.notifier.SendQuestionAsked(s.RoomID, q.Text, number, q.ExpectedKeywords)

	s.log.Info("question asked",
		zap.String("room_id", s.RoomID),
		zap.Int("number", number),
		zap.String("category", q.Category))
	return q, number, true
}

// RecordAgentUtterance tracks a spoken agent line. Only utterances that look
// like questions enter the transcript as such; acknowledgments are ignored.
func (s *Session) RecordAgentUtterance(text string) {
	if !IsQuestion(text) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	number := s.tracker.AddQuestion(text)
	s.pending = &model.Question{Text: text, DifficultyLevel: evaluation.DifficultyMedium}
	s.notifier.SendQuestionAsked(s.RoomID, text, number, nil)
}

// SubmitAnswer evaluates the candidate's answer to the pending question. An
// answer arriving with no question on record is tracked but not evaluated;
// the session continues normally.
func (s *Session) SubmitAnswer(ctx context.Context, answer string) (evaluation.Evaluation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending == nil {
		s.log.Warn("answer received with no pending question, skipping evaluation",
			zap.String("room_id", s.RoomID))
		s.tracker.AddAnswer(answer, nil)
		s.lastAnswer = answer
		s.notifier.SendPerformanceUpdate(s.RoomID, s.tracker.CurrentStats())
		return evaluation.Evaluation{}, false
	}

	q := *s.pending
	ev := s.evaluate(ctx, q.Text, answer, q.ExpectedKeywords, q.DifficultyLevel)
	s.pending = nil
	return ev, true
}

// EvaluateAnswer scores an explicit question/answer pair, as supplied by the
// evaluation API. A question not yet on record is tracked first.
func (s *Session) EvaluateAnswer(ctx context.Context, question, answer string, expectedKeywords []string, difficulty string) evaluation.Evaluation {
	s.mu.Lock()
	defer s.mu.Unlock()

	if question != "" && question != s.tracker.CurrentQuestion() {
		number := s.tracker.AddQuestion(question)
		s.notifier.SendQuestionAsked(s.RoomID, question, number, expectedKeywords)
	}
	s.pending = nil
	return s.evaluate(ctx, question, answer, expectedKeywords, difficulty)
}

// evaluate runs the scoring pipeline for one answer. Caller holds s.mu.
func (s *Session) evaluate(ctx context.Context, question, answer string, expectedKeywords []string, difficulty string) evaluation.Evaluation {
	ev := s.evaluator.Evaluate(ctx, evaluation.Request{
		Question:         question,
		Answer:           answer,
		ExpectedKeywords: expectedKeywords,
		DifficultyLevel:  difficulty,
		Context:          "Position: " + s.Candidate.JobTitle,
	})

	s.tracker.AddAnswer(answer, &tracker.AnswerEvaluation{
		Score:     ev.Score,
		IsCorrect: ev.IsCorrect,
		IsPartial: ev.IsPartial,
	})
	s.lastAnswer = answer

	stats := s.tracker.CurrentStats()
	s.notifier.SendAnswerEvaluation(s.RoomID, ev, stats.QuestionsAsked)
	s.notifier.SendResponseAnalysis(s.RoomID, ev)
	s.notifier.SendPerformanceUpdate(s.RoomID, stats)

	return ev
}

// Complete summarizes the session and broadcasts the final results.
func (s *Session) Complete() (evaluation.PerformanceSummary, []tracker.Entry) {
	summary := evaluation.Summarize(s.evaluator.History())
	transcript := s.tracker.Transcript()
	s.notifier.SendInterviewComplete(s.RoomID, summary, transcript)

	s.log.Info("interview complete",
		zap.String("room_id", s.RoomID),
		zap.Float64("total_score", summary.TotalScore),
		zap.Int("total_questions", summary.TotalQuestions))
	return summary, transcript
}

// Stats returns the tracker's current progress snapshot.
func (s *Session) Stats() tracker.Stats {
	return s.tracker.CurrentStats()
}

// History returns the evaluations recorded so far.
func (s *Session) History() []evaluation.Evaluation {
	return s.evaluator.History()
}

// Transcript returns a snapshot of the tracked entries.
func (s *Session) Transcript() []tracker.Entry {
	return s.tracker.Transcript()
}
