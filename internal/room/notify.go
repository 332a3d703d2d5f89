package room

import (
	"time"

	"github.com/fadilmartias/interview-agent/internal/evaluation"
	"github.com/fadilmartias/interview-agent/internal/tracker"
	"go.uber.org/zap"
)

// Notifier broadcasts typed interview events into a room. Every send is fire
// and forget; a failed delivery never unwinds evaluation or tracking.
type Notifier struct {
	hub *Hub
	log *zap.Logger
	now func() time.Time
}

func NewNotifier(hub *Hub, log *zap.Logger) *Notifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &Notifier{hub: hub, log: log, now: time.Now}
}

func (n *Notifier) send(roomName string, message map[string]any) {
	if n.hub == nil {
		return
	}
	n.hub.Broadcast(roomName, message)
}

// SendAnswerEvaluation publishes the full evaluation of one answer.
func (n *Notifier) SendAnswerEvaluation(roomName string, ev evaluation.Evaluation, questionNumber int) {
	msg := answerEvaluationMessage(ev, questionNumber, n.now())
	n.log.Debug("sending answer evaluation", zap.String("room", roomName), zap.Float64("score", ev.Score))
	n.send(roomName, msg)
}

// SendResponseAnalysis publishes the quick classification subset.
func (n *Notifier) SendResponseAnalysis(roomName string, ev evaluation.Evaluation) {
	n.send(roomName, responseAnalysisMessage(ev, n.now()))
}

// SendQuestionAsked announces a newly asked question.
func (n *Notifier) SendQuestionAsked(roomName, question string, questionNumber int, expectedKeywords []string) {
	n.send(roomName, questionAskedMessage(question, questionNumber, expectedKeywords, n.now()))
}

// SendPerformanceUpdate publishes the tracker's current stats.
func (n *Notifier) SendPerformanceUpdate(roomName string, stats tracker.Stats) {
	n.send(roomName, performanceUpdateMessage(stats, n.now()))
}

// SendInterviewComplete publishes the final summary and transcript.
func (n *Notifier) SendInterviewComplete(roomName string, summary evaluation.PerformanceSummary, transcript []tracker.Entry) {
	n.send(roomName, interviewCompleteMessage(summary, transcript, n.now()))
}

func answerEvaluationMessage(ev evaluation.Evaluation, questionNumber int, ts time.Time) map[string]any {
	msg := map[string]any{
		"type": "answer_evaluation",
		"evaluation": map[string]any{
			"is_correct":       ev.IsCorrect,
			"is_partial":       ev.IsPartial,
			"score":            ev.Score,
			"accuracy":         ev.Accuracy,
			"completeness":     ev.Completeness,
			"relevance":        ev.Relevance,
			"confidence":       ev.Confidence,
			"feedback":         ev.Feedback,
			"keywords_matched": ev.KeywordsMatched,
			"keywords_missed":  ev.KeywordsMissed,
			"strengths":        ev.Strengths,
			"improvements":     ev.Improvements,
		},
		"timestamp": ts.Format(time.RFC3339),
	}
	if questionNumber > 0 {
		msg["question_number"] = questionNumber
	}
	return msg
}

func responseAnalysisMessage(ev evaluation.Evaluation, ts time.Time) map[string]any {
	return map[string]any{
		"type": "response_analysis",
		"analysis": map[string]any{
			"is_correct": ev.IsCorrect,
			"is_partial": ev.IsPartial,
			"score":      ev.Score,
			"feedback":   ev.Feedback,
		},
		"timestamp": ts.Format(time.RFC3339),
	}
}

func questionAskedMessage(question string, questionNumber int, expectedKeywords []string, ts time.Time) map[string]any {
	msg := map[string]any{
		"type":            "question_asked",
		"question":        question,
		"question_number": questionNumber,
		"timestamp":       ts.Format(time.RFC3339),
	}
	if len(expectedKeywords) > 0 {
		msg["expected_keywords"] = expectedKeywords
	}
	return msg
}

func performanceUpdateMessage(stats tracker.Stats, ts time.Time) map[string]any {
	return map[string]any{
		"type":      "performance_update",
		"stats":     stats,
		"timestamp": ts.Format(time.RFC3339),
	}
}

func interviewCompleteMessage(summary evaluation.PerformanceSummary, transcript []tracker.Entry, ts time.Time) map[string]any {
	msg := map[string]any{
		"type":  "interview_complete",
		"score": summary.TotalScore,
		"performance": map[string]any{
			"total_score":     summary.TotalScore,
			"correct_answers": summary.CorrectAnswers,
			"wrong_answers":   summary.WrongAnswers,
			"partial_answers": summary.PartialAnswers,
			"total_questions": summary.TotalQuestions,
			"strengths":       summary.Strengths,
			"weaknesses":      summary.Weaknesses,
			"recommendation":  summary.Recommendation,
		},
		"analysis":  summary.Metrics,
		"timestamp": ts.Format(time.RFC3339),
	}
	if len(transcript) > 0 {
		msg["transcript"] = transcript
	}
	return msg
}
