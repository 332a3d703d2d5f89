package interview

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/fadilmartias/interview-agent/internal/evaluation"
	"github.com/fadilmartias/interview-agent/internal/model"
	"github.com/fadilmartias/interview-agent/internal/room"
	"github.com/fadilmartias/interview-agent/internal/service"
	"go.uber.org/zap"
)

// ReportStore persists completed session reports.
type ReportStore interface {
	CreateReport(report *model.SessionReport) error
}

// TranscriptSaver delivers the final transcript to the report backend.
type TranscriptSaver interface {
	Save(interviewID, roomID string, messages []service.TranscriptMessage) error
}

// Manager owns the active sessions, keyed by room. Each session gets its own
// evaluator and tracker at creation time; there is no process-wide evaluator.
type Manager struct {
	llm         evaluation.TextGenerator
	embedder    Embedder
	questions   QuestionSource
	reports     ReportStore
	transcripts TranscriptSaver
	notifier    *room.Notifier
	log         *zap.Logger

	mu       sync.Mutex
	sessions map[string]*Session
	details  map[string]CandidateDetails
}

func NewManager(llm evaluation.TextGenerator, embedder Embedder, questions QuestionSource, reports ReportStore, transcripts TranscriptSaver, notifier *room.Notifier, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		llm:         llm,
		embedder:    embedder,
		questions:   questions,
		reports:     reports,
		transcripts: transcripts,
		notifier:    notifier,
		log:         log,
		sessions:    make(map[string]*Session),
		details:     make(map[string]CandidateDetails),
	}
}

// StoreCandidateDetails stashes metadata for a room before its session
// starts. The token endpoint and session creation both read from here.
func (m *Manager) StoreCandidateDetails(roomID string, details CandidateDetails) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.details[roomID] = details
}

// CandidateDetails returns the stored metadata for a room, if any.
func (m *Manager) CandidateDetails(roomID string) (CandidateDetails, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.details[roomID]
	return d, ok
}

// StartSession returns the room's session, creating it on first use with the
// stored candidate details (or defaults when none were provided).
func (m *Manager) StartSession(roomID string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[roomID]; ok {
		return s
	}

	candidate, ok := m.details[roomID]
	if !ok {
		candidate = ParseCandidateDetails(nil)
	}

	ev := evaluation.NewEvaluator(m.llm, m.log)
	picker := NewPicker(m.questions, m.embedder, m.log)
	s := newSession(roomID, candidate, ev, picker, m.notifier, m.log)
	m.sessions[roomID] = s

	m.log.Info("session started",
		zap.String("room_id", roomID),
		zap.String("session_id", s.ID),
		zap.String("candidate", candidate.CandidateName))
	return s
}

// Session returns the active session for a room, if one exists.
func (m *Manager) Session(roomID string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[roomID]
	return s, ok
}

// CompleteSession finalizes a room's interview: summarize, persist the
// report, hand the transcript off for best-effort delivery and drop the
// session. Persistence failures are logged; the summary is returned
// regardless.
func (m *Manager) CompleteSession(ctx context.Context, roomID string) (evaluation.PerformanceSummary, bool) {
	m.mu.Lock()
	s, ok := m.sessions[roomID]
	if ok {
		delete(m.sessions, roomID)
		delete(m.details, roomID)
	}
	m.mu.Unlock()
	if !ok {
		return evaluation.PerformanceSummary{}, false
	}

	summary, transcript := s.Complete()

	if m.reports != nil {
		performanceJSON, _ := json.Marshal(summary)
		transcriptJSON, _ := json.Marshal(transcript)
		report := &model.SessionReport{
			RoomID:         roomID,
			CandidateID:    s.Candidate.CandidateID,
			CandidateName:  s.Candidate.CandidateName,
			CandidateEmail: s.Candidate.CandidateEmail,
			JobID:          s.Candidate.JobID,
			TotalScore:     summary.TotalScore,
			Performance:    string(performanceJSON),
			Transcript:     string(transcriptJSON),
			StartTime:      s.StartTime,
			EndTime:        time.Now(),
		}
		if err := m.reports.CreateReport(report); err != nil {
			m.log.Error("session report persist failed", zap.String("room_id", roomID), zap.Error(err))
		}
	}

	if m.transcripts != nil {
		messages := service.TranscriptFromEntries(transcript)
		go func() {
			// Fire and forget; Save logs its own failures.
			_ = m.transcripts.Save(s.ID, roomID, messages)
		}()
	}

	return summary, true
}
