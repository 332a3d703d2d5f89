package service

import (
	"fmt"
	"time"

	"github.com/fadilmartias/interview-agent/internal/config"
	"github.com/fadilmartias/interview-agent/internal/tracker"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TranscriptMessage is one line of the delivered transcript.
type TranscriptMessage struct {
	Sender    string `json:"sender"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}

// TranscriptService posts final transcripts to the report backend. Delivery
// is best effort: failures are logged and swallowed so session teardown is
// never blocked on the backend being up.
type TranscriptService struct {
	client *resty.Client
	apiURL string
	log    *zap.Logger
}

func NewTranscriptService(log *zap.Logger) *TranscriptService {
	if log == nil {
		log = zap.NewNop()
	}
	return &TranscriptService{
		client: resty.New().SetTimeout(10 * time.Second),
		apiURL: config.LoadTranscriptConfig().APIURL,
		log:    log,
	}
}

// Save posts the transcript. A missing interview ID gets a generated UUID;
// an unconfigured endpoint or empty transcript is a silent no-op.
func (s *TranscriptService) Save(interviewID, roomID string, messages []TranscriptMessage) error {
	if s.apiURL == "" {
		s.log.Debug("transcript endpoint not configured, skipping save")
		return nil
	}
	if len(messages) == 0 {
		s.log.Warn("no messages in transcript, skipping save", zap.String("room_id", roomID))
		return nil
	}
	if interviewID == "" {
		interviewID = uuid.NewString()
	}

	payload := map[string]any{
		"interview_id": interviewID,
		"room_id":      roomID,
		"transcript":   messages,
	}

	resp, err := s.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(s.apiURL)
	if err != nil {
		s.log.Error("transcript save failed", zap.String("room_id", roomID), zap.Error(err))
		return err
	}
	if resp.StatusCode() != 200 {
		s.log.Error("transcript save rejected",
			zap.String("room_id", roomID),
			zap.Int("status", resp.StatusCode()))
		return fmt.Errorf("transcript save returned status %d", resp.StatusCode())
	}

	s.log.Info("transcript saved",
		zap.String("interview_id", interviewID),
		zap.Int("messages", len(messages)))
	return nil
}

// TranscriptFromEntries converts tracker entries into delivery messages:
// questions are attributed to the agent, answers to the candidate.
func TranscriptFromEntries(entries []tracker.Entry) []TranscriptMessage {
	out := make([]TranscriptMessage, 0, len(entries))
	for _, e := range entries {
		sender := "candidate"
		if e.Type == tracker.EntryQuestion {
			sender = "agent"
		}
		out = append(out, TranscriptMessage{
			Sender:    sender,
			Text:      e.Content,
			Timestamp: e.Timestamp.Unix(),
		})
	}
	return out
}
