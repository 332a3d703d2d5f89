package dto

import "encoding/json"

type TokenRequest struct {
	Room             string          `json:"room"`
	Identity         string          `json:"identity"`
	Metadata         string          `json:"metadata,omitempty"`
	CandidateDetails json.RawMessage `json:"candidateDetails,omitempty"`
}

type TokenResponse struct {
	URL      string `json:"url"`
	Token    string `json:"token"`
	Identity string `json:"identity"`
	Room     string `json:"room"`
}

type StartInterviewRequest struct {
	RoomName    string `json:"roomName"`
	SessionID   string `json:"sessionId,omitempty"`
	CandidateID string `json:"candidateId,omitempty"`
	JobID       string `json:"jobId,omitempty"`
}

type EvaluateAnswerRequest struct {
	RoomID           string   `json:"room_id"`
	Question         string   `json:"question"`
	Answer           string   `json:"answer"`
	CandidateID      string   `json:"candidate_id,omitempty"`
	QuestionNumber   int      `json:"question_number,omitempty"`
	ExpectedKeywords []string `json:"expected_keywords,omitempty"`
	DifficultyLevel  string   `json:"difficulty_level,omitempty"`
}

type CompleteInterviewRequest struct {
	RoomID      string `json:"room_id"`
	SessionID   string `json:"session_id,omitempty"`
	CandidateID string `json:"candidate_id,omitempty"`
}

type NextQuestionRequest struct {
	RoomID string `json:"room_id"`
}
