package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fadilmartias/interview-agent/internal/config"
	"github.com/fadilmartias/interview-agent/internal/dto"
	"github.com/fadilmartias/interview-agent/internal/evaluation"
	"github.com/fadilmartias/interview-agent/internal/interview"
	"github.com/fadilmartias/interview-agent/internal/middleware"
	"github.com/fadilmartias/interview-agent/internal/repository"
	"github.com/fadilmartias/interview-agent/internal/room"
	"github.com/fadilmartias/interview-agent/internal/token"
	"github.com/fadilmartias/interview-agent/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

type InterviewHandler struct {
	manager *interview.Manager
	hub     *room.Hub
	reports *repository.SessionReportRepository
	log     *zap.Logger
}

func NewInterviewHandler(manager *interview.Manager, hub *room.Hub, reports *repository.SessionReportRepository, log *zap.Logger) *InterviewHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &InterviewHandler{manager: manager, hub: hub, reports: reports, log: log}
}

func (h *InterviewHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/token", h.Token)
	app.Post("/start-interview", h.StartInterview)
	app.Post("/agent/candidate-details", h.StoreCandidateDetails)
	app.Get("/agent/candidate-details/:room", h.GetCandidateDetails)
	app.Post("/api/resume", h.UploadResume)
	app.Post("/api/evaluate-answer", middleware.RateLimiter(10, time.Minute), h.EvaluateAnswer)
	app.Post("/api/next-question", h.NextQuestion)
	app.Post("/api/complete-interview", h.CompleteInterview)
	app.Get("/api/interview-stats/:room", h.InterviewStats)
	app.Get("/api/session-report/:room", h.SessionReport)
	app.Get("/ws/interview/:room", h.WebSocketUpgrade, websocket.New(h.HandleWebSocket))
}

// Token issues a room-access token. Candidate details from the request body
// or a prior /agent/candidate-details call travel inside the token metadata;
// when neither was provided the token is issued with defaults rather than
// rejected.
func (h *InterviewHandler) Token(c *fiber.Ctx) error {
	var req dto.TokenRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid token request",
		}, err)
	}
	if req.Room == "" || req.Identity == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "room and identity are required",
		})
	}

	if len(req.CandidateDetails) > 0 {
		h.manager.StoreCandidateDetails(req.Room, interview.ParseCandidateDetails(req.CandidateDetails))
	}

	metadata := req.Metadata
	if details, ok := h.manager.CandidateDetails(req.Room); ok {
		if encoded, err := json.Marshal(details); err == nil {
			metadata = string(encoded)
		}
	}

	roomConfig := config.LoadRoomConfig()
	jwt, err := token.Generate(roomConfig, req.Identity, req.Room, metadata)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "token generation failed",
		}, err)
	}

	h.log.Info("token issued", zap.String("room", req.Room), zap.String("identity", req.Identity))
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Token generated",
		Data: dto.TokenResponse{
			URL:      roomConfig.URL,
			Token:    jwt,
			Identity: req.Identity,
			Room:     req.Room,
		},
	})
}

// StartInterview creates the session for a room and asks the first question.
func (h *InterviewHandler) StartInterview(c *fiber.Ctx) error {
	var req dto.StartInterviewRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid start request",
		}, err)
	}
	if req.RoomName == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "roomName is required",
		})
	}

	session := h.manager.StartSession(req.RoomName)
	question, number, _ := session.AskNextQuestion(c.Context())

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Interview session started",
		Data: fiber.Map{
			"sessionId":       session.ID,
			"roomName":        req.RoomName,
			"greeting":        interview.GreetingMessage,
			"question":        question.Text,
			"question_number": number,
		},
	})
}

// StoreCandidateDetails stashes candidate metadata for a room before the
// token is requested.
func (h *InterviewHandler) StoreCandidateDetails(c *fiber.Ctx) error {
	body := c.Body()
	roomName := gjson.GetBytes(body, "roomName").String()
	if roomName == "" {
		roomName = gjson.GetBytes(body, "room_name").String()
	}
	if roomName == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "roomName is required",
		})
	}

	details := interview.ParseCandidateDetails(body)
	h.manager.StoreCandidateDetails(roomName, details)

	h.log.Info("candidate details stored",
		zap.String("room", roomName),
		zap.String("candidate", details.CandidateName))
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Candidate details stored",
		Data:    fiber.Map{"roomName": roomName},
	})
}

func (h *InterviewHandler) GetCandidateDetails(c *fiber.Ctx) error {
	roomName := c.Params("room")
	details, ok := h.manager.CandidateDetails(roomName)
	if !ok {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "candidate details not found",
		})
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get candidate details",
		Data:    details,
	})
}

// UploadResume extracts text from an uploaded resume PDF and folds it into
// the room's candidate summary.
func (h *InterviewHandler) UploadResume(c *fiber.Ctx) error {
	roomName := c.FormValue("roomName")
	if roomName == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "roomName is required",
		})
	}

	file, err := c.FormFile("resume")
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "resume file is required",
		}, err)
	}
	if file.Size > 5*1024*1024 {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "resume file size is too large (max 5MB)",
		})
	}
	if strings.ToLower(filepath.Ext(file.Filename)) != ".pdf" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "unsupported resume file type",
		})
	}

	savePath := filepath.Join("./uploads/resume/", file.Filename)
	if err := c.SaveFile(file, savePath); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "cannot save resume file",
		}, err)
	}

	content, err := util.ExtractPDFText(savePath)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to extract resume text",
		}, err)
	}

	details, ok := h.manager.CandidateDetails(roomName)
	if !ok {
		details = interview.ParseCandidateDetails(nil)
	}
	details.Summary = content
	h.manager.StoreCandidateDetails(roomName, details)

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Resume processed",
		Data:    fiber.Map{"roomName": roomName, "characters": len(content)},
	})
}

// EvaluateAnswer scores one answer for a room's session.
func (h *InterviewHandler) EvaluateAnswer(c *fiber.Ctx) error {
	var req dto.EvaluateAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid evaluation request",
		}, err)
	}
	if req.RoomID == "" || req.Answer == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "room_id and answer are required",
		})
	}

	session := h.manager.StartSession(req.RoomID)
	ev := session.EvaluateAnswer(c.Context(), req.Question, req.Answer, req.ExpectedKeywords, req.DifficultyLevel)

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Answer evaluated",
		Data: fiber.Map{
			"evaluation":      ev,
			"room_id":         req.RoomID,
			"question_number": req.QuestionNumber,
		},
	})
}

// NextQuestion asks the session's next question and returns it.
func (h *InterviewHandler) NextQuestion(c *fiber.Ctx) error {
	var req dto.NextQuestionRequest
	if err := c.BodyParser(&req); err != nil || req.RoomID == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "room_id is required",
		}, err)
	}

	session := h.manager.StartSession(req.RoomID)
	question, number, ok := session.AskNextQuestion(c.Context())
	if !ok {
		return util.SuccessResponse(c, util.SuccessResponseFormat{
			Message: "Question bank exhausted",
			Data:    fiber.Map{"closing": interview.ClosingMessage},
		})
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Next question",
		Data: fiber.Map{
			"question":          question.Text,
			"question_number":   number,
			"category":          question.Category,
			"difficulty_level":  question.DifficultyLevel,
			"expected_keywords": question.ExpectedKeywords,
		},
	})
}

// CompleteInterview finalizes the session and returns the performance
// summary in the shape the frontend consumes.
func (h *InterviewHandler) CompleteInterview(c *fiber.Ctx) error {
	var req dto.CompleteInterviewRequest
	if err := c.BodyParser(&req); err != nil || req.RoomID == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "room_id is required",
		}, err)
	}

	summary, ok := h.manager.CompleteSession(c.Context(), req.RoomID)
	if !ok {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: fmt.Sprintf("no active session for room %s", req.RoomID),
		})
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Interview completed",
		Data: fiber.Map{
			"room_id": req.RoomID,
			"score":   summary.TotalScore,
			"performance": fiber.Map{
				"total_score":     summary.TotalScore,
				"correct_answers": summary.CorrectAnswers,
				"wrong_answers":   summary.WrongAnswers,
				"partial_answers": summary.PartialAnswers,
				"total_questions": summary.TotalQuestions,
				"strengths":       summary.Strengths,
				"weaknesses":      summary.Weaknesses,
				"recommendation":  summary.Recommendation,
			},
			"analysis": summary.Metrics,
		},
	})
}

// InterviewStats reports real-time progress for a room.
func (h *InterviewHandler) InterviewStats(c *fiber.Ctx) error {
	roomID := c.Params("room")
	session, ok := h.manager.Session(roomID)
	if !ok {
		return util.SuccessResponse(c, util.SuccessResponseFormat{
			Message: "No active session",
			Data: fiber.Map{
				"room_id":          roomID,
				"questions_asked":  0,
				"answers_received": 0,
				"current_score":    0,
			},
		})
	}

	stats := session.Stats()
	current := evaluation.Summarize(session.History()).TotalScore
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get interview stats",
		Data: fiber.Map{
			"room_id":          roomID,
			"questions_asked":  stats.QuestionsAsked,
			"answers_received": stats.AnswersReceived,
			"duration_seconds": stats.DurationSeconds,
			"response_rate":    stats.ResponseRate,
			"current_score":    current,
		},
	})
}

// SessionReport returns the persisted report for a room.
func (h *InterviewHandler) SessionReport(c *fiber.Ctx) error {
	roomID := c.Params("room")
	report, err := h.reports.FindReportByRoomID(roomID)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "session report not found",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get session report",
		Data:    report,
	})
}

// WebSocketUpgrade gates the websocket route.
func (h *InterviewHandler) WebSocketUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// HandleWebSocket runs the per-connection loop: the client joins the room
// hub, candidate responses drive the session and end_interview finalizes it.
func (h *InterviewHandler) HandleWebSocket(c *websocket.Conn) {
	roomID := c.Params("room")
	client := h.hub.Join(roomID, c)
	ctx := context.Background()
	defer func() {
		h.hub.Leave(roomID, client)
		_ = c.Close()
	}()

	for {
		_, data, err := c.ReadMessage()
		if err != nil {
			return
		}

		msgType := gjson.GetBytes(data, "type").String()
		switch msgType {
		case "ping":
			_ = c.WriteJSON(fiber.Map{"type": "pong"})
		case "join":
			session := h.manager.StartSession(roomID)
			_ = c.WriteJSON(fiber.Map{
				"type":      "agent_joined",
				"message":   "AI Interviewer has joined",
				"sessionId": session.ID,
				"greeting":  interview.GreetingMessage,
			})
			session.AskNextQuestion(ctx)
		case "agent_utterance":
			if text := gjson.GetBytes(data, "text").String(); text != "" {
				h.manager.StartSession(roomID).RecordAgentUtterance(text)
			}
		case "candidate_response":
			answer := gjson.GetBytes(data, "answer").String()
			if answer == "" {
				continue
			}
			session := h.manager.StartSession(roomID)
			session.SubmitAnswer(ctx, answer)
			if _, _, ok := session.AskNextQuestion(ctx); !ok {
				h.hub.Broadcast(roomID, fiber.Map{"type": "closing", "message": interview.ClosingMessage})
			}
		case "end_interview":
			h.manager.CompleteSession(ctx, roomID)
			return
		default:
			h.log.Debug("unknown websocket message", zap.String("type", msgType))
		}
	}
}
