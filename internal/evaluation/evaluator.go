package evaluation

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// DefaultTimeout bounds one model call. The conversation cannot stall on a
// slow evaluation, so on expiry the keyword fallback runs instead.
const DefaultTimeout = 20 * time.Second

// TextGenerator is the single suspending dependency of the evaluator.
// *service.GeminiService satisfies it.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

var errNoGenerator = errors.New("no text generator configured")

// Evaluator scores answers and owns the append-only evaluation history for
// one interview session. It is not safe for concurrent use; every session
// owns its own instance.
type Evaluator struct {
	llm     TextGenerator
	timeout time.Duration
	history []Evaluation
	log     *zap.Logger
}

// NewEvaluator creates an evaluator for a single session. A nil generator is
// allowed; every evaluation then takes the fallback path.
func NewEvaluator(llm TextGenerator, log *zap.Logger) *Evaluator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Evaluator{llm: llm, timeout: DefaultTimeout, log: log}
}

// Evaluate scores one answer. It never fails outward: any model error or
// unparsable output degrades to the deterministic keyword fallback, and the
// result is appended to the history either way.
func (e *Evaluator) Evaluate(ctx context.Context, req Request) Evaluation {
	if req.DifficultyLevel == "" {
		req.DifficultyLevel = DifficultyMedium
	}

	ev, err := e.modelEvaluation(ctx, req)
	if err != nil {
		e.log.Warn("model evaluation failed, using keyword fallback",
			zap.Error(err),
			zap.Int("expected_keywords", len(req.ExpectedKeywords)))
		ev = FallbackEvaluation(req)
	}

	ev.Question = req.Question
	ev.Answer = req.Answer
	ev.Timestamp = time.Now()
	ev.DifficultyLevel = req.DifficultyLevel
	ev.normalize()

	e.history = append(e.history, ev)

	e.log.Info("answer evaluated",
		zap.Float64("score", ev.Score),
		zap.Bool("is_correct", ev.IsCorrect),
		zap.Bool("fallback", ev.Fallback))

	return ev
}

func (e *Evaluator) modelEvaluation(ctx context.Context, req Request) (Evaluation, error) {
	if e.llm == nil {
		return Evaluation{}, errNoGenerator
	}

	tctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	raw, err := e.llm.GenerateText(tctx, buildPrompt(req))
	if err != nil {
		return Evaluation{}, err
	}

	ev, ok := parseEvaluation(raw)
	if !ok {
		return Evaluation{}, errors.New("unparsable model output")
	}
	return ev, nil
}

// History returns the evaluations recorded so far, oldest first. The slice
// is append-only; callers may read a prefix at any time.
func (e *Evaluator) History() []Evaluation {
	return e.history
}

// parseEvaluation reads the model's JSON answer. Individual missing fields
// default to the zero template; only a response that is not a JSON object at
// all is reported as unparsable.
func parseEvaluation(raw string) (Evaluation, bool) {
	doc := stripFences(raw)
	if !gjson.Valid(doc) {
		return Evaluation{}, false
	}
	r := gjson.Parse(doc)
	if !r.IsObject() {
		return Evaluation{}, false
	}

	ev := Evaluation{
		IsCorrect:            r.Get("is_correct").Bool(),
		IsPartial:            r.Get("is_partial").Bool(),
		Score:                clampScore(r.Get("score").Float()),
		Accuracy:             int(r.Get("evaluation.accuracy").Int()),
		Completeness:         int(r.Get("evaluation.completeness").Int()),
		Relevance:            int(r.Get("evaluation.relevance").Int()),
		Confidence:           r.Get("evaluation.confidence").String(),
		Feedback:             r.Get("feedback").String(),
		KeywordsMatched:      stringSlice(r.Get("keywords_matched")),
		KeywordsMissed:       stringSlice(r.Get("keywords_missed")),
		Strengths:            stringSlice(r.Get("strengths")),
		Improvements:         stringSlice(r.Get("improvements")),
		TechnicalDepth:       int(r.Get("technical_depth").Int()),
		CommunicationQuality: int(r.Get("communication_quality").Int()),
	}
	return ev, true
}

// stripFences removes a markdown code fence the model sometimes wraps its
// JSON in, despite the instructions.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}

func stringSlice(r gjson.Result) []string {
	if !r.IsArray() {
		return nil
	}
	var out []string
	r.ForEach(func(_, v gjson.Result) bool {
		out = append(out, v.String())
		return true
	})
	return out
}
