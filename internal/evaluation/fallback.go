package evaluation

import (
	"math"
	"strings"
)

// FallbackFeedback is the disclosure attached to every fallback evaluation.
const FallbackFeedback = "Automated evaluation based on keyword matching. Manual review recommended."

// FallbackEvaluation is the deterministic degraded-mode scorer used when the
// model path is unavailable. With keywords the score is the matched fraction
// scaled to 0-10; without keywords it is a coarse length heuristic. It is a
// pure function of (answer, expected keywords).
func FallbackEvaluation(req Request) Evaluation {
	answerLower := strings.ToLower(req.Answer)

	var matched, missed []string
	for _, kw := range req.ExpectedKeywords {
		if strings.Contains(answerLower, strings.ToLower(kw)) {
			matched = append(matched, kw)
		} else {
			missed = append(missed, kw)
		}
	}

	var score float64
	if len(req.ExpectedKeywords) > 0 {
		ratio := float64(len(matched)) / float64(len(req.ExpectedKeywords))
		score = math.Round(ratio*10*10) / 10
	} else if len(strings.TrimSpace(req.Answer)) > 20 {
		score = 6.0
	} else {
		score = 3.0
	}

	ev := Evaluation{
		Score:                score,
		IsCorrect:            score >= 7,
		IsPartial:            score >= 5 && score < 7,
		Accuracy:             int(score * 10),
		Completeness:         int(score * 10),
		Relevance:            int(score * 10),
		TechnicalDepth:       int(score * 10),
		CommunicationQuality: 70,
		Confidence:           ConfidenceLow,
		Feedback:             FallbackFeedback,
		KeywordsMatched:      matched,
		KeywordsMissed:       missed,
		Fallback:             true,
	}
	if req.Answer != "" {
		ev.Strengths = []string{"Response provided"}
	}
	if !ev.IsCorrect {
		ev.Improvements = []string{"Could provide more detailed explanation"}
	}
	return ev
}
