package evaluation

import (
	"fmt"
	"strings"
)

// buildPrompt renders the scoring rubric sent to the model. The model is
// instructed to answer with a single JSON object matching the schema that
// parseEvaluation reads back.
func buildPrompt(req Request) string {
	var b strings.Builder

	b.WriteString("You are an expert technical interviewer evaluating a candidate's response.\n\n")
	fmt.Fprintf(&b, "**Interview Question:**\n%s\n\n", req.Question)
	fmt.Fprintf(&b, "**Candidate's Answer:**\n%s\n\n", req.Answer)
	fmt.Fprintf(&b, "**Difficulty Level:** %s\n\n", req.DifficultyLevel)

	if len(req.ExpectedKeywords) > 0 {
		fmt.Fprintf(&b, "**Expected Topics/Keywords:** %s\n\n", strings.Join(req.ExpectedKeywords, ", "))
	}
	if req.Context != "" {
		fmt.Fprintf(&b, "**Job Context:** %s\n\n", req.Context)
	}

	b.WriteString(`**Your Task:**
Evaluate this answer comprehensively and provide a detailed assessment in the following JSON format:

{
  "is_correct": true/false,
  "is_partial": true/false,
  "score": <0-10>,
  "evaluation": {
    "accuracy": <0-100>,
    "completeness": <0-100>,
    "relevance": <0-100>,
    "confidence": "high/medium/low"
  },
  "feedback": "Brief constructive feedback (2-3 sentences)",
  "keywords_matched": ["keyword1", "keyword2"],
  "keywords_missed": ["keyword3"],
  "strengths": ["strength1", "strength2"],
  "improvements": ["improvement1", "improvement2"],
  "technical_depth": <0-100>,
  "communication_quality": <0-100>
}

**Evaluation Criteria:**
1. **Accuracy:** How technically correct is the answer?
2. **Completeness:** Does it cover all important aspects?
3. **Relevance:** Is the answer on-topic and focused?
4. **Technical Depth:** Shows understanding beyond surface level?
5. **Communication:** Clear, structured, and easy to follow?

**Scoring Guide:**
- 9-10: Excellent - Comprehensive, accurate, well-explained
- 7-8: Good - Solid understanding with minor gaps
- 5-6: Average - Basic understanding, missing details
- 3-4: Below Average - Significant gaps or misunderstandings
- 0-2: Poor - Incorrect or off-topic

**Classification:**
- is_correct: true if score >= 7
- is_partial: true if score is 5-6
- is_correct: false if score < 5

Provide ONLY the JSON output, no additional text.`)

	return b.String()
}
