package interview

import "github.com/fadilmartias/interview-agent/internal/model"

// GreetingMessage opens every interview.
const GreetingMessage = "Hello! Welcome to your interview. I'm your AI interviewer today, " +
	"and I'm looking forward to learning more about your experience and qualifications. " +
	"We'll be discussing your background, skills, and how they align with the position. " +
	"Are you ready to begin?"

// ClosingMessage ends every interview.
const ClosingMessage = "Thank you so much for your time today. The hiring team will review " +
	"your interview and get back to you soon with next steps."

// DefaultQuestionBank seeds the question table on first boot and serves as
// the in-memory fallback when the database is unreachable.
func DefaultQuestionBank() []model.Question {
	return []model.Question{
		{
			Text:            "Can you start by telling me a bit about yourself and your professional background?",
			Category:        "Introduction",
			DifficultyLevel: "easy",
		},
		{
			Text:            "What motivated you to apply for this position, and what interests you most about this opportunity?",
			Category:        "Experience",
			DifficultyLevel: "easy",
		},
		{
			Text:             "Can you describe a challenging project you've worked on and how you approached solving it?",
			Category:         "Technical",
			DifficultyLevel:  "medium",
			ExpectedKeywords: []string{"challenge", "approach", "solution"},
		},
		{
			Text:             "What are your strongest technical skills, and how have you applied them in your previous roles?",
			Category:         "Skills",
			DifficultyLevel:  "medium",
			ExpectedKeywords: []string{"experience", "project"},
		},
		{
			Text:             "Tell me about a time when you had to collaborate with a team. What was your role and contribution?",
			Category:         "Teamwork",
			DifficultyLevel:  "medium",
			ExpectedKeywords: []string{"team", "role", "communication"},
		},
	}
}
