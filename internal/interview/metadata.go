package interview

import (
	"strings"

	"github.com/tidwall/gjson"
)

const (
	defaultCandidateName = "Candidate"
	defaultJobTitle      = "Position"
	defaultSkills        = "General technical skills"
	defaultAgentPrompt   = "You are a professional AI interviewer conducting a job interview."
)

// CandidateDetails is the session metadata supplied by the frontend before
// the interview starts. All fields are optional upstream; parsing degrades
// to documented defaults instead of failing.
type CandidateDetails struct {
	CandidateID    string   `json:"candidate_id"`
	CandidateName  string   `json:"candidate_name"`
	CandidateEmail string   `json:"candidate_email"`
	JobID          string   `json:"job_id"`
	JobTitle       string   `json:"job_title"`
	Skills         []string `json:"skills"`
	Experience     string   `json:"experience"`
	Summary        string   `json:"summary"`
	AgentPrompt    string   `json:"agent_prompt"`
}

// ParseCandidateDetails reads candidate metadata from raw JSON, accepting
// both camelCase and snake_case key spellings and a top-level or nested
// candidateDetails object. Malformed input yields the defaults.
func ParseCandidateDetails(raw []byte) CandidateDetails {
	details := CandidateDetails{
		CandidateName: defaultCandidateName,
		JobTitle:      defaultJobTitle,
		AgentPrompt:   defaultAgentPrompt,
	}
	if len(raw) == 0 || !gjson.ValidBytes(raw) {
		return details
	}

	r := gjson.ParseBytes(raw)
	if nested := r.Get("candidateDetails"); nested.IsObject() {
		r = nested
	}

	if v := first(r, "candidateName", "candidate_name"); v != "" {
		details.CandidateName = v
	}
	details.CandidateEmail = first(r, "candidateEmail", "candidate_email")
	details.CandidateID = first(r, "candidateId", "candidate_id")
	details.JobID = first(r, "jobId", "job_id")
	if v := first(r, "jobTitle", "job_title"); v != "" {
		details.JobTitle = v
	}
	details.Experience = first(r, "experience")
	details.Summary = first(r, "candidateSummary", "candidate_summary")
	if v := first(r, "agentPrompt", "agent_prompt", "agentTemplate", "agent_template"); v != "" {
		details.AgentPrompt = v
	}

	skills := r.Get("candidateSkills")
	if !skills.Exists() {
		skills = r.Get("candidate_skills")
	}
	switch {
	case skills.IsArray():
		skills.ForEach(func(_, v gjson.Result) bool {
			if s := strings.TrimSpace(v.String()); s != "" {
				details.Skills = append(details.Skills, s)
			}
			return true
		})
	case skills.Type == gjson.String && skills.String() != "":
		details.Skills = []string{skills.String()}
	}

	return details
}

// SkillsText joins up to five skills for prompt building.
func (d CandidateDetails) SkillsText() string {
	if len(d.Skills) == 0 {
		return defaultSkills
	}
	skills := d.Skills
	if len(skills) > 5 {
		skills = skills[:5]
	}
	return strings.Join(skills, ", ")
}

func first(r gjson.Result, paths ...string) string {
	for _, p := range paths {
		if v := r.Get(p); v.Exists() && v.String() != "" {
			return v.String()
		}
	}
	return ""
}
