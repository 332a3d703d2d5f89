package interview

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCandidateDetailsDefaults(t *testing.T) {
	for _, raw := range [][]byte{nil, []byte(""), []byte("not json")} {
		details := ParseCandidateDetails(raw)
		assert.Equal(t, "Candidate", details.CandidateName)
		assert.Equal(t, "Position", details.JobTitle)
		assert.NotEmpty(t, details.AgentPrompt)
		assert.Empty(t, details.Skills)
	}
}

func TestParseCandidateDetailsCamelCase(t *testing.T) {
	raw := []byte(`{
		"candidateName": "Grace Hopper",
		"candidateEmail": "grace@example.com",
		"jobTitle": "Compiler Engineer",
		"candidateSkills": ["COBOL", "compilers"],
		"experience": "10 years"
	}`)

	details := ParseCandidateDetails(raw)
	assert.Equal(t, "Grace Hopper", details.CandidateName)
	assert.Equal(t, "grace@example.com", details.CandidateEmail)
	assert.Equal(t, "Compiler Engineer", details.JobTitle)
	assert.Equal(t, []string{"COBOL", "compilers"}, details.Skills)
	assert.Equal(t, "10 years", details.Experience)
}

func TestParseCandidateDetailsSnakeCase(t *testing.T) {
	raw := []byte(`{"candidate_name": "Alan", "job_title": "Researcher", "candidate_skills": "cryptography"}`)

	details := ParseCandidateDetails(raw)
	assert.Equal(t, "Alan", details.CandidateName)
	assert.Equal(t, "Researcher", details.JobTitle)
	assert.Equal(t, []string{"cryptography"}, details.Skills)
}

func TestParseCandidateDetailsNestedObject(t *testing.T) {
	raw := []byte(`{"candidateDetails": {"candidateName": "Nested", "jobTitle": "Engineer"}}`)

	details := ParseCandidateDetails(raw)
	assert.Equal(t, "Nested", details.CandidateName)
	assert.Equal(t, "Engineer", details.JobTitle)
}

func TestSkillsTextCapsAtFive(t *testing.T) {
	details := CandidateDetails{Skills: []string{"a", "b", "c", "d", "e", "f", "g"}}
	assert.Equal(t, "a, b, c, d, e", details.SkillsText())

	assert.Equal(t, "General technical skills", CandidateDetails{}.SkillsText())
}
