package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// Question is one entry of the interview question bank. The embedding allows
// picking the next question by similarity to the candidate's profile.
type Question struct {
	ID               uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Text             string          `gorm:"type:text" json:"text"`
	Category         string          `gorm:"type:varchar(100)" json:"category"`
	DifficultyLevel  string          `gorm:"type:varchar(20)" json:"difficulty_level"`
	ExpectedKeywords []string        `gorm:"serializer:json;type:jsonb" json:"expected_keywords"`
	Embedding        pgvector.Vector `gorm:"type:vector(3072)" json:"-"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

func (q *Question) TableName() string {
	return "questions"
}
