package model

import (
	"time"

	"github.com/google/uuid"
)

// SessionReport is the persisted outcome of one interview session.
// Performance and Transcript hold the JSON-encoded summary and entries.
type SessionReport struct {
	ID             uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	RoomID         string    `gorm:"type:varchar(255);index" json:"room_id"`
	CandidateID    string    `gorm:"type:varchar(255)" json:"candidate_id"`
	CandidateName  string    `gorm:"type:varchar(255)" json:"candidate_name"`
	CandidateEmail string    `gorm:"type:varchar(255)" json:"candidate_email"`
	JobID          string    `gorm:"type:varchar(255)" json:"job_id"`
	TotalScore     float64   `gorm:"type:float" json:"total_score"`
	Performance    string    `gorm:"type:jsonb" json:"performance"`
	Transcript     string    `gorm:"type:jsonb" json:"transcript"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
