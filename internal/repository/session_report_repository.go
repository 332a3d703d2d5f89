package repository

import (
	"github.com/fadilmartias/interview-agent/internal/model"
	"gorm.io/gorm"
)

type SessionReportRepository struct {
	db *gorm.DB
}

func NewSessionReportRepository(db *gorm.DB) *SessionReportRepository {
	return &SessionReportRepository{db}
}

func (r *SessionReportRepository) CreateReport(report *model.SessionReport) error {
	return r.db.Create(report).Error
}

// FindReportByRoomID returns the most recent report for the room.
func (r *SessionReportRepository) FindReportByRoomID(roomID string) (*model.SessionReport, error) {
	var report model.SessionReport
	err := r.db.Where("room_id = ?", roomID).Order("created_at DESC").First(&report).Error
	return &report, err
}
