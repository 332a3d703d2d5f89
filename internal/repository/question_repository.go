package repository

import (
	"github.com/fadilmartias/interview-agent/internal/model"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type QuestionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{db}
}

// SearchQuestions returns the topK bank questions closest to the embedding.
func (r *QuestionRepository) SearchQuestions(embedding pgvector.Vector, topK int) ([]model.Question, error) {
	var questions []model.Question

	err := r.db.Raw(`
        SELECT *, embedding <-> ? AS distance
        FROM questions
        ORDER BY embedding <-> ?
        LIMIT ?
    `, embedding, embedding, topK).Scan(&questions).Error

	return questions, err
}

func (r *QuestionRepository) CreateQuestion(question *model.Question) error {
	return r.db.Create(question).Error
}

func (r *QuestionRepository) GetQuestions() ([]model.Question, error) {
	var questions []model.Question
	err := r.db.Order("created_at ASC").Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) CountQuestions() (int64, error) {
	var count int64
	err := r.db.Model(&model.Question{}).Count(&count).Error
	return count, err
}
