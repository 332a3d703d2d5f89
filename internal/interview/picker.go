package interview

import (
	"context"

	"github.com/fadilmartias/interview-agent/internal/model"
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"
)

// QuestionSource is the slice of the question repository the picker needs.
type QuestionSource interface {
	SearchQuestions(embedding pgvector.Vector, topK int) ([]model.Question, error)
	GetQuestions() ([]model.Question, error)
}

// Embedder produces embeddings for similarity lookups.
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// Picker selects the next unasked question for a session. It prefers
// embedding similarity against the stored bank and degrades to bank order,
// then to the built-in defaults, when embeddings or the database are
// unavailable.
type Picker struct {
	source   QuestionSource
	embedder Embedder
	log      *zap.Logger

	asked       map[uuid.UUID]bool
	fallbackIdx int
}

func NewPicker(source QuestionSource, embedder Embedder, log *zap.Logger) *Picker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Picker{
		source:   source,
		embedder: embedder,
		log:      log,
		asked:    make(map[uuid.UUID]bool),
	}
}

// Next returns the next question. topicHint steers the similarity search,
// typically the candidate's skills or their last answer.
func (p *Picker) Next(ctx context.Context, topicHint string) (model.Question, bool) {
	if q, ok := p.bySimilarity(ctx, topicHint); ok {
		return q, true
	}
	if q, ok := p.byBankOrder(); ok {
		return q, true
	}
	return p.byDefaults()
}

func (p *Picker) bySimilarity(ctx context.Context, topicHint string) (model.Question, bool) {
	if p.source == nil || p.embedder == nil || topicHint == "" {
		return model.Question{}, false
	}

	values, err := p.embedder.GenerateEmbedding(ctx, topicHint)
	if err != nil {
		p.log.Warn("topic embedding failed, falling back to bank order", zap.Error(err))
		return model.Question{}, false
	}

	questions, err := p.source.SearchQuestions(pgvector.NewVector(values), 5)
	if err != nil {
		p.log.Warn("question similarity search failed", zap.Error(err))
		return model.Question{}, false
	}
	for _, q := range questions {
		if !p.asked[q.ID] {
			p.asked[q.ID] = true
			return q, true
		}
	}
	return model.Question{}, false
}

func (p *Picker) byBankOrder() (model.Question, bool) {
	if p.source == nil {
		return model.Question{}, false
	}
	questions, err := p.source.GetQuestions()
	if err != nil {
		p.log.Warn("question bank fetch failed, using defaults", zap.Error(err))
		return model.Question{}, false
	}
	for _, q := range questions {
		if !p.asked[q.ID] {
			p.asked[q.ID] = true
			return q, true
		}
	}
	return model.Question{}, false
}

func (p *Picker) byDefaults() (model.Question, bool) {
	bank := DefaultQuestionBank()
	if p.fallbackIdx >= len(bank) {
		return model.Question{}, false
	}
	q := bank[p.fallbackIdx]
	p.fallbackIdx++
	return q, true
}
