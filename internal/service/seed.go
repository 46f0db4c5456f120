package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"trivia-api/internal/domain"
	"trivia-api/internal/logger"

	"go.uber.org/zap"
)

// SeedDocument is the JSON layout of a seed file. Question categories refer to
// the ids used inside the document, not to store ids.
type SeedDocument struct {
	Categories []SeedCategory `json:"categories"`
	Questions  []SeedQuestion `json:"questions"`
}

type SeedCategory struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}

type SeedQuestion struct {
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Difficulty int    `json:"difficulty"`
	Category   int64  `json:"category"`
}

// SeedResult reports what a seed run wrote.
type SeedResult struct {
	Skipped    bool
	Categories int
	Questions  int
}

// DecodeSeedDocument reads a seed document and checks its cross references.
func DecodeSeedDocument(r io.Reader) (*SeedDocument, error) {
	var doc SeedDocument
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode seed document: %w", err)
	}

	known := make(map[int64]bool, len(doc.Categories))
	for _, c := range doc.Categories {
		if c.ID <= 0 || c.Type == "" {
			return nil, fmt.Errorf("seed category %+v needs a positive id and a type", c)
		}
		if known[c.ID] {
			return nil, fmt.Errorf("seed category id %d is duplicated", c.ID)
		}
		known[c.ID] = true
	}
	for i, q := range doc.Questions {
		if !known[q.Category] {
			return nil, fmt.Errorf("seed question %d references unknown category %d", i, q.Category)
		}
	}
	return &doc, nil
}

// SeedService loads a seed document into an empty store.
type SeedService struct {
	tm         domain.TransactionManager
	categories interface {
		domain.CategoryRepository
		domain.CategoryWriter
	}
	questions domain.QuestionRepository
}

func NewSeedService(
	tm domain.TransactionManager,
	categories interface {
		domain.CategoryRepository
		domain.CategoryWriter
	},
	questions domain.QuestionRepository,
) *SeedService {
	return &SeedService{tm: tm, categories: categories, questions: questions}
}

// Seed writes every category and question of doc in one transaction. A store
// that already has categories is left untouched.
func (s *SeedService) Seed(ctx context.Context, doc *SeedDocument) (*SeedResult, error) {
	existing, err := s.categories.GetAllCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing categories: %w", err)
	}
	if len(existing) > 0 {
		logger.Get().Info("store already seeded, skipping", zap.Int("categories", len(existing)))
		return &SeedResult{Skipped: true}, nil
	}

	result := &SeedResult{}
	err = s.tm.WithTransaction(ctx, func(txCtx context.Context) error {
		storeIDs := make(map[int64]int64, len(doc.Categories))
		for _, c := range doc.Categories {
			category := &domain.Category{Type: c.Type}
			if err := s.categories.SaveCategory(txCtx, category); err != nil {
				return fmt.Errorf("failed to save category %q: %w", c.Type, err)
			}
			storeIDs[c.ID] = category.ID
			result.Categories++
		}

		for i, sq := range doc.Questions {
			q := domain.NewQuestion(sq.Question, sq.Answer, sq.Difficulty, storeIDs[sq.Category])
			if err := q.Validate(); err != nil {
				return fmt.Errorf("seed question %d: %w", i, err)
			}
			if err := s.questions.CreateQuestion(txCtx, q); err != nil {
				return fmt.Errorf("failed to save seed question %d: %w", i, err)
			}
			result.Questions++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Get().Info("seed complete",
		zap.Int("categories", result.Categories),
		zap.Int("questions", result.Questions),
	)
	return result, nil
}
