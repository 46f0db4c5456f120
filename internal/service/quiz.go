package service

import (
	"context"

	"trivia-api/internal/domain"
	"trivia-api/internal/dto"
	"trivia-api/internal/logger"
	"trivia-api/internal/metrics"

	"go.uber.org/zap"
)

// QuizService serves quiz questions. It holds no per-player state; the caller
// sends the ids it has already seen on every request.
type QuizService interface {
	NextQuestion(ctx context.Context, filter domain.CategoryFilter, previousIDs []int64) (*dto.QuizResponse, error)
}

type quizService struct {
	repo    domain.QuestionRepository
	pick    domain.Picker
	metrics *metrics.Metrics
}

// NewQuizService creates a quiz service. A nil pick draws uniformly at random.
func NewQuizService(repo domain.QuestionRepository, pick domain.Picker, m *metrics.Metrics) QuizService {
	if pick == nil {
		pick = domain.RandomPicker
	}
	return &quizService{
		repo:    repo,
		pick:    pick,
		metrics: m,
	}
}

// NextQuestion returns a random question matching filter whose id is not in
// previousIDs, or a null question once none remain.
func (s *quizService) NextQuestion(ctx context.Context, filter domain.CategoryFilter, previousIDs []int64) (*dto.QuizResponse, error) {
	pool, err := s.candidatePool(ctx, filter)
	if err != nil {
		return nil, domain.NewInternalError("failed to load quiz questions", err)
	}

	next := domain.SelectNextQuestion(pool, filter, domain.NewIDSet(previousIDs...), s.pick)
	if next == nil {
		s.metrics.QuizExhausted(filter.String())
		logger.Get().Debug("quiz exhausted",
			zap.Stringer("category", filter),
			zap.Int("previous", len(previousIDs)),
		)
		return &dto.QuizResponse{Success: true, Question: nil}, nil
	}

	s.metrics.QuestionServed(filter.String())
	question := dto.NewQuestionDTO(next)
	return &dto.QuizResponse{Success: true, Question: &question}, nil
}

func (s *quizService) candidatePool(ctx context.Context, filter domain.CategoryFilter) ([]*domain.Question, error) {
	if id, ok := filter.CategoryID(); ok {
		return s.repo.ListQuestionsByCategory(ctx, id)
	}
	return s.repo.ListAllQuestions(ctx)
}
