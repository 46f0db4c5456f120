package service

import (
	"context"

	"trivia-api/internal/domain"
	"trivia-api/internal/dto"
	"trivia-api/internal/logger"
	"trivia-api/internal/metrics"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// QuestionService defines the catalog operations: categories, paging, search,
// create and delete.
type QuestionService interface {
	ListCategories(ctx context.Context) (*dto.CategoriesResponse, error)
	ListQuestions(ctx context.Context, page int) (*dto.QuestionListResponse, error)
	ListQuestionsByCategory(ctx context.Context, categoryID int64) (*dto.CategoryQuestionsResponse, error)
	SearchQuestions(ctx context.Context, term string) (*dto.SearchQuestionsResponse, error)
	CreateQuestion(ctx context.Context, req *dto.QuestionRequest) (*dto.CreatedResponse, error)
	DeleteQuestion(ctx context.Context, id int64) (*dto.DeletedResponse, error)
}

type questionService struct {
	questions  domain.QuestionRepository
	categories domain.CategoryRepository
	metrics    *metrics.Metrics
}

// NewQuestionService creates a new instance of questionService. m may be nil.
func NewQuestionService(questions domain.QuestionRepository, categories domain.CategoryRepository, m *metrics.Metrics) QuestionService {
	return &questionService{
		questions:  questions,
		categories: categories,
		metrics:    m,
	}
}

func (s *questionService) ListCategories(ctx context.Context) (*dto.CategoriesResponse, error) {
	categories, err := s.categories.GetAllCategories(ctx)
	if err != nil {
		return nil, domain.NewInternalError("failed to list categories", err)
	}
	if len(categories) == 0 {
		return nil, domain.NewNotFoundError("no categories")
	}
	return &dto.CategoriesResponse{
		Success:    true,
		Categories: dto.NewCategoryMap(categories),
	}, nil
}

// ListQuestions returns one page of questions. A page with no questions, including
// page 1 of an empty store, is NotFound.
func (s *questionService) ListQuestions(ctx context.Context, pageNumber int) (*dto.QuestionListResponse, error) {
	page := domain.NewPage(pageNumber)
	if !page.Valid() {
		return nil, domain.NewNotFoundError("page must be at least 1")
	}

	var (
		result     *domain.QuestionPage
		categories []*domain.Category
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		result, err = s.questions.ListQuestions(gctx, page)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = s.categories.GetAllCategories(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, domain.NewInternalError("failed to list questions", err)
	}

	if len(result.Questions) == 0 {
		logger.Get().Debug("question page out of range",
			zap.Int("page", pageNumber),
			zap.Int("total", result.Total),
		)
		return nil, domain.NewNotFoundError("page out of range")
	}

	return &dto.QuestionListResponse{
		Success:         true,
		Questions:       dto.NewQuestionDTOs(result.Questions),
		TotalQuestions:  result.Total,
		Categories:      dto.NewCategoryMap(categories),
		CurrentCategory: nil,
	}, nil
}

func (s *questionService) ListQuestionsByCategory(ctx context.Context, categoryID int64) (*dto.CategoryQuestionsResponse, error) {
	questions, err := s.questions.ListQuestionsByCategory(ctx, categoryID)
	if err != nil {
		return nil, domain.NewInternalError("failed to list questions by category", err)
	}
	if len(questions) == 0 {
		return nil, domain.NewNotFoundError("category has no questions")
	}
	return &dto.CategoryQuestionsResponse{
		Success:         true,
		Questions:       dto.NewQuestionDTOs(questions),
		TotalQuestions:  len(questions),
		CurrentCategory: categoryID,
	}, nil
}

// SearchQuestions never reports NotFound; zero matches is a valid result.
func (s *questionService) SearchQuestions(ctx context.Context, term string) (*dto.SearchQuestionsResponse, error) {
	questions, err := s.questions.SearchQuestions(ctx, term)
	if err != nil {
		return nil, domain.NewInternalError("failed to search questions", err)
	}
	return &dto.SearchQuestionsResponse{
		Success:         true,
		Questions:       dto.NewQuestionDTOs(questions),
		TotalQuestions:  len(questions),
		CurrentCategory: nil,
	}, nil
}

func (s *questionService) CreateQuestion(ctx context.Context, req *dto.QuestionRequest) (*dto.CreatedResponse, error) {
	if req == nil || req.Difficulty == nil || req.Category == nil {
		return nil, domain.NewBadRequestError("question, answer, difficulty and category are required", nil)
	}

	q := domain.NewQuestion(req.Question, req.Answer, int(req.Difficulty.Int64()), req.Category.Int64())
	if err := q.Validate(); err != nil {
		return nil, err
	}

	if err := s.questions.CreateQuestion(ctx, q); err != nil {
		return nil, domain.NewInsertFailureError(err)
	}

	s.metrics.QuestionCreated()
	logger.Get().Info("question created", zap.Int64("id", q.ID), zap.Int64("category_id", q.CategoryID))
	return &dto.CreatedResponse{Success: true, Created: q.ID}, nil
}

func (s *questionService) DeleteQuestion(ctx context.Context, id int64) (*dto.DeletedResponse, error) {
	existing, err := s.questions.GetQuestionByID(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("failed to look up question", err)
	}
	if existing == nil {
		return nil, domain.NewNotFoundError("question not found")
	}

	deleted, err := s.questions.DeleteQuestion(ctx, id)
	if err != nil {
		return nil, domain.NewDeleteFailureError(id, err)
	}
	if !deleted {
		// Removed between the lookup and the delete.
		return nil, domain.NewDeleteFailureError(id, nil)
	}

	s.metrics.QuestionDeleted()
	logger.Get().Info("question deleted", zap.Int64("id", id))
	return &dto.DeletedResponse{Success: true, Deleted: id}, nil
}
