package repository

import (
	"context"
	"fmt"

	"trivia-api/internal/domain"
	"trivia-api/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

const (
	questionColumns = `id, question, answer, difficulty, category_id`

	insertQuestionQuery = `INSERT INTO questions (question, answer, difficulty, category_id) VALUES ($1, $2, $3, $4) RETURNING id`

	getQuestionByIDQuery = `SELECT ` + questionColumns + ` FROM questions WHERE id = $1`

	deleteQuestionQuery = `DELETE FROM questions WHERE id = $1`

	listQuestionsPageQuery = `SELECT ` + questionColumns + `, COUNT(*) OVER () AS total_count FROM questions ORDER BY id ASC LIMIT $1 OFFSET $2`

	countQuestionsQuery = `SELECT COUNT(*) FROM questions`

	listAllQuestionsQuery = `SELECT ` + questionColumns + ` FROM questions ORDER BY id ASC`

	listQuestionsByCategoryQuery = `SELECT ` + questionColumns + ` FROM questions WHERE category_id = $1 ORDER BY id ASC`

	// strpos keeps the match a plain substring test; LIKE would treat % and _ in the term as wildcards.
	searchQuestionsQuery = `SELECT ` + questionColumns + ` FROM questions WHERE strpos(lower(question), lower($1)) > 0 ORDER BY id ASC`
)

// QuestionDatabaseAdapter implements domain.QuestionRepository using sqlx
type QuestionDatabaseAdapter struct {
	db DBTX
}

// NewQuestionDatabaseAdapter creates a new instance of QuestionDatabaseAdapter
func NewQuestionDatabaseAdapter(db *sqlx.DB) *QuestionDatabaseAdapter {
	return &QuestionDatabaseAdapter{db: db}
}

var _ domain.QuestionRepository = (*QuestionDatabaseAdapter)(nil)

// CreateQuestion implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) CreateQuestion(ctx context.Context, q *domain.Question) error {
	if q == nil {
		return fmt.Errorf("cannot save nil question")
	}
	m := toModelQuestion(q)

	var id int64
	err := GetExecutor(ctx, a.db).GetContext(ctx, &id, insertQuestionQuery,
		m.Question,
		m.Answer,
		m.Difficulty,
		m.CategoryID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert question: %w", err)
	}
	q.ID = id
	return nil
}

// GetQuestionByID implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) GetQuestionByID(ctx context.Context, id int64) (*domain.Question, error) {
	var rows []models.Question
	if err := GetExecutor(ctx, a.db).SelectContext(ctx, &rows, getQuestionByIDQuery, id); err != nil {
		return nil, fmt.Errorf("failed to get question %d: %w", id, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return toDomainQuestion(&rows[0]), nil
}

// DeleteQuestion implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) DeleteQuestion(ctx context.Context, id int64) (bool, error) {
	result, err := GetExecutor(ctx, a.db).ExecContext(ctx, deleteQuestionQuery, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete question %d: %w", id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

// ListQuestions implements domain.QuestionRepository. The window count makes the
// slice and the total a single read.
func (a *QuestionDatabaseAdapter) ListQuestions(ctx context.Context, page domain.Page) (*domain.QuestionPage, error) {
	exec := GetExecutor(ctx, a.db)
	if !page.Addressable() {
		var total int
		if err := exec.GetContext(ctx, &total, countQuestionsQuery); err != nil {
			return nil, fmt.Errorf("failed to count questions: %w", err)
		}
		return &domain.QuestionPage{Questions: []*domain.Question{}, Total: total}, nil
	}

	var rows []models.QuestionWithTotal
	if err := exec.SelectContext(ctx, &rows, listQuestionsPageQuery, page.Limit(), page.Offset()); err != nil {
		return nil, fmt.Errorf("failed to list questions page %d: %w", page.Number, err)
	}

	if len(rows) == 0 {
		// Past the end the window count is unavailable; ask for it directly.
		var total int
		if err := exec.GetContext(ctx, &total, countQuestionsQuery); err != nil {
			return nil, fmt.Errorf("failed to count questions: %w", err)
		}
		return &domain.QuestionPage{Questions: []*domain.Question{}, Total: total}, nil
	}

	questions := make([]*domain.Question, len(rows))
	for i := range rows {
		questions[i] = toDomainQuestion(&rows[i].Question)
	}
	return &domain.QuestionPage{Questions: questions, Total: rows[0].TotalCount}, nil
}

// ListAllQuestions implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) ListAllQuestions(ctx context.Context) ([]*domain.Question, error) {
	return a.selectQuestions(ctx, "all questions", listAllQuestionsQuery)
}

// ListQuestionsByCategory implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) ListQuestionsByCategory(ctx context.Context, categoryID int64) ([]*domain.Question, error) {
	return a.selectQuestions(ctx, fmt.Sprintf("questions of category %d", categoryID), listQuestionsByCategoryQuery, categoryID)
}

// SearchQuestions implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) SearchQuestions(ctx context.Context, term string) ([]*domain.Question, error) {
	if term == "" {
		// strpos(x, '') is 1 for every row, but skip the predicate anyway.
		return a.ListAllQuestions(ctx)
	}
	return a.selectQuestions(ctx, "question search", searchQuestionsQuery, term)
}

func (a *QuestionDatabaseAdapter) selectQuestions(ctx context.Context, what, query string, args ...interface{}) ([]*domain.Question, error) {
	var rows []models.Question
	if err := GetExecutor(ctx, a.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", what, err)
	}

	questions := make([]*domain.Question, len(rows))
	for i := range rows {
		questions[i] = toDomainQuestion(&rows[i])
	}
	return questions, nil
}

// Helper functions for model conversion
func toDomainQuestion(m *models.Question) *domain.Question {
	if m == nil {
		return nil
	}
	return &domain.Question{
		ID:         m.ID,
		Question:   m.Question,
		Answer:     m.Answer,
		Difficulty: m.Difficulty,
		CategoryID: m.CategoryID,
	}
}

func toModelQuestion(d *domain.Question) *models.Question {
	if d == nil {
		return nil
	}
	return &models.Question{
		ID:         d.ID,
		Question:   d.Question,
		Answer:     d.Answer,
		Difficulty: d.Difficulty,
		CategoryID: d.CategoryID,
	}
}
