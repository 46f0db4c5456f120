package domain

import "context"

// QuestionRepository defines the interface for question persistence.
// Every listing is ordered by ascending id.
type QuestionRepository interface {
	// CreateQuestion persists q and sets q.ID to the store-assigned id
	CreateQuestion(ctx context.Context, q *Question) error

	// GetQuestionByID returns nil, nil when no question has that id
	GetQuestionByID(ctx context.Context, id int64) (*Question, error)

	// DeleteQuestion hard-deletes a question and reports whether a row was removed
	DeleteQuestion(ctx context.Context, id int64) (bool, error)

	// ListQuestions returns one page plus the size of the whole store
	ListQuestions(ctx context.Context, page Page) (*QuestionPage, error)

	// ListAllQuestions returns every question
	ListAllQuestions(ctx context.Context) ([]*Question, error)

	// ListQuestionsByCategory returns every question of one category
	ListQuestionsByCategory(ctx context.Context, categoryID int64) ([]*Question, error)

	// SearchQuestions returns questions whose text contains term, ignoring case
	SearchQuestions(ctx context.Context, term string) ([]*Question, error)
}

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	// GetAllCategories returns all categories ordered by id
	GetAllCategories(ctx context.Context) ([]*Category, error)
}

// CategoryWriter is implemented by stores that can be seeded with categories.
type CategoryWriter interface {
	SaveCategory(ctx context.Context, category *Category) error
}

// TransactionManager runs fn inside a single store transaction.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
