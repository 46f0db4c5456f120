package dto

import (
	"strconv"

	"trivia-api/internal/domain"
)

// QuestionRequest is the body of POST /questions. A present searchTerm
// (even "") makes it a search; otherwise it creates a question.
// @Description Create a question, or search when searchTerm is set
type QuestionRequest struct {
	SearchTerm *string      `json:"searchTerm,omitempty"`
	Question   string       `json:"question"`
	Answer     string       `json:"answer"`
	Difficulty *FlexibleInt `json:"difficulty" swaggertype:"integer"`
	Category   *FlexibleInt `json:"category" swaggertype:"integer"`
}

// IsSearch reports whether the request asks for a search.
func (r *QuestionRequest) IsSearch() bool {
	return r.SearchTerm != nil
}

// QuestionDTO is the wire form of a question. Category is the category id as a string.
// @Description Question information
type QuestionDTO struct {
	ID         int64  `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   string `json:"category"`
	Difficulty int    `json:"difficulty"`
}

func NewQuestionDTO(q *domain.Question) QuestionDTO {
	return QuestionDTO{
		ID:         q.ID,
		Question:   q.Question,
		Answer:     q.Answer,
		Category:   strconv.FormatInt(q.CategoryID, 10),
		Difficulty: q.Difficulty,
	}
}

func NewQuestionDTOs(questions []*domain.Question) []QuestionDTO {
	out := make([]QuestionDTO, len(questions))
	for i, q := range questions {
		out[i] = NewQuestionDTO(q)
	}
	return out
}

// NewCategoryMap keys category types by their id rendered as a string.
func NewCategoryMap(categories []*domain.Category) map[string]string {
	out := make(map[string]string, len(categories))
	for _, c := range categories {
		out[strconv.FormatInt(c.ID, 10)] = c.Type
	}
	return out
}

// CategoriesResponse is returned by GET /categories
type CategoriesResponse struct {
	Success    bool              `json:"success"`
	Categories map[string]string `json:"categories"`
}

// QuestionListResponse is returned by GET /questions. CurrentCategory is always null.
type QuestionListResponse struct {
	Success         bool              `json:"success"`
	Questions       []QuestionDTO     `json:"questions"`
	TotalQuestions  int               `json:"total_questions"`
	Categories      map[string]string `json:"categories"`
	CurrentCategory *int64            `json:"current_category" swaggertype:"integer"`
}

// SearchQuestionsResponse is returned by POST /questions with a searchTerm
type SearchQuestionsResponse struct {
	Success         bool          `json:"success"`
	Questions       []QuestionDTO `json:"questions"`
	TotalQuestions  int           `json:"total_questions"`
	CurrentCategory *int64        `json:"current_category" swaggertype:"integer"`
}

// CategoryQuestionsResponse is returned by GET /categories/{id}/questions
type CategoryQuestionsResponse struct {
	Success         bool          `json:"success"`
	Questions       []QuestionDTO `json:"questions"`
	TotalQuestions  int           `json:"total_questions"`
	CurrentCategory int64         `json:"current_category"`
}

// CreatedResponse is returned by POST /questions on creation
type CreatedResponse struct {
	Success bool  `json:"success"`
	Created int64 `json:"created"`
}

// DeletedResponse is returned by DELETE /questions/{id}
type DeletedResponse struct {
	Success bool  `json:"success"`
	Deleted int64 `json:"deleted"`
}

// ErrorResponse is the body of every failed request
// @Description Error envelope
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Message string `json:"message"`
}
