package domain

import (
	"strings"
)

// Category represents a trivia category. Categories are seeded and read-only.
type Category struct {
	ID   int64
	Type string
}

// Question represents a trivia question
type Question struct {
	ID         int64
	Question   string
	Answer     string
	Difficulty int
	CategoryID int64
}

// NewQuestion creates a new Question instance. The ID is assigned by the store.
func NewQuestion(question, answer string, difficulty int, categoryID int64) *Question {
	return &Question{
		Question:   question,
		Answer:     answer,
		Difficulty: difficulty,
		CategoryID: categoryID,
	}
}

// Validate validates the question. Zero difficulty or category counts as missing.
func (q *Question) Validate() error {
	if strings.TrimSpace(q.Question) == "" {
		return NewBadRequestError("question is required", nil)
	}
	if strings.TrimSpace(q.Answer) == "" {
		return NewBadRequestError("answer is required", nil)
	}
	if q.Difficulty == 0 {
		return NewBadRequestError("difficulty is required", nil)
	}
	if q.CategoryID == 0 {
		return NewBadRequestError("category is required", nil)
	}
	return nil
}

// MatchesSearch reports whether term occurs in text, ignoring case.
// An empty term matches every text.
func MatchesSearch(text, term string) bool {
	return strings.Contains(strings.ToLower(text), strings.ToLower(term))
}

// QuestionPage is one page of the id-ordered question sequence.
type QuestionPage struct {
	Questions []*Question
	Total     int
}
