package validation

import (
	"strings"

	"trivia-api/internal/domain"
	"trivia-api/internal/dto"
)

// Validator checks request bodies before they reach the services.
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateCreateQuestion requires all four fields. Zero difficulty or category
// counts as missing, as does blank text.
func (v *Validator) ValidateCreateQuestion(req *dto.QuestionRequest) error {
	var missing []string
	if strings.TrimSpace(req.Question) == "" {
		missing = append(missing, "question")
	}
	if strings.TrimSpace(req.Answer) == "" {
		missing = append(missing, "answer")
	}
	if req.Difficulty == nil || req.Difficulty.Int64() == 0 {
		missing = append(missing, "difficulty")
	}
	if req.Category == nil || req.Category.Int64() == 0 {
		missing = append(missing, "category")
	}
	return missingFields(missing)
}

// ValidateQuizRequest requires quiz_category and its id. An id of 0 is valid.
func (v *Validator) ValidateQuizRequest(req *dto.QuizRequest) error {
	if req.QuizCategory == nil {
		return missingFields([]string{"quiz_category"})
	}
	if req.QuizCategory.ID == nil {
		return missingFields([]string{"quiz_category.id"})
	}
	if req.QuizCategory.ID.Int64() < 0 {
		return domain.NewBadRequestError("quiz_category.id must not be negative", nil)
	}
	for _, id := range req.PreviousQuestions {
		if id.Int64() < 0 {
			return domain.NewBadRequestError("previous_questions must hold question ids", nil)
		}
	}
	return nil
}

func missingFields(fields []string) error {
	if len(fields) == 0 {
		return nil
	}
	return domain.NewBadRequestError("missing required field(s): "+strings.Join(fields, ", "), nil)
}
