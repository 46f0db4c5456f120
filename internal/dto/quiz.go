package dto

import "encoding/json"

// QuizCategory identifies the quiz scope. ID 0 means every category.
type QuizCategory struct {
	Type json.RawMessage `json:"type,omitempty" swaggertype:"string"`
	ID   *FlexibleInt    `json:"id" swaggertype:"integer"`
}

// QuizRequest is the body of POST /quizzes
// @Description Ask for the next unseen quiz question
type QuizRequest struct {
	PreviousQuestions []FlexibleInt `json:"previous_questions" swaggertype:"array,integer"`
	QuizCategory      *QuizCategory `json:"quiz_category"`
}

// PreviousIDs returns the already served question ids.
func (r *QuizRequest) PreviousIDs() []int64 {
	ids := make([]int64, len(r.PreviousQuestions))
	for i, id := range r.PreviousQuestions {
		ids[i] = id.Int64()
	}
	return ids
}

// QuizResponse is returned by POST /quizzes. A null question means the quiz is over.
type QuizResponse struct {
	Success  bool         `json:"success"`
	Question *QuestionDTO `json:"question"`
}
