package handler

import (
	"trivia-api/internal/domain"
	"trivia-api/internal/dto"
	"trivia-api/internal/service"
	"trivia-api/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// QuizHandler handles quiz HTTP requests
type QuizHandler struct {
	service   service.QuizService
	validator *validation.Validator
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService, validator *validation.Validator) *QuizHandler {
	return &QuizHandler{
		service:   service,
		validator: validator,
	}
}

// NextQuestion godoc
// @Summary Get the next quiz question
// @Description Returns a random question of quiz_category (id 0 means all categories) that is
// @Description not in previous_questions. question is null once every question has been served.
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.QuizRequest true "Quiz state"
// @Success 200 {object} dto.QuizResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /quizzes [post]
func (h *QuizHandler) NextQuestion(c *fiber.Ctx) error {
	var req dto.QuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewBadRequestError("invalid request body", err)
	}
	if err := h.validator.ValidateQuizRequest(&req); err != nil {
		return err
	}

	filter := domain.CategoryFilterFromID(req.QuizCategory.ID.Int64())
	resp, err := h.service.NextQuestion(c.UserContext(), filter, req.PreviousIDs())
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
