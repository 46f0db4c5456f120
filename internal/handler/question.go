package handler

import (
	"trivia-api/internal/domain"
	"trivia-api/internal/dto"
	"trivia-api/internal/service"
	"trivia-api/internal/util"
	"trivia-api/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// QuestionHandler handles category and question HTTP requests
type QuestionHandler struct {
	service   service.QuestionService
	validator *validation.Validator
}

// NewQuestionHandler creates a new QuestionHandler instance
func NewQuestionHandler(service service.QuestionService, validator *validation.Validator) *QuestionHandler {
	return &QuestionHandler{
		service:   service,
		validator: validator,
	}
}

// GetCategories godoc
// @Summary List categories
// @Description Returns every category as a map from id to type
// @Tags categories
// @Produce json
// @Success 200 {object} dto.CategoriesResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /categories [get]
func (h *QuestionHandler) GetCategories(c *fiber.Ctx) error {
	resp, err := h.service.ListCategories(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetQuestions godoc
// @Summary List questions
// @Description Returns one page of ten questions ordered by id, plus all categories
// @Tags questions
// @Produce json
// @Param page query int false "Page number" default(1)
// @Success 200 {object} dto.QuestionListResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /questions [get]
func (h *QuestionHandler) GetQuestions(c *fiber.Ctx) error {
	page, inRange := util.ParsePage(c.Query("page"))
	if !inRange {
		return domain.NewNotFoundError("page out of range")
	}

	resp, err := h.service.ListQuestions(c.UserContext(), page)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// DeleteQuestion godoc
// @Summary Delete a question
// @Tags questions
// @Produce json
// @Param id path int true "Question ID"
// @Success 200 {object} dto.DeletedResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /questions/{id} [delete]
func (h *QuestionHandler) DeleteQuestion(c *fiber.Ctx) error {
	id, ok := util.ParsePositiveID(c.Params("id"))
	if !ok {
		return domain.NewNotFoundError("question id must be a positive integer")
	}

	resp, err := h.service.DeleteQuestion(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// CreateOrSearchQuestions godoc
// @Summary Create or search questions
// @Description With searchTerm, returns questions whose text contains it (case-insensitive).
// @Description Without it, creates a question from question, answer, difficulty and category.
// @Tags questions
// @Accept json
// @Produce json
// @Param request body dto.QuestionRequest true "Question or search term"
// @Success 200 {object} dto.CreatedResponse
// @Success 200 {object} dto.SearchQuestionsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /questions [post]
func (h *QuestionHandler) CreateOrSearchQuestions(c *fiber.Ctx) error {
	var req dto.QuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewBadRequestError("invalid request body", err)
	}

	if req.IsSearch() {
		resp, err := h.service.SearchQuestions(c.UserContext(), *req.SearchTerm)
		if err != nil {
			return err
		}
		return c.JSON(resp)
	}

	if err := h.validator.ValidateCreateQuestion(&req); err != nil {
		return err
	}
	resp, err := h.service.CreateQuestion(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetCategoryQuestions godoc
// @Summary List the questions of a category
// @Tags categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} dto.CategoryQuestionsResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /categories/{id}/questions [get]
func (h *QuestionHandler) GetCategoryQuestions(c *fiber.Ctx) error {
	id, ok := util.ParsePositiveID(c.Params("id"))
	if !ok {
		return domain.NewNotFoundError("category id must be a positive integer")
	}

	resp, err := h.service.ListQuestionsByCategory(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
