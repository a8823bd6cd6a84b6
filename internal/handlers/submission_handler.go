package handlers

import (
	"fmt"

	"github.com/sanjay2518/FR/internal/models"
	"github.com/sanjay2518/FR/internal/services"

	"github.com/gofiber/fiber/v2"
)

// SubmissionHandler handles HTTP requests for submissions and their review.
type SubmissionHandler struct {
	service *services.SubmissionService
}

// NewSubmissionHandler creates a new SubmissionHandler.
func NewSubmissionHandler(service *services.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{service: service}
}

// RegisterRoutes registers the submission routes.
func (h *SubmissionHandler) RegisterRoutes(router fiber.Router) {
	submissionRoutes := router.Group("/submissions")
	submissionRoutes.Get("/", h.HandleGetSubmissions)
	submissionRoutes.Post("/:id/feedback", h.HandleAddFeedback)
}

// FeedbackRequest represents the request body for reviewing a submission.
type FeedbackRequest struct {
	Score    *models.Score `json:"score"`
	Comments *string       `json:"comments"`
}

// HandleGetSubmissions lists joined submissions, optionally filtered by ?status=.
func (h *SubmissionHandler) HandleGetSubmissions(c *fiber.Ctx) error {
	submissions, err := h.service.List(c.UserContext(), c.Query("status"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"submissions": submissions})
}

// HandleAddFeedback reviews a submission. The answer is the same whether or not
// the submission exists.
func (h *SubmissionHandler) HandleAddFeedback(c *fiber.Ctx) error {
	var req FeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fmt.Errorf("invalid request body: %w", err))
	}
	if _, err := h.service.AddFeedback(c.UserContext(), c.Params("id"), req.Score.Float(), req.Comments); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}
