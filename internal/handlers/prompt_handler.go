package handlers

import (
	"fmt"

	"github.com/sanjay2518/FR/internal/services"

	"github.com/gofiber/fiber/v2"
)

// PromptHandler handles HTTP requests for the prompt catalog.
type PromptHandler struct {
	service *services.PromptService
}

// NewPromptHandler creates a new PromptHandler.
func NewPromptHandler(service *services.PromptService) *PromptHandler {
	return &PromptHandler{service: service}
}

// RegisterRoutes registers the prompt routes.
func (h *PromptHandler) RegisterRoutes(router fiber.Router) {
	promptRoutes := router.Group("/prompts")
	promptRoutes.Get("/", h.HandleGetPrompts)
	promptRoutes.Post("/add", h.HandleAddPrompt)
	promptRoutes.Get("/user/:user_id", h.HandleGetUserPrompts)
	promptRoutes.Delete("/:id", h.HandleDeletePrompt)
}

// AddPromptRequest represents the request body for adding a prompt.
type AddPromptRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Type        string  `json:"type"`
	Difficulty  string  `json:"difficulty"`
	Level       string  `json:"level"`
	DueDate     *string `json:"dueDate"`
}

// HandleGetPrompts lists the catalog, newest first.
func (h *PromptHandler) HandleGetPrompts(c *fiber.Ctx) error {
	prompts, err := h.service.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"prompts": prompts})
}

// HandleAddPrompt adds an active prompt. A missing required field is a 500.
func (h *PromptHandler) HandleAddPrompt(c *fiber.Ctx) error {
	var req AddPromptRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fmt.Errorf("invalid request body: %w", err))
	}

	prompt, err := h.service.Add(c.UserContext(), services.NewPrompt{
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		Difficulty:  req.Difficulty,
		Level:       req.Level,
		DueDate:     req.DueDate,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Prompt added successfully",
		"prompt":  prompt,
	})
}

// HandleDeletePrompt deletes a prompt. Unknown ids succeed too.
func (h *PromptHandler) HandleDeletePrompt(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Prompt deleted successfully",
	})
}

// HandleGetUserPrompts lists the active prompts as a learner's pending tasks.
func (h *PromptHandler) HandleGetUserPrompts(c *fiber.Ctx) error {
	prompts, err := h.service.ListForUser(c.UserContext(), c.Params("user_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"prompts": prompts})
}
