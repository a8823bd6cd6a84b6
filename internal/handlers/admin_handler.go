package handlers

import (
	"github.com/sanjay2518/FR/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler handles the admin user and subscription routes.
type AdminHandler struct {
	service *services.AdminService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(service *services.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

// RegisterRoutes registers the admin routes.
func (h *AdminHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/users", h.HandleGetUsers)
	router.Post("/users/:id/toggle-status", h.HandleToggleUserStatus)

	subscriptionRoutes := router.Group("/subscriptions")
	subscriptionRoutes.Get("/", h.HandleGetSubscriptions)
	subscriptionRoutes.Post("/:id/cancel", h.HandleCancelSubscription)
	subscriptionRoutes.Post("/:id/reactivate", h.HandleReactivateSubscription)
}

// HandleGetUsers lists profiles with aggregate counts.
func (h *AdminHandler) HandleGetUsers(c *fiber.Ctx) error {
	listing, err := h.service.ListUsers(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(listing)
}

func (h *AdminHandler) HandleToggleUserStatus(c *fiber.Ctx) error {
	h.service.ToggleUserStatus(c.UserContext(), c.Params("id"))
	return c.JSON(fiber.Map{"success": true})
}

func (h *AdminHandler) HandleGetSubscriptions(c *fiber.Ctx) error {
	return c.JSON(h.service.ListSubscriptions(c.UserContext()))
}

func (h *AdminHandler) HandleCancelSubscription(c *fiber.Ctx) error {
	h.service.CancelSubscription(c.UserContext(), c.Params("id"))
	return c.JSON(fiber.Map{"success": true})
}

func (h *AdminHandler) HandleReactivateSubscription(c *fiber.Ctx) error {
	h.service.ReactivateSubscription(c.UserContext(), c.Params("id"))
	return c.JSON(fiber.Map{"success": true})
}
