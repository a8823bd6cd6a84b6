package handlers

import (
	"errors"

	"github.com/sanjay2518/FR/internal/middleware"
	"github.com/sanjay2518/FR/internal/repositories"
	"github.com/sanjay2518/FR/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

// AuthHandler handles HTTP requests for authentication and profiles.
type AuthHandler struct {
	authService *services.AuthService
	tokens      middleware.TokenValidator
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler. tokens guards the profile route.
func NewAuthHandler(authService *services.AuthService, tokens middleware.TokenValidator) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		tokens:      tokens,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the authentication routes.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/signup", h.HandleSignup)
	authRoutes.Post("/signin", h.HandleSignin)
	authRoutes.Get("/check-email", h.HandleCheckEmail)
	authRoutes.Get("/check-username", h.HandleCheckUsername)
	authRoutes.Get("/profile", middleware.AuthRequired(h.tokens), h.HandleProfile)
}

// SignupRequest represents the request body for signup.
type SignupRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username" validate:"required"`
}

// HandleSignup creates an identity and its profile.
func (h *AuthHandler) HandleSignup(c *fiber.Ctx) error {
	var req SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	session, profile, err := h.authService.Signup(c.UserContext(), services.SignupInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Username:  req.Username,
	})
	if err != nil {
		return h.authError(c, err)
	}

	body := fiber.Map{
		"success": true,
		"message": "User created successfully",
		"session": session,
		"user":    session.User,
	}
	if profile != nil {
		body["user"] = profile
	}
	return c.Status(fiber.StatusCreated).JSON(body)
}

// SigninRequest represents the request body for signin.
type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// HandleSignin exchanges credentials for a session.
func (h *AuthHandler) HandleSignin(c *fiber.Ctx) error {
	var req SigninRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	session, err := h.authService.Signin(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return h.authError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"session": session,
		"user":    session.User,
	})
}

// HandleCheckEmail reports whether a profile uses the email.
func (h *AuthHandler) HandleCheckEmail(c *fiber.Ctx) error {
	email := c.Query("email")
	if email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "email is required"})
	}
	exists, err := h.authService.UserExists(c.UserContext(), email)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"exists": exists})
}

// HandleCheckUsername reports whether a profile uses the username.
func (h *AuthHandler) HandleCheckUsername(c *fiber.Ctx) error {
	username := c.Query("username")
	if username == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "username is required"})
	}
	exists, err := h.authService.UsernameExists(c.UserContext(), username)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"exists": exists})
}

// HandleProfile returns the profile of the authenticated user.
func (h *AuthHandler) HandleProfile(c *fiber.Ctx) error {
	userID, _ := c.Locals(middleware.LocalUserID).(string)
	profile, err := h.authService.GetProfile(c.UserContext(), userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
		}
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"user": profile})
}

func (h *AuthHandler) authError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrAlreadyExists):
		log.WithError(err).Info("Signup conflict")
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrAuthFailed):
		log.WithError(err).Info("Signin rejected")
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid email or password"})
	case errors.Is(err, services.ErrRejected):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return respondError(c, err)
}
