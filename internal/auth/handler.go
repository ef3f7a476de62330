package auth

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/safetravel/safetravel/internal/user"
)

// Handler exposes the register/login endpoints.
type Handler struct {
	svc *Service
}

// NewHandler constructs the auth HTTP handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerResponse struct {
	Message string `json:"message"`
	Email   string `json:"email"`
}

// Register handles account creation. The password is never echoed back.
func (h *Handler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	account, err := h.svc.Register(c.UserContext(), RegisterInput{Name: req.Name, Email: req.Email, Password: req.Password})
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingFields):
			return fiber.NewError(http.StatusBadRequest, "name, email and password are required")
		case errors.Is(err, user.ErrEmailTaken):
			return fiber.NewError(http.StatusBadRequest, "email already registered")
		}
		return err
	}
	return c.Status(http.StatusOK).JSON(registerResponse{Message: "User registered successfully", Email: account.Email})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Login verifies credentials and returns a bearer token.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	account, token, err := h.svc.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingFields):
			return fiber.NewError(http.StatusBadRequest, "email and password are required")
		case errors.Is(err, ErrInvalidCredentials):
			return fiber.NewError(http.StatusUnauthorized, "invalid credentials")
		}
		return err
	}
	return c.Status(http.StatusOK).JSON(loginResponse{Token: token, Email: account.Email, Name: account.Name})
}
