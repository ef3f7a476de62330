package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/safetravel/safetravel/internal/auth"
)

// RegisterAuthRoutes wires the registration and login endpoints.
func RegisterAuthRoutes(r fiber.Router, h *auth.Handler) {
	group := r.Group("/auth")
	group.Post("/register", h.Register)
	group.Post("/login", h.Login)
}
