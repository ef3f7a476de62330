package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/safetravel/safetravel/internal/journey"
	"github.com/safetravel/safetravel/internal/middleware"
)

// RegisterJourneyRoutes wires journey tracking endpoints. Mutating routes get
// idempotent retry semantics when Redis is available.
func RegisterJourneyRoutes(r fiber.Router, h *journey.Handler, d Deps) {
	group := r.Group("/journeys")
	if d.Cache != nil {
		group.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}
	group.Post("/start", h.Start)
	group.Get("/:journeyId", h.Get)
	group.Post("/:journeyId/end", h.End)
}
