package journey

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes journey HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a journey HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type startRequest struct {
	UserName string `json:"userName"`
}

type startResponse struct {
	JourneyID string `json:"journeyId"`
	Status    string `json:"status"`
	StartedAt string `json:"startedAt"`
}

// Start records a new journey. The body is optional; without one the journey
// belongs to Guest.
func (h *Handler) Start(c *fiber.Ctx) error {
	var req startRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
	}
	j, err := h.service.Start(c.UserContext(), req.UserName)
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(startResponse{
		JourneyID: j.ID,
		Status:    string(j.Status),
		StartedAt: j.StartedAt.Format(time.RFC3339),
	})
}

// Get returns a single journey record.
func (h *Handler) Get(c *fiber.Ctx) error {
	j, err := h.service.Get(c.UserContext(), c.Params("journeyId"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, "journey not found")
		}
		return err
	}
	resp := fiber.Map{
		"journeyId": j.ID,
		"userName":  j.UserName,
		"status":    string(j.Status),
		"startedAt": j.StartedAt.Format(time.RFC3339),
	}
	if !j.EndedAt.IsZero() {
		resp["endedAt"] = j.EndedAt.Format(time.RFC3339)
	}
	return c.Status(http.StatusOK).JSON(resp)
}

// End transitions a journey out of the ACTIVE state.
func (h *Handler) End(c *fiber.Ctx) error {
	j, err := h.service.End(c.UserContext(), c.Params("journeyId"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return fiber.NewError(http.StatusNotFound, "journey not found")
		case errors.Is(err, ErrAlreadyEnded):
			return fiber.NewError(http.StatusConflict, "journey already ended")
		}
		return err
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"journeyId": j.ID,
		"status":    string(j.Status),
		"endedAt":   j.EndedAt.Format(time.RFC3339),
	})
}
