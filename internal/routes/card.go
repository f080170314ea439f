package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/savora/savora_loyalty/internal/loyalty"
)

// RegisterCardRoutes wires the loyalty card endpoints for the authenticated
// owner.
func RegisterCardRoutes(r fiber.Router, h *loyalty.Handler) {
	r.Get("/card", h.Summary)
	r.Post("/card/recharge", h.Recharge)
	r.Post("/card/pay", h.Pay)
	r.Get("/card/history", h.History)
	r.Get("/card/rewards", h.Rewards)
}
