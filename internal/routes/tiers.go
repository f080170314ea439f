package routes

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/savora/savora_loyalty/internal/tier"
)

// RegisterTierRoutes exposes the static tier table.
func RegisterTierRoutes(r fiber.Router) {
	r.Get("/tiers", func(c *fiber.Ctx) error {
		levels := tier.Levels()
		out := make([]fiber.Map, 0, len(levels))
		for _, l := range levels {
			out = append(out, fiber.Map{
				"tier":           l.Tier,
				"minimum_points": l.MinimumPoints,
				"multiplier":     l.Multiplier,
				"benefits":       l.Benefits,
			})
		}
		return c.Status(http.StatusOK).JSON(fiber.Map{"tiers": out})
	})
}
