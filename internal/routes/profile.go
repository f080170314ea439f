package routes

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/savora/savora_loyalty/internal/account"
	"github.com/savora/savora_loyalty/internal/loyalty"
)

// RegisterProfileRoute exposes the current account's profile together with
// the masked card summary.
func RegisterProfileRoute(r fiber.Router, repo account.Repository, cards *loyalty.Service) {
	r.Get("/me", func(c *fiber.Ctx) error {
		uid, _ := c.Locals("user_id").(string)
		if uid == "" {
			return fiber.NewError(http.StatusUnauthorized, "unauthorized")
		}
		acct, err := repo.FindByID(c.UserContext(), uid)
		if err != nil {
			return fiber.NewError(http.StatusNotFound, "account not found")
		}
		cardAccount, err := cards.ByOwner(c.UserContext(), uid)
		if err != nil {
			return fiber.NewError(http.StatusNotFound, "loyalty account not found")
		}
		summary, err := cards.Summarize(c.UserContext(), cardAccount.ID)
		if err != nil {
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"account": fiber.Map{
				"id":            acct.ID,
				"email":         acct.Email,
				"name":          acct.Name,
				"token_version": acct.TokenVersion,
				"created_at":    acct.CreatedAt,
				"last_login":    acct.LastLogin,
			},
			"card": fiber.Map{
				"number":         summary.MaskedNumber,
				"expiry":         summary.Expiry,
				"balance":        summary.Balance,
				"points":         summary.Points,
				"tier":           summary.Tier,
				"multiplier":     summary.Multiplier,
				"benefits":       summary.Benefits,
				"next_tier":      summary.NextTier,
				"points_to_next": summary.PointsToNext,
			},
		})
	})
}
