package routes

import (
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/savora/savora_loyalty/internal/account"
	"github.com/savora/savora_loyalty/internal/card"
)

// RegisterAccountRoutes wires registration; a loyalty card is issued with
// the account.
func RegisterAccountRoutes(r fiber.Router, accounts *account.Service, logger *slog.Logger) {
	r.Post("/accounts/register", func(c *fiber.Ctx) error {
		var req struct {
			Email string `json:"email"`
			Name  string `json:"name"`
			PIN   string `json:"pin"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		acct, cardAccount, err := accounts.Register(c.UserContext(), account.RegisterInput{
			Email: req.Email,
			Name:  req.Name,
			PIN:   req.PIN,
		})
		if err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		if logger != nil {
			logger.Info("account.register completed",
				slog.String("account_id", acct.ID),
				slog.String("email", acct.Email),
				slog.String("card_account_id", cardAccount.ID),
				slog.Int("status", http.StatusCreated),
			)
		}
		return c.Status(http.StatusCreated).JSON(fiber.Map{
			"account_id":  acct.ID,
			"email":       acct.Email,
			"name":        acct.Name,
			"card_number": card.Mask(cardAccount.CardNumber),
			"expiry": fiber.Map{
				"month": cardAccount.ExpiryMonth,
				"year":  cardAccount.ExpiryYear,
			},
			"points": cardAccount.Points,
		})
	})
}
