package loyalty

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes the card endpoints for the authenticated owner.
type Handler struct {
	service *Service
}

// NewHandler constructs a loyalty card handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Summary returns the masked card overview with tier progress.
func (h *Handler) Summary(c *fiber.Ctx) error {
	account, err := h.account(c)
	if err != nil {
		return err
	}
	summary, err := h.service.Summarize(c.UserContext(), account.ID)
	if err != nil {
		return fiber.NewError(http.StatusNotFound, err.Error())
	}
	return c.Status(http.StatusOK).JSON(SummaryResponse{
		AccountID:    summary.AccountID,
		CardNumber:   summary.MaskedNumber,
		Expiry:       summary.Expiry,
		Balance:      summary.Balance,
		Points:       summary.Points,
		Tier:         string(summary.Tier),
		Multiplier:   summary.Multiplier,
		Benefits:     summary.Benefits,
		NextTier:     string(summary.NextTier),
		PointsToNext: summary.PointsToNext,
	})
}

// Recharge loads value onto the card.
func (h *Handler) Recharge(c *fiber.Ctx) error {
	account, err := h.account(c)
	if err != nil {
		return err
	}
	var req RechargeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	receipt, err := h.service.Recharge(c.UserContext(), account.ID, req.Amount, req.PaymentMethod)
	if err != nil {
		return operationError(c, receipt, err)
	}
	return c.Status(http.StatusCreated).JSON(toReceiptResponse(receipt))
}

// Pay spends card balance on an order.
func (h *Handler) Pay(c *fiber.Ctx) error {
	account, err := h.account(c)
	if err != nil {
		return err
	}
	var req PayRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	receipt, err := h.service.Pay(c.UserContext(), account.ID, req.Amount)
	if err != nil {
		return operationError(c, receipt, err)
	}
	return c.Status(http.StatusCreated).JSON(toReceiptResponse(receipt))
}

// History lists the card's transactions newest first.
func (h *Handler) History(c *fiber.Ctx) error {
	account, err := h.account(c)
	if err != nil {
		return err
	}
	records, err := h.service.History(c.UserContext(), account.ID)
	if err != nil {
		return fiber.NewError(http.StatusNotFound, err.Error())
	}
	out := make([]TransactionResponse, 0, len(records))
	for _, record := range records {
		out = append(out, TransactionResponse{
			ID:            record.ID,
			Type:          string(record.Type),
			Status:        string(record.Status),
			Amount:        record.Amount,
			Points:        record.Points,
			PaymentMethod: record.PaymentMethod,
			Description:   record.Description,
			Date:          record.Date,
		})
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"transactions": out})
}

// Rewards returns the benefit list for the current tier.
func (h *Handler) Rewards(c *fiber.Ctx) error {
	account, err := h.account(c)
	if err != nil {
		return err
	}
	benefits, err := h.service.Rewards(c.UserContext(), account.ID)
	if err != nil {
		return fiber.NewError(http.StatusNotFound, err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"rewards": benefits})
}

func (h *Handler) account(c *fiber.Ctx) (Account, error) {
	uid, _ := c.Locals("user_id").(string)
	if uid == "" {
		return Account{}, fiber.NewError(http.StatusUnauthorized, "unauthorized")
	}
	account, err := h.service.ByOwner(c.UserContext(), uid)
	if err != nil {
		return Account{}, fiber.NewError(http.StatusNotFound, "loyalty account not found")
	}
	return account, nil
}

// operationError maps ledger errors onto HTTP statuses. A provider decline
// still carries the FAILED record, so the receipt is returned alongside the
// error status.
func operationError(c *fiber.Ctx, receipt Receipt, err error) error {
	switch {
	case errors.Is(err, ErrInvalidCardFormat), errors.Is(err, ErrAmountOutOfBounds):
		return fiber.NewError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, ErrInsufficientBalance):
		return fiber.NewError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrProviderDeclined):
		return c.Status(http.StatusPaymentRequired).JSON(toReceiptResponse(receipt))
	case errors.Is(err, ErrAccountNotFound):
		return fiber.NewError(http.StatusNotFound, err.Error())
	default:
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
}

func toReceiptResponse(receipt Receipt) ReceiptResponse {
	return ReceiptResponse{
		TransactionID: receipt.Transaction.ID,
		Type:          string(receipt.Transaction.Type),
		Status:        string(receipt.Transaction.Status),
		Amount:        receipt.Transaction.Amount,
		PointsEarned:  receipt.Transaction.Points,
		Balance:       receipt.Balance,
		Points:        receipt.Points,
		Tier:          string(receipt.Tier),
		Description:   receipt.Transaction.Description,
	}
}
