package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"cardvault/internal/errors"
	"cardvault/internal/service"
)

// TransactionHandler handles charge endpoints.
type TransactionHandler struct {
	transactionService service.TransactionService
}

// NewTransactionHandler creates a new transaction handler.
func NewTransactionHandler(transactionService service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// ChargeRequest represents a charge against a vaulted card.
type ChargeRequest struct {
	CardID   uint   `json:"card_id" validate:"required"`
	Amount   string `json:"amount" validate:"required"`
	Currency string `json:"currency"`
}

// Charge godoc
// @Summary Charge a vaulted card
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body ChargeRequest true "Charge data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /charge [post]
func (h *TransactionHandler) Charge(c echo.Context) error {
	var req ChargeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(errors.ErrInvalidAmount)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	charge, err := h.transactionService.Charge(c.Request().Context(), principal(c), c.RealIP(), req.CardID, amount, req.Currency)
	if err != nil {
		return respondError(c, "charge", err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":        "charged",
		"transaction_id": charge.ID,
	})
}
