package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"cardvault/internal/errors"
	"cardvault/internal/service"
)

// CardHandler handles card vault endpoints.
type CardHandler struct {
	cardService service.CardService
}

// NewCardHandler creates a new card handler.
func NewCardHandler(cardService service.CardService) *CardHandler {
	return &CardHandler{cardService: cardService}
}

// StoreCardRequest represents a card storage request.
type StoreCardRequest struct {
	CustomerID     uint   `json:"customer_id" validate:"required"`
	Card           string `json:"card" validate:"required"`
	CardholderName string `json:"cardholderName"`
	Exp            string `json:"exp" validate:"required"`
	CVV            string `json:"cvv" validate:"required"`
}

// CardListResponse wraps a card list.
type CardListResponse struct {
	Cards []service.CardDetails `json:"cards"`
}

// Store godoc
// @Summary Encrypt and vault a payment card
// @Tags cards
// @Accept json
// @Produce json
// @Param request body StoreCardRequest true "Card data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /card/store [post]
func (h *CardHandler) Store(c echo.Context) error {
	var req StoreCardRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	card, err := h.cardService.Store(c.Request().Context(), principal(c), c.RealIP(), service.StoreCardInput{
		CustomerID: req.CustomerID,
		Number:     req.Card,
		Holder:     req.CardholderName,
		Expiry:     req.Exp,
		CVV:        req.CVV,
	})
	if err != nil {
		return respondError(c, "store card", err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Card stored successfully",
		"card_id": card.ID,
	})
}

// List returns the cards visible to the session role.
func (h *CardHandler) List(c echo.Context) error {
	cards, err := h.cardService.List(c.Request().Context(), principal(c))
	if err != nil {
		return respondError(c, "list cards", err)
	}
	return c.JSON(http.StatusOK, CardListResponse{Cards: cards})
}

// ListByCustomer returns one customer's cards, ownership-gated.
func (h *CardHandler) ListByCustomer(c echo.Context) error {
	customerID, err := parseUintParam(c, "customer_id")
	if err != nil {
		return err
	}
	cards, err := h.cardService.ListByCustomer(c.Request().Context(), principal(c), customerID)
	if err != nil {
		return respondError(c, "list customer cards", err)
	}
	return c.JSON(http.StatusOK, CardListResponse{Cards: cards})
}

// Delete deactivates a card.
func (h *CardHandler) Delete(c echo.Context) error {
	cardID, err := parseUintParam(c, "card_id")
	if err != nil {
		return err
	}
	if err := h.cardService.Delete(c.Request().Context(), principal(c), c.RealIP(), cardID); err != nil {
		return respondError(c, "delete card", err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Card deactivated"})
}

func parseUintParam(c echo.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid " + name,
			Code:  "INVALID_PARAM",
		})
	}
	return uint(v), nil
}
