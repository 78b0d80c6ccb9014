package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"cardvault/internal/service"
)

// MerchantHandler handles merchant endpoints.
type MerchantHandler struct {
	merchantService service.MerchantService
}

// NewMerchantHandler creates a new merchant handler.
func NewMerchantHandler(merchantService service.MerchantService) *MerchantHandler {
	return &MerchantHandler{merchantService: merchantService}
}

// CreateMerchantRequest represents a merchant creation request. UserID
// optionally links an existing merchant-role user to the new merchant.
type CreateMerchantRequest struct {
	Name   string `json:"name" validate:"required"`
	Email  string `json:"email" validate:"required,email"`
	UserID *uint  `json:"user_id"`
}

// MerchantListResponse wraps a merchant list.
type MerchantListResponse struct {
	Merchants []service.MerchantDetails `json:"merchants"`
}

// Create godoc
// @Summary Create a merchant
// @Tags merchants
// @Accept json
// @Produce json
// @Param request body CreateMerchantRequest true "Merchant data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /merchant/create [post]
func (h *MerchantHandler) Create(c echo.Context) error {
	var req CreateMerchantRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	merchant, err := h.merchantService.Create(c.Request().Context(), principal(c), c.RealIP(), service.CreateMerchantInput{
		Name:       req.Name,
		Email:      req.Email,
		LinkUserID: req.UserID,
	})
	if err != nil {
		return respondError(c, "create merchant", err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":     "merchant created",
		"merchant_id": merchant.ID,
	})
}

// List returns all active merchants.
func (h *MerchantHandler) List(c echo.Context) error {
	merchants, err := h.merchantService.List(c.Request().Context())
	if err != nil {
		return respondError(c, "list merchants", err)
	}
	return c.JSON(http.StatusOK, MerchantListResponse{Merchants: merchants})
}

// Customers returns the acting merchant's customers and card summaries.
func (h *MerchantHandler) Customers(c echo.Context) error {
	customers, err := h.merchantService.Customers(c.Request().Context(), principal(c))
	if err != nil {
		return respondError(c, "merchant customers", err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"customers": customers})
}
