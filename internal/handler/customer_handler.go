package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"cardvault/internal/service"
)

// CustomerHandler handles customer endpoints.
type CustomerHandler struct {
	customerService service.CustomerService
}

// NewCustomerHandler creates a new customer handler.
func NewCustomerHandler(customerService service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// CreateCustomerRequest represents a customer creation request.
type CreateCustomerRequest struct {
	MerchantID uint   `json:"merchant_id" validate:"required"`
	Firstname  string `json:"firstname" validate:"required"`
	Lastname   string `json:"lastname" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"required"`
	UserID     *uint  `json:"user_id"`
}

// CreateCustomerWithCardRequest creates a customer and vaults their first
// card in one atomic request.
type CreateCustomerWithCardRequest struct {
	CreateCustomerRequest
	Card           string `json:"card" validate:"required"`
	CardholderName string `json:"cardholderName"`
	Exp            string `json:"exp" validate:"required"`
	CVV            string `json:"cvv" validate:"required"`
}

// CustomerListResponse wraps a customer list.
type CustomerListResponse struct {
	Customers []service.CustomerDetails `json:"customers"`
}

// Create godoc
// @Summary Create a customer under a merchant
// @Tags customers
// @Accept json
// @Produce json
// @Param request body CreateCustomerRequest true "Customer data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /customer [post]
func (h *CustomerHandler) Create(c echo.Context) error {
	var req CreateCustomerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	customer, err := h.customerService.Create(c.Request().Context(), principal(c), c.RealIP(), service.CreateCustomerInput{
		MerchantID: req.MerchantID,
		FirstName:  req.Firstname,
		LastName:   req.Lastname,
		Email:      req.Email,
		Phone:      req.Phone,
		UserID:     req.UserID,
	})
	if err != nil {
		return respondError(c, "create customer", err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":     "customer added",
		"customer_id": customer.ID,
	})
}

// CreateWithCard creates a customer and their first card atomically: a
// failure on either insert leaves neither row behind.
func (h *CustomerHandler) CreateWithCard(c echo.Context) error {
	var req CreateCustomerWithCardRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	customer, card, err := h.customerService.CreateWithCard(c.Request().Context(), principal(c), c.RealIP(), service.CreateCustomerWithCardInput{
		CreateCustomerInput: service.CreateCustomerInput{
			MerchantID: req.MerchantID,
			FirstName:  req.Firstname,
			LastName:   req.Lastname,
			Email:      req.Email,
			Phone:      req.Phone,
			UserID:     req.UserID,
		},
		CardNumber: req.Card,
		CardHolder: req.CardholderName,
		Expiry:     req.Exp,
		CVV:        req.CVV,
	})
	if err != nil {
		return respondError(c, "create customer with card", err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":     "customer and card stored",
		"customer_id": customer.ID,
		"card_id":     card.ID,
	})
}

// List returns all active customers with decrypted contact fields.
func (h *CustomerHandler) List(c echo.Context) error {
	customers, err := h.customerService.List(c.Request().Context())
	if err != nil {
		return respondError(c, "list customers", err)
	}
	return c.JSON(http.StatusOK, CustomerListResponse{Customers: customers})
}
