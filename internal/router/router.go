package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"cardvault/internal/auth"
	"cardvault/internal/config"
	"cardvault/internal/handler"
	"cardvault/internal/middleware"
	"cardvault/internal/model"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	sessions *auth.SessionManager,
	authHandler *handler.AuthHandler,
	customerHandler *handler.CustomerHandler,
	cardHandler *handler.CardHandler,
	merchantHandler *handler.MerchantHandler,
	transactionHandler *handler.TransactionHandler,
	auditHandler *handler.AuditHandler,
) {
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
	}))

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": "Vault backend running"})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public routes
	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)
	e.GET("/session/check", authHandler.CheckSession)

	// Session-gated routes: cookie signature first, then server-side
	// session liveness. Role checks narrow per group; ownership rules
	// live in the services.
	sess := e.Group("", middleware.CookieAuth(sessions), middleware.LoadPrincipal(sessions))

	sess.POST("/logout", authHandler.Logout)

	customers := sess.Group("/customer", middleware.RequireRole(model.RoleAdmin, model.RoleMerchant))
	customers.POST("", customerHandler.Create)
	customers.POST("/store_with_card", customerHandler.CreateWithCard)
	customers.GET("/list", customerHandler.List)

	cards := sess.Group("/card", middleware.RequireRole(model.RoleAdmin, model.RoleMerchant, model.RoleCustomer))
	cards.POST("/store", cardHandler.Store)
	cards.GET("/list", cardHandler.List)
	cards.GET("/:customer_id", cardHandler.ListByCustomer)
	cards.DELETE("/:card_id", cardHandler.Delete)

	sess.POST("/charge", transactionHandler.Charge, middleware.RequireRole(model.RoleAdmin, model.RoleMerchant))

	merchants := sess.Group("/merchant")
	merchants.POST("/create", merchantHandler.Create, middleware.RequireRole(model.RoleAdmin))
	merchants.GET("/list", merchantHandler.List, middleware.RequireRole(model.RoleAdmin, model.RoleMerchant))
	merchants.GET("/customers", merchantHandler.Customers, middleware.RequireRole(model.RoleMerchant))

	sess.GET("/audit", auditHandler.Recent, middleware.RequireRole(model.RoleAdmin))
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
