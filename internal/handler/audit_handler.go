package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"cardvault/internal/service"
)

// AuditHandler exposes the admin view over the audit trail.
type AuditHandler struct {
	auditService service.AuditService
}

// NewAuditHandler creates a new audit handler.
func NewAuditHandler(auditService service.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// Recent godoc
// @Summary List the most recent audit entries, newest first
// @Tags audit
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /audit [get]
func (h *AuditHandler) Recent(c echo.Context) error {
	entries, err := h.auditService.Recent(c.Request().Context())
	if err != nil {
		return respondError(c, "list audit logs", err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"logs": entries})
}
