package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "oceanlk/internal/errors"
	"oceanlk/internal/pagination"
	"oceanlk/internal/services"
)

// AuditHandler exposes the audit trail to super admins.
type AuditHandler struct {
	auditService services.AuditServicer
}

// NewAuditHandler creates a new AuditHandler
func NewAuditHandler(auditService services.AuditServicer) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// ListLogs handles the audit log listing
// @Summary     List audit logs
// @Tags        audit
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {array} models.AuditLog "Audit logs"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Router      /audit-logs [get]
func (h *AuditHandler) ListLogs(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	logs, err := h.auditService.ListLogs(page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}
