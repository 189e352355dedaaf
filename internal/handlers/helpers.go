package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "oceanlk/internal/errors"
	"oceanlk/internal/logger"
	"oceanlk/internal/middleware"
	"oceanlk/internal/models"
	"oceanlk/internal/services"
)

// ErrorResponse documents the error envelope for swagger.
type ErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// MessageResponse documents simple message responses for swagger.
type MessageResponse struct {
	Message string `json:"message"`
}

// currentUser reconstructs the authenticated admin from the JWT claims
// set by the auth middleware. Returns ErrUnauthorized if not present.
func currentUser(c *gin.Context) (*models.User, error) {
	userID, exists := c.Get(middleware.ContextUserID)
	if !exists {
		return nil, apperrors.ErrUnauthorized
	}
	user := &models.User{
		Base:  models.Base{ID: userID.(string)},
		Email: c.GetString(middleware.ContextEmail),
	}
	if role, ok := c.Get(middleware.ContextRole); ok {
		user.Role = role.(models.Role)
	}
	return user, nil
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, and message. Otherwise it
// logs the unexpected error and returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, gin.H{
			"error": gin.H{
				"code":    appErr.Code,
				"message": appErr.Message,
			},
		})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, gin.H{
		"error": gin.H{
			"code":    apperrors.ErrInternalServer.Code,
			"message": apperrors.ErrInternalServer.Message,
		},
	})
}

// respondProposal writes the outcome of a content edit: 200 with the
// affected entity when a super admin applied directly, 202 with the
// filed change when it went to review.
func respondProposal(c *gin.Context, result *services.ProposalResult) {
	if result.Applied {
		c.JSON(http.StatusOK, gin.H{"applied": true, "entity_id": result.EntityID})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"applied": false, "change": result.Change})
}

// auditProposal records a content edit, distinguishing direct applies
// from review submissions.
func auditProposal(audit services.AuditServicer, user *models.User, c *gin.Context,
	action models.ChangeAction, entityType models.EntityType, result *services.ProposalResult) {
	resourceID := result.EntityID
	auditAction := "apply_" + string(action)
	if !result.Applied {
		resourceID = result.Change.ID
		auditAction = "submit_" + string(action)
	}
	audit.Log(user.ID, auditAction, string(entityType), resourceID, c.ClientIP(), nil)
}
