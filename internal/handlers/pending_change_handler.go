package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "oceanlk/internal/errors"
	"oceanlk/internal/models"
	"oceanlk/internal/pagination"
	"oceanlk/internal/services"
)

// PendingChangeHandler handles the change review queues and the
// approve/reject transitions.
type PendingChangeHandler struct {
	changeService services.PendingChangeServicer
	auditService  services.AuditServicer
}

// NewPendingChangeHandler creates a new PendingChangeHandler
func NewPendingChangeHandler(changeService services.PendingChangeServicer, auditService services.AuditServicer) *PendingChangeHandler {
	return &PendingChangeHandler{changeService: changeService, auditService: auditService}
}

// ReviewRequest is the body for approve and reject calls. Comments are
// optional for approval and mandatory for rejection.
type ReviewRequest struct {
	ReviewComments string `json:"review_comments"`
}

// PendingQueueQuery holds the review queue filter.
type PendingQueueQuery struct {
	EntityType string `form:"entity_type" binding:"omitempty,entity_type"`
}

// SubmissionQuery holds the my-submissions filter.
type SubmissionQuery struct {
	Status string `form:"status" binding:"omitempty,change_status"`
}

// ListPending handles the privileged review queue
// @Summary     List pending changes
// @Description List all changes awaiting review, optionally filtered by entity type
// @Tags        pending-changes
// @Produce     json
// @Security    BearerAuth
// @Param       entity_type query string false "Filter by entity type"
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} services.PendingQueue "Pending changes"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Router      /pending-changes [get]
func (h *PendingChangeHandler) ListPending(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var filter PendingQueueQuery
	if err := c.ShouldBindQuery(&filter); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	var entityType *models.EntityType
	if filter.EntityType != "" {
		et := models.EntityType(filter.EntityType)
		entityType = &et
	}

	queue, err := h.changeService.ListPending(entityType, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, queue)
}

// ListMySubmissions handles the self-submission queue
// @Summary     List own submissions
// @Description List the authenticated admin's submitted changes with status counts
// @Tags        pending-changes
// @Produce     json
// @Security    BearerAuth
// @Param       status query string false "Filter by status (PENDING/APPROVED/REJECTED)"
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} services.SubmissionList "Own submissions"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /pending-changes/my-submissions [get]
func (h *PendingChangeHandler) ListMySubmissions(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var filter SubmissionQuery
	if err := c.ShouldBindQuery(&filter); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	var status *models.ChangeStatus
	if filter.Status != "" {
		st := models.ChangeStatus(filter.Status)
		status = &st
	}

	list, err := h.changeService.ListMySubmissions(user.ID, status, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// GetChange handles retrieval of a single change
// @Summary     Get a pending change
// @Tags        pending-changes
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Change ID"
// @Success     200 {object} models.PendingChange "Change record"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /pending-changes/{id} [get]
func (h *PendingChangeHandler) GetChange(c *gin.Context) {
	change, err := h.changeService.GetByID(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"change": change})
}

// GetDiff handles the field comparison for one change
// @Summary     Get the field diff of a change
// @Description Field-by-field comparison of the change's snapshots
// @Tags        pending-changes
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Change ID"
// @Success     200 {object} diff.Result "Field comparison"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /pending-changes/{id}/diff [get]
func (h *PendingChangeHandler) GetDiff(c *gin.Context) {
	result, err := h.changeService.Diff(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"diff": result, "empty": result.IsEmpty()})
}

// Approve handles approval of a pending change
// @Summary     Approve a change
// @Description Approve a pending change and apply it to the live entity
// @Tags        pending-changes
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Change ID"
// @Param       request body ReviewRequest false "Optional review comments"
// @Success     200 {object} models.PendingChange "Approved change"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     404 {object} ErrorResponse "Not found"
// @Failure     409 {object} ErrorResponse "Already reviewed"
// @Router      /pending-changes/{id}/approve [post]
func (h *PendingChangeHandler) Approve(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ReviewRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
			return
		}
	}

	change, err := h.changeService.Approve(c.Param("id"), user, req.ReviewComments)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(user.ID, "approve_change", string(change.EntityType), change.ID, c.ClientIP(), nil)
	c.JSON(http.StatusOK, gin.H{"change": change})
}

// Reject handles rejection of a pending change
// @Summary     Reject a change
// @Description Reject a pending change; review comments are required
// @Tags        pending-changes
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Change ID"
// @Param       request body ReviewRequest true "Review comments (required)"
// @Success     200 {object} models.PendingChange "Rejected change"
// @Failure     400 {object} ErrorResponse "Missing review comments"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     404 {object} ErrorResponse "Not found"
// @Failure     409 {object} ErrorResponse "Already reviewed"
// @Router      /pending-changes/{id}/reject [post]
func (h *PendingChangeHandler) Reject(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	change, err := h.changeService.Reject(c.Param("id"), user, req.ReviewComments)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(user.ID, "reject_change", string(change.EntityType), change.ID, c.ClientIP(), nil)
	c.JSON(http.StatusOK, gin.H{"change": change})
}
