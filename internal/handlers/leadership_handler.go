package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "oceanlk/internal/errors"
	"oceanlk/internal/models"
	"oceanlk/internal/pagination"
	"oceanlk/internal/services"
)

// LeadershipHandler handles leadership profile requests. Writes go
// through the change review workflow.
type LeadershipHandler struct {
	leadershipService services.LeadershipServicer
	changeService     services.PendingChangeServicer
	auditService      services.AuditServicer
}

// NewLeadershipHandler creates a new LeadershipHandler
func NewLeadershipHandler(leadershipService services.LeadershipServicer, changeService services.PendingChangeServicer, auditService services.AuditServicer) *LeadershipHandler {
	return &LeadershipHandler{leadershipService: leadershipService, changeService: changeService, auditService: auditService}
}

// LeadershipRequest represents the proposed state of a leadership profile.
type LeadershipRequest struct {
	Name         string  `json:"name" binding:"required,max=255"`
	Title        string  `json:"title" binding:"required,max=255"`
	CompanyID    *string `json:"company_id"`
	PhotoURL     string  `json:"photo_url" binding:"omitempty,url"`
	Bio          string  `json:"bio"`
	DisplayOrder int     `json:"display_order"`
}

func (r *LeadershipRequest) snapshot() (string, error) {
	data, err := json.Marshal(models.LeadershipProfile{
		Name:         r.Name,
		Title:        r.Title,
		CompanyID:    r.CompanyID,
		PhotoURL:     r.PhotoURL,
		Bio:          r.Bio,
		DisplayOrder: r.DisplayOrder,
	})
	return string(data), err
}

// ListProfiles handles the admin leadership list
// @Summary     List leadership profiles
// @Tags        leadership
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {array} models.LeadershipProfile "Profiles"
// @Router      /leadership [get]
func (h *LeadershipHandler) ListProfiles(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	profiles, err := h.leadershipService.ListProfiles(page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, profiles)
}

// GetProfile handles retrieval of a single leadership profile
// @Summary     Get leadership profile
// @Tags        leadership
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Profile ID"
// @Success     200 {object} models.LeadershipProfile "Profile"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /leadership/{id} [get]
func (h *LeadershipHandler) GetProfile(c *gin.Context) {
	profile, err := h.leadershipService.GetProfileByID(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// CreateProfile handles a proposed leadership profile creation
// @Summary     Create leadership profile
// @Tags        leadership
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body LeadershipRequest true "Profile details"
// @Success     200 {object} services.ProposalResult "Applied directly"
// @Success     202 {object} services.ProposalResult "Filed for review"
// @Router      /leadership [post]
func (h *LeadershipHandler) CreateProfile(c *gin.Context) {
	h.propose(c, models.ChangeActionCreate, nil)
}

// UpdateProfile handles a proposed leadership profile update
// @Summary     Update leadership profile
// @Tags        leadership
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Profile ID"
// @Param       request body LeadershipRequest true "Proposed profile state"
// @Success     200 {object} services.ProposalResult "Applied directly"
// @Success     202 {object} services.ProposalResult "Filed for review"
// @Router      /leadership/{id} [put]
func (h *LeadershipHandler) UpdateProfile(c *gin.Context) {
	id := c.Param("id")
	h.propose(c, models.ChangeActionUpdate, &id)
}

// DeleteProfile handles a proposed leadership profile deletion
// @Summary     Delete leadership profile
// @Tags        leadership
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Profile ID"
// @Success     200 {object} services.ProposalResult "Applied directly"
// @Success     202 {object} services.ProposalResult "Filed for review"
// @Router      /leadership/{id} [delete]
func (h *LeadershipHandler) DeleteProfile(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id := c.Param("id")
	profile, err := h.leadershipService.GetProfileByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	data, err := json.Marshal(profile)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	result, err := h.changeService.Propose(user, models.EntityTypeLeadership, models.ChangeActionDelete, &id, string(data))
	if err != nil {
		respondWithError(c, err)
		return
	}

	auditProposal(h.auditService, user, c, models.ChangeActionDelete, models.EntityTypeLeadership, result)
	respondProposal(c, result)
}

func (h *LeadershipHandler) propose(c *gin.Context, action models.ChangeAction, entityID *string) {
	user, err := currentUser(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req LeadershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	snapshot, err := req.snapshot()
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	result, err := h.changeService.Propose(user, models.EntityTypeLeadership, action, entityID, snapshot)
	if err != nil {
		respondWithError(c, err)
		return
	}

	auditProposal(h.auditService, user, c, action, models.EntityTypeLeadership, result)
	respondProposal(c, result)
}
