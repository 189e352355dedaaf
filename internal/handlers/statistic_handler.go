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

// StatisticHandler handles culture-page statistic requests. Writes go
// through the change review workflow.
type StatisticHandler struct {
	statisticService services.StatisticServicer
	changeService    services.PendingChangeServicer
	auditService     services.AuditServicer
}

// NewStatisticHandler creates a new StatisticHandler
func NewStatisticHandler(statisticService services.StatisticServicer, changeService services.PendingChangeServicer, auditService services.AuditServicer) *StatisticHandler {
	return &StatisticHandler{statisticService: statisticService, changeService: changeService, auditService: auditService}
}

// StatisticRequest represents the proposed state of a statistic.
type StatisticRequest struct {
	Label        string `json:"label" binding:"required,max=255"`
	Value        string `json:"value" binding:"required,max=255"`
	Unit         string `json:"unit" binding:"max=50"`
	DisplayOrder int    `json:"display_order"`
}

func (r *StatisticRequest) snapshot() (string, error) {
	data, err := json.Marshal(models.Statistic{
		Label:        r.Label,
		Value:        r.Value,
		Unit:         r.Unit,
		DisplayOrder: r.DisplayOrder,
	})
	return string(data), err
}

// ListStatistics handles the admin statistic list
// @Summary     List statistics
// @Tags        statistics
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {array} models.Statistic "Statistics"
// @Router      /statistics [get]
func (h *StatisticHandler) ListStatistics(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	stats, err := h.statisticService.ListStatistics(page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetStatistic handles retrieval of a single statistic
// @Summary     Get statistic
// @Tags        statistics
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Statistic ID"
// @Success     200 {object} models.Statistic "Statistic"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /statistics/{id} [get]
func (h *StatisticHandler) GetStatistic(c *gin.Context) {
	stat, err := h.statisticService.GetStatisticByID(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"statistic": stat})
}

// CreateStatistic handles a proposed statistic creation
// @Summary     Create statistic
// @Tags        statistics
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body StatisticRequest true "Statistic details"
// @Success     200 {object} services.ProposalResult "Applied directly"
// @Success     202 {object} services.ProposalResult "Filed for review"
// @Router      /statistics [post]
func (h *StatisticHandler) CreateStatistic(c *gin.Context) {
	h.propose(c, models.ChangeActionCreate, nil)
}

// UpdateStatistic handles a proposed statistic update
// @Summary     Update statistic
// @Tags        statistics
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Statistic ID"
// @Param       request body StatisticRequest true "Proposed statistic state"
// @Success     200 {object} services.ProposalResult "Applied directly"
// @Success     202 {object} services.ProposalResult "Filed for review"
// @Router      /statistics/{id} [put]
func (h *StatisticHandler) UpdateStatistic(c *gin.Context) {
	id := c.Param("id")
	h.propose(c, models.ChangeActionUpdate, &id)
}

// DeleteStatistic handles a proposed statistic deletion
// @Summary     Delete statistic
// @Tags        statistics
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Statistic ID"
// @Success     200 {object} services.ProposalResult "Applied directly"
// @Success     202 {object} services.ProposalResult "Filed for review"
// @Router      /statistics/{id} [delete]
func (h *StatisticHandler) DeleteStatistic(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id := c.Param("id")
	stat, err := h.statisticService.GetStatisticByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	data, err := json.Marshal(stat)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	result, err := h.changeService.Propose(user, models.EntityTypeStatistic, models.ChangeActionDelete, &id, string(data))
	if err != nil {
		respondWithError(c, err)
		return
	}

	auditProposal(h.auditService, user, c, models.ChangeActionDelete, models.EntityTypeStatistic, result)
	respondProposal(c, result)
}

func (h *StatisticHandler) propose(c *gin.Context, action models.ChangeAction, entityID *string) {
	user, err := currentUser(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req StatisticRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	snapshot, err := req.snapshot()
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	result, err := h.changeService.Propose(user, models.EntityTypeStatistic, action, entityID, snapshot)
	if err != nil {
		respondWithError(c, err)
		return
	}

	auditProposal(h.auditService, user, c, action, models.EntityTypeStatistic, result)
	respondProposal(c, result)
}
