package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "oceanlk/internal/errors"
	"oceanlk/internal/models"
	"oceanlk/internal/pagination"
	"oceanlk/internal/services"
)

// EventHandler handles news and event requests. Writes go through the
// change review workflow.
type EventHandler struct {
	eventService  services.EventServicer
	changeService services.PendingChangeServicer
	auditService  services.AuditServicer
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(eventService services.EventServicer, changeService services.PendingChangeServicer, auditService services.AuditServicer) *EventHandler {
	return &EventHandler{eventService: eventService, changeService: changeService, auditService: auditService}
}

// EventRequest represents the proposed state of an event.
type EventRequest struct {
	Title       string     `json:"title" binding:"required,max=255"`
	Summary     string     `json:"summary" binding:"max=500"`
	Body        string     `json:"body"`
	Location    string     `json:"location" binding:"max=255"`
	StartsAt    time.Time  `json:"starts_at" binding:"required"`
	EndsAt      *time.Time `json:"ends_at"`
	IsPublished bool       `json:"is_published"`
}

func (r *EventRequest) snapshot() (string, error) {
	data, err := json.Marshal(models.Event{
		Title:       r.Title,
		Summary:     r.Summary,
		Body:        r.Body,
		Location:    r.Location,
		StartsAt:    r.StartsAt,
		EndsAt:      r.EndsAt,
		IsPublished: r.IsPublished,
	})
	return string(data), err
}

// ListEvents handles the admin event list
// @Summary     List events
// @Tags        events
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {array} models.Event "Events"
// @Router      /events [get]
func (h *EventHandler) ListEvents(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	events, err := h.eventService.ListEvents(page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

// GetEvent handles retrieval of a single event
// @Summary     Get event
// @Tags        events
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Event ID"
// @Success     200 {object} models.Event "Event"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /events/{id} [get]
func (h *EventHandler) GetEvent(c *gin.Context) {
	event, err := h.eventService.GetEventByID(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"event": event})
}

// CreateEvent handles a proposed event creation
// @Summary     Create event
// @Tags        events
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body EventRequest true "Event details"
// @Success     200 {object} services.ProposalResult "Applied directly"
// @Success     202 {object} services.ProposalResult "Filed for review"
// @Router      /events [post]
func (h *EventHandler) CreateEvent(c *gin.Context) {
	h.propose(c, models.ChangeActionCreate, nil)
}

// UpdateEvent handles a proposed event update
// @Summary     Update event
// @Tags        events
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Event ID"
// @Param       request body EventRequest true "Proposed event state"
// @Success     200 {object} services.ProposalResult "Applied directly"
// @Success     202 {object} services.ProposalResult "Filed for review"
// @Router      /events/{id} [put]
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	id := c.Param("id")
	h.propose(c, models.ChangeActionUpdate, &id)
}

// DeleteEvent handles a proposed event deletion
// @Summary     Delete event
// @Tags        events
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Event ID"
// @Success     200 {object} services.ProposalResult "Applied directly"
// @Success     202 {object} services.ProposalResult "Filed for review"
// @Router      /events/{id} [delete]
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id := c.Param("id")
	event, err := h.eventService.GetEventByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	result, err := h.changeService.Propose(user, models.EntityTypeEvent, models.ChangeActionDelete, &id, string(data))
	if err != nil {
		respondWithError(c, err)
		return
	}

	auditProposal(h.auditService, user, c, models.ChangeActionDelete, models.EntityTypeEvent, result)
	respondProposal(c, result)
}

func (h *EventHandler) propose(c *gin.Context, action models.ChangeAction, entityID *string) {
	user, err := currentUser(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	snapshot, err := req.snapshot()
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	result, err := h.changeService.Propose(user, models.EntityTypeEvent, action, entityID, snapshot)
	if err != nil {
		respondWithError(c, err)
		return
	}

	auditProposal(h.auditService, user, c, action, models.EntityTypeEvent, result)
	respondProposal(c, result)
}
