package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "oceanlk/internal/errors"
	"oceanlk/internal/models"
	"oceanlk/internal/pagination"
)

// eventService handles news and event reads.
type eventService struct {
	db *gorm.DB
}

// NewEventService creates a new EventServicer.
func NewEventService(db *gorm.DB) EventServicer {
	return &eventService{db: db}
}

// GetEventByID retrieves an event by ID.
func (s *eventService) GetEventByID(id string) (*models.Event, error) {
	var event models.Event
	if err := s.db.Where("id = ?", id).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &event, nil
}

// ListEvents retrieves all events for the admin console, newest first.
func (s *eventService) ListEvents(page pagination.PageRequest) (*pagination.PageResponse[models.Event], error) {
	return s.list(s.db.Model(&models.Event{}), page)
}

// ListPublishedEvents retrieves published events for the public site,
// optionally only those starting after the given time.
func (s *eventService) ListPublishedEvents(after *time.Time, page pagination.PageRequest) (*pagination.PageResponse[models.Event], error) {
	base := s.db.Model(&models.Event{}).Where("is_published = ?", true)
	if after != nil {
		base = base.Where("starts_at >= ?", *after)
	}
	return s.list(base, page)
}

func (s *eventService) list(base *gorm.DB, page pagination.PageRequest) (*pagination.PageResponse[models.Event], error) {
	page.Defaults()

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var events []models.Event
	if err := base.Order("starts_at DESC").
		Scopes(pagination.Paginate(page)).
		Find(&events).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(events, page.Page, page.PageSize, totalItems)
	return &result, nil
}
