package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "oceanlk/internal/errors"
	"oceanlk/internal/models"
	"oceanlk/internal/pagination"
)

// leadershipService handles leadership profile reads.
type leadershipService struct {
	db *gorm.DB
}

// NewLeadershipService creates a new LeadershipServicer.
func NewLeadershipService(db *gorm.DB) LeadershipServicer {
	return &leadershipService{db: db}
}

// GetProfileByID retrieves a leadership profile with its company.
func (s *leadershipService) GetProfileByID(id string) (*models.LeadershipProfile, error) {
	var profile models.LeadershipProfile
	if err := s.db.Preload("Company").Where("id = ?", id).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrLeadershipNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &profile, nil
}

// ListProfiles retrieves all leadership profiles in display order.
func (s *leadershipService) ListProfiles(page pagination.PageRequest) (*pagination.PageResponse[models.LeadershipProfile], error) {
	page.Defaults()

	base := s.db.Model(&models.LeadershipProfile{})

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var profiles []models.LeadershipProfile
	if err := base.Preload("Company").
		Order("display_order ASC, name ASC").
		Scopes(pagination.Paginate(page)).
		Find(&profiles).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(profiles, page.Page, page.PageSize, totalItems)
	return &result, nil
}
