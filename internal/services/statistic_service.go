package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "oceanlk/internal/errors"
	"oceanlk/internal/models"
	"oceanlk/internal/pagination"
)

// statisticService handles culture-page statistic reads.
type statisticService struct {
	db *gorm.DB
}

// NewStatisticService creates a new StatisticServicer.
func NewStatisticService(db *gorm.DB) StatisticServicer {
	return &statisticService{db: db}
}

// GetStatisticByID retrieves a statistic by ID.
func (s *statisticService) GetStatisticByID(id string) (*models.Statistic, error) {
	var stat models.Statistic
	if err := s.db.Where("id = ?", id).First(&stat).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrStatisticNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &stat, nil
}

// ListStatistics retrieves all statistics in display order.
func (s *statisticService) ListStatistics(page pagination.PageRequest) (*pagination.PageResponse[models.Statistic], error) {
	page.Defaults()

	base := s.db.Model(&models.Statistic{})

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var stats []models.Statistic
	if err := base.Order("display_order ASC, label ASC").
		Scopes(pagination.Paginate(page)).
		Find(&stats).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(stats, page.Page, page.PageSize, totalItems)
	return &result, nil
}
